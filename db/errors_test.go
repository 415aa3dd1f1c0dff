package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestClassifyErrDuplicate(t *testing.T) {
	driverErr := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'p1-u1' for key 'likes.uniq_post_user'"}
	err := ClassifyErr(fmt.Errorf("insert: %w", driverErr))
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.ErrorIs(t, err, driverErr)
	assert.True(t, IsDupKeyErr(driverErr))
	assert.Equal(t, "likes.uniq_post_user", GetDupKey(driverErr))
}

func TestClassifyErrMissingReference(t *testing.T) {
	driverErr := &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}
	assert.ErrorIs(t, ClassifyErr(driverErr), ErrMissingReference)
	assert.True(t, IsMissingReferenceErr(driverErr))
	assert.False(t, IsDupKeyErr(driverErr))
}

func TestClassifyErrPassthrough(t *testing.T) {
	plain := errors.New("boom")
	assert.Same(t, plain, ClassifyErr(plain))
	other := &mysql.MySQLError{Number: 1213, Message: "Deadlock"}
	assert.Same(t, other, ClassifyErr(other))
}
