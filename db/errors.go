package db

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-sql-driver/mysql"
)

const (
	mysqlDupEntry        = 1062
	mysqlNoReferencedRow = 1452
)

var (
	ErrDuplicate        = errors.New("duplicate entry")
	ErrMissingReference = errors.New("referenced row does not exist")
)

var dupKeyRegexp = regexp.MustCompile(`for key '([^']+)'`)

// ClassifyErr wraps driver errors callers branch on with ErrDuplicate or
// ErrMissingReference. Other errors are returned as is.
func ClassifyErr(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return err
	}
	switch mysqlErr.Number {
	case mysqlDupEntry:
		return fmt.Errorf("%w on %v: %w", ErrDuplicate, GetDupKey(mysqlErr), err)
	case mysqlNoReferencedRow:
		return fmt.Errorf("%w: %w", ErrMissingReference, err)
	}
	return err
}

func IsDupKeyErr(err error) bool {
	return errors.Is(ClassifyErr(err), ErrDuplicate)
}

func IsMissingReferenceErr(err error) bool {
	return errors.Is(ClassifyErr(err), ErrMissingReference)
}

func GetDupKey(err *mysql.MySQLError) string {
	match := dupKeyRegexp.FindStringSubmatch(err.Message)
	if match == nil {
		return ""
	}
	return match[1]
}
