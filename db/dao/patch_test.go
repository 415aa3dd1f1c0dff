package dao

import (
	"encoding/json"
	"testing"

	"github.com/sidrapp/sidr-be/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalDistinguishesAbsentFromNull(t *testing.T) {
	var patch UserPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Sam","phone":null}`), &patch))

	assert.True(t, patch.Name.Set)
	assert.Equal(t, "Sam", patch.Name.Value)
	assert.True(t, patch.Phone.Set)
	assert.True(t, patch.Phone.Null)
	assert.False(t, patch.Email.Set)

	set, bad := patch.Columns()
	assert.Empty(t, bad)
	assert.Equal(t, map[string]interface{}{"name": "Sam", "phone": nil}, set)
}

func TestColumnsRejectsNullOnRequiredColumn(t *testing.T) {
	var patch PostPatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":null}`), &patch))
	set, bad := patch.Columns()
	assert.Nil(t, set)
	assert.Equal(t, "title", bad)
}

func TestCharityPagePatchColumns(t *testing.T) {
	var patch CharityPagePatch
	require.NoError(t, json.Unmarshal([]byte(`{"status":"inactive","coverImage":"covers/a.png"}`), &patch))
	set, bad := patch.Columns()
	assert.Empty(t, bad)
	assert.Equal(t, map[string]interface{}{
		"status":      model.CharityStatusInactive,
		"cover_image": "covers/a.png",
	}, set)
}

func TestEmptyPatchHasNoColumns(t *testing.T) {
	set, bad := (&PostPatch{}).Columns()
	assert.Empty(t, bad)
	assert.Empty(t, set)
}
