package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/sidrapp/sidr-be/db/dao"
	"github.com/sidrapp/sidr-be/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateMeValidatesEmail(t *testing.T) {
	fake := newFakeDB()
	fake.users["u1"] = &model.User{Id: "u1", Name: "Sam", Email: "sam@example.com"}
	uc := &UserController{db: fake}
	viewer := &model.User{Id: "u1"}

	for _, bad := range []string{"@", "sam@", "not an email", "a@b@c"} {
		_, httpErr := uc.UpdateMe(context.Background(), viewer, &dao.UserPatch{Email: dao.Some(bad)})
		require.NotNil(t, httpErr, bad)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "must be a valid email", httpErr.Fields["email"], bad)
	}
	assert.Equal(t, "sam@example.com", fake.users["u1"].Email)

	profile, httpErr := uc.UpdateMe(context.Background(), viewer, &dao.UserPatch{Email: dao.Some(" sam@new.example.com ")})
	require.Nil(t, httpErr)
	assert.Equal(t, "sam@new.example.com", profile.Email)
}

func TestUpdateMeRejectsMarkupOnlyName(t *testing.T) {
	fake := newFakeDB()
	fake.users["u1"] = &model.User{Id: "u1", Name: "Sam"}
	uc := &UserController{db: fake}

	_, httpErr := uc.UpdateMe(context.Background(), &model.User{Id: "u1"}, &dao.UserPatch{Name: dao.Some("<script>alert(1)</script>")})
	require.NotNil(t, httpErr)
	assert.Contains(t, httpErr.Fields, "name")
	assert.Equal(t, "Sam", fake.users["u1"].Name)
}
