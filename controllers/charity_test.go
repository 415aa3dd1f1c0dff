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

func newCharities() (*CharityController, *fakeDB) {
	fake := newFakeDB()
	fake.pages["c1"] = &model.CharityPage{Id: "c1", UserId: "owner", Name: "Shelter", Location: "Town", Description: "Beds"}
	return &CharityController{db: fake, media: fakeMedia{}}, fake
}

func TestCreateCharityPageRejectsTextThatSanitizesToEmpty(t *testing.T) {
	cc, fake := newCharities()
	valid := func() *CreateCharityPageReq {
		return &CreateCharityPageReq{Name: "Pantry", Location: "Town", Description: "Food"}
	}

	for field, mutate := range map[string]func(*CreateCharityPageReq){
		"name":        func(r *CreateCharityPageReq) { r.Name = "<script>x</script>" },
		"location":    func(r *CreateCharityPageReq) { r.Location = "<iframe src=\"x\"></iframe>" },
		"description": func(r *CreateCharityPageReq) { r.Description = "<style>p{}</style>" },
	} {
		req := valid()
		mutate(req)
		_, httpErr := cc.CreateCharityPage(context.Background(), &model.User{Id: "owner"}, req)
		require.NotNil(t, httpErr, field)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status, field)
		assert.Contains(t, httpErr.Fields, field)
	}
	assert.Len(t, fake.pages, 1)

	page, httpErr := cc.CreateCharityPage(context.Background(), &model.User{Id: "owner"}, valid())
	require.Nil(t, httpErr)
	assert.Equal(t, model.CharityStatusActive, page.Status)
	assert.Len(t, fake.pages, 2)
}

func TestUpdateCharityPageRejectsClearedRequiredText(t *testing.T) {
	cc, _ := newCharities()
	owner := &model.User{Id: "owner"}

	_, httpErr := cc.UpdateCharityPage(context.Background(), owner, "c1", &dao.CharityPagePatch{Location: dao.Some("<script>alert(1)</script>")})
	require.NotNil(t, httpErr)
	assert.Contains(t, httpErr.Fields, "location")

	_, httpErr = cc.UpdateCharityPage(context.Background(), owner, "c1", &dao.CharityPagePatch{Description: dao.Optional[string]{Set: true, Null: true}})
	require.NotNil(t, httpErr)
	assert.Contains(t, httpErr.Fields, "description")

	_, httpErr = cc.UpdateCharityPage(context.Background(), &model.User{Id: "stranger"}, "c1", &dao.CharityPagePatch{Name: dao.Some("Mine")})
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}
