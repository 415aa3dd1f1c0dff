package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowLifecycle(t *testing.T) {
	fake := newFakeDB()
	fake.users["u2"] = &model.User{Id: "u2"}
	events := &recordingPublisher{}
	sc := &SocialController{db: fake, events: events}
	viewer := &model.User{Id: "u1"}
	ctx := context.Background()

	res, httpErr := sc.Follow(ctx, viewer, "u2")
	require.Nil(t, httpErr)
	assert.Equal(t, http.StatusCreated, res.Status)
	assert.Equal(t, db.FollowResultFollowed, res.Data.(*FollowRes).Status)
	assert.Len(t, events.events, 1)

	res, httpErr = sc.Follow(ctx, viewer, "u2")
	require.Nil(t, httpErr)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, db.FollowResultAlreadyFollowing, res.Data.(*FollowRes).Status)
	assert.Len(t, events.events, 1)

	res, httpErr = sc.Unfollow(ctx, viewer, "u2")
	require.Nil(t, httpErr)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, db.FollowResultUnfollowed, res.Data.(*FollowRes).Status)

	res, httpErr = sc.Unfollow(ctx, viewer, "u2")
	require.Nil(t, httpErr)
	assert.Equal(t, db.FollowResultNotFollowing, res.Data.(*FollowRes).Status)
}

func TestFollowRejectsSelfAndUnknownUser(t *testing.T) {
	sc := &SocialController{db: newFakeDB(), events: &recordingPublisher{}}
	viewer := &model.User{Id: "u1"}

	_, httpErr := sc.Follow(context.Background(), viewer, "u1")
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)

	_, httpErr = sc.Follow(context.Background(), viewer, "ghost")
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}
