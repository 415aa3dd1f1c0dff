package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngagement() (*EngagementController, *fakeDB, *recordingPublisher) {
	fake := newFakeDB()
	fake.posts["p1"] = &model.Post{Id: "p1", UserId: strPtr("author")}
	events := &recordingPublisher{}
	return &EngagementController{db: fake, events: events}, fake, events
}

func TestAddLikeTwiceConflicts(t *testing.T) {
	ec, _, events := newEngagement()
	viewer := &model.User{Id: "u1"}

	res, httpErr := ec.AddLike(context.Background(), viewer, "p1", &AddLikeReq{Emoji: "❤️"})
	require.Nil(t, httpErr)
	assert.Equal(t, "Like added", res.Message)
	require.Len(t, events.events, 1)
	assert.Equal(t, services.EventPostLiked, events.events[0].Type)

	_, httpErr = ec.AddLike(context.Background(), viewer, "p1", &AddLikeReq{})
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Like already exists", httpErr.Message)
	assert.Len(t, events.events, 1)
}

func TestAddLikeMissingPost(t *testing.T) {
	ec, fake, _ := newEngagement()
	fake.addLike = missingErr
	_, httpErr := ec.AddLike(context.Background(), &model.User{Id: "u1"}, "nope", &AddLikeReq{})
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestRemoveLikeIsIdempotent(t *testing.T) {
	ec, fake, _ := newEngagement()
	viewer := &model.User{Id: "u1"}
	fake.likes["p1|u1"] = true

	res, httpErr := ec.RemoveLike(context.Background(), viewer, "p1")
	require.Nil(t, httpErr)
	assert.True(t, res.Removed)

	res, httpErr = ec.RemoveLike(context.Background(), viewer, "p1")
	require.Nil(t, httpErr)
	assert.False(t, res.Removed)
}

func TestAddCommentEchoesSanitizedComment(t *testing.T) {
	ec, fake, _ := newEngagement()
	res, httpErr := ec.AddComment(context.Background(), &model.User{Id: "u1"}, "p1", &AddCommentReq{Content: "<script>x</script>nice post"})
	require.Nil(t, httpErr)
	assert.Equal(t, "nice post", res.Content)
	assert.Equal(t, "u1", res.UserId)
	assert.Equal(t, "p1", res.PostId)
	assert.Equal(t, "nice post", fake.comments[res.Id].Content)
}

func TestAddCommentRejectsBlankAndMissingPost(t *testing.T) {
	ec, _, _ := newEngagement()
	_, httpErr := ec.AddComment(context.Background(), &model.User{Id: "u1"}, "p1", &AddCommentReq{Content: "<script></script>"})
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)

	_, httpErr = ec.AddComment(context.Background(), &model.User{Id: "u1"}, "nope", &AddCommentReq{Content: "hi"})
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestRemoveCommentOnlyByAuthorOrAdmin(t *testing.T) {
	ec, fake, _ := newEngagement()
	fake.comments["c1"] = &model.Comment{Id: "c1", PostId: "p1", UserId: "u1"}
	fake.comments["c2"] = &model.Comment{Id: "c2", PostId: "p1", UserId: "u1"}

	_, httpErr := ec.RemoveComment(context.Background(), &model.User{Id: "stranger"}, "c1")
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)

	_, httpErr = ec.RemoveComment(context.Background(), &model.User{Id: "u1"}, "c1")
	assert.Nil(t, httpErr)

	_, httpErr = ec.RemoveComment(context.Background(), &model.User{Id: "mod", IsAdmin: true}, "c2")
	assert.Nil(t, httpErr)

	_, httpErr = ec.RemoveComment(context.Background(), &model.User{Id: "u1"}, "c1")
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestAddedCommentAppearsInPostDetail(t *testing.T) {
	ec, fake, _ := newEngagement()
	comment, httpErr := ec.AddComment(context.Background(), &model.User{Id: "u1"}, "p1", &AddCommentReq{Content: "count me in"})
	require.Nil(t, httpErr)

	pc := &PostController{db: fake}
	detail, httpErr := pc.GetPostDetail(context.Background(), &model.User{Id: "u1"}, "p1")
	require.Nil(t, httpErr)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, comment.Id, detail.Comments[0].Id)
	assert.Equal(t, "count me in", detail.Comments[0].Content)
}
