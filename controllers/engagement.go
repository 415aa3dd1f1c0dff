package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/services"
	"github.com/sidrapp/sidr-be/util"
)

type EngagementController struct {
	db     db.Database
	events services.EventPublisher
}

const DefaultLikeEmoji = "👍"

var LikeExistsHTTPErr = util.HTTPError{
	Status:  http.StatusBadRequest,
	Message: "Like already exists",
}

type AddLikeReq struct {
	Emoji string `json:"emoji" binding:"max=16"`
}

func (ec *EngagementController) AddLike(ctx context.Context, viewer *model.User, postId string, req *AddLikeReq) (*MessageRes, *util.HTTPError) {
	emoji := req.Emoji
	if emoji == "" {
		emoji = DefaultLikeEmoji
	}
	if err := ec.db.AddLike(ctx, &db.CreateLike{
		Id:     uuid.NewString(),
		PostId: postId,
		UserId: viewer.Id,
		Emoji:  emoji,
	}); err != nil {
		switch {
		case db.IsDupKeyErr(err):
			httpErr := LikeExistsHTTPErr
			return nil, &httpErr
		case db.IsMissingReferenceErr(err):
			return nil, util.NotFoundHTTPErr("Post")
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	ec.events.Publish(ctx, services.NewEvent(services.EventPostLiked, viewer.Id, postId, ""))
	return &MessageRes{Message: "Like added"}, nil
}

type RemoveLikeRes struct {
	Message string `json:"message"`
	Removed bool   `json:"removed"`
}

// RemoveLike succeeds whether or not the like existed.
func (ec *EngagementController) RemoveLike(ctx context.Context, viewer *model.User, postId string) (*RemoveLikeRes, *util.HTTPError) {
	removed, err := ec.db.RemoveLike(ctx, postId, viewer.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return &RemoveLikeRes{Message: "Like removed", Removed: removed > 0}, nil
}

func (ec *EngagementController) GetLikes(ctx context.Context, postId string) ([]*model.Like, *util.HTTPError) {
	if _, httpErr := requirePost(ctx, ec.db, postId); httpErr != nil {
		return nil, httpErr
	}
	likes, err := ec.db.GetLikes(ctx, postId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return likes, nil
}

type AddCommentReq struct {
	Content string `json:"content" binding:"required"`
}

type CommentRes struct {
	Id      string `json:"id"`
	Content string `json:"content"`
	UserId  string `json:"userId"`
	PostId  string `json:"postId"`
}

func (ec *EngagementController) AddComment(ctx context.Context, viewer *model.User, postId string, req *AddCommentReq) (*CommentRes, *util.HTTPError) {
	content := util.XSSSanitize(req.Content)
	if content == "" {
		return nil, util.BuildValidationHTTPErr("content", "is required")
	}
	comment := &db.CreateComment{
		Id:      uuid.NewString(),
		PostId:  postId,
		UserId:  viewer.Id,
		Content: content,
	}
	if err := ec.db.AddComment(ctx, comment); err != nil {
		if db.IsMissingReferenceErr(err) {
			return nil, util.NotFoundHTTPErr("Post")
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	ec.events.Publish(ctx, services.NewEvent(services.EventPostCommented, viewer.Id, postId, comment.Id))
	return &CommentRes{
		Id:      comment.Id,
		Content: comment.Content,
		UserId:  comment.UserId,
		PostId:  comment.PostId,
	}, nil
}

func (ec *EngagementController) GetComments(ctx context.Context, postId string) ([]*model.Comment, *util.HTTPError) {
	if _, httpErr := requirePost(ctx, ec.db, postId); httpErr != nil {
		return nil, httpErr
	}
	comments, err := ec.db.GetComments(ctx, postId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return comments, nil
}

// RemoveComment only lets the comment's author or an admin delete it; anyone
// else gets the same NotFound as for a missing comment.
func (ec *EngagementController) RemoveComment(ctx context.Context, viewer *model.User, commentId string) (*MessageRes, *util.HTTPError) {
	comment, err := ec.db.GetComment(ctx, commentId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if comment == nil || !viewer.CanModerate(comment.UserId) {
		return nil, util.NotFoundHTTPErr("Comment")
	}
	found, err := ec.db.RemoveComment(ctx, commentId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if !found {
		return nil, util.NotFoundHTTPErr("Comment")
	}
	return &MessageRes{Message: "Comment deleted"}, nil
}
