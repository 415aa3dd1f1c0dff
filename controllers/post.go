package controllers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sidrapp/sidr-be/app"
	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/db/dao"
	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/services"
	"github.com/sidrapp/sidr-be/util"
)

type PostController struct {
	db    db.Database
	media services.MediaStore
}

func (pc *PostController) ListFeed(ctx context.Context, viewer *model.User, req *app.FeedRequest) (*model.Page[*model.PostView], *util.HTTPError) {
	page, err := app.ListFeed(ctx, pc.db, viewer, req)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return page, nil
}

// ListByAuthor checks the author exists so an unknown id is a 404 rather than
// an empty page. A user's anonymous posts are listed only to that user and
// admins.
func (pc *PostController) ListByAuthor(ctx context.Context, viewer *model.User, author model.Author, params app.PageParams) (*model.Page[*model.PostView], *util.HTTPError) {
	switch author.Type {
	case model.AuthorTypeUser:
		if httpErr := requireUser(ctx, pc.db, author.Id); httpErr != nil {
			return nil, httpErr
		}
	case model.AuthorTypeCharityPage:
		if _, httpErr := requireCharityPage(ctx, pc.db, author.Id); httpErr != nil {
			return nil, httpErr
		}
	default:
		return nil, util.BuildValidationHTTPErr("authorType", "must be one of: user charityPage")
	}
	return pc.ListFeed(ctx, viewer, &app.FeedRequest{
		PageParams:       params,
		Author:           &author,
		IncludeAnonymous: author.Type == model.AuthorTypeUser && viewer.CanModerate(author.Id),
	})
}

func (pc *PostController) GetPostDetail(ctx context.Context, viewer *model.User, id string) (*model.PostDetail, *util.HTTPError) {
	detail, err := app.GetPostDetail(ctx, pc.db, viewer, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if detail == nil {
		return nil, util.NotFoundHTTPErr("Post")
	}
	return detail, nil
}

type CreatePostReq struct {
	Title       string         `json:"title" binding:"required,max=255"`
	Content     string         `json:"content" binding:"required"`
	ImagePath   *string        `json:"imagePath" binding:"omitempty,max=512"`
	IsAnonymous bool           `json:"isAnonymous"`
	Author      *app.AuthorRef `json:"author"`
}

// CreatePost posts as the viewer unless an author names one of the viewer's
// charity pages.
func (pc *PostController) CreatePost(ctx context.Context, viewer *model.User, req *CreatePostReq) (*model.PostDetail, *util.HTTPError) {
	author := model.UserAuthor(viewer.Id)
	if req.Author != nil {
		author = req.Author.Author
	}
	switch author.Type {
	case model.AuthorTypeUser:
		if author.Id != viewer.Id {
			return nil, util.ForbiddenHTTPErr("cannot post as another user")
		}
	case model.AuthorTypeCharityPage:
		page, httpErr := requireCharityPage(ctx, pc.db, author.Id)
		if httpErr != nil {
			return nil, httpErr
		}
		if page.UserId != viewer.Id {
			return nil, util.ForbiddenHTTPErr("cannot post as a charity page you do not own")
		}
		if !page.IsActive() {
			return nil, util.BuildValidationHTTPErr("author", "charity page is inactive")
		}
	}

	createPost := &db.CreatePost{
		Id:          uuid.NewString(),
		Author:      author,
		Title:       util.XSSSanitize(req.Title),
		Content:     util.XSSSanitize(req.Content),
		ImagePath:   req.ImagePath,
		IsAnonymous: req.IsAnonymous,
	}
	if createPost.Title == "" {
		return nil, util.BuildValidationHTTPErr("title", "is required")
	}
	if createPost.Content == "" {
		return nil, util.BuildValidationHTTPErr("content", "is required")
	}
	if httpErr := checkMedia(ctx, pc.media, "imagePath", createPost.ImagePath); httpErr != nil {
		return nil, httpErr
	}
	if err := pc.db.CreatePost(ctx, createPost); err != nil {
		switch {
		case errors.Is(err, db.ErrAnonymousPagePost):
			return nil, util.BuildValidationHTTPErr("isAnonymous", "only user posts can be anonymous")
		case errors.Is(err, db.ErrInvalidAuthor):
			return nil, util.BuildValidationHTTPErr("author", "is invalid")
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return pc.GetPostDetail(ctx, viewer, createPost.Id)
}

// authoredPost loads a post the viewer may mutate. moderators also admits
// admins. Everyone else is told the post does not exist.
func (pc *PostController) authoredPost(ctx context.Context, viewer *model.User, id string, moderators bool) (*model.Post, *util.HTTPError) {
	post, httpErr := requirePost(ctx, pc.db, id)
	if httpErr != nil {
		return nil, httpErr
	}
	ownerId := ""
	author := post.Author()
	switch author.Type {
	case model.AuthorTypeUser:
		ownerId = author.Id
	case model.AuthorTypeCharityPage:
		page, err := pc.db.GetCharityPage(ctx, author.Id)
		if err != nil {
			return nil, util.BuildDbHTTPErr(err)
		}
		if page != nil {
			ownerId = page.UserId
		}
	}
	allowed := viewer != nil && viewer.Id == ownerId
	if moderators {
		allowed = viewer.CanModerate(ownerId)
	}
	if !allowed {
		return nil, util.NotFoundHTTPErr("Post")
	}
	return post, nil
}

func (pc *PostController) UpdatePost(ctx context.Context, viewer *model.User, id string, patch *dao.PostPatch) (*model.PostDetail, *util.HTTPError) {
	post, httpErr := pc.authoredPost(ctx, viewer, id, false)
	if httpErr != nil {
		return nil, httpErr
	}
	for field, text := range map[string]*dao.Optional[string]{"title": &patch.Title, "content": &patch.Content} {
		if text.Set && !text.Null {
			text.Value = util.XSSSanitize(text.Value)
			if text.Value == "" {
				return nil, util.BuildValidationHTTPErr(field, "is required")
			}
		}
	}
	if patch.IsAnonymous.Set && patch.IsAnonymous.Value && post.Author().Type != model.AuthorTypeUser {
		return nil, util.BuildValidationHTTPErr("isAnonymous", "only user posts can be anonymous")
	}
	if patch.ImagePath.Set && !patch.ImagePath.Null {
		if httpErr := checkMedia(ctx, pc.media, "imagePath", &patch.ImagePath.Value); httpErr != nil {
			return nil, httpErr
		}
	}
	if _, bad := patch.Columns(); bad != "" {
		return nil, util.BuildValidationHTTPErr(bad, "cannot be null")
	}
	found, err := pc.db.UpdatePost(ctx, id, patch)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if !found {
		return nil, util.NotFoundHTTPErr("Post")
	}
	return pc.GetPostDetail(ctx, viewer, id)
}

func (pc *PostController) DeletePost(ctx context.Context, viewer *model.User, id string) (*MessageRes, *util.HTTPError) {
	if _, httpErr := pc.authoredPost(ctx, viewer, id, true); httpErr != nil {
		return nil, httpErr
	}
	found, err := pc.db.DeletePost(ctx, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if !found {
		return nil, util.NotFoundHTTPErr("Post")
	}
	return &MessageRes{Message: "Post deleted"}, nil
}
