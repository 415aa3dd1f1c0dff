package app

import (
	"context"

	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/model"
	"golang.org/x/sync/errgroup"
)

type FeedRequest struct {
	PageParams
	Search string
	// ExcludeViewer drops the viewer's own posts and page posts from pages
	// the viewer does not follow.
	ExcludeViewer bool
	Author        *model.Author
	// IncludeAnonymous lists the author's anonymous posts too. Callers set
	// it only when the viewer is that author or an admin.
	IncludeAnonymous bool
}

// ListFeed reads one extra row to learn whether another page exists. Offset
// paging can skip or repeat posts inserted between two page loads.
func ListFeed(ctx context.Context, postDB db.PostDatabase, viewer *model.User, req *FeedRequest) (*model.Page[*model.PostView], error) {
	var viewerId string
	if viewer != nil {
		viewerId = viewer.Id
	}
	posts, err := postDB.GetPosts(ctx, &db.PostsListQuery{
		ViewerId:         viewerId,
		Search:           req.Search,
		Author:           req.Author,
		ExcludeViewer:    req.ExcludeViewer,
		IncludeAnonymous: req.IncludeAnonymous,
		Limit:            req.Limit + 1,
		Offset:           req.Offset(),
	})
	if err != nil {
		return nil, err
	}

	hasMore := len(posts) > req.Limit
	if hasMore {
		posts = posts[:req.Limit]
	}
	for _, post := range posts {
		post.MakeDisplayableFor(viewer)
	}
	return &model.Page[*model.PostView]{
		Items:   posts,
		Page:    req.Page,
		Limit:   req.Limit,
		HasMore: hasMore,
	}, nil
}

type postDetailDB interface {
	GetPostView(ctx context.Context, id string, viewerId string) (*model.PostView, error)
	GetComments(ctx context.Context, postId string) ([]*model.Comment, error)
}

// GetPostDetail loads the post and its comments concurrently. It returns nil
// when the post does not exist.
func GetPostDetail(ctx context.Context, database postDetailDB, viewer *model.User, postId string) (*model.PostDetail, error) {
	var viewerId string
	if viewer != nil {
		viewerId = viewer.Id
	}
	var view *model.PostView
	var comments []*model.Comment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		view, err = database.GetPostView(gctx, postId, viewerId)
		return err
	})
	g.Go(func() (err error) {
		comments, err = database.GetComments(gctx, postId)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if view == nil {
		return nil, nil
	}
	if comments == nil {
		comments = []*model.Comment{}
	}
	detail := &model.PostDetail{PostView: view, Comments: comments}
	return detail.MakeDisplayableFor(viewer), nil
}
