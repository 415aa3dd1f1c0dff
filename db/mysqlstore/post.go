package mysqlstore

import (
	"context"
	"time"

	appDb "github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/db/dao"
	"github.com/sidrapp/sidr-be/model"
	"github.com/upper/db/v4"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

func (pdb *PostDB) CreatePost(ctx context.Context, req *appDb.CreatePost) error {
	if err := req.Validate(); err != nil {
		return err
	}
	var userId, charityPageId *string
	switch req.Author.Type {
	case model.AuthorTypeUser:
		userId = &req.Author.Id
	case model.AuthorTypeCharityPage:
		charityPageId = &req.Author.Id
	}
	_, err := pdb.sess.SQL().
		InsertInto("posts").
		Columns("id", "title", "content", "image_path", "userId", "charityPageId", "is_anonymous").
		Values(req.Id, req.Title, req.Content, req.ImagePath, userId, charityPageId, req.IsAnonymous).
		ExecContext(ctx)
	return appDb.ClassifyErr(err)
}

func (pdb *PostDB) GetPostById(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := pdb.sess.SQL().
		Select("p.id", "p.title", "p.content", "p.image_path", "p.userId", "p.charityPageId", "p.is_anonymous", "p.createdAt").
		From("posts AS p").
		Where("p.id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

type flattenedPost struct {
	Id               string    `db:"id"`
	Title            string    `db:"title"`
	Content          string    `db:"content"`
	ImagePath        *string   `db:"image_path"`
	UserId           *string   `db:"userId"`
	CharityPageId    *string   `db:"charityPageId"`
	IsAnonymous      bool      `db:"is_anonymous"`
	CreatedAt        time.Time `db:"createdAt"`
	Likes            int       `db:"likes"`
	CommentCount     int       `db:"comment_count"`
	IsLiked          bool      `db:"is_liked"`
	UserName         *string   `db:"user_name"`
	UserProfileImage *string   `db:"user_profile_image"`
	PageName         *string   `db:"page_name"`
	PageProfileImage *string   `db:"page_profile_image"`
	FollowsUser      bool      `db:"follows_user"`
	FollowsPage      bool      `db:"follows_page"`
}

var postViewColumns = append([]interface{}{
	"p.id",
	"p.title",
	"p.content",
	"p.image_path",
	"p.userId",
	"p.charityPageId",
	"p.is_anonymous",
	"p.createdAt",
	"u.name AS user_name",
	"u.profile_image AS user_profile_image",
	"cp.name AS page_name",
	"cp.profile_image AS page_profile_image",
}, convertDbRawToInterface(
	db.Raw("(SELECT COUNT(*) FROM likes AS l WHERE l.postId = p.id) AS likes"),
	db.Raw("(SELECT COUNT(*) FROM comments AS c WHERE c.postId = p.id) AS comment_count"),
	db.Raw("vl.id IS NOT NULL AS is_liked"),
	db.Raw("vf.follower_id IS NOT NULL AS follows_user"),
	db.Raw("vcf.user_id IS NOT NULL AS follows_page"),
)...)

// selectPostViews joins the author tables and the viewer's like and follow
// edges. An empty viewerId matches no edge.
func (pdb *PostDB) selectPostViews(viewerId string) db.Selector {
	return pdb.sess.SQL().
		Select(postViewColumns...).
		From("posts AS p").
		LeftJoin("users AS u").On("u.id = p.userId").
		LeftJoin("charity_pages AS cp").On("cp.id = p.charityPageId").
		LeftJoin("likes AS vl").On("vl.postId = p.id AND vl.userId = ?", viewerId).
		LeftJoin("followers AS vf").On("vf.following_id = p.userId AND vf.follower_id = ?", viewerId).
		LeftJoin("follows AS vcf").On("vcf.charity_page_id = p.charityPageId AND vcf.user_id = ?", viewerId)
}

func (pdb *PostDB) GetPostView(ctx context.Context, id string, viewerId string) (*model.PostView, error) {
	var post flattenedPost
	if err := pdb.selectPostViews(viewerId).
		Where("p.id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildPostViewFromFlattened(&post, viewerId), nil
}

// postsSelector compiles a listing query. The viewer join arguments bind
// ahead of the filter arguments.
func (pdb *PostDB) postsSelector(query *appDb.PostsListQuery) db.Selector {
	sel := pdb.selectPostViews(query.ViewerId)
	if where, args := query.Conditions(); where != "" {
		sel = sel.Where(append([]interface{}{where}, args...)...)
	}
	return sel.
		OrderBy("p.createdAt DESC", "p.id ASC").
		Limit(query.Limit).
		Offset(query.Offset)
}

func (pdb *PostDB) GetPosts(ctx context.Context, query *appDb.PostsListQuery) ([]*model.PostView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	var flattenedPosts []flattenedPost
	if err := pdb.postsSelector(query).
		IteratorContext(ctx).
		All(&flattenedPosts); err != nil {
		return nil, err
	}
	posts := make([]*model.PostView, len(flattenedPosts))
	for i := range flattenedPosts {
		posts[i] = buildPostViewFromFlattened(&flattenedPosts[i], query.ViewerId)
	}
	return posts, nil
}

func buildPostViewFromFlattened(post *flattenedPost, viewerId string) *model.PostView {
	poster := &model.Poster{}
	var follows bool
	if post.CharityPageId != nil {
		poster.Id = *post.CharityPageId
		poster.Type = model.AuthorTypeCharityPage
		poster.Name = derefString(post.PageName)
		poster.ProfileImage = post.PageProfileImage
		follows = post.FollowsPage
	} else {
		poster.Id = derefString(post.UserId)
		poster.Type = model.AuthorTypeUser
		poster.Name = derefString(post.UserName)
		poster.ProfileImage = post.UserProfileImage
		follows = post.FollowsUser
	}
	if viewerId != "" {
		poster.IsFollower = &follows
	}
	return &model.PostView{
		Post: &model.PostSummary{
			Id:           post.Id,
			Title:        post.Title,
			Content:      post.Content,
			IsAnonymous:  post.IsAnonymous,
			ImagePath:    post.ImagePath,
			CreatedAt:    post.CreatedAt,
			Likes:        post.Likes,
			CommentCount: post.CommentCount,
			IsLiked:      post.IsLiked,
		},
		Poster: poster,
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (pdb *PostDB) UpdatePost(ctx context.Context, id string, patch *dao.PostPatch) (bool, error) {
	set, _ := patch.Columns()
	return updateColumns(ctx, pdb.sess, "posts", id, set)
}

func (pdb *PostDB) DeletePost(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := pdb.sess.TxContext(ctx, func(sess db.Session) error {
		var err error
		deleted, err = deletePostTx(ctx, sess, id)
		return err
	}, nil)
	return deleted, err
}

func deletePostTx(ctx context.Context, sess db.Session, id string) (bool, error) {
	for _, table := range []string{"comments", "likes", "reports"} {
		if _, err := sess.SQL().
			DeleteFrom(table).
			Where("postId = ?", id).
			ExecContext(ctx); err != nil {
			return false, err
		}
	}
	return found(sess.SQL().
		DeleteFrom("posts").
		Where("id = ?", id).
		ExecContext(ctx))
}
