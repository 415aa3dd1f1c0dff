package mysqlstore

import (
	"context"

	appDb "github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/model"
	"github.com/upper/db/v4"
)

type EngagementDB struct {
	sess db.Session
}

func getEngagementDB(sess db.Session) *EngagementDB {
	return &EngagementDB{sess}
}

// AddLike relies on the (postId, userId) unique key; a second like surfaces
// as appDb.ErrDuplicate and a missing post as appDb.ErrMissingReference.
func (edb *EngagementDB) AddLike(ctx context.Context, req *appDb.CreateLike) error {
	_, err := edb.sess.SQL().
		InsertInto("likes").
		Columns("id", "postId", "userId", "emoji").
		Values(req.Id, req.PostId, req.UserId, req.Emoji).
		ExecContext(ctx)
	return appDb.ClassifyErr(err)
}

func (edb *EngagementDB) RemoveLike(ctx context.Context, postId string, userId string) (int64, error) {
	return rowsAffected(edb.sess.SQL().
		DeleteFrom("likes").
		Where("postId = ? AND userId = ?", postId, userId).
		ExecContext(ctx))
}

func (edb *EngagementDB) GetLikes(ctx context.Context, postId string) ([]*model.Like, error) {
	likes := []*model.Like{}
	err := edb.sess.SQL().
		Select("l.id", "l.postId", "l.userId", "l.emoji", "l.createdAt", "u.name", "u.profile_image").
		From("likes AS l").
		Join("users AS u").On("u.id = l.userId").
		Where("l.postId = ?", postId).
		OrderBy("l.createdAt DESC", "l.id").
		IteratorContext(ctx).
		All(&likes)
	return likes, err
}

func (edb *EngagementDB) AddComment(ctx context.Context, req *appDb.CreateComment) error {
	_, err := edb.sess.SQL().
		InsertInto("comments").
		Columns("id", "postId", "userId", "content").
		Values(req.Id, req.PostId, req.UserId, req.Content).
		ExecContext(ctx)
	return appDb.ClassifyErr(err)
}

var commentColumns = []interface{}{
	"c.id",
	"c.postId",
	"c.userId",
	"c.content",
	"c.createdAt",
	"u.name",
	"u.profile_image",
}

func (edb *EngagementDB) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	if err := edb.sess.SQL().
		Select(commentColumns...).
		From("comments AS c").
		Join("users AS u").On("u.id = c.userId").
		Where("c.id = ?", id).
		IteratorContext(ctx).
		One(&comment); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (edb *EngagementDB) GetComments(ctx context.Context, postId string) ([]*model.Comment, error) {
	comments := []*model.Comment{}
	err := edb.sess.SQL().
		Select(commentColumns...).
		From("comments AS c").
		Join("users AS u").On("u.id = c.userId").
		Where("c.postId = ?", postId).
		OrderBy("c.createdAt", "c.id").
		IteratorContext(ctx).
		All(&comments)
	return comments, err
}

func (edb *EngagementDB) RemoveComment(ctx context.Context, id string) (bool, error) {
	return found(edb.sess.SQL().
		DeleteFrom("comments").
		Where("id = ?", id).
		ExecContext(ctx))
}
