package mysqlstore

import (
	"context"

	appDb "github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/db/dao"
	"github.com/sidrapp/sidr-be/model"
	"github.com/upper/db/v4"
)

type UserDB struct {
	sess db.Session
}

func getUserDB(sess db.Session) *UserDB {
	return &UserDB{sess}
}

var userColumns = []interface{}{
	"u.id",
	"u.name",
	"u.email",
	"u.phone",
	"u.profile_image",
	"u.is_admin",
	"u.createdAt",
}

func (udb *UserDB) CreateUser(ctx context.Context, user *model.User) error {
	_, err := udb.sess.SQL().
		InsertInto("users").
		Columns("id", "name", "email", "phone", "profile_image").
		Values(user.Id, user.Name, user.Email, user.Phone, user.ProfileImage).
		ExecContext(ctx)
	return appDb.ClassifyErr(err)
}

func (udb *UserDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := udb.sess.SQL().
		Select(userColumns...).
		From("users AS u").
		Where("u.id = ?", id).
		IteratorContext(ctx).
		One(&user); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (udb *UserDB) GetUserProfile(ctx context.Context, id string) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := udb.sess.SQL().
		Select(append(userColumns,
			db.Raw("(SELECT COUNT(*) FROM followers AS fr WHERE fr.following_id = u.id) AS followers_count"),
			db.Raw("(SELECT COUNT(*) FROM followers AS fg WHERE fg.follower_id = u.id) AS followings_count"),
		)...).
		From("users AS u").
		Where("u.id = ?", id).
		IteratorContext(ctx).
		One(&profile); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (udb *UserDB) GetUsers(ctx context.Context) ([]*model.User, error) {
	users := []*model.User{}
	err := udb.sess.SQL().
		Select(userColumns...).
		From("users AS u").
		OrderBy("u.createdAt DESC", "u.id").
		IteratorContext(ctx).
		All(&users)
	return users, err
}

func (udb *UserDB) UpdateUser(ctx context.Context, id string, patch *dao.UserPatch) (bool, error) {
	set, _ := patch.Columns()
	return updateColumns(ctx, udb.sess, "users", id, set)
}

// DeleteUser removes the user together with everything that references them:
// their graph edges, engagement, messages, donations, reports, posts and pages.
func (udb *UserDB) DeleteUser(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := udb.sess.TxContext(ctx, func(sess db.Session) error {
		var pages []idRow
		if err := sess.SQL().
			Select("id").
			From("charity_pages").
			Where("userId = ?", id).
			IteratorContext(ctx).
			All(&pages); err != nil {
			return err
		}
		for _, page := range pages {
			if _, err := deleteCharityPageTx(ctx, sess, page.Id); err != nil {
				return err
			}
		}
		var posts []idRow
		if err := sess.SQL().
			Select("id").
			From("posts").
			Where("userId = ?", id).
			IteratorContext(ctx).
			All(&posts); err != nil {
			return err
		}
		for _, post := range posts {
			if _, err := deletePostTx(ctx, sess, post.Id); err != nil {
				return err
			}
		}

		for _, stmt := range []struct {
			table string
			where string
			args  []interface{}
		}{
			{"followers", "follower_id = ? OR following_id = ?", []interface{}{id, id}},
			{"follows", "user_id = ?", []interface{}{id}},
			{"likes", "userId = ?", []interface{}{id}},
			{"comments", "userId = ?", []interface{}{id}},
			{"reports", "reporting_user_id = ? OR userId = ?", []interface{}{id, id}},
			{"donations", "userId = ?", []interface{}{id}},
			{"messages", "sender_id = ? OR (receiver_type = 'user' AND receiver_id = ?)", []interface{}{id, id}},
		} {
			if _, err := sess.SQL().
				DeleteFrom(stmt.table).
				Where(append([]interface{}{stmt.where}, stmt.args...)...).
				ExecContext(ctx); err != nil {
				return err
			}
		}

		var err error
		deleted, err = found(sess.SQL().
			DeleteFrom("users").
			Where("id = ?", id).
			ExecContext(ctx))
		return err
	}, nil)
	return deleted, err
}
