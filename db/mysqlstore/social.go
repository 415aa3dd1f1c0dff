package mysqlstore

import (
	"context"

	appDb "github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/model"
	"github.com/upper/db/v4"
)

type SocialDB struct {
	sess db.Session
}

func getSocialDB(sess db.Session) *SocialDB {
	return &SocialDB{sess}
}

// edge describes one follow table: the columns holding each end of the edge.
type edge struct {
	table   string
	fromCol string
	toCol   string
}

var (
	userEdge        = edge{table: "followers", fromCol: "follower_id", toCol: "following_id"}
	charityPageEdge = edge{table: "follows", fromCol: "user_id", toCol: "charity_page_id"}
)

func (e edge) cond() string {
	return e.fromCol + " = ? AND " + e.toCol + " = ?"
}

// follow checks and inserts in one transaction. A concurrent insert that wins
// the race shows up as a duplicate key and is reported as already following.
func (sdb *SocialDB) follow(ctx context.Context, e edge, from string, to string) (appDb.FollowResult, error) {
	result := appDb.FollowResultFollowed
	err := sdb.sess.TxContext(ctx, func(sess db.Session) error {
		exists, err := sess.WithContext(ctx).Collection(e.table).Find(e.cond(), from, to).Exists()
		if err != nil {
			return err
		}
		if exists {
			result = appDb.FollowResultAlreadyFollowing
			return nil
		}
		_, err = sess.SQL().
			InsertInto(e.table).
			Columns(e.fromCol, e.toCol).
			Values(from, to).
			ExecContext(ctx)
		return appDb.ClassifyErr(err)
	}, nil)
	if err != nil {
		if appDb.IsDupKeyErr(err) {
			return appDb.FollowResultAlreadyFollowing, nil
		}
		return "", err
	}
	return result, nil
}

func (sdb *SocialDB) unfollow(ctx context.Context, e edge, from string, to string) (appDb.FollowResult, error) {
	removed, err := found(sdb.sess.SQL().
		DeleteFrom(e.table).
		Where(e.cond(), from, to).
		ExecContext(ctx))
	if err != nil {
		return "", err
	}
	if !removed {
		return appDb.FollowResultNotFollowing, nil
	}
	return appDb.FollowResultUnfollowed, nil
}

func (sdb *SocialDB) Follow(ctx context.Context, followerId string, followingId string) (appDb.FollowResult, error) {
	return sdb.follow(ctx, userEdge, followerId, followingId)
}

func (sdb *SocialDB) Unfollow(ctx context.Context, followerId string, followingId string) (appDb.FollowResult, error) {
	return sdb.unfollow(ctx, userEdge, followerId, followingId)
}

func (sdb *SocialDB) FollowCharityPage(ctx context.Context, userId string, pageId string) (appDb.FollowResult, error) {
	return sdb.follow(ctx, charityPageEdge, userId, pageId)
}

func (sdb *SocialDB) UnfollowCharityPage(ctx context.Context, userId string, pageId string) (appDb.FollowResult, error) {
	return sdb.unfollow(ctx, charityPageEdge, userId, pageId)
}

func (sdb *SocialDB) IsFollowingCharityPage(ctx context.Context, userId string, pageId string) (bool, error) {
	return sdb.sess.WithContext(ctx).Collection(charityPageEdge.table).Find(charityPageEdge.cond(), userId, pageId).Exists()
}

// usersAcross lists the users on the `pick` side of every edge whose `match`
// column equals id.
func (sdb *SocialDB) usersAcross(ctx context.Context, e edge, pick string, match string, id string) ([]*model.User, error) {
	users := []*model.User{}
	err := sdb.sess.SQL().
		Select(userColumns...).
		From(e.table+" AS e").
		Join("users AS u").On("u.id = e."+pick).
		Where("e."+match+" = ?", id).
		OrderBy("u.name", "u.id").
		IteratorContext(ctx).
		All(&users)
	return users, err
}

func (sdb *SocialDB) GetFollowers(ctx context.Context, userId string) ([]*model.User, error) {
	return sdb.usersAcross(ctx, userEdge, userEdge.fromCol, userEdge.toCol, userId)
}

func (sdb *SocialDB) GetFollowings(ctx context.Context, userId string) ([]*model.User, error) {
	return sdb.usersAcross(ctx, userEdge, userEdge.toCol, userEdge.fromCol, userId)
}

func (sdb *SocialDB) GetCharityPageFollowers(ctx context.Context, pageId string) ([]*model.User, error) {
	return sdb.usersAcross(ctx, charityPageEdge, charityPageEdge.fromCol, charityPageEdge.toCol, pageId)
}
