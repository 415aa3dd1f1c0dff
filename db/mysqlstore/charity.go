package mysqlstore

import (
	"context"

	appDb "github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/db/dao"
	"github.com/sidrapp/sidr-be/model"
	"github.com/upper/db/v4"
)

type CharityDB struct {
	sess db.Session
}

func getCharityDB(sess db.Session) *CharityDB {
	return &CharityDB{sess}
}

var charityPageColumns = []interface{}{
	"cp.id",
	"cp.userId",
	"cp.name",
	"cp.location",
	"cp.description",
	"cp.profile_image",
	"cp.cover_image",
	"cp.front_image",
	"cp.back_image",
	"cp.status",
	"cp.createdAt",
}

var charityPageWithFollowStatusColumns = append(charityPageColumns[:len(charityPageColumns):len(charityPageColumns)],
	convertDbRawToInterface(
		db.Raw("(SELECT COUNT(*) FROM follows AS fc WHERE fc.charity_page_id = cp.id) AS followers_count"),
		db.Raw("vf.user_id IS NOT NULL AS is_following"),
	)...)

func (cdb *CharityDB) CreateCharityPage(ctx context.Context, page *model.CharityPage) error {
	_, err := cdb.sess.SQL().
		InsertInto("charity_pages").
		Columns("id", "userId", "name", "location", "description",
			"profile_image", "cover_image", "front_image", "back_image", "status").
		Values(page.Id, page.UserId, page.Name, page.Location, page.Description,
			page.ProfileImage, page.CoverImage, page.FrontImage, page.BackImage, page.Status).
		ExecContext(ctx)
	return appDb.ClassifyErr(err)
}

func (cdb *CharityDB) GetCharityPage(ctx context.Context, id string) (*model.CharityPage, error) {
	var page model.CharityPage
	if err := cdb.sess.SQL().
		Select(charityPageColumns...).
		From("charity_pages AS cp").
		Where("cp.id = ?", id).
		IteratorContext(ctx).
		One(&page); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (cdb *CharityDB) GetCharityPageWithFollowStatus(ctx context.Context, id string, viewerId string) (*model.CharityPageWithFollowStatus, error) {
	var page model.CharityPageWithFollowStatus
	if err := cdb.sess.SQL().
		Select(charityPageWithFollowStatusColumns...).
		From("charity_pages AS cp").
		LeftJoin("follows AS vf").On("vf.charity_page_id = cp.id AND vf.user_id = ?", viewerId).
		Where("cp.id = ?", id).
		IteratorContext(ctx).
		One(&page); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (cdb *CharityDB) GetCharityPages(ctx context.Context, query *appDb.CharityPagesQuery) ([]*model.CharityPageWithFollowStatus, error) {
	sel := cdb.sess.SQL().
		Select(charityPageWithFollowStatusColumns...).
		From("charity_pages AS cp").
		LeftJoin("follows AS vf").On("vf.charity_page_id = cp.id AND vf.user_id = ?", query.ViewerId)
	if query.OwnerId != "" {
		sel = sel.Where("cp.userId = ?", query.OwnerId)
	}
	pages := []*model.CharityPageWithFollowStatus{}
	err := sel.
		OrderBy("cp.createdAt DESC", "cp.id").
		IteratorContext(ctx).
		All(&pages)
	return pages, err
}

func (cdb *CharityDB) UpdateCharityPage(ctx context.Context, id string, patch *dao.CharityPagePatch) (bool, error) {
	set, _ := patch.Columns()
	return updateColumns(ctx, cdb.sess, "charity_pages", id, set)
}

func (cdb *CharityDB) DeleteCharityPage(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := cdb.sess.TxContext(ctx, func(sess db.Session) error {
		var err error
		deleted, err = deleteCharityPageTx(ctx, sess, id)
		return err
	}, nil)
	return deleted, err
}

func deleteCharityPageTx(ctx context.Context, sess db.Session, id string) (bool, error) {
	var posts []idRow
	if err := sess.SQL().
		Select("id").
		From("posts").
		Where("charityPageId = ?", id).
		IteratorContext(ctx).
		All(&posts); err != nil {
		return false, err
	}
	for _, post := range posts {
		if _, err := deletePostTx(ctx, sess, post.Id); err != nil {
			return false, err
		}
	}
	if _, err := sess.SQL().DeleteFrom("follows").Where("charity_page_id = ?", id).ExecContext(ctx); err != nil {
		return false, err
	}
	if _, err := sess.SQL().DeleteFrom("donations").Where("charityPageId = ?", id).ExecContext(ctx); err != nil {
		return false, err
	}
	if _, err := sess.SQL().
		DeleteFrom("messages").
		Where("receiver_type = ? AND receiver_id = ?", model.ReceiverTypeCharityPage, id).
		ExecContext(ctx); err != nil {
		return false, err
	}
	return found(sess.SQL().DeleteFrom("charity_pages").Where("id = ?", id).ExecContext(ctx))
}
