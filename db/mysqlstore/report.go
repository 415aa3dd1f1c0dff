package mysqlstore

import (
	"context"

	appDb "github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/model"
	"github.com/upper/db/v4"
)

type ReportDB struct {
	sess db.Session
}

func getReportDB(sess db.Session) *ReportDB {
	return &ReportDB{sess}
}

var reportColumns = []interface{}{
	"r.id",
	"r.reporting_user_id",
	"r.postId",
	"r.userId",
	"r.reason",
	"r.status",
	"r.createdAt",
}

// CreateReport files the report against whoever owns the post: the user
// author, or the owner of the authoring charity page.
func (rdb *ReportDB) CreateReport(ctx context.Context, req *appDb.CreateReport) (*model.Report, error) {
	inserted, err := found(rdb.sess.SQL().ExecContext(ctx, db.Raw(`
INSERT INTO reports (id, reporting_user_id, postId, userId, reason, status)
	SELECT ?, ?, p.id, COALESCE(p.userId, cp.userId), ?, ?
	FROM posts AS p
	LEFT JOIN charity_pages AS cp ON cp.id = p.charityPageId
	WHERE p.id = ?
`, req.Id, req.ReportingUserId, req.Reason, model.ReportStatusPending, req.PostId)))
	if err != nil || !inserted {
		return nil, err
	}
	return rdb.getReport(ctx, req.Id)
}

func (rdb *ReportDB) getReport(ctx context.Context, id string) (*model.Report, error) {
	var report model.Report
	if err := rdb.sess.SQL().
		Select(reportColumns...).
		From("reports AS r").
		Where("r.id = ?", id).
		IteratorContext(ctx).
		One(&report); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (rdb *ReportDB) GetReports(ctx context.Context, query *appDb.ReportsQuery) ([]*model.Report, error) {
	sel := rdb.sess.SQL().
		Select(reportColumns...).
		From("reports AS r")
	conds := []db.LogicalExpr{}
	if query.Status != "" {
		conds = append(conds, db.Cond{"r.status": query.Status})
	}
	if query.PostId != "" {
		conds = append(conds, db.Cond{"r.postId": query.PostId})
	}
	if query.UserId != "" {
		conds = append(conds, db.Cond{"r.userId": query.UserId})
	}
	if len(conds) > 0 {
		sel = sel.Where(db.And(conds...))
	}
	reports := []*model.Report{}
	err := sel.
		OrderBy("r.createdAt DESC", "r.id").
		IteratorContext(ctx).
		All(&reports)
	return reports, err
}

func (rdb *ReportDB) ResolveReport(ctx context.Context, id string) (bool, error) {
	return found(rdb.sess.SQL().
		Update("reports").
		Set("status", model.ReportStatusResolved).
		Where("id = ?", id).
		ExecContext(ctx))
}
