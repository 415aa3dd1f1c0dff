package controllers

import (
	"context"

	"github.com/google/uuid"
	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/services"
	"github.com/sidrapp/sidr-be/util"
)

type ReportController struct {
	db     db.Database
	events services.EventPublisher
}

type CreateReportReq struct {
	PostId string `json:"postId" binding:"required,max=36"`
	Reason string `json:"reason" binding:"required,max=2000"`
}

func (rc *ReportController) CreateReport(ctx context.Context, viewer *model.User, req *CreateReportReq) (*model.ReportReceipt, *util.HTTPError) {
	reason := util.XSSSanitize(req.Reason)
	if reason == "" {
		return nil, util.BuildValidationHTTPErr("reason", "is required")
	}
	report, err := rc.db.CreateReport(ctx, &db.CreateReport{
		Id:              uuid.NewString(),
		ReportingUserId: viewer.Id,
		PostId:          req.PostId,
		Reason:          reason,
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if report == nil {
		return nil, util.NotFoundHTTPErr("Post")
	}
	rc.events.Publish(ctx, services.NewEvent(services.EventPostReported, viewer.Id, report.PostId, report.Id))
	return report.Receipt(), nil
}

func (rc *ReportController) ListReports(ctx context.Context, query *db.ReportsQuery) ([]*model.Report, *util.HTTPError) {
	if query.Status != "" && !query.Status.Valid() {
		return nil, util.BuildValidationHTTPErr("status", "must be one of: pending resolved")
	}
	reports, err := rc.db.GetReports(ctx, query)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return reports, nil
}

func (rc *ReportController) ResolveReport(ctx context.Context, id string) (*MessageRes, *util.HTTPError) {
	found, err := rc.db.ResolveReport(ctx, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if !found {
		return nil, util.NotFoundHTTPErr("Report")
	}
	return &MessageRes{Message: "Report resolved"}, nil
}
