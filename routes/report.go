package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidrapp/sidr-be/controllers"
	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/middleware"
	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/util"
)

type reportRoutes struct {
	controller *controllers.ReportController
}

func AddReportRoutes(group *gin.RouterGroup, deps *Deps) {
	routes := reportRoutes{deps.Controllers.Reports}
	reports := group.Group("/reports", deps.auth(&middleware.AuthConfig{}))
	reports.POST("", deps.limit("reports"), util.HandlerWrapper(routes.createReport, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))

	moderation := reports.Group("", middleware.RequireAdmin())
	moderation.GET("", util.HandlerWrapper(routes.getReports, &util.HandlerOpts{}))
	moderation.PUT("/:id/resolve", util.HandlerWrapper(routes.resolveReport, &util.HandlerOpts{}))
}

func (rr *reportRoutes) createReport(c *gin.Context) (interface{}, *util.HTTPError) {
	var req controllers.CreateReportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	return rr.controller.CreateReport(c, middleware.MustGetUser(c), &req)
}

func (rr *reportRoutes) getReports(c *gin.Context) (interface{}, *util.HTTPError) {
	return rr.controller.ListReports(c, &db.ReportsQuery{
		Status: model.ReportStatus(c.Query("status")),
		PostId: c.Query("postId"),
		UserId: c.Query("userId"),
	})
}

func (rr *reportRoutes) resolveReport(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return rr.controller.ResolveReport(c, id)
}
