package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidrapp/sidr-be/controllers"
	"github.com/sidrapp/sidr-be/db/dao"
	"github.com/sidrapp/sidr-be/middleware"
	"github.com/sidrapp/sidr-be/util"
)

type charityRoutes struct {
	controller *controllers.CharityController
}

func AddCharityRoutes(group *gin.RouterGroup, deps *Deps) {
	routes := charityRoutes{deps.Controllers.Charities}
	pages := group.Group("/charities", deps.auth(&middleware.AuthConfig{}))
	pages.POST("", deps.limit("charities"), util.HandlerWrapper(routes.createCharityPage, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))
	pages.GET("", util.HandlerWrapper(routes.getCharityPages, &util.HandlerOpts{}))
	pages.GET("/:id", util.HandlerWrapper(routes.getCharityPageById, &util.HandlerOpts{}))
	pages.PUT("/:id", deps.limit("charities"), util.HandlerWrapper(routes.updateCharityPage, &util.HandlerOpts{}))
	pages.DELETE("/:id", util.HandlerWrapper(routes.deleteCharityPage, &util.HandlerOpts{}))

	mine := group.Group("", deps.auth(&middleware.AuthConfig{}))
	mine.GET("/charities-me", util.HandlerWrapper(routes.getMyCharityPages, &util.HandlerOpts{}))
	mine.GET("/users/:id/charities", util.HandlerWrapper(routes.getUserCharityPages, &util.HandlerOpts{}))
}

func (cr *charityRoutes) createCharityPage(c *gin.Context) (interface{}, *util.HTTPError) {
	var req controllers.CreateCharityPageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	return cr.controller.CreateCharityPage(c, middleware.MustGetUser(c), &req)
}

func (cr *charityRoutes) getCharityPages(c *gin.Context) (interface{}, *util.HTTPError) {
	return cr.controller.ListCharityPages(c, middleware.MustGetUser(c), c.Query("userId"))
}

func (cr *charityRoutes) getMyCharityPages(c *gin.Context) (interface{}, *util.HTTPError) {
	viewer := middleware.MustGetUser(c)
	return cr.controller.ListCharityPages(c, viewer, viewer.Id)
}

func (cr *charityRoutes) getUserCharityPages(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return cr.controller.ListCharityPages(c, middleware.MustGetUser(c), id)
}

func (cr *charityRoutes) getCharityPageById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return cr.controller.GetCharityPage(c, middleware.MustGetUser(c), id)
}

func (cr *charityRoutes) updateCharityPage(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	var patch dao.CharityPagePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	return cr.controller.UpdateCharityPage(c, middleware.MustGetUser(c), id, &patch)
}

func (cr *charityRoutes) deleteCharityPage(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return cr.controller.DeleteCharityPage(c, middleware.MustGetUser(c), id)
}
