package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sidrapp/sidr-be/app"
	"github.com/sidrapp/sidr-be/controllers"
	"github.com/sidrapp/sidr-be/middleware"
	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/util"
)

type feedRoutes struct {
	controller *controllers.PostController
}

// AddFeedRoutes registers the paged post listings. /posts is the viewer's
// timeline; /all-posts is public and only personalizes when a session exists.
func AddFeedRoutes(group *gin.RouterGroup, deps *Deps) {
	routes := feedRoutes{deps.Controllers.Posts}

	feeds := group.Group("", deps.auth(&middleware.AuthConfig{}))
	feeds.GET("/posts", util.HandlerWrapper(routes.getTimeline, &util.HandlerOpts{}))
	feeds.GET("/posts-me", util.HandlerWrapper(routes.getMyPosts, &util.HandlerOpts{}))
	feeds.GET("/users/:id/posts", util.HandlerWrapper(routes.getUserPosts, &util.HandlerOpts{}))
	feeds.GET("/charities/:id/posts", util.HandlerWrapper(routes.getCharityPagePosts, &util.HandlerOpts{}))

	public := group.Group("/all-posts", deps.auth(&middleware.AuthConfig{SessionNotRequired: true}))
	public.GET("", util.HandlerWrapper(routes.getAllPosts, &util.HandlerOpts{}))
}

func pageParams(c *gin.Context) app.PageParams {
	return app.ParsePageParams(c.Query("page"), c.Query("limit"))
}

func (fr *feedRoutes) getTimeline(c *gin.Context) (interface{}, *util.HTTPError) {
	return fr.controller.ListFeed(c, middleware.MustGetUser(c), &app.FeedRequest{
		PageParams:    pageParams(c),
		Search:        c.Query("search"),
		ExcludeViewer: true,
	})
}

func (fr *feedRoutes) getAllPosts(c *gin.Context) (interface{}, *util.HTTPError) {
	return fr.controller.ListFeed(c, middleware.GetUserMaybe(c), &app.FeedRequest{
		PageParams: pageParams(c),
		Search:     c.Query("search"),
	})
}

func (fr *feedRoutes) getMyPosts(c *gin.Context) (interface{}, *util.HTTPError) {
	viewer := middleware.MustGetUser(c)
	return fr.controller.ListByAuthor(c, viewer, model.UserAuthor(viewer.Id), pageParams(c))
}

func (fr *feedRoutes) getUserPosts(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return fr.controller.ListByAuthor(c, middleware.MustGetUser(c), model.UserAuthor(id), pageParams(c))
}

func (fr *feedRoutes) getCharityPagePosts(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return fr.controller.ListByAuthor(c, middleware.MustGetUser(c), model.CharityPageAuthor(id), pageParams(c))
}
