package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sidrapp/sidr-be/controllers"
	"github.com/sidrapp/sidr-be/middleware"
	"github.com/sidrapp/sidr-be/util"
)

type socialRoutes struct {
	controller *controllers.SocialController
}

// AddSocialRoutes registers user and charity page follow edges.
func AddSocialRoutes(group *gin.RouterGroup, deps *Deps) {
	routes := socialRoutes{deps.Controllers.Social}

	users := group.Group("/users", deps.auth(&middleware.AuthConfig{}))
	users.POST("/:id/follow", deps.limit("follow"), util.HandlerWrapper(routes.follow, &util.HandlerOpts{}))
	users.DELETE("/:id/follow", deps.limit("follow"), util.HandlerWrapper(routes.unfollow, &util.HandlerOpts{}))
	users.GET("/:id/followers", util.HandlerWrapper(routes.getFollowers, &util.HandlerOpts{}))
	users.GET("/:id/followings", util.HandlerWrapper(routes.getFollowings, &util.HandlerOpts{}))

	pages := group.Group("/charities", deps.auth(&middleware.AuthConfig{}))
	pages.POST("/:id/follow", deps.limit("follow"), util.HandlerWrapper(routes.followCharityPage, &util.HandlerOpts{}))
	pages.DELETE("/:id/follow", deps.limit("follow"), util.HandlerWrapper(routes.unfollowCharityPage, &util.HandlerOpts{}))
	pages.GET("/:id/followers", util.HandlerWrapper(routes.getCharityPageFollowers, &util.HandlerOpts{}))
}

func (sr *socialRoutes) follow(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return sr.controller.Follow(c, middleware.MustGetUser(c), id)
}

func (sr *socialRoutes) unfollow(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return sr.controller.Unfollow(c, middleware.MustGetUser(c), id)
}

func (sr *socialRoutes) getFollowers(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return sr.controller.GetFollowers(c, id)
}

func (sr *socialRoutes) getFollowings(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return sr.controller.GetFollowings(c, id)
}

func (sr *socialRoutes) followCharityPage(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return sr.controller.FollowCharityPage(c, middleware.MustGetUser(c), id)
}

func (sr *socialRoutes) unfollowCharityPage(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return sr.controller.UnfollowCharityPage(c, middleware.MustGetUser(c), id)
}

func (sr *socialRoutes) getCharityPageFollowers(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return sr.controller.GetCharityPageFollowers(c, id)
}
