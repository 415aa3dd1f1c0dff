package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidrapp/sidr-be/controllers"
	"github.com/sidrapp/sidr-be/db/dao"
	"github.com/sidrapp/sidr-be/middleware"
	"github.com/sidrapp/sidr-be/util"
)

type userRoutes struct {
	controller *controllers.UserController
}

func AddUserRoutes(group *gin.RouterGroup, deps *Deps) {
	routes := userRoutes{deps.Controllers.Users}

	signup := group.Group("/users", deps.auth(&middleware.AuthConfig{ProfileNotRequired: true}))
	signup.POST("", deps.limit("users"), util.HandlerWrapper(routes.createUser, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))

	users := group.Group("/users", deps.auth(&middleware.AuthConfig{}))
	users.GET("", util.HandlerWrapper(routes.getUsers, &util.HandlerOpts{}))
	users.GET("/:id", util.HandlerWrapper(routes.getUserById, &util.HandlerOpts{}))
	users.PUT("/me", deps.limit("users"), util.HandlerWrapper(routes.updateMe, &util.HandlerOpts{}))
	users.DELETE("/me", util.HandlerWrapper(routes.deleteMe, &util.HandlerOpts{}))
}

func (ur *userRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req controllers.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	return ur.controller.CreateProfile(c, middleware.GetIdentity(c), &req)
}

func (ur *userRoutes) getUsers(c *gin.Context) (interface{}, *util.HTTPError) {
	return ur.controller.ListUsers(c)
}

func (ur *userRoutes) getUserById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return ur.controller.GetProfile(c, id)
}

func (ur *userRoutes) updateMe(c *gin.Context) (interface{}, *util.HTTPError) {
	var patch dao.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	return ur.controller.UpdateMe(c, middleware.MustGetUser(c), &patch)
}

func (ur *userRoutes) deleteMe(c *gin.Context) (interface{}, *util.HTTPError) {
	return ur.controller.DeleteMe(c, middleware.MustGetUser(c))
}
