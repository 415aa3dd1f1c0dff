package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidrapp/sidr-be/controllers"
	"github.com/sidrapp/sidr-be/middleware"
	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/util"
)

type messageRoutes struct {
	controller *controllers.MessageController
}

func AddMessageRoutes(group *gin.RouterGroup, deps *Deps) {
	routes := messageRoutes{deps.Controllers.Messages}
	messaging := group.Group("", deps.auth(&middleware.AuthConfig{}))
	messaging.POST("/messages", deps.limit("messages"), util.HandlerWrapper(routes.sendMessage, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))
	messaging.GET("/messages/:id", util.HandlerWrapper(routes.getThread, &util.HandlerOpts{}))
	messaging.DELETE("/messages/:id", util.HandlerWrapper(routes.deleteMessage, &util.HandlerOpts{}))
	messaging.DELETE("/threads/:id", util.HandlerWrapper(routes.deleteThread, &util.HandlerOpts{}))
	messaging.GET("/conversations", util.HandlerWrapper(routes.getConversations, &util.HandlerOpts{}))
}

func (mr *messageRoutes) sendMessage(c *gin.Context) (interface{}, *util.HTTPError) {
	var req controllers.SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	return mr.controller.SendMessage(c, middleware.MustGetUser(c), &req)
}

// getThread reads the counterpart id from the path; ?type=charity_page
// switches to the page channel.
func (mr *messageRoutes) getThread(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	counterpartType := model.ReceiverType(c.DefaultQuery("type", string(model.ReceiverTypeUser)))
	return mr.controller.GetThread(c, middleware.MustGetUser(c), id, counterpartType)
}

func (mr *messageRoutes) deleteMessage(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return mr.controller.DeleteMessage(c, middleware.MustGetUser(c), id)
}

func (mr *messageRoutes) deleteThread(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return mr.controller.DeleteThread(c, middleware.MustGetUser(c), id)
}

func (mr *messageRoutes) getConversations(c *gin.Context) (interface{}, *util.HTTPError) {
	return mr.controller.ListConversations(c, middleware.MustGetUser(c))
}
