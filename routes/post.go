package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidrapp/sidr-be/controllers"
	"github.com/sidrapp/sidr-be/db/dao"
	"github.com/sidrapp/sidr-be/middleware"
	"github.com/sidrapp/sidr-be/util"
)

type postRoutes struct {
	posts      *controllers.PostController
	engagement *controllers.EngagementController
}

func AddPostRoutes(group *gin.RouterGroup, deps *Deps) {
	routes := postRoutes{deps.Controllers.Posts, deps.Controllers.Engagement}
	posts := group.Group("/posts", deps.auth(&middleware.AuthConfig{}))
	posts.POST("", deps.limit("posts"), util.HandlerWrapper(routes.createPost, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))
	posts.GET("/:id", util.HandlerWrapper(routes.getPostById, &util.HandlerOpts{}))
	posts.PUT("/:id", deps.limit("posts"), util.HandlerWrapper(routes.updatePost, &util.HandlerOpts{}))
	posts.DELETE("/:id", util.HandlerWrapper(routes.deletePost, &util.HandlerOpts{}))

	posts.GET("/:id/likes", util.HandlerWrapper(routes.getLikes, &util.HandlerOpts{}))
	posts.POST("/:id/likes", deps.limit("likes"), util.HandlerWrapper(routes.addLike, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))
	posts.DELETE("/:id/likes", deps.limit("likes"), util.HandlerWrapper(routes.removeLike, &util.HandlerOpts{}))

	posts.GET("/:id/comments", util.HandlerWrapper(routes.getComments, &util.HandlerOpts{}))
	posts.POST("/:id/comments", deps.limit("comments"), util.HandlerWrapper(routes.addComment, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))
	posts.DELETE("/comments/:commentId", util.HandlerWrapper(routes.removeComment, &util.HandlerOpts{}))
}

func (pr *postRoutes) createPost(c *gin.Context) (interface{}, *util.HTTPError) {
	var req controllers.CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	return pr.posts.CreatePost(c, middleware.MustGetUser(c), &req)
}

func (pr *postRoutes) getPostById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return pr.posts.GetPostDetail(c, middleware.MustGetUser(c), id)
}

func (pr *postRoutes) updatePost(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	var patch dao.PostPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	return pr.posts.UpdatePost(c, middleware.MustGetUser(c), id, &patch)
}

func (pr *postRoutes) deletePost(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return pr.posts.DeletePost(c, middleware.MustGetUser(c), id)
}

func (pr *postRoutes) getLikes(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return pr.engagement.GetLikes(c, id)
}

func (pr *postRoutes) addLike(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	var req controllers.AddLikeReq
	// the body is optional; an empty one likes with the default emoji
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, util.BuildJSONBindHTTPErr(err)
		}
	}
	return pr.engagement.AddLike(c, middleware.MustGetUser(c), id, &req)
}

func (pr *postRoutes) removeLike(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return pr.engagement.RemoveLike(c, middleware.MustGetUser(c), id)
}

func (pr *postRoutes) getComments(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return pr.engagement.GetComments(c, id)
}

func (pr *postRoutes) addComment(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	var req controllers.AddCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	return pr.engagement.AddComment(c, middleware.MustGetUser(c), id, &req)
}

func (pr *postRoutes) removeComment(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "commentId")
	if httpErr != nil {
		return nil, httpErr
	}
	return pr.engagement.RemoveComment(c, middleware.MustGetUser(c), id)
}
