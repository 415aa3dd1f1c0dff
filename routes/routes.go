package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sidrapp/sidr-be/controllers"
	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/middleware"
	"github.com/sidrapp/sidr-be/services"
	"github.com/sidrapp/sidr-be/util"
)

type Deps struct {
	DB          db.Database
	Verifier    services.Verifier
	Controllers *controllers.Controllers
	// Limiter is optional. Write routes are unthrottled without one.
	Limiter middleware.Limiter
}

func (d *Deps) auth(config *middleware.AuthConfig) gin.HandlerFunc {
	return middleware.GenAuth(d.DB, d.Verifier, config)
}

func (d *Deps) limit(scope string) gin.HandlerFunc {
	return middleware.RateLimit(d.Limiter, scope)
}

func AddRoutes(group *gin.RouterGroup, deps *Deps) {
	AddHealthCheckRoutes(group)
	AddUserRoutes(group, deps)
	AddSocialRoutes(group, deps)
	AddFeedRoutes(group, deps)
	AddPostRoutes(group, deps)
	AddCharityRoutes(group, deps)
	AddMessageRoutes(group, deps)
	AddDonationRoutes(group, deps)
	AddReportRoutes(group, deps)
}

func parseIdParam(c *gin.Context, name string) (string, *util.HTTPError) {
	return util.ParseId(c.Param(name))
}
