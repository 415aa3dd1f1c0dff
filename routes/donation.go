package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidrapp/sidr-be/controllers"
	"github.com/sidrapp/sidr-be/middleware"
	"github.com/sidrapp/sidr-be/util"
)

type donationRoutes struct {
	controller *controllers.DonationController
}

func AddDonationRoutes(group *gin.RouterGroup, deps *Deps) {
	routes := donationRoutes{deps.Controllers.Donations}
	donations := group.Group("", deps.auth(&middleware.AuthConfig{}))
	donations.POST("/donations", deps.limit("donations"), util.HandlerWrapper(routes.createDonation, &util.HandlerOpts{SuccessStatus: http.StatusCreated}))
	donations.GET("/donations/:id", util.HandlerWrapper(routes.getDonationById, &util.HandlerOpts{}))
	donations.GET("/charities/:id/donations", util.HandlerWrapper(routes.getCharityPageDonations, &util.HandlerOpts{}))
	donations.GET("/users/:id/donations", util.HandlerWrapper(routes.getUserDonations, &util.HandlerOpts{}))
}

func (dr *donationRoutes) createDonation(c *gin.Context) (interface{}, *util.HTTPError) {
	var req controllers.CreateDonationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	return dr.controller.CreateDonation(c, middleware.MustGetUser(c), &req)
}

func (dr *donationRoutes) getDonationById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return dr.controller.GetDonation(c, middleware.MustGetUser(c), id)
}

func (dr *donationRoutes) getCharityPageDonations(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return dr.controller.ListForCharityPage(c, middleware.MustGetUser(c), id)
}

func (dr *donationRoutes) getUserDonations(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := parseIdParam(c, "id")
	if httpErr != nil {
		return nil, httpErr
	}
	return dr.controller.ListForUser(c, middleware.MustGetUser(c), id)
}
