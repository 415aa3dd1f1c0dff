package controllers

import (
	"context"

	"github.com/google/uuid"
	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/services"
	"github.com/sidrapp/sidr-be/util"
	"go.uber.org/zap"
)

type DonationController struct {
	db     db.Database
	events services.EventPublisher
}

type CreateDonationReq struct {
	CharityPageId string  `json:"charityPageId" binding:"required,max=36"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required,max=64"`
}

// CreateDonation records a donation claim. The page must be active and
// followed by the donor.
func (dc *DonationController) CreateDonation(ctx context.Context, viewer *model.User, req *CreateDonationReq) (*model.Donation, *util.HTTPError) {
	page, httpErr := requireCharityPage(ctx, dc.db, req.CharityPageId)
	if httpErr != nil {
		return nil, httpErr
	}
	if !page.IsActive() {
		return nil, util.BuildValidationHTTPErr("charityPageId", "charity page is inactive")
	}
	following, err := dc.db.IsFollowingCharityPage(ctx, viewer.Id, page.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if !following {
		return nil, util.ForbiddenHTTPErr("must follow the charity page to donate")
	}

	donation := &model.Donation{
		Id:            uuid.NewString(),
		UserId:        viewer.Id,
		CharityPageId: page.Id,
		Amount:        req.Amount,
		PaymentMethod: util.XSSSanitize(req.PaymentMethod),
	}
	if err := dc.db.CreateDonation(ctx, donation); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	dc.events.Publish(ctx, services.NewEvent(services.EventDonationCreated, viewer.Id, page.Id, donation.Id))

	created, err := dc.db.GetDonation(ctx, donation.Id)
	if err != nil {
		zap.L().Warn("could not re-read donation after insert", zap.String("donationId", donation.Id), zap.Error(err))
		return donation, nil
	}
	if created == nil {
		zap.L().Warn("donation missing after insert", zap.String("donationId", donation.Id))
		return donation, nil
	}
	return created, nil
}

// GetDonation is visible to the donor, the page owner and admins.
func (dc *DonationController) GetDonation(ctx context.Context, viewer *model.User, id string) (*model.Donation, *util.HTTPError) {
	donation, err := dc.db.GetDonation(ctx, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if donation == nil {
		return nil, util.NotFoundHTTPErr("Donation")
	}
	if viewer.CanModerate(donation.UserId) {
		return donation, nil
	}
	page, err := dc.db.GetCharityPage(ctx, donation.CharityPageId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if page == nil || page.UserId != viewer.Id {
		return nil, util.NotFoundHTTPErr("Donation")
	}
	return donation, nil
}

// ListForCharityPage is limited to the page owner and admins.
func (dc *DonationController) ListForCharityPage(ctx context.Context, viewer *model.User, pageId string) ([]*model.DonationWithDonor, *util.HTTPError) {
	page, httpErr := requireCharityPage(ctx, dc.db, pageId)
	if httpErr != nil {
		return nil, httpErr
	}
	if !viewer.CanModerate(page.UserId) {
		return nil, util.ForbiddenHTTPErr("only the page owner can list its donations")
	}
	donations, err := dc.db.GetDonationsForCharityPage(ctx, pageId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return donations, nil
}

// ListForUser is limited to the donor and admins.
func (dc *DonationController) ListForUser(ctx context.Context, viewer *model.User, userId string) ([]*model.DonationWithCharityPage, *util.HTTPError) {
	if !viewer.CanModerate(userId) {
		return nil, util.ForbiddenHTTPErr("cannot list another user's donations")
	}
	if httpErr := requireUser(ctx, dc.db, userId); httpErr != nil {
		return nil, httpErr
	}
	donations, err := dc.db.GetDonationsForUser(ctx, userId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return donations, nil
}
