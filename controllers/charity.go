package controllers

import (
	"context"

	"github.com/google/uuid"
	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/db/dao"
	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/services"
	"github.com/sidrapp/sidr-be/util"
	"go.uber.org/zap"
)

type CharityController struct {
	db    db.Database
	media services.MediaStore
}

type CreateCharityPageReq struct {
	Name         string              `json:"name" binding:"required,max=255"`
	Location     string              `json:"location" binding:"required,max=255"`
	Description  string              `json:"description" binding:"required"`
	ProfileImage *string             `json:"profileImage" binding:"omitempty,max=512"`
	CoverImage   *string             `json:"coverImage" binding:"omitempty,max=512"`
	FrontImage   *string             `json:"frontImage" binding:"omitempty,max=512"`
	BackImage    *string             `json:"backImage" binding:"omitempty,max=512"`
	Status       model.CharityStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (cc *CharityController) checkImages(ctx context.Context, images map[string]*string) *util.HTTPError {
	for field, path := range images {
		if httpErr := checkMedia(ctx, cc.media, field, path); httpErr != nil {
			return httpErr
		}
	}
	return nil
}

func (cc *CharityController) CreateCharityPage(ctx context.Context, viewer *model.User, req *CreateCharityPageReq) (*model.CharityPage, *util.HTTPError) {
	page := &model.CharityPage{
		Id:           uuid.NewString(),
		UserId:       viewer.Id,
		Name:         util.XSSSanitize(req.Name),
		Location:     util.XSSSanitize(req.Location),
		Description:  util.XSSSanitize(req.Description),
		ProfileImage: req.ProfileImage,
		CoverImage:   req.CoverImage,
		FrontImage:   req.FrontImage,
		BackImage:    req.BackImage,
		Status:       req.Status,
	}
	if page.Status == "" {
		page.Status = model.CharityStatusActive
	}
	for _, text := range []struct{ field, value string }{
		{"name", page.Name},
		{"location", page.Location},
		{"description", page.Description},
	} {
		if text.value == "" {
			return nil, util.BuildValidationHTTPErr(text.field, "is required")
		}
	}
	if httpErr := cc.checkImages(ctx, map[string]*string{
		"profileImage": page.ProfileImage,
		"coverImage":   page.CoverImage,
		"frontImage":   page.FrontImage,
		"backImage":    page.BackImage,
	}); httpErr != nil {
		return nil, httpErr
	}
	if err := cc.db.CreateCharityPage(ctx, page); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	created, err := cc.db.GetCharityPage(ctx, page.Id)
	if err != nil {
		zap.L().Warn("could not re-read charity page after insert", zap.String("charityPageId", page.Id), zap.Error(err))
		return page, nil
	}
	if created == nil {
		zap.L().Warn("charity page missing after insert", zap.String("charityPageId", page.Id))
		return page, nil
	}
	return created, nil
}

func (cc *CharityController) GetCharityPage(ctx context.Context, viewer *model.User, id string) (*model.CharityPageWithFollowStatus, *util.HTTPError) {
	page, err := cc.db.GetCharityPageWithFollowStatus(ctx, id, viewerId(viewer))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if page == nil {
		return nil, util.NotFoundHTTPErr("Charity page")
	}
	return page, nil
}

// ListCharityPages lists every page, or only ownerId's pages when set.
func (cc *CharityController) ListCharityPages(ctx context.Context, viewer *model.User, ownerId string) ([]*model.CharityPageWithFollowStatus, *util.HTTPError) {
	if ownerId != "" {
		if httpErr := requireUser(ctx, cc.db, ownerId); httpErr != nil {
			return nil, httpErr
		}
	}
	pages, err := cc.db.GetCharityPages(ctx, &db.CharityPagesQuery{OwnerId: ownerId, ViewerId: viewerId(viewer)})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return pages, nil
}

// ownedPage loads the page for a mutation. Anyone but the owner or an admin
// is told it does not exist.
func (cc *CharityController) ownedPage(ctx context.Context, viewer *model.User, id string) (*model.CharityPage, *util.HTTPError) {
	page, httpErr := requireCharityPage(ctx, cc.db, id)
	if httpErr != nil {
		return nil, httpErr
	}
	if !viewer.CanModerate(page.UserId) {
		return nil, util.NotFoundHTTPErr("Charity page")
	}
	return page, nil
}

func (cc *CharityController) UpdateCharityPage(ctx context.Context, viewer *model.User, id string, patch *dao.CharityPagePatch) (*model.CharityPageWithFollowStatus, *util.HTTPError) {
	if _, httpErr := cc.ownedPage(ctx, viewer, id); httpErr != nil {
		return nil, httpErr
	}
	// Required text may not be cleared, whether sent as null or as markup
	// that sanitizes to nothing.
	for _, text := range []struct {
		field string
		value *dao.Optional[string]
	}{
		{"name", &patch.Name},
		{"location", &patch.Location},
		{"description", &patch.Description},
	} {
		if !text.value.Set {
			continue
		}
		if !text.value.Null {
			text.value.Value = util.XSSSanitize(text.value.Value)
		}
		if text.value.Null || text.value.Value == "" {
			return nil, util.BuildValidationHTTPErr(text.field, "is required")
		}
	}
	if patch.Status.Set && !patch.Status.Null && !patch.Status.Value.Valid() {
		return nil, util.BuildValidationHTTPErr("status", "must be one of: active inactive")
	}
	for field, image := range map[string]dao.Optional[string]{
		"profileImage": patch.ProfileImage,
		"coverImage":   patch.CoverImage,
		"frontImage":   patch.FrontImage,
		"backImage":    patch.BackImage,
	} {
		if image.Set && !image.Null {
			if httpErr := checkMedia(ctx, cc.media, field, &image.Value); httpErr != nil {
				return nil, httpErr
			}
		}
	}
	if _, bad := patch.Columns(); bad != "" {
		return nil, util.BuildValidationHTTPErr(bad, "cannot be null")
	}
	found, err := cc.db.UpdateCharityPage(ctx, id, patch)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if !found {
		return nil, util.NotFoundHTTPErr("Charity page")
	}
	return cc.GetCharityPage(ctx, viewer, id)
}

func (cc *CharityController) DeleteCharityPage(ctx context.Context, viewer *model.User, id string) (*MessageRes, *util.HTTPError) {
	if _, httpErr := cc.ownedPage(ctx, viewer, id); httpErr != nil {
		return nil, httpErr
	}
	found, err := cc.db.DeleteCharityPage(ctx, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if !found {
		return nil, util.NotFoundHTTPErr("Charity page")
	}
	return &MessageRes{Message: "Charity page deleted"}, nil
}
