package controllers

import (
	"context"
	"net/http"

	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/services"
	"github.com/sidrapp/sidr-be/util"
)

type Controllers struct {
	Users      *UserController
	Charities  *CharityController
	Posts      *PostController
	Engagement *EngagementController
	Social     *SocialController
	Messages   *MessageController
	Donations  *DonationController
	Reports    *ReportController
}

// New wires every controller over one database. media may be nil, in which
// case image paths are stored without checking the bucket.
func New(database db.Database, media services.MediaStore, events services.EventPublisher) *Controllers {
	if events == nil {
		events = services.NoopPublisher{}
	}
	return &Controllers{
		Users:      &UserController{db: database},
		Charities:  &CharityController{db: database, media: media},
		Posts:      &PostController{db: database, media: media},
		Engagement: &EngagementController{db: database, events: events},
		Social:     &SocialController{db: database, events: events},
		Messages:   &MessageController{db: database, events: events},
		Donations:  &DonationController{db: database, events: events},
		Reports:    &ReportController{db: database, events: events},
	}
}

func viewerId(viewer *model.User) string {
	if viewer == nil {
		return ""
	}
	return viewer.Id
}

// checkMedia rejects keys that are not in the bucket. Empty or nil paths pass.
func checkMedia(ctx context.Context, media services.MediaStore, field string, path *string) *util.HTTPError {
	if media == nil || path == nil || *path == "" {
		return nil
	}
	exists, err := media.Exists(ctx, *path)
	if err != nil {
		return &util.HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "could not verify uploaded media",
			Cause:   err,
		}
	}
	if !exists {
		return util.BuildValidationHTTPErr(field, "does not reference an uploaded file")
	}
	return nil
}

func requireUser(ctx context.Context, users db.UserDatabase, id string) *util.HTTPError {
	user, err := users.GetUser(ctx, id)
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}
	if user == nil {
		return util.NotFoundHTTPErr("User")
	}
	return nil
}

func requireCharityPage(ctx context.Context, pages db.CharityDatabase, id string) (*model.CharityPage, *util.HTTPError) {
	page, err := pages.GetCharityPage(ctx, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if page == nil {
		return nil, util.NotFoundHTTPErr("Charity page")
	}
	return page, nil
}

func requirePost(ctx context.Context, posts db.PostDatabase, id string) (*model.Post, *util.HTTPError) {
	post, err := posts.GetPostById(ctx, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, util.NotFoundHTTPErr("Post")
	}
	return post, nil
}

// sanitizedPtr sanitizes an optional text field. Blank becomes nil.
func sanitizedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := util.XSSSanitize(*s)
	if clean == "" {
		return nil
	}
	return &clean
}

type MessageRes struct {
	Message string `json:"message"`
}
