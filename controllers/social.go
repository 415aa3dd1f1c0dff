package controllers

import (
	"context"
	"net/http"

	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/services"
	"github.com/sidrapp/sidr-be/util"
)

type SocialController struct {
	db     db.Database
	events services.EventPublisher
}

type FollowRes struct {
	Status  db.FollowResult `json:"status"`
	Message string          `json:"message"`
}

var followMessages = map[db.FollowResult]string{
	db.FollowResultFollowed:         "Followed",
	db.FollowResultAlreadyFollowing: "Already following",
	db.FollowResultUnfollowed:       "Unfollowed",
	db.FollowResultNotFollowing:     "Not following",
}

// followResponse is 201 only when a new edge was created.
func followResponse(result db.FollowResult) *util.StatusResponse {
	status := http.StatusOK
	if result == db.FollowResultFollowed {
		status = http.StatusCreated
	}
	return &util.StatusResponse{
		Status: status,
		Data:   &FollowRes{Status: result, Message: followMessages[result]},
	}
}

func (sc *SocialController) Follow(ctx context.Context, viewer *model.User, targetId string) (*util.StatusResponse, *util.HTTPError) {
	if targetId == viewer.Id {
		return nil, util.BuildValidationHTTPErr("id", "cannot follow yourself")
	}
	if httpErr := requireUser(ctx, sc.db, targetId); httpErr != nil {
		return nil, httpErr
	}
	result, err := sc.db.Follow(ctx, viewer.Id, targetId)
	if err != nil {
		if db.IsMissingReferenceErr(err) {
			return nil, util.NotFoundHTTPErr("User")
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	if result == db.FollowResultFollowed {
		sc.events.Publish(ctx, services.NewEvent(services.EventUserFollowed, viewer.Id, targetId, ""))
	}
	return followResponse(result), nil
}

func (sc *SocialController) Unfollow(ctx context.Context, viewer *model.User, targetId string) (*util.StatusResponse, *util.HTTPError) {
	if targetId == viewer.Id {
		return nil, util.BuildValidationHTTPErr("id", "cannot unfollow yourself")
	}
	result, err := sc.db.Unfollow(ctx, viewer.Id, targetId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return followResponse(result), nil
}

func (sc *SocialController) GetFollowers(ctx context.Context, userId string) ([]*model.User, *util.HTTPError) {
	if httpErr := requireUser(ctx, sc.db, userId); httpErr != nil {
		return nil, httpErr
	}
	users, err := sc.db.GetFollowers(ctx, userId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return users, nil
}

func (sc *SocialController) GetFollowings(ctx context.Context, userId string) ([]*model.User, *util.HTTPError) {
	if httpErr := requireUser(ctx, sc.db, userId); httpErr != nil {
		return nil, httpErr
	}
	users, err := sc.db.GetFollowings(ctx, userId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return users, nil
}

func (sc *SocialController) FollowCharityPage(ctx context.Context, viewer *model.User, pageId string) (*util.StatusResponse, *util.HTTPError) {
	if _, httpErr := requireCharityPage(ctx, sc.db, pageId); httpErr != nil {
		return nil, httpErr
	}
	result, err := sc.db.FollowCharityPage(ctx, viewer.Id, pageId)
	if err != nil {
		if db.IsMissingReferenceErr(err) {
			return nil, util.NotFoundHTTPErr("Charity page")
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	if result == db.FollowResultFollowed {
		sc.events.Publish(ctx, services.NewEvent(services.EventCharityFollowed, viewer.Id, pageId, ""))
	}
	return followResponse(result), nil
}

func (sc *SocialController) UnfollowCharityPage(ctx context.Context, viewer *model.User, pageId string) (*util.StatusResponse, *util.HTTPError) {
	result, err := sc.db.UnfollowCharityPage(ctx, viewer.Id, pageId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return followResponse(result), nil
}

func (sc *SocialController) GetCharityPageFollowers(ctx context.Context, pageId string) ([]*model.User, *util.HTTPError) {
	if _, httpErr := requireCharityPage(ctx, sc.db, pageId); httpErr != nil {
		return nil, httpErr
	}
	users, err := sc.db.GetCharityPageFollowers(ctx, pageId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return users, nil
}
