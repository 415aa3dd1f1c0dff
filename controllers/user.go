package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/db/dao"
	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/services"
	"github.com/sidrapp/sidr-be/util"
)

type UserController struct {
	db db.Database
}

type CreateUserReq struct {
	Name         string  `json:"name" binding:"required,max=255"`
	Email        string  `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone" binding:"omitempty,max=32"`
	ProfileImage *string `json:"profileImage" binding:"omitempty,max=512"`
}

// CreateProfile creates the users row for a verified identity. The id always
// comes from the token and the email defaults to the token's.
func (uc *UserController) CreateProfile(ctx context.Context, identity *services.Identity, req *CreateUserReq) (*model.User, *util.HTTPError) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = identity.Email
	}
	if email == "" {
		return nil, util.BuildValidationHTTPErr("email", "is required")
	}
	name := util.XSSSanitize(req.Name)
	if name == "" {
		return nil, util.BuildValidationHTTPErr("name", "is required")
	}
	user := &model.User{
		Id:           identity.UID,
		Name:         name,
		Email:        email,
		Phone:        req.Phone,
		ProfileImage: req.ProfileImage,
	}
	if err := uc.db.CreateUser(ctx, user); err != nil {
		if db.IsDupKeyErr(err) {
			return nil, util.ConflictHTTPErr(http.StatusConflict, "User already exists")
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return user, nil
}

func (uc *UserController) GetProfile(ctx context.Context, id string) (*model.UserProfile, *util.HTTPError) {
	profile, err := uc.db.GetUserProfile(ctx, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if profile == nil {
		return nil, util.NotFoundHTTPErr("User")
	}
	return profile, nil
}

func (uc *UserController) ListUsers(ctx context.Context) ([]*model.User, *util.HTTPError) {
	users, err := uc.db.GetUsers(ctx)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return users, nil
}

func (uc *UserController) UpdateMe(ctx context.Context, viewer *model.User, patch *dao.UserPatch) (*model.UserProfile, *util.HTTPError) {
	if patch.Name.Set && !patch.Name.Null {
		patch.Name.Value = util.XSSSanitize(patch.Name.Value)
		if patch.Name.Value == "" {
			return nil, util.BuildValidationHTTPErr("name", "is required")
		}
	}
	if patch.Email.Set && !patch.Email.Null {
		patch.Email.Value = strings.TrimSpace(patch.Email.Value)
		if httpErr := util.ValidateVar("email", patch.Email.Value, "required,email"); httpErr != nil {
			return nil, httpErr
		}
	}
	set, bad := patch.Columns()
	if bad != "" {
		return nil, util.BuildValidationHTTPErr(bad, "cannot be null")
	}
	if len(set) > 0 {
		found, err := uc.db.UpdateUser(ctx, viewer.Id, patch)
		if err != nil {
			if db.IsDupKeyErr(err) {
				return nil, util.ConflictHTTPErr(http.StatusConflict, "Email already in use")
			}
			return nil, util.BuildDbHTTPErr(err)
		}
		if !found {
			return nil, util.NotFoundHTTPErr("User")
		}
	}
	return uc.GetProfile(ctx, viewer.Id)
}

func (uc *UserController) DeleteMe(ctx context.Context, viewer *model.User) (*MessageRes, *util.HTTPError) {
	found, err := uc.db.DeleteUser(ctx, viewer.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if !found {
		return nil, util.NotFoundHTTPErr("User")
	}
	return &MessageRes{Message: "User deleted"}, nil
}
