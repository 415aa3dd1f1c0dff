package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/services"
	"github.com/sidrapp/sidr-be/util"
)

const (
	IDENTITY_KEY = "identity"
	USER_KEY     = "user"
)

type AuthConfig struct {
	// SessionNotRequired lets anonymous requests through without an identity.
	SessionNotRequired bool
	// ProfileNotRequired lets a verified identity through before it has a users row.
	ProfileNotRequired bool
}

func unauthorized(c *gin.Context, message string) {
	util.HandleHTTPErrorRes(c, &util.HTTPError{Status: http.StatusUnauthorized, Message: message})
}

func GenAuth(userDB db.UserDatabase, verifier services.Verifier, config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader := c.GetHeader("Authorization")
		if authorizationHeader == "" {
			if config.SessionNotRequired {
				return
			}
			unauthorized(c, "no authorization header")
			return
		}
		idToken, ok := strings.CutPrefix(authorizationHeader, "Bearer ")
		if !ok || len(idToken) == 0 {
			if config.SessionNotRequired {
				return
			}
			unauthorized(c, "incorrectly formatted authorization header")
			return
		}

		identity, err := verifier.VerifyIDToken(c, idToken)
		if err != nil {
			if config.SessionNotRequired {
				return
			}
			unauthorized(c, "invalid token")
			return
		}
		c.Set(IDENTITY_KEY, identity)

		user, err := userDB.GetUser(c, identity.UID)
		if err != nil {
			util.HandleHTTPErrorRes(c, util.BuildDbHTTPErr(err))
			return
		}
		if user == nil {
			if config.ProfileNotRequired || config.SessionNotRequired {
				return
			}
			util.HandleHTTPErrorRes(c, util.ForbiddenHTTPErr("must have a user profile"))
			return
		}
		c.Set(USER_KEY, user)
	}
}

// RequireAccount must run after GenAuth on routes that need a profile even
// though the group allows anonymous access.
func RequireAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserMaybe(c) == nil {
			util.HandleHTTPErrorRes(c, util.ForbiddenHTTPErr("must have a user profile"))
		}
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUserMaybe(c)
		if user == nil || !user.IsAdmin {
			util.HandleHTTPErrorRes(c, util.ForbiddenHTTPErr("admin only"))
		}
	}
}

func GetIdentity(c *gin.Context) *services.Identity {
	identity, ok := c.Get(IDENTITY_KEY)
	if !ok {
		return nil
	}
	return identity.(*services.Identity)
}

func GetUserMaybe(c *gin.Context) *model.User {
	user, ok := c.Get(USER_KEY)
	if !ok {
		return nil
	}
	return user.(*model.User)
}

// MustGetUser panics outside of a GenAuth group that requires a profile.
func MustGetUser(c *gin.Context) *model.User {
	return c.MustGet(USER_KEY).(*model.User)
}

// GetUserIdMaybe is "" for anonymous viewers.
func GetUserIdMaybe(c *gin.Context) string {
	if user := GetUserMaybe(c); user != nil {
		return user.Id
	}
	return ""
}
