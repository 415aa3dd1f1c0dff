package model

import "time"

// User holds the local profile of an identity verified by firebase.
type User struct {
	Id           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        *string   `db:"phone" json:"phone"`
	ProfileImage *string   `db:"profile_image" json:"profileImage"`
	IsAdmin      bool      `db:"is_admin" json:"isAdmin"`
	CreatedAt    time.Time `db:"createdAt" json:"createdAt"`
}

// UserProfile is a User with its follow counts computed inline.
type UserProfile struct {
	User            `db:",inline"`
	FollowersCount  int `db:"followers_count" json:"followersCount"`
	FollowingsCount int `db:"followings_count" json:"followingsCount"`
}

// CanModerate reports whether the user may act on content owned by ownerId.
func (u *User) CanModerate(ownerId string) bool {
	return u != nil && (u.IsAdmin || u.Id == ownerId)
}
