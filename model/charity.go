package model

import "time"

type CharityStatus string

const (
	CharityStatusActive   CharityStatus = "active"
	CharityStatusInactive CharityStatus = "inactive"
)

func (cs CharityStatus) Valid() bool {
	return cs == CharityStatusActive || cs == CharityStatusInactive
}

// CharityPage is owned by exactly one user and followed by many.
type CharityPage struct {
	Id           string        `db:"id" json:"id"`
	UserId       string        `db:"userId" json:"userId"`
	Name         string        `db:"name" json:"name"`
	Location     string        `db:"location" json:"location"`
	Description  string        `db:"description" json:"description"`
	ProfileImage *string       `db:"profile_image" json:"profileImage"`
	CoverImage   *string       `db:"cover_image" json:"coverImage"`
	FrontImage   *string       `db:"front_image" json:"frontImage"`
	BackImage    *string       `db:"back_image" json:"backImage"`
	Status       CharityStatus `db:"status" json:"status"`
	CreatedAt    time.Time     `db:"createdAt" json:"createdAt"`
}

func (cp *CharityPage) IsActive() bool {
	return cp.Status == CharityStatusActive
}

// CharityPageWithFollowStatus annotates a page with the viewer's follow edge.
type CharityPageWithFollowStatus struct {
	CharityPage    `db:",inline"`
	FollowersCount int  `db:"followers_count" json:"followersCount"`
	IsFollowing    bool `db:"is_following" json:"isFollowing"`
}
