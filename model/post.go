package model

import (
	"time"

	"github.com/sidrapp/sidr-be/util"
)

type AuthorType string

const (
	AuthorTypeUser        AuthorType = "user"
	AuthorTypeCharityPage AuthorType = "charityPage"
)

func (at AuthorType) Valid() bool {
	return at == AuthorTypeUser || at == AuthorTypeCharityPage
}

// Author identifies who wrote a post. Exactly one kind is ever set.
type Author struct {
	Type AuthorType
	Id   string
}

func UserAuthor(id string) Author {
	return Author{Type: AuthorTypeUser, Id: id}
}

func CharityPageAuthor(id string) Author {
	return Author{Type: AuthorTypeCharityPage, Id: id}
}

// Post is a stored post row. Exactly one of UserId and CharityPageId is set.
type Post struct {
	Id            string    `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Content       string    `db:"content" json:"content"`
	ImagePath     *string   `db:"image_path" json:"imagePath"`
	UserId        *string   `db:"userId" json:"userId"`
	CharityPageId *string   `db:"charityPageId" json:"charityPageId"`
	IsAnonymous   bool      `db:"is_anonymous" json:"isAnonymous"`
	CreatedAt     time.Time `db:"createdAt" json:"createdAt"`
}

func (p *Post) Author() Author {
	if p.CharityPageId != nil {
		return CharityPageAuthor(*p.CharityPageId)
	}
	if p.UserId != nil {
		return UserAuthor(*p.UserId)
	}
	return Author{}
}

type PostSummary struct {
	Id           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	IsAnonymous  bool      `json:"isAnonymous"`
	ImagePath    *string   `json:"imagePath"`
	CreatedAt    time.Time `json:"createdAt"`
	Likes        int       `json:"likes"`
	CommentCount int       `json:"commentCount"`
	IsLiked      bool      `json:"isLiked"`
}

// Poster is the resolved author of a post. IsFollower is nil when there is no viewer.
type Poster struct {
	Id           string     `json:"id"`
	Name         string     `json:"name"`
	ProfileImage *string    `json:"profileImage"`
	Type         AuthorType `json:"type"`
	IsFollower   *bool      `json:"isFollower"`
}

type PostView struct {
	Post   *PostSummary `json:"post"`
	Poster *Poster      `json:"poster"`
}

// MakeDisplayableFor mutates the view. Anonymous posts keep their author only
// for the author themself and for admins.
func (pv *PostView) MakeDisplayableFor(user *User) *PostView {
	if !pv.Post.IsAnonymous || pv.Poster.Type != AuthorTypeUser {
		return pv
	}
	if user.CanModerate(pv.Poster.Id) {
		return pv
	}
	alias := util.GenerateAlias(pv.Post.Id)
	avatar := util.Avatar(alias)
	pv.Poster = &Poster{
		Name:         alias,
		ProfileImage: &avatar,
		Type:         AuthorTypeUser,
	}
	return pv
}

type PostDetail struct {
	*PostView
	Comments []*Comment `json:"comments"`
}

func (pd *PostDetail) MakeDisplayableFor(user *User) *PostDetail {
	pd.PostView = pd.PostView.MakeDisplayableFor(user)
	return pd
}

type Comment struct {
	Id               string    `db:"id" json:"id"`
	PostId           string    `db:"postId" json:"postId"`
	UserId           string    `db:"userId" json:"userId"`
	Content          string    `db:"content" json:"content"`
	UserName         string    `db:"name" json:"userName,omitempty"`
	UserProfileImage *string   `db:"profile_image" json:"userProfileImage,omitempty"`
	CreatedAt        time.Time `db:"createdAt" json:"createdAt"`
}

type Like struct {
	Id               string    `db:"id" json:"id"`
	PostId           string    `db:"postId" json:"postId"`
	UserId           string    `db:"userId" json:"userId"`
	Emoji            string    `db:"emoji" json:"emoji"`
	UserName         string    `db:"name" json:"userName"`
	UserProfileImage *string   `db:"profile_image" json:"userProfileImage"`
	CreatedAt        time.Time `db:"createdAt" json:"createdAt"`
}

// Page is one offset page of results.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}
