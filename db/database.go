package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sidrapp/sidr-be/db/dao"
	"github.com/sidrapp/sidr-be/model"

	_ "github.com/go-sql-driver/mysql"
)

type Database interface {
	UserDatabase
	CharityDatabase
	PostDatabase
	EngagementDatabase
	SocialDatabase
	MessageDatabase
	DonationDatabase
	ReportDatabase
	GetSQLDB() *sql.DB
	Close() error
}

type UserDatabase interface {
	CreateUser(ctx context.Context, user *model.User) error
	// GetUser returns nil when the user has no profile.
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserProfile(ctx context.Context, id string) (*model.UserProfile, error)
	GetUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, id string, patch *dao.UserPatch) (found bool, err error)
	DeleteUser(ctx context.Context, id string) (found bool, err error)
}

type CharityPagesQuery struct {
	OwnerId  string
	ViewerId string
}

type CharityDatabase interface {
	CreateCharityPage(ctx context.Context, page *model.CharityPage) error
	GetCharityPage(ctx context.Context, id string) (*model.CharityPage, error)
	GetCharityPageWithFollowStatus(ctx context.Context, id string, viewerId string) (*model.CharityPageWithFollowStatus, error)
	// GetCharityPages lists every page, or only OwnerId's when set.
	GetCharityPages(ctx context.Context, query *CharityPagesQuery) ([]*model.CharityPageWithFollowStatus, error)
	UpdateCharityPage(ctx context.Context, id string, patch *dao.CharityPagePatch) (found bool, err error)
	DeleteCharityPage(ctx context.Context, id string) (found bool, err error)
}

type CreatePost struct {
	Id          string
	Author      model.Author
	Title       string
	Content     string
	ImagePath   *string
	IsAnonymous bool
}

var (
	ErrInvalidAuthor     = errors.New("a post needs exactly one author")
	ErrAnonymousPagePost = errors.New("only user posts can be anonymous")
)

func (cp *CreatePost) Validate() error {
	if !cp.Author.Type.Valid() || cp.Author.Id == "" {
		return ErrInvalidAuthor
	}
	if cp.IsAnonymous && cp.Author.Type != model.AuthorTypeUser {
		return ErrAnonymousPagePost
	}
	return nil
}

type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) error
	GetPostById(ctx context.Context, id string) (*model.Post, error)
	GetPostView(ctx context.Context, id string, viewerId string) (*model.PostView, error)
	GetPosts(ctx context.Context, query *PostsListQuery) ([]*model.PostView, error)
	UpdatePost(ctx context.Context, id string, patch *dao.PostPatch) (found bool, err error)
	// DeletePost removes the post with its comments, likes and reports.
	DeletePost(ctx context.Context, id string) (found bool, err error)
}

type CreateLike struct {
	Id     string
	PostId string
	UserId string
	Emoji  string
}

type CreateComment struct {
	Id      string
	PostId  string
	UserId  string
	Content string
}

type EngagementDatabase interface {
	AddLike(ctx context.Context, req *CreateLike) error
	RemoveLike(ctx context.Context, postId string, userId string) (removed int64, err error)
	GetLikes(ctx context.Context, postId string) ([]*model.Like, error)
	AddComment(ctx context.Context, req *CreateComment) error
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	// GetComments is oldest first.
	GetComments(ctx context.Context, postId string) ([]*model.Comment, error)
	RemoveComment(ctx context.Context, id string) (found bool, err error)
}

type FollowResult string

const (
	FollowResultFollowed         FollowResult = "followed"
	FollowResultAlreadyFollowing FollowResult = "already_following"
	FollowResultUnfollowed       FollowResult = "unfollowed"
	FollowResultNotFollowing     FollowResult = "not_following"
)

type SocialDatabase interface {
	Follow(ctx context.Context, followerId string, followingId string) (FollowResult, error)
	Unfollow(ctx context.Context, followerId string, followingId string) (FollowResult, error)
	GetFollowers(ctx context.Context, userId string) ([]*model.User, error)
	GetFollowings(ctx context.Context, userId string) ([]*model.User, error)
	FollowCharityPage(ctx context.Context, userId string, pageId string) (FollowResult, error)
	UnfollowCharityPage(ctx context.Context, userId string, pageId string) (FollowResult, error)
	GetCharityPageFollowers(ctx context.Context, pageId string) ([]*model.User, error)
	IsFollowingCharityPage(ctx context.Context, userId string, pageId string) (bool, error)
}

type MessageDatabase interface {
	CreateMessage(ctx context.Context, msg *model.Message) error
	// GetDirectThread returns messages between a and b in both directions, newest first.
	GetDirectThread(ctx context.Context, a string, b string) ([]*model.Message, error)
	// GetCharityPageChannel returns every message addressed to the page, newest first.
	GetCharityPageChannel(ctx context.Context, pageId string) ([]*model.Message, error)
	DeleteMessage(ctx context.Context, id string, senderId string) (found bool, err error)
	DeleteThread(ctx context.Context, a string, b string) (removed int64, err error)
	GetLatestDirectMessages(ctx context.Context, userId string) ([]*model.ConversationSummary, error)
	// GetCharityPageConversations has one row per followed or owned page;
	// the message columns are nil for pages without messages.
	GetCharityPageConversations(ctx context.Context, userId string) ([]*model.ConversationSummary, error)
}

type DonationDatabase interface {
	CreateDonation(ctx context.Context, donation *model.Donation) error
	GetDonation(ctx context.Context, id string) (*model.Donation, error)
	GetDonationsForCharityPage(ctx context.Context, pageId string) ([]*model.DonationWithDonor, error)
	GetDonationsForUser(ctx context.Context, userId string) ([]*model.DonationWithCharityPage, error)
}

type CreateReport struct {
	Id              string
	ReportingUserId string
	PostId          string
	Reason          string
}

type ReportsQuery struct {
	Status model.ReportStatus
	PostId string
	UserId string
}

type ReportDatabase interface {
	// CreateReport returns nil when the post does not exist.
	CreateReport(ctx context.Context, req *CreateReport) (*model.Report, error)
	GetReports(ctx context.Context, query *ReportsQuery) ([]*model.Report, error)
	ResolveReport(ctx context.Context, id string) (found bool, err error)
}
