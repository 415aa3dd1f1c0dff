package controllers

import (
	"context"

	"github.com/go-sql-driver/mysql"
	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/db/dao"
	"github.com/sidrapp/sidr-be/model"
	"github.com/sidrapp/sidr-be/services"
)

var (
	dupErr     = db.ClassifyErr(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'likes.uniq_post_user'"})
	missingErr = db.ClassifyErr(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})
)

// fakeDB overrides the store methods controller tests exercise. Calling
// anything else panics on the nil embedded interface.
type fakeDB struct {
	db.Database
	users     map[string]*model.User
	pages     map[string]*model.CharityPage
	posts     map[string]*model.Post
	comments  map[string]*model.Comment
	likes     map[string]bool
	follows   map[string]bool
	pageFans  map[string]bool
	messages  []*model.Message
	donations []*model.Donation
	reports   []*db.CreateReport
	addLike   error
	lastQuery *db.PostsListQuery
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:    map[string]*model.User{},
		pages:    map[string]*model.CharityPage{},
		posts:    map[string]*model.Post{},
		comments: map[string]*model.Comment{},
		likes:    map[string]bool{},
		follows:  map[string]bool{},
		pageFans: map[string]bool{},
	}
}

func (f *fakeDB) GetUser(_ context.Context, id string) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeDB) GetUserProfile(_ context.Context, id string) (*model.UserProfile, error) {
	user := f.users[id]
	if user == nil {
		return nil, nil
	}
	return &model.UserProfile{User: *user}, nil
}

func (f *fakeDB) UpdateUser(_ context.Context, id string, patch *dao.UserPatch) (bool, error) {
	user := f.users[id]
	if user == nil {
		return false, nil
	}
	if patch.Email.Set {
		user.Email = patch.Email.Value
	}
	if patch.Name.Set {
		user.Name = patch.Name.Value
	}
	return true, nil
}

func (f *fakeDB) CreateCharityPage(_ context.Context, page *model.CharityPage) error {
	f.pages[page.Id] = page
	return nil
}

func (f *fakeDB) GetCharityPage(_ context.Context, id string) (*model.CharityPage, error) {
	return f.pages[id], nil
}

func (f *fakeDB) GetPostById(_ context.Context, id string) (*model.Post, error) {
	return f.posts[id], nil
}

func (f *fakeDB) CreatePost(_ context.Context, req *db.CreatePost) error {
	if err := req.Validate(); err != nil {
		return err
	}
	post := &model.Post{Id: req.Id, Title: req.Title, Content: req.Content, IsAnonymous: req.IsAnonymous}
	if req.Author.Type == model.AuthorTypeUser {
		post.UserId = &req.Author.Id
	} else {
		post.CharityPageId = &req.Author.Id
	}
	f.posts[req.Id] = post
	return nil
}

func (f *fakeDB) GetPostView(_ context.Context, id string, _ string) (*model.PostView, error) {
	post := f.posts[id]
	if post == nil {
		return nil, nil
	}
	author := post.Author()
	return &model.PostView{
		Post:   &model.PostSummary{Id: post.Id, Title: post.Title, Content: post.Content, IsAnonymous: post.IsAnonymous},
		Poster: &model.Poster{Id: author.Id, Type: author.Type},
	}, nil
}

// GetPosts applies the author and anonymity filters the store compiles into
// SQL.
func (f *fakeDB) GetPosts(ctx context.Context, query *db.PostsListQuery) ([]*model.PostView, error) {
	f.lastQuery = query
	views := []*model.PostView{}
	for id, post := range f.posts {
		author := post.Author()
		if query.Author != nil && author != *query.Author {
			continue
		}
		if query.Author != nil && author.Type == model.AuthorTypeUser && post.IsAnonymous && !query.IncludeAnonymous {
			continue
		}
		view, _ := f.GetPostView(ctx, id, query.ViewerId)
		views = append(views, view)
	}
	return views, nil
}

func (f *fakeDB) CreateReport(_ context.Context, req *db.CreateReport) (*model.Report, error) {
	post := f.posts[req.PostId]
	if post == nil {
		return nil, nil
	}
	f.reports = append(f.reports, req)
	owner := post.Author()
	return &model.Report{
		Id:              req.Id,
		ReportingUserId: req.ReportingUserId,
		PostId:          req.PostId,
		UserId:          owner.Id,
		Reason:          req.Reason,
		Status:          model.ReportStatusPending,
	}, nil
}

func (f *fakeDB) GetComments(_ context.Context, postId string) ([]*model.Comment, error) {
	var comments []*model.Comment
	for _, comment := range f.comments {
		if comment.PostId == postId {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func (f *fakeDB) DeletePost(_ context.Context, id string) (bool, error) {
	_, ok := f.posts[id]
	delete(f.posts, id)
	return ok, nil
}

func (f *fakeDB) AddLike(_ context.Context, req *db.CreateLike) error {
	if f.addLike != nil {
		return f.addLike
	}
	key := req.PostId + "|" + req.UserId
	if f.likes[key] {
		return dupErr
	}
	f.likes[key] = true
	return nil
}

func (f *fakeDB) RemoveLike(_ context.Context, postId string, userId string) (int64, error) {
	key := postId + "|" + userId
	if !f.likes[key] {
		return 0, nil
	}
	delete(f.likes, key)
	return 1, nil
}

func (f *fakeDB) AddComment(_ context.Context, req *db.CreateComment) error {
	if _, ok := f.posts[req.PostId]; !ok {
		return missingErr
	}
	f.comments[req.Id] = &model.Comment{Id: req.Id, PostId: req.PostId, UserId: req.UserId, Content: req.Content}
	return nil
}

func (f *fakeDB) GetComment(_ context.Context, id string) (*model.Comment, error) {
	return f.comments[id], nil
}

func (f *fakeDB) RemoveComment(_ context.Context, id string) (bool, error) {
	_, ok := f.comments[id]
	delete(f.comments, id)
	return ok, nil
}

func (f *fakeDB) Follow(_ context.Context, from string, to string) (db.FollowResult, error) {
	if f.follows[from+"|"+to] {
		return db.FollowResultAlreadyFollowing, nil
	}
	f.follows[from+"|"+to] = true
	return db.FollowResultFollowed, nil
}

func (f *fakeDB) Unfollow(_ context.Context, from string, to string) (db.FollowResult, error) {
	if !f.follows[from+"|"+to] {
		return db.FollowResultNotFollowing, nil
	}
	delete(f.follows, from+"|"+to)
	return db.FollowResultUnfollowed, nil
}

func (f *fakeDB) IsFollowingCharityPage(_ context.Context, userId string, pageId string) (bool, error) {
	return f.pageFans[userId+"|"+pageId], nil
}

func (f *fakeDB) CreateMessage(_ context.Context, msg *model.Message) error {
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeDB) CreateDonation(_ context.Context, donation *model.Donation) error {
	f.donations = append(f.donations, donation)
	return nil
}

func (f *fakeDB) GetDonation(_ context.Context, id string) (*model.Donation, error) {
	for _, donation := range f.donations {
		if donation.Id == id {
			return donation, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) GetDonationsForUser(_ context.Context, userId string) ([]*model.DonationWithCharityPage, error) {
	donations := []*model.DonationWithCharityPage{}
	for _, donation := range f.donations {
		if donation.UserId == userId {
			donations = append(donations, &model.DonationWithCharityPage{Donation: donation, CharityPage: f.pages[donation.CharityPageId]})
		}
	}
	return donations, nil
}

func (f *fakeDB) GetDonationsForCharityPage(_ context.Context, pageId string) ([]*model.DonationWithDonor, error) {
	donations := []*model.DonationWithDonor{}
	for _, donation := range f.donations {
		if donation.CharityPageId == pageId {
			donations = append(donations, &model.DonationWithDonor{Donation: donation, Donor: f.users[donation.UserId]})
		}
	}
	return donations, nil
}

type recordingPublisher struct {
	events []*services.Event
}

func (rp *recordingPublisher) Publish(_ context.Context, event *services.Event) {
	rp.events = append(rp.events, event)
}

func (rp *recordingPublisher) Close() error { return nil }

func strPtr(s string) *string {
	return &s
}
