package mysqlstore

import (
	"context"
	"time"

	appDb "github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/model"
	"github.com/upper/db/v4"
)

type DonationDB struct {
	sess db.Session
}

func getDonationDB(sess db.Session) *DonationDB {
	return &DonationDB{sess}
}

var donationColumns = []interface{}{
	"d.id",
	"d.userId",
	"d.charityPageId",
	"d.amount",
	"d.payment_method",
	"d.createdAt",
}

func (ddb *DonationDB) CreateDonation(ctx context.Context, donation *model.Donation) error {
	_, err := ddb.sess.SQL().
		InsertInto("donations").
		Columns("id", "userId", "charityPageId", "amount", "payment_method").
		Values(donation.Id, donation.UserId, donation.CharityPageId, donation.Amount, donation.PaymentMethod).
		ExecContext(ctx)
	return appDb.ClassifyErr(err)
}

func (ddb *DonationDB) GetDonation(ctx context.Context, id string) (*model.Donation, error) {
	var donation model.Donation
	if err := ddb.sess.SQL().
		Select(donationColumns...).
		From("donations AS d").
		Where("d.id = ?", id).
		IteratorContext(ctx).
		One(&donation); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &donation, nil
}

type flattenedDonationWithDonor struct {
	model.Donation `db:",inline"`

	DonorName         string    `db:"donor_name"`
	DonorEmail        string    `db:"donor_email"`
	DonorProfileImage *string   `db:"donor_profile_image"`
	DonorCreatedAt    time.Time `db:"donor_created_at"`
}

func (ddb *DonationDB) GetDonationsForCharityPage(ctx context.Context, pageId string) ([]*model.DonationWithDonor, error) {
	var flattened []flattenedDonationWithDonor
	if err := ddb.sess.SQL().
		Select(append(donationColumns,
			"u.name AS donor_name",
			"u.email AS donor_email",
			"u.profile_image AS donor_profile_image",
			"u.createdAt AS donor_created_at",
		)...).
		From("donations AS d").
		Join("users AS u").On("u.id = d.userId").
		Where("d.charityPageId = ?", pageId).
		OrderBy("d.createdAt DESC", "d.id").
		IteratorContext(ctx).
		All(&flattened); err != nil {
		return nil, err
	}
	donations := make([]*model.DonationWithDonor, len(flattened))
	for i := range flattened {
		row := &flattened[i]
		donations[i] = &model.DonationWithDonor{
			Donation: &row.Donation,
			Donor: &model.User{
				Id:           row.UserId,
				Name:         row.DonorName,
				Email:        row.DonorEmail,
				ProfileImage: row.DonorProfileImage,
				CreatedAt:    row.DonorCreatedAt,
			},
		}
	}
	return donations, nil
}

type flattenedDonationWithCharityPage struct {
	model.Donation `db:",inline"`

	PageName         string              `db:"page_name"`
	PageLocation     string              `db:"page_location"`
	PageProfileImage *string             `db:"page_profile_image"`
	PageOwnerId      string              `db:"page_owner_id"`
	PageStatus       model.CharityStatus `db:"page_status"`
}

func (ddb *DonationDB) GetDonationsForUser(ctx context.Context, userId string) ([]*model.DonationWithCharityPage, error) {
	var flattened []flattenedDonationWithCharityPage
	if err := ddb.sess.SQL().
		Select(append(donationColumns,
			"cp.name AS page_name",
			"cp.location AS page_location",
			"cp.profile_image AS page_profile_image",
			"cp.userId AS page_owner_id",
			"cp.status AS page_status",
		)...).
		From("donations AS d").
		Join("charity_pages AS cp").On("cp.id = d.charityPageId").
		Where("d.userId = ?", userId).
		OrderBy("d.createdAt DESC", "d.id").
		IteratorContext(ctx).
		All(&flattened); err != nil {
		return nil, err
	}
	donations := make([]*model.DonationWithCharityPage, len(flattened))
	for i := range flattened {
		row := &flattened[i]
		donations[i] = &model.DonationWithCharityPage{
			Donation: &row.Donation,
			CharityPage: &model.CharityPage{
				Id:           row.CharityPageId,
				UserId:       row.PageOwnerId,
				Name:         row.PageName,
				Location:     row.PageLocation,
				ProfileImage: row.PageProfileImage,
				Status:       row.PageStatus,
			},
		}
	}
	return donations, nil
}
