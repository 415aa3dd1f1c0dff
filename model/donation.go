package model

import "time"

// Donation records a claimed donation. No payment is verified.
type Donation struct {
	Id            string    `db:"id" json:"id"`
	UserId        string    `db:"userId" json:"userId"`
	CharityPageId string    `db:"charityPageId" json:"charityPageId"`
	Amount        float64   `db:"amount" json:"amount"`
	PaymentMethod string    `db:"payment_method" json:"paymentMethod"`
	CreatedAt     time.Time `db:"createdAt" json:"createdAt"`
}

type DonationWithDonor struct {
	*Donation
	Donor *User `json:"user"`
}

type DonationWithCharityPage struct {
	*Donation
	CharityPage *CharityPage `json:"charityPage"`
}
