package model

import "time"

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusResolved ReportStatus = "resolved"
)

func (rs ReportStatus) Valid() bool {
	return rs == ReportStatusPending || rs == ReportStatusResolved
}

type Report struct {
	Id              string       `db:"id" json:"id"`
	ReportingUserId string       `db:"reporting_user_id" json:"reportingUserId"`
	PostId          string       `db:"postId" json:"postId"`
	UserId          string       `db:"userId" json:"userId"`
	Reason          string       `db:"reason" json:"reason"`
	Status          ReportStatus `db:"status" json:"status"`
	CreatedAt       time.Time    `db:"createdAt" json:"createdAt"`
}

// ReportReceipt is what the reporter sees. It omits the reported owner so
// filing a report cannot unmask an anonymous author.
type ReportReceipt struct {
	Id        string       `json:"id"`
	PostId    string       `json:"postId"`
	Reason    string       `json:"reason"`
	Status    ReportStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (r *Report) Receipt() *ReportReceipt {
	return &ReportReceipt{
		Id:        r.Id,
		PostId:    r.PostId,
		Reason:    r.Reason,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}
