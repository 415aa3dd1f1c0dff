package app

import (
	"github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/util"
)

type PageParams struct {
	Page  int
	Limit int
}

// ParsePageParams never fails: missing, non-numeric or < 1 values fall back
// to page 1 and the default limit, and the limit is capped.
func ParsePageParams(page string, limit string) PageParams {
	pp := PageParams{
		Page:  util.ParsePositiveInt(page, 1),
		Limit: util.ParsePositiveInt(limit, db.DefaultPageLimit),
	}
	if pp.Limit > db.MaxPageLimit {
		pp.Limit = db.MaxPageLimit
	}
	return pp
}

func (pp PageParams) Offset() int {
	return (pp.Page - 1) * pp.Limit
}
