package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageParams(t *testing.T) {
	cases := []struct {
		page, limit string
		want        PageParams
	}{
		{"", "", PageParams{Page: 1, Limit: 10}},
		{"3", "25", PageParams{Page: 3, Limit: 25}},
		{"abc", "-4", PageParams{Page: 1, Limit: 10}},
		{"0", "0", PageParams{Page: 1, Limit: 10}},
		{"2", "5000", PageParams{Page: 2, Limit: 100}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParsePageParams(tc.page, tc.limit), "page=%q limit=%q", tc.page, tc.limit)
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, PageParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, PageParams{Page: 3, Limit: 20}.Offset())
}
