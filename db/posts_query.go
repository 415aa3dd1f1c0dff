package db

import (
	"errors"
	"strings"

	"github.com/sidrapp/sidr-be/model"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

var ErrExcludeViewerWithoutViewer = errors.New("excludeViewer needs a viewer")

// PostsListQuery enumerates the filters a post listing may combine. ViewerId
// only drives the viewer flags unless ExcludeViewer is set.
type PostsListQuery struct {
	ViewerId      string
	Search        string
	Author        *model.Author
	ExcludeViewer bool
	// IncludeAnonymous keeps a user's anonymous posts in a listing filtered
	// by that user. Only the user themselves or an admin may set it.
	IncludeAnonymous bool
	Limit            int
	Offset           int
}

func (q *PostsListQuery) Validate() error {
	if q.ExcludeViewer && q.ViewerId == "" {
		return ErrExcludeViewerWithoutViewer
	}
	if q.Author != nil && (!q.Author.Type.Valid() || q.Author.Id == "") {
		return ErrInvalidAuthor
	}
	return nil
}

// Conditions compiles the filters into a single WHERE clause over the posts
// table aliased as p. An empty clause means no filtering.
func (q *PostsListQuery) Conditions() (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + EscapeLike(strings.ToLower(search)) + "%"
		clauses = append(clauses, "(LOWER(p.title) LIKE ? OR LOWER(p.content) LIKE ?)")
		args = append(args, pattern, pattern)
	}

	if q.Author != nil {
		switch q.Author.Type {
		case model.AuthorTypeUser:
			clause := "p.userId = ? AND p.charityPageId IS NULL"
			if !q.IncludeAnonymous {
				clause += " AND p.is_anonymous = FALSE"
			}
			clauses = append(clauses, clause)
		case model.AuthorTypeCharityPage:
			clauses = append(clauses, "p.charityPageId = ?")
		}
		args = append(args, q.Author.Id)
	}

	if q.ExcludeViewer && q.ViewerId != "" {
		clauses = append(clauses,
			"(p.userId IS NULL OR p.userId <> ?)",
			"(p.charityPageId IS NULL OR EXISTS (SELECT 1 FROM follows AS ef WHERE ef.charity_page_id = p.charityPageId AND ef.user_id = ?))")
		args = append(args, q.ViewerId, q.ViewerId)
	}

	return strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so the value matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
