package mysqlstore

import (
	"context"
	"database/sql"

	appDb "github.com/sidrapp/sidr-be/db"
	"github.com/upper/db/v4"
)

type idRow struct {
	Id string `db:"id"`
}

func convertDbRawToInterface(expr ...*db.RawExpr) []interface{} {
	output := make([]interface{}, len(expr))
	for i, rawExpr := range expr {
		output[i] = interface{}(rawExpr)
	}
	return output
}

func rowsAffected(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, appDb.ClassifyErr(err)
	}
	return res.RowsAffected()
}

func found(res sql.Result, err error) (bool, error) {
	n, err := rowsAffected(res, err)
	return n > 0, err
}

// updateColumns runs UPDATE table SET ... WHERE id = ?. The DSN sets
// clientFoundRows so an unchanged row still counts as found. An empty set
// only checks the row exists.
func updateColumns(ctx context.Context, sess db.Session, table string, id string, set map[string]interface{}) (bool, error) {
	if len(set) == 0 {
		return sess.WithContext(ctx).Collection(table).Find("id = ?", id).Exists()
	}
	return found(sess.SQL().
		Update(table).
		Set(set).
		Where("id = ?", id).
		ExecContext(ctx))
}
