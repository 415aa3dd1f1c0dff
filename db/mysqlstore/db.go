package mysqlstore

import (
	"database/sql"

	appDb "github.com/sidrapp/sidr-be/db"
	"github.com/sidrapp/sidr-be/config"
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"
)

type MySQLDB struct {
	*UserDB
	*CharityDB
	*PostDB
	*EngagementDB
	*SocialDB
	*MessageDB
	*DonationDB
	*ReportDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(cfg *config.DBConfig) (appDb.Database, error) {
	sqlDB, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := mysql.New(sqlDB)
	if err != nil {
		return nil, err
	}
	return newMySQLDB(sess, sqlDB), nil
}

func newMySQLDB(sess db.Session, sqlDB *sql.DB) *MySQLDB {
	return &MySQLDB{
		UserDB:       getUserDB(sess),
		CharityDB:    getCharityDB(sess),
		PostDB:       getPostDB(sess),
		EngagementDB: getEngagementDB(sess),
		SocialDB:     getSocialDB(sess),
		MessageDB:    getMessageDB(sess),
		DonationDB:   getDonationDB(sess),
		ReportDB:     getReportDB(sess),
		sess:         sess,
		sqlDB:        sqlDB,
	}
}

func (mdb *MySQLDB) GetSQLDB() *sql.DB {
	return mdb.sqlDB
}

func (mdb *MySQLDB) Close() error {
	return mdb.sess.Close()
}
