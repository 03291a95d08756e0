// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package store

import (
	"database/sql"

	"github.com/mattermost/mattermost-canonical-issues/store/migrations"

	_ "github.com/go-sql-driver/mysql" // Load MySQL Driver
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/pkg/errors"
)

type SQLStore struct {
	db    *sql.DB
	dbx   *sqlx.DB
	issue IssueStore
}

// NewSQLStore opens the database, brings the schema up to date and returns
// the store.
func NewSQLStore(driverName, dataSource string) (*SQLStore, error) {
	db, err := sql.Open(driverName, dataSource)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open db connection")
	}

	mlog.Info("pinging db")
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "could not ping db")
	}

	if err = RunMigrations(db, 0); err != nil {
		db.Close()
		return nil, err
	}

	return newSQLStore(db, driverName), nil
}

func newSQLStore(db *sql.DB, driverName string) *SQLStore {
	dbx := sqlx.NewDb(db, driverName)
	dbx.MapperFunc(func(s string) string { return s })

	sqlStore := &SQLStore{db: db, dbx: dbx}
	sqlStore.issue = NewSQLIssueStore(sqlStore)
	return sqlStore
}

func (ss *SQLStore) Issue() IssueStore {
	return ss.issue
}

func (ss *SQLStore) NewLock(key string) (Locker, error) {
	return NewMutex(key, ss.db)
}

func (ss *SQLStore) Close() error {
	mlog.Info("closing db")
	return ss.db.Close()
}

// RunMigrations migrates the schema to version, or all the way up when
// version is zero.
func RunMigrations(db *sql.DB, version uint) error {
	dbDriver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return errors.Wrap(err, "failed to create migration driver")
	}

	srcDriver, err := iofs.New(migrations.Assets, ".")
	if err != nil {
		return errors.Wrap(err, "failed to create source instance")
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "mysql", dbDriver)
	if err != nil {
		return errors.Wrap(err, "failed to create db instance")
	}

	if version == 0 {
		err = m.Up()
	} else {
		err = m.Migrate(version)
	}
	if err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "failed to migrate db")
	}
	return nil
}
