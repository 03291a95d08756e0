// Copyright (c) 2015-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package main

import (
	"database/sql"
	"flag"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mattermost/mattermost-canonical-issues/server"
	"github.com/mattermost/mattermost-canonical-issues/store"
	"github.com/mattermost/mattermost-server/v6/shared/mlog"
)

var (
	configFile     string
	migrateVersion int
)

func init() {
	flag.StringVar(&configFile, "config", "config-canonical-issues.json", "")
	flag.IntVar(&migrateVersion, "migration_version", 0, "Specify the target version to migrate to. Zero migrates to the latest version.")
}

func main() {
	flag.Parse()

	config, err := server.GetConfig(configFile)
	if err != nil {
		mlog.Error("unable to load server config", mlog.Err(err), mlog.String("file", configFile))
		os.Exit(1)
	}
	if err = server.SetupLogging(config); err != nil {
		mlog.Error("unable to configure logging", mlog.Err(err))
		os.Exit(1)
	}

	if migrateVersion < 0 {
		mlog.Error("Invalid migration version", mlog.Int("version", migrateVersion))
		os.Exit(1)
	}

	db, err := sql.Open(config.DriverName, config.DataSource)
	if err != nil {
		mlog.Error("Failed to open database", mlog.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	if err = store.RunMigrations(db, uint(migrateVersion)); err != nil {
		mlog.Error("Failed to run migrations", mlog.Err(err))
		os.Exit(1)
	}
	mlog.Info("Migrations applied", mlog.Int("version", migrateVersion))
}
