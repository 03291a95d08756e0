// Copyright (c) 2015-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattermost/mattermost-canonical-issues/metrics"
	"github.com/mattermost/mattermost-canonical-issues/server"
	"github.com/mattermost/mattermost-canonical-issues/version"
	"github.com/mattermost/mattermost-server/v6/shared/mlog"
)

var (
	configFile string
	runOnce    bool
)

func init() {
	flag.StringVar(&configFile, "config", "config-canonical-issues.json", "")
	flag.BoolVar(&runOnce, "once", false, "Assign canonical ids once and exit instead of serving.")
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

	// Metrics system
	metricsProvider := metrics.NewPrometheusProvider()
	metricsServer := metrics.NewServer(config.MetricsServerPort, true, metricsProvider.Handler())
	metricsServer.Start()
	defer metricsServer.Stop()

	info := version.Full()
	mlog.Info("Loaded config", mlog.String("filename", configFile), mlog.String("version", info.Version), mlog.String("hash", info.Hash))
	s, err := server.New(config, metricsProvider)
	if err != nil {
		mlog.Error("unable to create server", mlog.Err(err))
		return
	}

	if runOnce {
		if err = initialiseOnce(context.Background(), s); err != nil {
			metricsServer.Stop()
			os.Exit(1)
		}
		return
	}

	mlog.Info("Starting Canonical Issues Server")
	if err = s.Start(); err != nil {
		mlog.Error("unable to start server", mlog.Err(err))
		return
	}

	defer func() {
		mlog.Info("Stopping Canonical Issues Server")
		if err2 := s.Stop(); err2 != nil {
			mlog.Error("error while shutting down server", mlog.Err(err2))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-sig
	mlog.Info("Stopped Canonical Issues Server")
}

type initialiser interface {
	Initialise(ctx context.Context) error
	Stop() error
}

// initialiseOnce runs a single canonical id assignment and stops the server.
// The error reports whether the assignment failed.
func initialiseOnce(ctx context.Context, s initialiser) error {
	err := s.Initialise(ctx)
	if err != nil {
		mlog.Error("unable to initialise canonical ids", mlog.Err(err))
	}
	if err2 := s.Stop(); err2 != nil {
		mlog.Error("error while shutting down server", mlog.Err(err2))
	}
	return err
}
