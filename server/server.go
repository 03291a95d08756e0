// Copyright (c) 2015-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/mattermost/mattermost-canonical-issues/metrics"
	"github.com/mattermost/mattermost-canonical-issues/store"
	"github.com/mattermost/mattermost-canonical-issues/version"
	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

const (
	initialiseTaskName = "initialise"
	initialiseTimeout  = 2 * time.Hour
	shutdownTimeout    = 30 * time.Second
)

type Server struct {
	Config  *Config
	Store   store.Store
	Clients ClientProvider
	Metrics metrics.Provider
	Router  *mux.Router

	server *http.Server
	cron   *cron.Cron
}

// New connects to the database, migrating it if needed, and prepares the
// GitHub clients. Nothing is served until Start is called.
func New(config *Config, metricsProvider metrics.Provider) (*Server, error) {
	sqlStore, err := store.NewSQLStore(config.DriverName, config.DataSource)
	if err != nil {
		return nil, err
	}

	clients, err := NewClientProvider(config, metricsProvider)
	if err != nil {
		sqlStore.Close()
		return nil, err
	}

	s := &Server{
		Config:  config,
		Store:   sqlStore,
		Clients: clients,
		Metrics: metricsProvider,
		Router:  mux.NewRouter(),
	}
	s.initializeRouter()

	return s, nil
}

func (s *Server) initializeRouter() {
	s.Router.Use(s.withRequestDuration)
	s.Router.HandleFunc("/ping", s.ping).Methods(http.MethodGet)
	s.Router.HandleFunc("/webhook", s.githubEventHandler).Methods(http.MethodPost)
}

// Start serves the webhook endpoint and schedules the initialise task.
func (s *Server) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.Config.InitialiseSchedule, s.runInitialise); err != nil {
		return errors.Wrapf(err, "invalid initialise schedule %q", s.Config.InitialiseSchedule)
	}

	s.server = &http.Server{
		Addr:         s.Config.ListenAddress,
		Handler:      s.Router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		mlog.Info("Listening on", mlog.String("address", s.Config.ListenAddress))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logErrorToMattermost("Canonical issues server stopped: %v", err)
			mlog.Error("Server exited with error", mlog.Err(err))
		}
	}()

	s.cron.Start()
	if s.Config.InitialiseOnStart {
		go s.runInitialise()
	}
	return nil
}

// Stop waits for a running initialise task before closing the store.
func (s *Server) Stop() error {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	return s.Store.Close()
}

func (s *Server) runInitialise() {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), initialiseTimeout)
	defer cancel()

	if err := s.Initialise(ctx); err != nil {
		s.Metrics.IncreaseCronTaskErrors(initialiseTaskName)
		mlog.Error("Failed to initialise canonical ids", mlog.Err(err))
		s.logErrorToMattermost("Failed to initialise canonical issue ids: %v", err)
	}

	s.Metrics.ObserveCronTaskDuration(initialiseTaskName, time.Since(start).Seconds())
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(version.Full()); err != nil {
		mlog.Error("Failed to write ping response", mlog.Err(err))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (s *Server) withRequestDuration(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(recorder, r)

		handler := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				handler = tpl
			}
		}
		s.Metrics.ObserveHTTPRequestDuration(handler, r.Method, strconv.Itoa(recorder.statusCode), time.Since(start).Seconds())
	})
}
