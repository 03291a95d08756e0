// Copyright (c) 2015-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package metrics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/mattermost/mattermost-server/v6/shared/mlog"
)

const (
	readTimeout  = 30 * time.Second
	writeTimeout = 30 * time.Second
	stopTimeout  = 30 * time.Second
)

// Server exposes the metrics handlers, and optionally pprof, on their own port
// so they stay off the public webhook listener.
type Server struct {
	server   *http.Server
	handlers []Handler
}

// Handler is the representation of an HTTP handler that would be
// used by the metrics server to expose the metrics
type Handler struct {
	Handler     http.Handler
	Path        string
	Description string
}

// NewServer creates a metrics server listening on port.
func NewServer(port string, pprof bool, handlers ...Handler) *Server {
	if pprof {
		handlers = append(handlers, pprofHandlers()...)
	}

	m := &Server{handlers: handlers}

	router := mux.NewRouter()
	router.HandleFunc("/", m.handleIndex).Methods(http.MethodGet)
	for _, handler := range handlers {
		router.Handle(handler.Path, handler.Handler)
	}

	m.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	return m
}

// Handler returns the router serving every registered handler.
func (m *Server) Handler() http.Handler {
	return m.server.Handler
}

func (m *Server) Start() {
	go func() {
		mlog.Info("Metrics server started", mlog.String("address", m.server.Addr), mlog.Int("handlers", len(m.handlers)))
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			mlog.Error("Metrics server exited with error", mlog.Err(err))
		}
	}()
}

// Stop gracefully stops the server
func (m *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := m.server.Shutdown(ctx); err != nil {
		mlog.Error("Error shutting down the metrics server", mlog.Err(err))
	}
	mlog.Info("Metrics server stopped")
}

func (m *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	var links strings.Builder
	for _, handler := range m.handlers {
		fmt.Fprintf(&links, "<div><a href=\"%s\">%s</a></div>\n", handler.Path, handler.Description)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := fmt.Fprintf(w, "<html><body>\n%s</body></html>\n", links.String()); err != nil {
		mlog.Error("Error rendering metrics index", mlog.Err(err))
	}
}

func pprofHandlers() []Handler {
	profiles := []string{"goroutine", "heap", "threadcreate", "block", "mutex"}
	handlers := []Handler{
		{Path: "/debug/pprof/", Description: "Profiling Root", Handler: http.HandlerFunc(pprof.Index)},
		{Path: "/debug/pprof/cmdline", Description: "Profiling Command Line", Handler: http.HandlerFunc(pprof.Cmdline)},
		{Path: "/debug/pprof/symbol", Description: "Profiling Symbols", Handler: http.HandlerFunc(pprof.Symbol)},
	}
	for _, profile := range profiles {
		handlers = append(handlers, Handler{
			Path:        "/debug/pprof/" + profile,
			Description: "Profiling " + profile,
			Handler:     pprof.Handler(profile),
		})
	}
	return handlers
}
