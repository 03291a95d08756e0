// Copyright (c) 2015-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// RateLimitTransport will provide a layer based on http.RounTripper interface
// that provided rate limiting capability
type RateLimitTransport struct {
	limiter *rate.Limiter
	base    http.RoundTripper
}

func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// NewRateLimitTransport will return a new transport that provides rate limiting capability
// based on the provided limit and burst tokens.
// It also needs the base RountTripper that will be called in case the rate limit is not needed
func NewRateLimitTransport(limit rate.Limit, tokens int, base http.RoundTripper) *RateLimitTransport {
	limiter := rate.NewLimiter(limit, tokens)
	return &RateLimitTransport{limiter, base}
}

// ErrRateLimitReserve is returned when an installation is too close to its
// GitHub quota to run a full sync.
var ErrRateLimitReserve = errors.New("github rate limit reserve reached")

// checkRateLimitReserve refuses to start a sync that would eat into the
// configured token reserve of the installation.
func (s *Server) checkRateLimitReserve(ctx context.Context, inst *Installation) error {
	if s.Config.GitHubTokenReserve <= 0 {
		return nil
	}

	limits, _, err := inst.Client.RateLimits(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to get the rate limit")
	}

	core := limits.GetCore()
	if core == nil {
		return nil
	}
	mlog.Debug("Current rate limit",
		mlog.String("account", inst.Account),
		mlog.Int("remaining", core.Remaining),
		mlog.Int("limit", core.Limit),
	)

	if core.Remaining <= s.Config.GitHubTokenReserve {
		mlog.Warn("Tokens reached minimum reserve",
			mlog.String("account", inst.Account),
			mlog.Int("minimum", s.Config.GitHubTokenReserve),
			mlog.String("reset_in", time.Until(core.Reset.Time).String()),
		)
		return ErrRateLimitReserve
	}
	return nil
}
