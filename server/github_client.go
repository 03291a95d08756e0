// Copyright (c) 2015-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/die-net/lrucache"
	"github.com/google/go-github/v39/github"
	"github.com/m4ns0ur/httpcache"
	"github.com/mattermost/mattermost-canonical-issues/metrics"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

type IssuesService interface {
	CreateComment(ctx context.Context, owner string, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
	Edit(ctx context.Context, owner string, repo string, number int, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
	Get(ctx context.Context, owner string, repo string, number int) (*github.Issue, *github.Response, error)
	ListByRepo(ctx context.Context, owner string, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
}

type AppsService interface {
	ListInstallations(ctx context.Context, opts *github.ListOptions) ([]*github.Installation, *github.Response, error)
	ListRepos(ctx context.Context, opts *github.ListOptions) (*github.ListRepositories, *github.Response, error)
}

// GithubClient wraps the github.Client with relevant interfaces.
type GithubClient struct {
	client *github.Client

	Apps   AppsService
	Issues IssuesService
}

func newGithubClient(httpClient *http.Client) *GithubClient {
	client := github.NewClient(httpClient)
	return &GithubClient{
		client: client,
		Apps:   client.Apps,
		Issues: client.Issues,
	}
}

// NewGithubClient creates a client authenticated with a personal access token.
func NewGithubClient(accessToken string, base http.RoundTripper) *GithubClient {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	return newGithubClient(&http.Client{Transport: &oauth2.Transport{Source: ts, Base: base}})
}

func (c *GithubClient) RateLimits(ctx context.Context) (*github.RateLimits, *github.Response, error) {
	if c.client == nil {
		return nil, nil, errors.New("rate limits are not available on this client")
	}
	return c.client.RateLimits(ctx)
}

// Installation is one set of repositories reachable with a single credential.
type Installation struct {
	ID      int64
	Account string
	Client  *GithubClient

	// Repositories is set when the repositories are configured instead of
	// discovered through the installation.
	Repositories []*Repository
}

// ClientProvider hands out the GitHub clients the server works with.
type ClientProvider interface {
	ListInstallations(ctx context.Context) ([]*Installation, error)
	InstallationClient(installationID int64) (*GithubClient, error)
}

// newBaseTransport builds the transport shared by every GitHub client:
// requests are rate limited, measured and answered from an in-memory HTTP
// cache when GitHub allows it.
func newBaseTransport(config *Config, provider metrics.Provider) http.RoundTripper {
	cache := lrucache.New(config.GitHubCacheSizeMB*1024*1024, config.GitHubCacheMaxAgeSeconds)
	cached := httpcache.NewTransport(cache)
	cached.Transport = http.DefaultTransport

	var measured http.RoundTripper = cached
	if provider != nil {
		measured = metrics.NewTransport(cached, provider)
	}

	return NewRateLimitTransport(rate.Limit(config.GitHubRequestsPerSecond), config.GitHubRequestsBurst, measured)
}

// NewClientProvider returns a GitHub App backed provider when an app id is
// configured and a single-token provider otherwise.
func NewClientProvider(config *Config, provider metrics.Provider) (ClientProvider, error) {
	base := newBaseTransport(config, provider)

	if config.GitHubAppID == 0 {
		return &tokenClientProvider{
			client:       NewGithubClient(config.GithubAccessToken, base),
			repositories: config.Repositories,
		}, nil
	}

	appTransport, err := ghinstallation.NewAppsTransportKeyFromFile(base, config.GitHubAppID, config.GitHubAppPrivateKeyPath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create github app transport")
	}

	return &appClientProvider{
		appClient:    newGithubClient(&http.Client{Transport: appTransport}),
		appTransport: appTransport,
		clients:      make(map[int64]*GithubClient),
	}, nil
}

type tokenClientProvider struct {
	client       *GithubClient
	repositories []*Repository
}

func (p *tokenClientProvider) ListInstallations(_ context.Context) ([]*Installation, error) {
	return []*Installation{{
		Account:      "token",
		Client:       p.client,
		Repositories: p.repositories,
	}}, nil
}

func (p *tokenClientProvider) InstallationClient(_ int64) (*GithubClient, error) {
	return p.client, nil
}

type appClientProvider struct {
	appClient    *GithubClient
	appTransport *ghinstallation.AppsTransport

	mu      sync.Mutex
	clients map[int64]*GithubClient
}

func (p *appClientProvider) ListInstallations(ctx context.Context) ([]*Installation, error) {
	opts := &github.ListOptions{PerPage: 100}
	var installations []*Installation
	for {
		page, r, err := p.appClient.Apps.ListInstallations(ctx, opts)
		if err != nil {
			return nil, errors.Wrap(err, "unable to list app installations")
		}

		for _, inst := range page {
			client, err := p.InstallationClient(inst.GetID())
			if err != nil {
				return nil, err
			}
			installations = append(installations, &Installation{
				ID:      inst.GetID(),
				Account: inst.GetAccount().GetLogin(),
				Client:  client,
			})
		}

		if r.NextPage == 0 {
			break
		}
		opts.Page = r.NextPage
	}
	return installations, nil
}

// InstallationClient reuses one client per installation so its access token
// is minted once and refreshed by ghinstallation.
func (p *appClientProvider) InstallationClient(installationID int64) (*GithubClient, error) {
	if installationID == 0 {
		return nil, errors.New("missing installation id")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[installationID]; ok {
		return client, nil
	}

	tr := ghinstallation.NewFromAppsTransport(p.appTransport, installationID)
	client := newGithubClient(&http.Client{Transport: tr})
	p.clients[installationID] = client
	return client, nil
}
