// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-github/v39/github"
	"github.com/mattermost/mattermost-canonical-issues/internal/issuebody"
	"github.com/mattermost/mattermost-canonical-issues/metrics"
	"github.com/mattermost/mattermost-canonical-issues/model"
	"github.com/mattermost/mattermost-canonical-issues/server/mocks"
	stmock "github.com/mattermost/mattermost-canonical-issues/store/mocks"
)

type staticClientProvider struct {
	installations []*Installation
}

func (p *staticClientProvider) ListInstallations(_ context.Context) ([]*Installation, error) {
	return p.installations, nil
}

func (p *staticClientProvider) InstallationClient(installationID int64) (*GithubClient, error) {
	for _, inst := range p.installations {
		if inst.ID == installationID {
			return inst.Client, nil
		}
	}
	return p.installations[0].Client, nil
}

type testServer struct {
	*Server

	issues     *mocks.MockIssuesService
	apps       *mocks.MockAppsService
	store      *stmock.MockStore
	issueStore *stmock.MockIssueStore
}

// newTestServer returns a server whose single token installation syncs the
// given repositories through mocked services.
func newTestServer(t *testing.T, ctrl *gomock.Controller, repos ...*Repository) *testServer {
	t.Helper()

	is := mocks.NewMockIssuesService(ctrl)
	as := mocks.NewMockAppsService(ctrl)
	client := &GithubClient{Issues: is, Apps: as}

	issueStore := stmock.NewMockIssueStore(ctrl)
	ss := stmock.NewMockStore(ctrl)
	ss.EXPECT().Issue().Return(issueStore).AnyTimes()

	return &testServer{
		Server: &Server{
			Config: &Config{Repositories: repos},
			Store:  ss,
			Clients: &staticClientProvider{installations: []*Installation{
				{Account: "token", Client: client, Repositories: repos},
			}},
			Metrics: metrics.NewPrometheusProvider(),
		},
		issues:     is,
		apps:       as,
		store:      ss,
		issueStore: issueStore,
	}
}

func newCachedIssue(owner, repo string, number, canonicalID int) *model.Issue {
	issue := &model.Issue{
		RepoOwner: owner,
		RepoName:  repo,
		Number:    number,
		Body:      model.IssueBody{Sections: []string{"description"}},
	}
	issue.Body.Metadata.SetCanonicalID(canonicalID)
	return issue
}

func newGithubIssue(number, canonicalID int) *github.Issue {
	body := model.IssueBody{Sections: []string{"description"}}
	body.Metadata.SetCanonicalID(canonicalID)
	return &github.Issue{
		Number: github.Int(number),
		Body:   github.String(issuebody.Print(body)),
	}
}
