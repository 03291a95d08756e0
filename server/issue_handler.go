// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/go-github/v39/github"
	"github.com/mattermost/mattermost-canonical-issues/internal/issuebody"
	"github.com/mattermost/mattermost-canonical-issues/model"
	"github.com/mattermost/mattermost-canonical-issues/store"
	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/pkg/errors"
)

const (
	eventTypeHeader = "X-GitHub-Event"
	eventTypeIssues = "issues"
	eventTypePing   = "ping"

	issueActionOpened = "opened"
)

func (s *Server) githubEventHandler(w http.ResponseWriter, r *http.Request) {
	eventType := r.Header.Get(eventTypeHeader)
	s.Metrics.IncreaseWebhookRequest(eventType)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		mlog.Error("Failed to read webhook body", mlog.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch eventType {
	case eventTypeIssues:
		var event github.IssuesEvent
		if err = json.Unmarshal(body, &event); err != nil || event.Issue == nil || event.Repo == nil {
			mlog.Error("Failed to decode issues event", mlog.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err = s.handleIssuesEvent(r.Context(), &event); err != nil {
			mlog.Error("Failed to handle issues event",
				mlog.String("repository", event.GetRepo().GetFullName()),
				mlog.Int("issue", event.GetIssue().GetNumber()),
				mlog.Err(err),
			)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	case eventTypePing:
		mlog.Info("Received github ping")
	default:
		mlog.Debug("Ignoring github event", mlog.String("type", eventType))
	}

	w.WriteHeader(http.StatusOK)
}

// handleIssuesEvent welcomes newly opened issues and keeps the issue cache
// of already synced repositories up to date.
func (s *Server) handleIssuesEvent(ctx context.Context, event *github.IssuesEvent) error {
	if event.GetAction() != issueActionOpened {
		return nil
	}

	client, err := s.Clients.InstallationClient(event.GetInstallation().GetID())
	if err != nil {
		return err
	}

	owner := event.GetRepo().GetOwner().GetLogin()
	repo := event.GetRepo().GetName()
	issue := issueFromGithub(owner, repo, event.GetIssue())

	mlog.Info("Issue opened", mlog.String("repository", repositoryName(owner, repo)), mlog.Int("issue", issue.Number))

	if s.Config.WelcomeMessage != "" {
		comment := &github.IssueComment{Body: github.String(s.Config.WelcomeMessage)}
		if _, _, err = client.Issues.CreateComment(ctx, owner, repo, issue.Number, comment); err != nil {
			return errors.Wrap(err, "unable to post the welcome message")
		}
	}

	// Repositories that were never synced are fetched whole on the next run.
	issueStore := s.Store.Issue()
	cached, err := issueStore.HasRepository(owner, repo)
	if err != nil {
		return err
	}
	if cached {
		err = issueStore.InsertMany([]*model.Issue{issue})
		if err != nil && !errors.Is(err, store.ErrDuplicateIssue) {
			return err
		}
	}

	if !s.Config.EnableWriteBack {
		return nil
	}

	body := issuebody.Print(issue.Body)
	if body == event.GetIssue().GetBody() {
		return nil
	}
	if _, _, err = client.Issues.Edit(ctx, owner, repo, issue.Number, &github.IssueRequest{Body: &body}); err != nil {
		return errors.Wrap(err, "unable to normalize the issue body")
	}
	return nil
}
