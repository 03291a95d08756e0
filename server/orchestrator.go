// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"context"

	"github.com/google/go-github/v39/github"
	"github.com/mattermost/mattermost-canonical-issues/internal/canonical"
	"github.com/mattermost/mattermost-canonical-issues/internal/issuebody"
	"github.com/mattermost/mattermost-canonical-issues/model"
	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const allocationLockKey = "canonical-allocation"

// GetIssues syncs every repository of every installation and returns all
// their issues ordered by repository and number. Installations and their
// repositories are synced concurrently; the first failure cancels the rest.
func (s *Server) GetIssues(ctx context.Context) ([]*IssueContext, error) {
	installations, err := s.Clients.ListInstallations(ctx)
	if err != nil {
		return nil, err
	}

	results := make([][]*IssueContext, len(installations))
	g, gctx := errgroup.WithContext(ctx)
	for i, inst := range installations {
		i, inst := i, inst
		g.Go(func() error {
			contexts, err := s.getInstallationIssues(gctx, inst)
			if err != nil {
				return errors.Wrapf(err, "unable to sync installation %s", inst.Account)
			}
			results[i] = contexts
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	all := []*IssueContext{}
	for _, contexts := range results {
		all = append(all, contexts...)
	}
	sortIssueContexts(all)
	s.Metrics.ObserveSyncedIssues(len(all))
	return all, nil
}

func (s *Server) getInstallationIssues(ctx context.Context, inst *Installation) ([]*IssueContext, error) {
	if err := s.checkRateLimitReserve(ctx, inst); err != nil {
		return nil, err
	}

	repos, err := s.listRepositories(ctx, inst)
	if err != nil {
		return nil, err
	}

	results := make([][]*IssueContext, len(repos))
	g, gctx := errgroup.WithContext(ctx)
	for i, repo := range repos {
		i, repo := i, repo
		g.Go(func() error {
			contexts, err := s.getIssuesForRepo(gctx, inst.Client, repo.Owner, repo.Name)
			if err != nil {
				return err
			}
			results[i] = contexts
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	var all []*IssueContext
	for _, contexts := range results {
		all = append(all, contexts...)
	}
	return all, nil
}

// Initialise syncs all issues and gives a canonical id to every issue that
// has none. With write-back enabled the new ids are stored and written into
// the issue bodies on GitHub while holding the allocation lock, so concurrent
// instances never hand out the same id twice.
func (s *Server) Initialise(ctx context.Context) error {
	if s.Config.EnableWriteBack {
		lock, err := s.Store.NewLock(allocationLockKey)
		if err != nil {
			return err
		}
		if err = lock.Lock(ctx); err != nil {
			return errors.Wrap(err, "unable to take the allocation lock")
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				mlog.Warn("Unable to release the allocation lock", mlog.Err(err))
			}
		}()
	}

	contexts, err := s.GetIssues(ctx)
	if err != nil {
		return err
	}

	metadata := make([]*model.IssueMetadata, len(contexts))
	for i, ic := range contexts {
		metadata[i] = &ic.Issue.Body.Metadata
	}

	known := canonical.KnownIDs(metadata)
	allocator := &canonical.Allocator{MaxGaps: s.Config.MaxCanonicalGaps}
	assigned := allocator.Assign(metadata)
	s.Metrics.AddCanonicalIDsAssigned(len(assigned))

	mlog.Info("Canonical ids allocated",
		mlog.Int("issues", len(contexts)),
		mlog.Int("known", len(known)),
		mlog.Int("assigned", len(assigned)),
	)

	if len(assigned) == 0 {
		return nil
	}

	changed := make([]*IssueContext, 0, len(assigned))
	for _, i := range assigned {
		changed = append(changed, contexts[i])
	}

	if !s.Config.EnableWriteBack {
		for _, ic := range changed {
			mlog.Debug("Canonical id computed",
				mlog.String("repository", repositoryName(ic.Issue.RepoOwner, ic.Issue.RepoName)),
				mlog.Int("issue", ic.Issue.Number),
				mlog.Int("canonical_id", ic.Issue.Body.Metadata.GetCanonicalID()),
			)
		}
		return nil
	}

	return s.applyAssignments(ctx, changed)
}

// applyAssignments persists the new canonical ids. The store is updated
// first so a failed GitHub edit is retried from the cache on the next run.
// Bodies are re-read from GitHub to keep edits made since the cache was
// filled.
func (s *Server) applyAssignments(ctx context.Context, contexts []*IssueContext) error {
	for _, ic := range contexts {
		issue := ic.Issue
		id := issue.Body.Metadata.GetCanonicalID()

		ghIssue, _, err := ic.Client.Issues.Get(ctx, issue.RepoOwner, issue.RepoName, issue.Number)
		if err != nil {
			return errors.Wrapf(err, "unable to get issue %s#%d", repositoryName(issue.RepoOwner, issue.RepoName), issue.Number)
		}

		issue.Body = issuebody.Parse(ghIssue.GetBody())
		issue.Body.Metadata.SetCanonicalID(id)

		if err = s.Store.Issue().SaveCanonicalID(issue); err != nil {
			return err
		}

		body := issuebody.Print(issue.Body)
		if _, _, err = ic.Client.Issues.Edit(ctx, issue.RepoOwner, issue.RepoName, issue.Number, &github.IssueRequest{Body: &body}); err != nil {
			return errors.Wrapf(err, "unable to write canonical id of %s#%d", repositoryName(issue.RepoOwner, issue.RepoName), issue.Number)
		}

		mlog.Info("Canonical id assigned",
			mlog.String("repository", repositoryName(issue.RepoOwner, issue.RepoName)),
			mlog.Int("issue", issue.Number),
			mlog.Int("canonical_id", id),
		)
	}
	return nil
}
