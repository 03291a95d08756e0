// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"context"

	"github.com/google/go-github/v39/github"
	"github.com/mattermost/mattermost-canonical-issues/model"
	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/pkg/errors"
)

// getIssuesForRepo returns every issue of the repository. A repository is
// fetched from GitHub once, after which the issue store answers for it.
func (s *Server) getIssuesForRepo(ctx context.Context, client *GithubClient, owner, repo string) ([]*IssueContext, error) {
	issueStore := s.Store.Issue()
	name := repositoryName(owner, repo)

	if s.Config.isForceRefreshRepository(owner, repo) {
		mlog.Info("Dropping cached issues before sync", mlog.String("repository", name))
		if err := issueStore.DeleteMany(owner, repo); err != nil {
			return nil, errors.Wrapf(err, "unable to invalidate cached issues of %s", name)
		}
	} else {
		cached, err := issueStore.Find(owner, repo)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read cached issues of %s", name)
		}
		if len(cached) > 0 {
			s.Metrics.IncreaseRepositoryCacheHits(name)
			mlog.Debug("Using cached issues", mlog.String("repository", name), mlog.Int("issues", len(cached)))
			return newIssueContexts(client, cached), nil
		}
	}
	s.Metrics.IncreaseRepositoryCacheMisses(name)

	if err := issueStore.EnsureUniqueIndex(); err != nil {
		return nil, errors.Wrap(err, "unable to ensure the issue index")
	}

	ghIssues, err := s.listRepositoryIssues(ctx, client, owner, repo)
	if err != nil {
		return nil, err
	}

	issues := make([]*model.Issue, 0, len(ghIssues))
	for _, ghIssue := range ghIssues {
		issues = append(issues, issueFromGithub(owner, repo, ghIssue))
	}
	mlog.Info("Fetched issues from github", mlog.String("repository", name), mlog.Int("issues", len(issues)))

	if len(issues) == 0 {
		return []*IssueContext{}, nil
	}

	if err := issueStore.InsertMany(issues); err != nil {
		return nil, errors.Wrapf(err, "unable to cache issues of %s", name)
	}
	return newIssueContexts(client, issues), nil
}

// listRepositoryIssues returns the open and closed issues of the repository,
// leaving out pull requests.
func (s *Server) listRepositoryIssues(ctx context.Context, client *GithubClient, owner, repo string) ([]*github.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var issues []*github.Issue
	for {
		page, r, err := client.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to list issues of %s", repositoryName(owner, repo))
		}

		for _, ghIssue := range page {
			if ghIssue.IsPullRequest() {
				continue
			}
			issues = append(issues, ghIssue)
		}

		if r.NextPage == 0 {
			break
		}
		opts.Page = r.NextPage
	}
	return issues, nil
}

// listRepositories returns the repositories the installation can reach.
func (s *Server) listRepositories(ctx context.Context, inst *Installation) ([]*Repository, error) {
	if inst.Repositories != nil {
		return inst.Repositories, nil
	}

	opts := &github.ListOptions{PerPage: 100}
	var repos []*Repository
	for {
		page, r, err := inst.Client.Apps.ListRepos(ctx, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to list repositories of installation %d", inst.ID)
		}

		for _, repo := range page.Repositories {
			repos = append(repos, &Repository{
				Owner: repo.GetOwner().GetLogin(),
				Name:  repo.GetName(),
			})
		}

		if r.NextPage == 0 {
			break
		}
		opts.Page = r.NextPage
	}
	return repos, nil
}
