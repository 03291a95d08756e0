// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"sort"

	"github.com/google/go-github/v39/github"
	"github.com/mattermost/mattermost-canonical-issues/internal/issuebody"
	"github.com/mattermost/mattermost-canonical-issues/model"
)

// IssueContext pairs an issue with the client able to write it back.
type IssueContext struct {
	Client *GithubClient
	Issue  *model.Issue
}

func issueFromGithub(owner, repo string, ghIssue *github.Issue) *model.Issue {
	return &model.Issue{
		RepoOwner: owner,
		RepoName:  repo,
		Number:    ghIssue.GetNumber(),
		Body:      issuebody.Parse(ghIssue.GetBody()),
	}
}

func newIssueContexts(client *GithubClient, issues []*model.Issue) []*IssueContext {
	contexts := make([]*IssueContext, 0, len(issues))
	for _, issue := range issues {
		contexts = append(contexts, &IssueContext{Client: client, Issue: issue})
	}
	return contexts
}

// sortIssueContexts orders by repository and then by issue number, which is
// the order canonical ids are handed out in.
func sortIssueContexts(contexts []*IssueContext) {
	sort.SliceStable(contexts, func(i, j int) bool {
		a, b := contexts[i].Issue, contexts[j].Issue
		if a.RepoOwner != b.RepoOwner {
			return a.RepoOwner < b.RepoOwner
		}
		if a.RepoName != b.RepoName {
			return a.RepoName < b.RepoName
		}
		return a.Number < b.Number
	})
}

func repositoryName(owner, repo string) string {
	return owner + "/" + repo
}
