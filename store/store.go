// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package store

import (
	"context"

	"github.com/mattermost/mattermost-canonical-issues/model"
	"github.com/pkg/errors"
)

// ErrDuplicateIssue is returned when an insert hits the (owner, repo, number)
// unique key, which happens when two populations of one repository race.
var ErrDuplicateIssue = errors.New("issue is already cached")

type Store interface {
	Issue() IssueStore
	NewLock(key string) (Locker, error)
	Close() error
}

// IssueStore is the local cache of tracker issues.
type IssueStore interface {
	// Find returns the cached issues of a repository ordered by number.
	Find(repoOwner, repoName string) ([]*model.Issue, error)
	// HasRepository reports whether any issue of the repository is cached.
	HasRepository(repoOwner, repoName string) (bool, error)
	InsertMany(issues []*model.Issue) error
	DeleteMany(repoOwner, repoName string) error
	// EnsureUniqueIndex creates the (owner, repo, number) unique key. It is
	// safe to call any number of times.
	EnsureUniqueIndex() error
	// SaveCanonicalID durably records the canonical ID of a cached issue
	// together with its re-encoded body.
	SaveCanonicalID(issue *model.Issue) error
}

// Locker is a lock shared by every instance using the same database.
type Locker interface {
	Lock(ctx context.Context) error
	Unlock() error
}
