// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

// Package canonical hands out canonical issue IDs, reusing the holes left in
// the ID space before growing it.
package canonical

import (
	"sort"

	"github.com/mattermost/mattermost-canonical-issues/model"
)

// FindGaps returns, in ascending order, at most maxGaps positive integers
// below the largest used ID that are not in use.
//
// sortedUsedIDs must be sorted ascending. Duplicates are tolerated. The scan
// is linear in the largest used ID, so maxGaps has to stay proportional to
// the number of issues waiting for an ID: it is what bounds the work when a
// corrupted ID is far larger than the issue count.
func FindGaps(sortedUsedIDs []int, maxGaps int) []int {
	used := sortedUsedIDs
	for len(used) > 0 && used[0] <= 0 {
		used = used[1:]
	}
	if len(used) == 0 || maxGaps <= 0 {
		return []int{}
	}

	maxID := used[len(used)-1]
	gaps := []int{}
	next := 0
	for candidate := 1; candidate < maxID && len(gaps) < maxGaps; candidate++ {
		if next < len(used) && used[next] == candidate {
			for next < len(used) && used[next] == candidate {
				next++
			}
			continue
		}
		gaps = append(gaps, candidate)
	}
	return gaps
}

// KnownIDs returns the canonical IDs already held, sorted ascending.
func KnownIDs(metadata []*model.IssueMetadata) []int {
	ids := make([]int, 0, len(metadata))
	for _, meta := range metadata {
		if id := meta.GetCanonicalID(); id > 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Allocator assigns canonical IDs to issues that have none.
type Allocator struct {
	// MaxGaps bounds the gap scan. When zero or negative the number of
	// issues waiting for an ID is used.
	MaxGaps int
}

// Assign gives every unnumbered entry of metadata a canonical ID, in slice
// order, and returns the indexes it changed.
//
// An ID held by more than one entry stays with the first one; later holders
// are renumbered. Gaps are consumed from the largest down before new IDs
// past the current maximum are issued. The result only depends on the order
// of metadata, so callers must pass a stable order.
func (a *Allocator) Assign(metadata []*model.IssueMetadata) []int {
	seen := make(map[int]bool, len(metadata))
	var pending []int
	for i, meta := range metadata {
		if meta == nil {
			continue
		}
		id := meta.GetCanonicalID()
		if id > 0 && !seen[id] {
			seen[id] = true
			continue
		}
		pending = append(pending, i)
	}
	if len(pending) == 0 {
		return nil
	}

	known := make([]int, 0, len(seen))
	for id := range seen {
		known = append(known, id)
	}
	sort.Ints(known)

	maxGaps := a.MaxGaps
	if maxGaps <= 0 {
		maxGaps = len(pending)
	}
	gaps := FindGaps(known, maxGaps)

	counter := 0
	if len(known) > 0 {
		counter = known[len(known)-1]
	}

	for _, i := range pending {
		var id int
		if len(gaps) > 0 {
			id = gaps[len(gaps)-1]
			gaps = gaps[:len(gaps)-1]
		} else {
			counter++
			id = counter
		}
		metadata[i].SetCanonicalID(id)
	}
	return pending
}
