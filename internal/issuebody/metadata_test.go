// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package issuebody

import (
	"strings"
	"testing"

	"github.com/mattermost/mattermost-canonical-issues/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		fragment string
		isNil    bool
		id       int
	}{
		{name: "empty fragment", fragment: "", isNil: true},
		{name: "plain text", fragment: "Just a description", isNil: true},
		{name: "list outside of a collapsible block", fragment: `<ul><li data-canonical-id="3">x</li></ul>`, isNil: true},
		{name: "collapsible block without a list", fragment: `<details><summary>Issue metadata</summary></details>`, isNil: true},
		{name: "empty list", fragment: `<details><ul></ul></details>`, isNil: true},
		{name: "collapsible list written by people", fragment: `<details><summary>Logs</summary><ul><li>panic: nil map</li></ul></details>`, isNil: true},
		{name: "metadata summary with an empty list", fragment: `<details><summary>Issue metadata</summary><ul></ul></details>`},
		{name: "canonical id", fragment: `<details><summary>Issue metadata</summary><ul><li data-canonical-id="42">Canonical link</li></ul></details>`, id: 42},
		{name: "canonical id with whitespace", fragment: `<details><ul><li data-canonical-id=" 8 ">x</li></ul></details>`, id: 8},
		{name: "zero canonical id", fragment: `<details><ul><li data-canonical-id="0">x</li></ul></details>`},
		{name: "negative canonical id", fragment: `<details><ul><li data-canonical-id="-4">x</li></ul></details>`},
		{name: "non numeric canonical id", fragment: `<details><ul><li data-canonical-id="abc">x</li></ul></details>`},
		{name: "unknown fields are ignored", fragment: `<details><ul><li data-priority="high">p</li><li data-canonical-id="5">x</li></ul></details>`, id: 5},
		{name: "marker comment before the block", fragment: doNotEditMarker + "\r\n<details><ul><li data-canonical-id=\"6\">x</li></ul></details>", id: 6},
		{name: "marker comment before a block without fields", fragment: doNotEditMarker + "\r\n<details><summary>Notes</summary><ul><li>x</li></ul></details>"},
		{name: "unclosed markup", fragment: `<details><ul><li data-canonical-id="7">x`, id: 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			meta := ParseMetadata(tc.fragment)
			if tc.isNil {
				assert.Nil(t, meta)
				return
			}
			require.NotNil(t, meta)
			assert.Equal(t, tc.id, meta.GetCanonicalID())
		})
	}
}

func TestPrintMetadata(t *testing.T) {
	t.Run("nothing to record", func(t *testing.T) {
		out, ok := PrintMetadata(model.IssueMetadata{})
		assert.False(t, ok)
		assert.Empty(t, out)
	})

	t.Run("canonical id", func(t *testing.T) {
		out, ok := PrintMetadata(canonical(42))
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(out, "<details><summary>Issue metadata</summary>"))
		assert.Contains(t, out, `<li data-canonical-id="42">Canonical link: `)
		assert.Equal(t, 1, strings.Count(out, "<li "))

		meta := ParseMetadata(out)
		require.NotNil(t, meta)
		assert.Equal(t, 42, meta.GetCanonicalID())
	})

	t.Run("corrupted value parses back as absent", func(t *testing.T) {
		out, ok := PrintMetadata(canonical(42))
		require.True(t, ok)
		corrupted := strings.Replace(out, `data-canonical-id="42"`, `data-canonical-id="4x2"`, 1)

		meta := ParseMetadata(corrupted)
		require.NotNil(t, meta)
		assert.Nil(t, meta.CanonicalID)
	})

	t.Run("output never contains the section separator", func(t *testing.T) {
		out, ok := PrintMetadata(canonical(1))
		require.True(t, ok)
		assert.NotContains(t, out, SectionSeparator)
	})
}
