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

func canonical(id int) model.IssueMetadata {
	return model.IssueMetadata{CanonicalID: &id}
}

func TestParse(t *testing.T) {
	t.Run("empty description", func(t *testing.T) {
		body := Parse("")
		assert.Equal(t, []string{""}, body.Sections)
		assert.True(t, body.Metadata.IsDefault())
	})

	t.Run("plain text is kept as content", func(t *testing.T) {
		text := "Steps to reproduce\r\n---\r\nExpected behaviour"
		body := Parse(text)
		assert.Equal(t, []string{"Steps to reproduce", "Expected behaviour"}, body.Sections)
		assert.True(t, body.Metadata.IsDefault())
	})

	t.Run("malformed markup degrades to content", func(t *testing.T) {
		text := "Summary\r\n---\r\n<details><summary>Logs</summary><p>no list <b>here"
		body := Parse(text)
		assert.Equal(t, []string{"Summary", "<details><summary>Logs</summary><p>no list <b>here"}, body.Sections)
		assert.True(t, body.Metadata.IsDefault())
	})

	t.Run("trailing metadata block is extracted", func(t *testing.T) {
		text := "Summary\r\n---\r\n" + doNotEditMarker + "\r\n" +
			`<details><summary>Issue metadata</summary><ul><li data-canonical-id="12">Canonical link</li></ul></details>`
		body := Parse(text)
		assert.Equal(t, []string{"Summary"}, body.Sections)
		assert.Equal(t, 12, body.Metadata.GetCanonicalID())
	})

	t.Run("metadata in a middle section is content", func(t *testing.T) {
		block, ok := PrintMetadata(canonical(3))
		require.True(t, ok)
		text := block + SectionSeparator + "Summary"
		body := Parse(text)
		assert.Equal(t, []string{block, "Summary"}, body.Sections)
		assert.True(t, body.Metadata.IsDefault())
	})

	t.Run("collapsible list written by people is content", func(t *testing.T) {
		logs := "<details><summary>Logs</summary>\r\n<ul>\r\n<li>panic: nil map</li>\r\n</ul>\r\n</details>"
		text := "Steps to reproduce" + SectionSeparator + logs
		body := Parse(text)
		assert.Equal(t, []string{"Steps to reproduce", logs}, body.Sections)
		assert.True(t, body.Metadata.IsDefault())
		assert.Equal(t, text, Print(body))

		body.Metadata.SetCanonicalID(5)
		reparsed := Parse(Print(body))
		assert.Equal(t, []string{"Steps to reproduce", logs}, reparsed.Sections)
		assert.Equal(t, 5, reparsed.Metadata.GetCanonicalID())
	})

	t.Run("corrupted canonical id is dropped", func(t *testing.T) {
		text := "Summary" + SectionSeparator +
			`<details><summary>Issue metadata</summary><ul><li data-canonical-id="forty">Canonical link</li></ul></details>`
		body := Parse(text)
		assert.Equal(t, []string{"Summary"}, body.Sections)
		assert.True(t, body.Metadata.IsDefault())
	})
}

func TestPrint(t *testing.T) {
	t.Run("default metadata is omitted", func(t *testing.T) {
		body := model.IssueBody{Sections: []string{"one", "two"}}
		text := Print(body)
		assert.Equal(t, "one\r\n---\r\ntwo", text)
		assert.NotContains(t, text, doNotEditMarker)
		assert.True(t, Parse(text).Metadata.IsDefault())
	})

	t.Run("metadata is appended after the marker", func(t *testing.T) {
		body := model.IssueBody{Sections: []string{"one"}, Metadata: canonical(9)}
		text := Print(body)
		parts := strings.Split(text, SectionSeparator)
		require.Len(t, parts, 2)
		assert.Equal(t, "one", parts[0])
		assert.True(t, strings.HasPrefix(parts[1], doNotEditMarker+"\r\n<details>"))
		assert.Contains(t, parts[1], `data-canonical-id="9"`)
	})

	t.Run("print does not modify the input sections", func(t *testing.T) {
		sections := make([]string, 1, 4)
		sections[0] = "one"
		body := model.IssueBody{Sections: sections, Metadata: canonical(9)}
		Print(body)
		assert.Equal(t, []string{"one", "", "", ""}, sections[:4])
	})
}

func TestRoundTrip(t *testing.T) {
	bodies := []model.IssueBody{
		{Sections: []string{"Summary"}, Metadata: canonical(1)},
		{Sections: []string{"Summary", "", "Details with\r\nnewlines"}, Metadata: canonical(42)},
		{Sections: []string{"<details><summary>Logs</summary>trace</details>"}, Metadata: canonical(7)},
		{Sections: []string{"<details><summary>Logs</summary><ul><li>trace</li></ul></details>"}, Metadata: canonical(8)},
		{Metadata: canonical(100000)},
	}

	for _, body := range bodies {
		assert.Equal(t, body, Parse(Print(body)))
	}

	t.Run("default metadata", func(t *testing.T) {
		body := model.IssueBody{Sections: []string{"Summary", "Details"}}
		assert.Equal(t, body, Parse(Print(body)))
	})

	t.Run("printing a parsed body is stable", func(t *testing.T) {
		text := Print(model.IssueBody{Sections: []string{"a", "b"}, Metadata: canonical(5)})
		assert.Equal(t, text, Print(Parse(text)))
	})
}
