// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

// Package issuebody splits issue descriptions into the sections written by
// people and the trailing metadata block written by the bot, and joins them
// back together.
package issuebody

import (
	"strings"

	"github.com/mattermost/mattermost-canonical-issues/model"
)

const (
	// SectionSeparator is the horizontal rule GitHub stores between sections.
	SectionSeparator = "\r\n---\r\n"

	doNotEditMarker = "<!-- Generated by mattermost-canonical-issues. Do not edit below this line. -->"
)

// Parse decodes an issue description. The last section becomes the metadata
// when it holds a metadata block; otherwise every section is kept as content
// and the metadata is left at its default. Parse never fails.
func Parse(text string) model.IssueBody {
	sections := strings.Split(text, SectionSeparator)
	last := len(sections) - 1

	meta := ParseMetadata(sections[last])
	if meta == nil {
		return model.IssueBody{Sections: sections}
	}

	body := model.IssueBody{Metadata: *meta}
	// Only the metadata block is present.
	if last > 0 {
		body.Sections = sections[:last:last]
	}
	return body
}

// Print encodes an issue description. Default metadata produces no block.
func Print(body model.IssueBody) string {
	sections := body.Sections
	if block, ok := PrintMetadata(body.Metadata); ok {
		sections = make([]string, 0, len(body.Sections)+1)
		sections = append(sections, body.Sections...)
		sections = append(sections, doNotEditMarker+"\r\n"+block)
	}
	return strings.Join(sections, SectionSeparator)
}
