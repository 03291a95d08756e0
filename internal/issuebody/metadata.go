// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package issuebody

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattermost/mattermost-canonical-issues/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	metadataSummary = "Issue metadata"
	dataAttrPrefix  = "data-"
)

// metadataField describes how one metadata field travels through the markup.
// Every field is rendered as its own list entry, so adding a field never
// changes the envelope.
type metadataField struct {
	name   string
	decode func(meta *model.IssueMetadata, value string)
	encode func(meta model.IssueMetadata) (string, bool)
	label  func(value string) string
}

var metadataFields = []metadataField{
	{
		name: "canonical-id",
		decode: func(meta *model.IssueMetadata, value string) {
			meta.CanonicalID = nil
			if id, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && id > 0 {
				meta.CanonicalID = &id
			}
		},
		encode: func(meta model.IssueMetadata) (string, bool) {
			if meta.CanonicalID == nil || *meta.CanonicalID <= 0 {
				return "", false
			}
			return strconv.Itoa(*meta.CanonicalID), true
		},
		label: func(value string) string {
			return fmt.Sprintf(`Canonical link: <a href="#canonical-%s">#%s</a>`, value, value)
		},
	},
}

func lookupField(name string) (metadataField, bool) {
	for _, f := range metadataFields {
		if f.name == name {
			return f, true
		}
	}
	return metadataField{}, false
}

// ParseMetadata reads the metadata list out of a markup fragment. It returns
// nil when the fragment holds no metadata block, which tells the caller the
// fragment is ordinary content. A collapsible list is only a metadata block
// when it follows the do-not-edit marker, carries the metadata summary or
// lists at least one data field, so lists written by people stay content.
// Field values that cannot be decoded are left absent.
func ParseMetadata(fragment string) *model.IssueMetadata {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil
	}

	marked := strings.HasPrefix(strings.TrimSpace(fragment), doNotEditMarker)

	var list *html.Node
	for _, n := range nodes {
		details := findElement(n, atom.Details)
		if details == nil {
			continue
		}
		ul := findElement(details, atom.Ul)
		if ul == nil {
			continue
		}
		if marked || hasMetadataSummary(details) || hasDataField(ul) {
			list = ul
			break
		}
	}
	if list == nil {
		return nil
	}

	meta := &model.IssueMetadata{}
	for item := list.FirstChild; item != nil; item = item.NextSibling {
		if item.Type != html.ElementNode || item.DataAtom != atom.Li {
			continue
		}
		for _, attr := range item.Attr {
			if !strings.HasPrefix(attr.Key, dataAttrPrefix) {
				continue
			}
			// Unknown fields come from newer writers; skip them.
			if field, ok := lookupField(strings.TrimPrefix(attr.Key, dataAttrPrefix)); ok {
				field.decode(meta, attr.Val)
			}
		}
	}
	return meta
}

// PrintMetadata renders the metadata as a collapsible list. The boolean is
// false when no field is present, in which case no block must be written.
func PrintMetadata(meta model.IssueMetadata) (string, bool) {
	var entries []string
	for _, field := range metadataFields {
		value, ok := field.encode(meta)
		if !ok {
			continue
		}
		entries = append(entries, fmt.Sprintf(`<li %s%s="%s">%s</li>`,
			dataAttrPrefix, field.name, html.EscapeString(value), field.label(html.EscapeString(value))))
	}
	if len(entries) == 0 {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString("<details><summary>" + metadataSummary + "</summary>\r\n<ul>\r\n")
	for _, entry := range entries {
		sb.WriteString(entry)
		sb.WriteString("\r\n")
	}
	sb.WriteString("</ul>\r\n</details>")
	return sb.String(), true
}

func hasMetadataSummary(details *html.Node) bool {
	summary := findElement(details, atom.Summary)
	return summary != nil && strings.TrimSpace(textContent(summary)) == metadataSummary
}

func hasDataField(list *html.Node) bool {
	for item := list.FirstChild; item != nil; item = item.NextSibling {
		if item.Type != html.ElementNode || item.DataAtom != atom.Li {
			continue
		}
		for _, attr := range item.Attr {
			if strings.HasPrefix(attr.Key, dataAttrPrefix) {
				return true
			}
		}
	}
	return false
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
