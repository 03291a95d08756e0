// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"io"
)

// Issue is the cached mirror of one tracker issue.
type Issue struct {
	RepoOwner string
	RepoName  string
	Number    int
	Body      IssueBody
}

// IssueBody is the parsed form of an issue description: the human authored
// sections plus the trailing machine generated metadata block.
type IssueBody struct {
	Sections []string      `json:"sections"`
	Metadata IssueMetadata `json:"metadata"`
}

// IssueMetadata holds the structured fields embedded in an issue body.
// A nil field means the value is absent.
type IssueMetadata struct {
	CanonicalID *int `json:"canonicalId"`
}

func (m *IssueMetadata) GetCanonicalID() int {
	if m == nil || m.CanonicalID == nil {
		return 0
	}
	return *m.CanonicalID
}

func (m *IssueMetadata) SetCanonicalID(id int) {
	if id <= 0 {
		m.CanonicalID = nil
		return
	}
	m.CanonicalID = &id
}

// IsDefault reports whether there is nothing to record for this issue.
func (m IssueMetadata) IsDefault() bool {
	return m.CanonicalID == nil
}

// Value stores the body as a JSON document column.
func (b IssueBody) Value() (driver.Value, error) {
	buf, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan loads a JSON document column into the body.
func (b *IssueBody) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var source []byte
	switch t := value.(type) {
	case []byte:
		source = t
	case string:
		source = []byte(t)
	default:
		return errors.New("could not deserialize issue body from db field")
	}

	return json.Unmarshal(source, b)
}

func (o *Issue) ToJSON() (string, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func IssueFromJSON(data io.Reader) (*Issue, error) {
	var issue Issue
	err := json.NewDecoder(data).Decode(&issue)
	if err != nil {
		return nil, err
	}

	return &issue, nil
}
