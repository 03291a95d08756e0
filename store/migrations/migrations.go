// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

// Package migrations embeds the SQL schema migrations of the store.
package migrations

import "embed"

//go:embed *.sql
var Assets embed.FS
