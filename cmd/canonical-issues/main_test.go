// Copyright (c) 2015-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInitialiser struct {
	initialiseErr error
	stopErr       error
	stopped       bool
}

func (f *fakeInitialiser) Initialise(context.Context) error {
	return f.initialiseErr
}

func (f *fakeInitialiser) Stop() error {
	f.stopped = true
	return f.stopErr
}

func TestInitialiseOnce(t *testing.T) {
	t.Run("Should succeed when the ids were assigned", func(t *testing.T) {
		s := &fakeInitialiser{}
		require.NoError(t, initialiseOnce(context.Background(), s))
		assert.True(t, s.stopped)
	})

	t.Run("Should report a failed assignment after stopping", func(t *testing.T) {
		s := &fakeInitialiser{initialiseErr: errors.New("sync failed")}
		err := initialiseOnce(context.Background(), s)
		require.Error(t, err)
		assert.Equal(t, "sync failed", err.Error())
		assert.True(t, s.stopped)
	})

	t.Run("Should not fail when only the shutdown fails", func(t *testing.T) {
		s := &fakeInitialiser{stopErr: errors.New("closed")}
		require.NoError(t, initialiseOnce(context.Background(), s))
	})
}
