// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/mattermost/mattermost-server/v6/model"
	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/pkg/errors"
)

const (
	// mutexTableName is created by the migrations.
	mutexTableName = "db_lock"

	// minWaitInterval is the minimum amount of time to wait between locking attempts
	minWaitInterval = 1 * time.Second

	// maxWaitInterval is the maximum amount of time to wait between locking attempts
	maxWaitInterval = 5 * time.Minute

	// pollWaitInterval is the usual time to wait between unsuccessful locking attempts
	pollWaitInterval = 1 * time.Second

	// jitterWaitInterval is the amount of jitter to add when waiting to avoid thundering herds
	jitterWaitInterval = minWaitInterval / 2

	// lockTTL is the interval after which a held lock expires unless refreshed
	lockTTL = 15 * time.Second

	// refreshInterval is the interval on which a held lock is refreshed
	refreshInterval = lockTTL / 2
)

// ErrLockLost is returned when the lock expired and was taken over by
// another holder.
var ErrLockLost = errors.New("mutex is held by another owner")

// nextWaitInterval determines how long to wait until the next lock retry.
func nextWaitInterval(lastWaitInterval time.Duration, err error) time.Duration {
	next := lastWaitInterval
	if next <= 0 {
		next = minWaitInterval
	}

	if err != nil {
		next *= 2
		if next > maxWaitInterval {
			next = maxWaitInterval
		}
	} else {
		next = pollWaitInterval
	}

	next += time.Duration(rand.Int63n(int64(jitterWaitInterval)) - int64(jitterWaitInterval)/2) //nolint: gosec

	return next
}

// Mutex is a lock held in the database, so it is shared by every instance
// pointed at the same schema. A held Mutex is refreshed in the background and
// expires if its holder dies.
//
// A Mutex must not be copied after first use.
type Mutex struct {
	noCopy
	key string
	db  *sql.DB

	// owner identifies this holder in the lock row.
	owner string

	// lock guards the refresh task, it is not the database lock.
	lock        sync.Mutex
	stopRefresh chan struct{}
	refreshDone chan struct{}
}

// NewMutex creates a mutex with the given key name.
func NewMutex(key string, db *sql.DB) (*Mutex, error) {
	if key == "" {
		return nil, errors.New("mutex key must not be empty")
	}
	return &Mutex{key: key, db: db, owner: model.NewId()}, nil
}

// tryLock makes a single attempt to take the lock, either by inserting the
// key or by taking over an expired holder.
func (m *Mutex) tryLock(ctx context.Context) (bool, error) {
	now := time.Now()
	expireAt := now.Add(lockTTL).Unix()

	insert := fmt.Sprintf("INSERT IGNORE INTO %s (Id, Owner, ExpireAt) VALUES (?, ?, ?)", mutexTableName)
	res, err := m.db.ExecContext(ctx, insert, m.key, m.owner, expireAt)
	if err != nil {
		return false, errors.Wrap(err, "failed to insert mutex")
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return true, nil
	}

	takeover := fmt.Sprintf("UPDATE %s SET Owner = ?, ExpireAt = ? WHERE Id = ? AND ExpireAt < ?", mutexTableName)
	res, err = m.db.ExecContext(ctx, takeover, m.owner, expireAt, m.key, now.Unix())
	if err != nil {
		return false, errors.Wrap(err, "failed to take over expired mutex")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		mlog.Debug("Mutex is held, waiting", mlog.String("key", m.key))
	}
	return n == 1, nil
}

// refreshLock extends the lock while this holder still owns it.
func (m *Mutex) refreshLock(ctx context.Context) error {
	query := fmt.Sprintf("UPDATE %s SET ExpireAt = ? WHERE Id = ? AND Owner = ?", mutexTableName)
	res, err := m.db.ExecContext(ctx, query, time.Now().Add(lockTTL).Unix(), m.key, m.owner)
	if err != nil {
		return errors.Wrap(err, "unable to refresh mutex")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLockLost
	}
	return nil
}

// Lock locks m unless the context is canceled. If the mutex is held by any
// instance, including this one, Lock blocks until it can be taken.
//
// The mutex is locked only if a nil error is returned.
func (m *Mutex) Lock(ctx context.Context) error {
	var waitInterval time.Duration
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitInterval):
		}

		ok, err := m.tryLock(ctx)
		if err == nil && ok {
			break
		}
		waitInterval = nextWaitInterval(waitInterval, err)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTicker(refreshInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				if err := m.refreshLock(context.Background()); err != nil {
					mlog.Warn("Failed to refresh mutex", mlog.String("key", m.key), mlog.Err(err))
				}
			case <-stop:
				return
			}
		}
	}()

	m.lock.Lock()
	m.stopRefresh = stop
	m.refreshDone = done
	m.lock.Unlock()

	return nil
}

// Unlock releases m. It panics if m is not locked.
func (m *Mutex) Unlock() error {
	m.lock.Lock()
	if m.stopRefresh == nil {
		m.lock.Unlock()
		panic("mutex has not been acquired")
	}

	close(m.stopRefresh)
	<-m.refreshDone
	m.stopRefresh = nil
	m.refreshDone = nil
	m.lock.Unlock()

	// If the delete fails the lock still expires after lockTTL. A lock taken
	// over by another holder is left to it.
	query := fmt.Sprintf("DELETE FROM %s WHERE Id = ? AND Owner = ?", mutexTableName)
	res, err := m.db.Exec(query, m.key, m.owner)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLockLost
	}
	return nil
}

// noCopy may be embedded into structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock() {}
