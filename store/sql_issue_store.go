// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package store

import (
	"database/sql"

	ms "github.com/go-sql-driver/mysql"
	"github.com/mattermost/mattermost-canonical-issues/model"
	"github.com/pkg/errors"
)

const (
	issuesUniqueIndex = "idx_issues_owner_repo_number"

	// MySQL caps a statement at 65535 placeholders.
	insertBatchSize = 1000

	mysqlErrDupKeyName = 1061
	mysqlErrDupEntry   = 1062
)

type SQLIssueStore struct {
	*SQLStore
}

func NewSQLIssueStore(sqlStore *SQLStore) IssueStore {
	return &SQLIssueStore{sqlStore}
}

// issueRow keeps the canonical ID in its own column. The column is the source
// of truth; the copy inside Body is what people see on the tracker.
type issueRow struct {
	RepoOwner   string          `db:"RepoOwner"`
	RepoName    string          `db:"RepoName"`
	Number      int             `db:"Number"`
	Body        model.IssueBody `db:"Body"`
	CanonicalID sql.NullInt64   `db:"CanonicalID"`
}

func newIssueRow(issue *model.Issue) issueRow {
	row := issueRow{
		RepoOwner: issue.RepoOwner,
		RepoName:  issue.RepoName,
		Number:    issue.Number,
		Body:      issue.Body,
	}
	if id := issue.Body.Metadata.GetCanonicalID(); id > 0 {
		row.CanonicalID = sql.NullInt64{Int64: int64(id), Valid: true}
	}
	return row
}

func (r *issueRow) toIssue() *model.Issue {
	issue := &model.Issue{
		RepoOwner: r.RepoOwner,
		RepoName:  r.RepoName,
		Number:    r.Number,
		Body:      r.Body,
	}
	if r.CanonicalID.Valid {
		issue.Body.Metadata.SetCanonicalID(int(r.CanonicalID.Int64))
	}
	return issue
}

func (s SQLIssueStore) Find(repoOwner, repoName string) ([]*model.Issue, error) {
	var rows []issueRow
	if err := s.dbx.Select(&rows,
		`SELECT
				RepoOwner, RepoName, Number, Body, CanonicalID
			FROM
				Issues
			WHERE
				RepoOwner = ?
				AND RepoName = ?
			ORDER BY Number`, repoOwner, repoName); err != nil {
		return nil, errors.Wrapf(err, "could not find issues: owner=%v, name=%v", repoOwner, repoName)
	}

	issues := make([]*model.Issue, len(rows))
	for i := range rows {
		issues[i] = rows[i].toIssue()
	}
	return issues, nil
}

func (s SQLIssueStore) HasRepository(repoOwner, repoName string) (bool, error) {
	var exists bool
	if err := s.dbx.Get(&exists,
		`SELECT EXISTS(SELECT 1 FROM Issues WHERE RepoOwner = ? AND RepoName = ?)`, repoOwner, repoName); err != nil {
		return false, errors.Wrapf(err, "could not check cached repository: owner=%v, name=%v", repoOwner, repoName)
	}
	return exists, nil
}

// InsertMany writes all issues in one transaction, so a uniqueness violation
// leaves nothing behind.
func (s SQLIssueStore) InsertMany(issues []*model.Issue) error {
	if len(issues) == 0 {
		return nil
	}

	tx, err := s.dbx.Beginx()
	if err != nil {
		return errors.Wrap(err, "could not begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for start := 0; start < len(issues); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(issues) {
			end = len(issues)
		}

		rows := make([]issueRow, 0, end-start)
		for _, issue := range issues[start:end] {
			rows = append(rows, newIssueRow(issue))
		}

		if _, err = tx.NamedExec(
			`INSERT INTO Issues
				(RepoOwner, RepoName, Number, Body, CanonicalID)
			VALUES
				(:RepoOwner, :RepoName, :Number, :Body, :CanonicalID)`, rows); err != nil {
			first := issues[start]
			if isMySQLError(err, mysqlErrDupEntry) {
				return errors.Wrapf(ErrDuplicateIssue, "owner=%v, name=%v: %v", first.RepoOwner, first.RepoName, err)
			}
			return errors.Wrapf(err, "could not insert issues: owner=%v, name=%v", first.RepoOwner, first.RepoName)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "could not commit issues")
	}
	return nil
}

func (s SQLIssueStore) DeleteMany(repoOwner, repoName string) error {
	if _, err := s.dbx.Exec(
		`DELETE FROM Issues WHERE RepoOwner = ? AND RepoName = ?`, repoOwner, repoName); err != nil {
		return errors.Wrapf(err, "could not delete issues: owner=%v, name=%v", repoOwner, repoName)
	}
	return nil
}

func (s SQLIssueStore) EnsureUniqueIndex() error {
	var count int
	if err := s.dbx.Get(&count,
		`SELECT
				COUNT(*)
			FROM
				information_schema.statistics
			WHERE
				table_schema = DATABASE()
				AND table_name = 'Issues'
				AND index_name = ?`, issuesUniqueIndex); err != nil {
		return errors.Wrap(err, "could not look up issue indexes")
	}
	if count > 0 {
		return nil
	}

	if _, err := s.dbx.Exec(
		`CREATE UNIQUE INDEX ` + issuesUniqueIndex + ` ON Issues (RepoOwner, RepoName, Number)`); err != nil {
		// Another instance created it in between.
		if isMySQLError(err, mysqlErrDupKeyName) {
			return nil
		}
		return errors.Wrap(err, "could not create issue unique index")
	}
	return nil
}

func (s SQLIssueStore) SaveCanonicalID(issue *model.Issue) error {
	row := newIssueRow(issue)
	res, err := s.dbx.NamedExec(
		`UPDATE Issues
			SET CanonicalID = :CanonicalID, Body = :Body
			WHERE RepoOwner = :RepoOwner AND RepoName = :RepoName AND Number = :Number`, row)
	if err != nil {
		return errors.Wrapf(err, "could not save canonical id: owner=%v, name=%v, number=%v", issue.RepoOwner, issue.RepoName, issue.Number)
	}

	// Zero affected rows also happens when nothing changed, so only a
	// missing row is an error.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists bool
		if err = s.dbx.Get(&exists,
			`SELECT EXISTS(SELECT 1 FROM Issues WHERE RepoOwner = ? AND RepoName = ? AND Number = ?)`,
			issue.RepoOwner, issue.RepoName, issue.Number); err != nil {
			return errors.Wrap(err, "could not check cached issue")
		}
		if !exists {
			return errors.Errorf("issue is not cached: owner=%v, name=%v, number=%v", issue.RepoOwner, issue.RepoName, issue.Number)
		}
	}
	return nil
}

func isMySQLError(err error, number uint16) bool {
	var mysqlErr *ms.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == number
}
