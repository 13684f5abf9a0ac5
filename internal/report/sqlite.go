package report

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// sqliteSchemaSQL defines the schema of the SQLite report artifact.
// Tables:
//   - requirements, user_stories, test_cases, suites: entity detail rows
//   - requirement_coverage, story_coverage: the traceability link tables
//   - critical_gaps: the critical-gap list
//
// The artifact is a report, not a store: it is rewritten from scratch on
// every run so it can be queried with plain SQL afterwards.
const sqliteSchemaSQL = `
CREATE TABLE requirements (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    type TEXT NOT NULL,
    priority TEXT NOT NULL,
    description TEXT,
    tags TEXT,
    covered INTEGER NOT NULL DEFAULT 0,
    test_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE user_stories (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    covered INTEGER NOT NULL DEFAULT 0,
    test_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE test_cases (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    type TEXT NOT NULL,
    priority TEXT NOT NULL,
    status TEXT,
    suite_id TEXT,
    automated INTEGER NOT NULL DEFAULT 0,
    tags TEXT,
    created_at TEXT NOT NULL
);

CREATE TABLE suites (
    id TEXT PRIMARY KEY,
    title TEXT,
    type TEXT,
    priority TEXT,
    created_at TEXT NOT NULL
);

CREATE TABLE requirement_coverage (
    requirement_id TEXT NOT NULL,
    test_case_id TEXT NOT NULL,
    PRIMARY KEY (requirement_id, test_case_id)
);

CREATE TABLE story_coverage (
    story_id TEXT NOT NULL,
    test_case_id TEXT NOT NULL,
    PRIMARY KEY (story_id, test_case_id)
);

CREATE TABLE critical_gaps (
    kind TEXT NOT NULL,
    requirement_id TEXT NOT NULL,
    title TEXT
);

CREATE INDEX idx_req_cov_test ON requirement_coverage(test_case_id);
CREATE INDEX idx_story_cov_test ON story_coverage(test_case_id);
`

func (g *Generator) writeSQLite(data *Data) error {
	path := filepath.Join(g.outputDir, FileSQLite)

	// Fresh artifact per run.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return &GenerationError{Artifact: path, Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &GenerationError{Artifact: path, Err: err}
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchemaSQL); err != nil {
		return &GenerationError{Artifact: path, Err: err}
	}

	tx, err := db.Begin()
	if err != nil {
		return &GenerationError{Artifact: path, Err: err}
	}
	if err := insertReportRows(tx, data); err != nil {
		tx.Rollback()
		return &GenerationError{Artifact: path, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &GenerationError{Artifact: path, Err: err}
	}
	return nil
}

func insertReportRows(tx *sql.Tx, data *Data) error {
	for _, req := range data.Details.Requirements {
		_, err := tx.Exec(`
			INSERT INTO requirements (id, title, type, priority, description, tags, covered, test_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			req.ID, req.Title, req.Type.String(), req.Priority.String(),
			req.Description, strings.Join(req.Tags, ","),
			boolToInt(req.Coverage.Covered), req.Coverage.Count)
		if err != nil {
			return err
		}
		for _, tcID := range req.Coverage.Tests {
			if _, err := tx.Exec(`
				INSERT INTO requirement_coverage (requirement_id, test_case_id)
				VALUES (?, ?)`, req.ID, tcID); err != nil {
				return err
			}
		}
	}

	for _, us := range data.Details.UserStories {
		_, err := tx.Exec(`
			INSERT INTO user_stories (id, title, description, covered, test_count)
			VALUES (?, ?, ?, ?, ?)`,
			us.ID, us.Title, us.Description,
			boolToInt(us.Coverage.Covered), us.Coverage.Count)
		if err != nil {
			return err
		}
		for _, tcID := range us.Coverage.Tests {
			if _, err := tx.Exec(`
				INSERT INTO story_coverage (story_id, test_case_id)
				VALUES (?, ?)`, us.ID, tcID); err != nil {
				return err
			}
		}
	}

	for _, tc := range data.Details.TestCases {
		_, err := tx.Exec(`
			INSERT INTO test_cases (id, title, type, priority, status, suite_id, automated, tags, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			tc.ID, tc.Title, tc.Type.String(), tc.Priority.String(),
			tc.Status.String(), tc.SuiteID, boolToInt(tc.Automated),
			strings.Join(tc.Tags, ","), tc.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	for _, su := range data.Details.Suites {
		_, err := tx.Exec(`
			INSERT INTO suites (id, title, type, priority, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			su.ID, su.Title, su.Type.String(), su.Priority.String(),
			su.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	for _, gap := range data.CriticalGaps {
		_, err := tx.Exec(`
			INSERT INTO critical_gaps (kind, requirement_id, title)
			VALUES (?, ?, ?)`,
			string(gap.Kind), gap.RequirementID, gap.Title)
		if err != nil {
			return err
		}
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
