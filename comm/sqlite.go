// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/google/uuid"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// sqlSchema holds the tables of the SQLite datastore. Many runs may share one file
const sqlSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	last_db_tag INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS records (
	run_id     TEXT    NOT NULL REFERENCES runs(id),
	kind       TEXT    NOT NULL,
	db_tag     INTEGER NOT NULL,
	commit_tag INTEGER NOT NULL,
	size       INTEGER NOT NULL,
	ints       TEXT    NOT NULL,
	floats     TEXT    NOT NULL,
	PRIMARY KEY (run_id, kind, db_tag, commit_tag, size)
);`

// OpenSQLite opens (or creates) a SQLite file
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, chk.Err("cannot create directory for database %q:\n%v", dbPath, err)
	}
	dsn := io.Sf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// SQLDb implements a database of records in SQLite
type SQLDb struct {
	db    *sql.DB // connection
	RunId string  // identifier of run; all records are stored under this id
}

// NewSQLDb creates the tables if needed and registers the run.
//  runId -- existent run to continue (e.g. when restoring) or "" for a new run
func NewSQLDb(ctx context.Context, db *sql.DB, runId string) (o *SQLDb, err error) {
	if _, err = db.ExecContext(ctx, sqlSchema); err != nil {
		return nil, chk.Err("cannot apply datastore schema:\n%v", err)
	}
	if runId == "" {
		runId = uuid.NewString()
	} else if _, err = uuid.Parse(runId); err != nil {
		return nil, chk.Err("run id %q is invalid:\n%v", runId, err)
	}
	_, err = db.ExecContext(ctx, `INSERT OR IGNORE INTO runs (id) VALUES (?)`, runId)
	if err != nil {
		return nil, chk.Err("cannot register run %q:\n%v", runId, err)
	}
	return &SQLDb{db: db, RunId: runId}, nil
}

// Put stores record
func (o *SQLDb) Put(rec *Record) (err error) {
	ints, err := json.Marshal(rec.Ints)
	if err != nil {
		return
	}
	floats, err := json.Marshal(rec.Floats)
	if err != nil {
		return
	}
	_, err = o.db.ExecContext(context.Background(), `
		INSERT OR REPLACE INTO records (run_id, kind, db_tag, commit_tag, size, ints, floats)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.RunId, rec.Kind, rec.DbTag, rec.CommitTag, rec.Size(), string(ints), string(floats))
	if err != nil {
		return chk.Err("cannot store %q record {dbTag=%d, commitTag=%d}:\n%v", rec.Kind, rec.DbTag, rec.CommitTag, err)
	}
	return
}

// Get returns record
func (o *SQLDb) Get(key Key) (rec *Record, err error) {
	row := o.db.QueryRowContext(context.Background(), `
		SELECT ints, floats FROM records
		WHERE run_id = ? AND kind = ? AND db_tag = ? AND commit_tag = ? AND size = ?`,
		o.RunId, key.Kind, key.DbTag, key.CommitTag, key.Size)
	var ints, floats string
	if err = row.Scan(&ints, &floats); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, chk.Err("cannot find %q record {dbTag=%d, commitTag=%d, size=%d} in run %q", key.Kind, key.DbTag, key.CommitTag, key.Size, o.RunId)
		}
		return nil, err
	}
	rec = &Record{Kind: key.Kind, DbTag: key.DbTag, CommitTag: key.CommitTag}
	if err = json.Unmarshal([]byte(ints), &rec.Ints); err != nil {
		return nil, chk.Err("corrupted integer data in %q record {dbTag=%d, commitTag=%d}:\n%v", key.Kind, key.DbTag, key.CommitTag, err)
	}
	if err = json.Unmarshal([]byte(floats), &rec.Floats); err != nil {
		return nil, chk.Err("corrupted real data in %q record {dbTag=%d, commitTag=%d}:\n%v", key.Kind, key.DbTag, key.CommitTag, err)
	}
	return
}

// NextDbTag allocates a new database tag within this run
func (o *SQLDb) NextDbTag() (tag int, err error) {
	row := o.db.QueryRowContext(context.Background(),
		`UPDATE runs SET last_db_tag = last_db_tag + 1 WHERE id = ? RETURNING last_db_tag`, o.RunId)
	err = row.Scan(&tag)
	return
}

// Runs returns the ids of all runs in the database, oldest first
func Runs(ctx context.Context, db *sql.DB) (ids []string, err error) {
	rows, err := db.QueryContext(ctx, `SELECT id FROM runs ORDER BY created_at, rowid`)
	if err != nil {
		return
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
