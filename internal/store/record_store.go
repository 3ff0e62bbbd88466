// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	upsertRecord = `INSERT INTO records (name, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`

	selectRecord = `SELECT value FROM records WHERE name = ?;`

	deleteRecordsBase = `DELETE FROM records WHERE name IN `
)

type recordStore struct {
	db *DB
}

// NewRecordStore runs migrations and returns a [RecordStore] over the given
// sqlite connection.
func NewRecordStore(db *DB) (RecordStore, error) {
	if db == nil {
		return nil, errors.New("record store: nil db")
	}
	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("record store migrate: %w", err)
	}
	return &recordStore{db: db}, nil
}

func (r *recordStore) Get(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, selectRecord, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get record %q: %w", name, err)
	}
	return value, true, nil
}

func (r *recordStore) Put(ctx context.Context, name, value string) error {
	_, err := r.db.ExecContext(ctx, upsertRecord, name, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("put record %q: %w", name, err)
	}
	return nil
}

func (r *recordStore) Delete(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	query := deleteRecordsBase + "(" + placeholders + ");"

	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	return nil
}
