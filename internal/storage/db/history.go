package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"glink/internal/domain"
)

// RecordOperation appends a completed operation to the journal and sets its ID
func (d *DB) RecordOperation(entry *domain.HistoryEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	res, err := d.Exec(`
		INSERT INTO link_history (platform, game, source_path, target_path, direction, action, bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.Platform, entry.Game, entry.SourcePath, entry.TargetPath,
		entry.Direction.String(), entry.Action.String(), entry.Bytes, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("recording operation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading history id: %w", err)
	}
	entry.ID = id
	return nil
}

// History returns the most recent entries first. limit <= 0 returns all.
func (d *DB) History(limit int) ([]domain.HistoryEntry, error) {
	query := `
		SELECT id, platform, game, source_path, target_path, direction, action, bytes, created_at
		FROM link_history
		ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// LastOperation returns the most recent entry for a game, matched
// case-insensitively. Returns nil if the game has no history.
func (d *DB) LastOperation(platform, game string) (*domain.HistoryEntry, error) {
	row := d.QueryRow(`
		SELECT id, platform, game, source_path, target_path, direction, action, bytes, created_at
		FROM link_history
		WHERE platform = ? AND lower(game) = lower(?)
		ORDER BY id DESC
		LIMIT 1
	`, platform, game)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*domain.HistoryEntry, error) {
	var (
		entry     domain.HistoryEntry
		direction string
		action    string
	)
	err := s.Scan(&entry.ID, &entry.Platform, &entry.Game, &entry.SourcePath, &entry.TargetPath,
		&direction, &action, &entry.Bytes, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning history entry: %w", err)
	}

	entry.Direction = domain.ParseDirection(direction)
	entry.Action = domain.ParseAction(action)
	return &entry, nil
}
