// Copyright (c) 2024-2026 CuraVoice
//
// Licensed under GPL-2.0.
package internal_calllog

import (
	"context"
	"fmt"

	"github.com/curavoice/pkg/commons"
	"github.com/curavoice/pkg/connectors"
)

// Store persists terminal call outcomes.
type Store interface {
	// Save writes a call record and returns its generated id.
	Save(ctx context.Context, record *CallRecord) (string, error)

	// ListByPhoneNumber returns records for a number, newest first.
	ListByPhoneNumber(ctx context.Context, phoneNumber string, limit int) ([]CallRecord, error)
}

type sqliteStore struct {
	sqlite connectors.SqliteConnector
	logger commons.Logger
}

// NewStore creates a call log store on the sqlite connector and migrates
// the call_records table.
func NewStore(sqlite connectors.SqliteConnector, logger commons.Logger) (Store, error) {
	if err := sqlite.DB(context.Background()).AutoMigrate(&CallRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate call_records: %w", err)
	}
	return &sqliteStore{sqlite: sqlite, logger: logger}, nil
}

func (s *sqliteStore) Save(ctx context.Context, record *CallRecord) (string, error) {
	db := s.sqlite.DB(ctx)
	if err := db.Create(record).Error; err != nil {
		return "", fmt.Errorf("failed to save call record for %s: %w", record.PhoneNumber, err)
	}

	s.logger.Debugf("saved call record: id=%s, phone=%s, status=%s", record.Id, record.PhoneNumber, record.Status)
	return record.Id, nil
}

func (s *sqliteStore) ListByPhoneNumber(ctx context.Context, phoneNumber string, limit int) ([]CallRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	db := s.sqlite.DB(ctx)
	var records []CallRecord
	err := db.Where("phone_number = ?", phoneNumber).
		Order("created_date DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list call records for %s: %w", phoneNumber, err)
	}
	return records, nil
}
