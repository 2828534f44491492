package store

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"github.com/castlemilk/pfinsight/internal/insights"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=store

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the ledger operations used by the insights service
type Store interface {
	// Transaction operations
	CreateTransaction(ctx context.Context, txn *insights.Transaction) error
	GetTransaction(ctx context.Context, txnID string) (*insights.Transaction, error)
	DeleteTransaction(ctx context.Context, txnID string) error
	// ListTransactions returns a user's transactions ordered by date, optionally
	// limited to [startDate, endDate].
	ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*insights.Transaction, string, error)

	// Category operations
	UpsertCategory(ctx context.Context, category *insights.Category) error
	ListCategories(ctx context.Context, userID string) ([]*insights.Category, error)

	// Balance sheet operations
	GetBalanceSheet(ctx context.Context, userID string) (*insights.BalanceSheet, error)
	UpdateBalanceSheet(ctx context.Context, sheet *insights.BalanceSheet) error
}

// EncodePageToken encodes a cursor into a page token.
func EncodePageToken(cursor string) string {
	if cursor == "" {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte(cursor))
}

// DecodePageToken decodes a page token back to a cursor.
func DecodePageToken(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
