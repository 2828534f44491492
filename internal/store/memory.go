package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/castlemilk/pfinsight/internal/insights"
	"github.com/google/uuid"
)

// MemoryStore implements Store interface with in-memory storage
type MemoryStore struct {
	mu sync.RWMutex

	transactions  map[string]*insights.Transaction
	categories    map[string]*insights.Category
	balanceSheets map[string]*insights.BalanceSheet
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions:  make(map[string]*insights.Transaction),
		categories:    make(map[string]*insights.Category),
		balanceSheets: make(map[string]*insights.BalanceSheet),
	}
}

// paginateKeys applies cursor-based pagination to a slice of sort keys.
// Returns the paginated keys and the next page token (empty if no more pages).
func paginateKeys(keys []string, pageSize int32, pageToken string) ([]string, string) {
	if pageSize <= 0 {
		pageSize = 100
	}

	sort.Strings(keys)

	// Find cursor position
	startIdx := 0
	if pageToken != "" {
		cursor, err := DecodePageToken(pageToken)
		if err == nil {
			startIdx = sort.Search(len(keys), func(i int) bool { return keys[i] > cursor })
			if startIdx == len(keys) {
				return nil, ""
			}
		}
	}

	keys = keys[startIdx:]

	var nextToken string
	if int32(len(keys)) > pageSize {
		nextToken = EncodePageToken(keys[pageSize-1])
		keys = keys[:pageSize]
	}

	return keys, nextToken
}

// transactionSortKey orders transactions by date, then id.
func transactionSortKey(txn *insights.Transaction) string {
	return txn.Date.UTC().Format("20060102T150405.000000000") + "|" + txn.ID
}

func copyTransaction(txn *insights.Transaction) *insights.Transaction {
	c := *txn
	return &c
}

// Transaction operations

func (m *MemoryStore) CreateTransaction(ctx context.Context, txn *insights.Transaction) error {
	if err := insights.ValidateTransaction(*txn); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}

	m.transactions[txn.ID] = copyTransaction(txn)
	return nil
}

func (m *MemoryStore) GetTransaction(ctx context.Context, txnID string) (*insights.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	txn, ok := m.transactions[txnID]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", txnID, ErrNotFound)
	}
	return copyTransaction(txn), nil
}

func (m *MemoryStore) DeleteTransaction(ctx context.Context, txnID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.transactions, txnID)
	return nil
}

func (m *MemoryStore) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*insights.Transaction, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// First pass: collect matching sort keys
	byKey := make(map[string]*insights.Transaction)
	var keys []string
	for _, txn := range m.transactions {
		if userID != "" && txn.UserID != userID {
			continue
		}
		if startDate != nil && txn.Date.Before(*startDate) {
			continue
		}
		if endDate != nil && txn.Date.After(*endDate) {
			continue
		}
		key := transactionSortKey(txn)
		byKey[key] = txn
		keys = append(keys, key)
	}

	page, nextToken := paginateKeys(keys, pageSize, pageToken)
	result := make([]*insights.Transaction, 0, len(page))
	for _, key := range page {
		result = append(result, copyTransaction(byKey[key]))
	}
	return result, nextToken, nil
}

// Category operations

func (m *MemoryStore) UpsertCategory(ctx context.Context, category *insights.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	c := *category
	m.categories[category.ID] = &c
	return nil
}

func (m *MemoryStore) ListCategories(ctx context.Context, userID string) ([]*insights.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*insights.Category
	for _, category := range m.categories {
		if userID != "" && category.UserID != userID && category.UserID != "" {
			continue
		}
		c := *category
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Balance sheet operations

func (m *MemoryStore) GetBalanceSheet(ctx context.Context, userID string) (*insights.BalanceSheet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sheet, ok := m.balanceSheets[userID]
	if !ok {
		return nil, fmt.Errorf("balance sheet for user %s: %w", userID, ErrNotFound)
	}
	s := *sheet
	return &s, nil
}

func (m *MemoryStore) UpdateBalanceSheet(ctx context.Context, sheet *insights.BalanceSheet) error {
	if sheet.UserID == "" {
		return fmt.Errorf("balance sheet requires a user id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if sheet.UpdatedAt.IsZero() {
		sheet.UpdatedAt = time.Now()
	}
	s := *sheet
	m.balanceSheets[sheet.UserID] = &s
	return nil
}
