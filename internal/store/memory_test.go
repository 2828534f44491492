package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/castlemilk/pfinsight/internal/insights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func seedTransactions(t *testing.T, s *MemoryStore, userID string, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		err := s.CreateTransaction(ctx, &insights.Transaction{
			ID:         fmt.Sprintf("%s-txn-%02d", userID, i),
			UserID:     userID,
			Amount:     float64(10 + i),
			CategoryID: "food",
			Type:       insights.TransactionTypeExpense,
			Date:       day(2024, time.January, 1).AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}
}

func TestMemoryStoreCreateTransaction(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	t.Run("assigns id and created time", func(t *testing.T) {
		txn := &insights.Transaction{
			UserID: "user-1",
			Amount: 42,
			Type:   insights.TransactionTypeIncome,
			Date:   day(2024, time.March, 1),
		}
		require.NoError(t, s.CreateTransaction(ctx, txn))
		assert.NotEmpty(t, txn.ID)
		assert.False(t, txn.CreatedAt.IsZero())

		got, err := s.GetTransaction(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, 42.0, got.Amount)
		assert.Equal(t, "user-1", got.UserID)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		err := s.CreateTransaction(ctx, &insights.Transaction{
			UserID: "user-1",
			Amount: -1,
			Type:   insights.TransactionTypeExpense,
		})
		assert.ErrorIs(t, err, insights.ErrInvalidAmount)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		err := s.CreateTransaction(ctx, &insights.Transaction{
			UserID: "user-1",
			Amount: 1,
			Type:   "transfer",
		})
		assert.ErrorIs(t, err, insights.ErrInvalidTransactionType)
	})

	t.Run("stored copy is isolated from caller", func(t *testing.T) {
		txn := &insights.Transaction{ID: "iso", UserID: "user-1", Amount: 5, Type: insights.TransactionTypeExpense}
		require.NoError(t, s.CreateTransaction(ctx, txn))
		txn.Amount = 500

		got, err := s.GetTransaction(ctx, "iso")
		require.NoError(t, err)
		assert.Equal(t, 5.0, got.Amount)
	})
}

func TestMemoryStoreGetTransactionNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.GetTransaction(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStoreDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seedTransactions(t, s, "user-1", 1)

	require.NoError(t, s.DeleteTransaction(ctx, "user-1-txn-00"))
	_, err := s.GetTransaction(ctx, "user-1-txn-00")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreListTransactions(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seedTransactions(t, s, "user-1", 5)
	seedTransactions(t, s, "user-2", 3)

	t.Run("filters by user and orders by date", func(t *testing.T) {
		txns, next, err := s.ListTransactions(ctx, "user-1", nil, nil, 0, "")
		require.NoError(t, err)
		assert.Empty(t, next)
		require.Len(t, txns, 5)
		for i := 1; i < len(txns); i++ {
			assert.True(t, txns[i-1].Date.Before(txns[i].Date))
		}
		for _, txn := range txns {
			assert.Equal(t, "user-1", txn.UserID)
		}
	})

	t.Run("date range is inclusive", func(t *testing.T) {
		start := day(2024, time.January, 2)
		end := day(2024, time.January, 4)
		txns, _, err := s.ListTransactions(ctx, "user-1", &start, &end, 0, "")
		require.NoError(t, err)
		require.Len(t, txns, 3)
		assert.Equal(t, "user-1-txn-01", txns[0].ID)
		assert.Equal(t, "user-1-txn-03", txns[2].ID)
	})

	t.Run("paginates with page tokens", func(t *testing.T) {
		var ids []string
		token := ""
		pages := 0
		for {
			txns, next, err := s.ListTransactions(ctx, "user-1", nil, nil, 2, token)
			require.NoError(t, err)
			for _, txn := range txns {
				ids = append(ids, txn.ID)
			}
			pages++
			if next == "" {
				break
			}
			token = next
		}
		assert.Equal(t, 3, pages)
		assert.Equal(t, []string{
			"user-1-txn-00", "user-1-txn-01", "user-1-txn-02", "user-1-txn-03", "user-1-txn-04",
		}, ids)
	})

	t.Run("exact page boundary has no next token", func(t *testing.T) {
		txns, next, err := s.ListTransactions(ctx, "user-2", nil, nil, 3, "")
		require.NoError(t, err)
		assert.Len(t, txns, 3)
		assert.Empty(t, next)
	})
}

func TestMemoryStoreCategories(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.UpsertCategory(ctx, &insights.Category{ID: "food", Name: "Food"}))
	require.NoError(t, s.UpsertCategory(ctx, &insights.Category{ID: "pets", UserID: "user-1", Name: "Pets"}))
	require.NoError(t, s.UpsertCategory(ctx, &insights.Category{ID: "boats", UserID: "user-2", Name: "Boats"}))

	categories, err := s.ListCategories(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "food", categories[0].ID)
	assert.Equal(t, "pets", categories[1].ID)

	require.NoError(t, s.UpsertCategory(ctx, &insights.Category{ID: "pets", UserID: "user-1", Name: "Animals"}))
	categories, err = s.ListCategories(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Animals", categories[1].Name)
}

func TestMemoryStoreBalanceSheet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.GetBalanceSheet(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, s.UpdateBalanceSheet(ctx, &insights.BalanceSheet{Savings: 10}))

	require.NoError(t, s.UpdateBalanceSheet(ctx, &insights.BalanceSheet{UserID: "user-1", Savings: 1000, Debt: 250}))
	sheet, err := s.GetBalanceSheet(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, sheet.Savings)
	assert.Equal(t, 250.0, sheet.Debt)
	assert.False(t, sheet.UpdatedAt.IsZero())
}

func TestPageTokenRoundTrip(t *testing.T) {
	token := EncodePageToken("20240101T120000.000000000|abc")
	cursor, err := DecodePageToken(token)
	require.NoError(t, err)
	assert.Equal(t, "20240101T120000.000000000|abc", cursor)

	assert.Empty(t, EncodePageToken(""))
	_, err = DecodePageToken("%%%")
	assert.Error(t, err)
}
