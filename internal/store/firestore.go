package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/castlemilk/pfinsight/internal/insights"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	transactionsCollection  = "transactions"
	categoriesCollection    = "categories"
	balanceSheetsCollection = "balanceSheets"
)

// FirestoreStore implements the Store interface using Firestore
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{
		client: client,
	}
}

// applyDateAwarePagination orders by Date then document ID, which Firestore
// requires when Date carries a range filter. The cursor must include both the
// Date value and the document ID.
func (s *FirestoreStore) applyDateAwarePagination(ctx context.Context, query firestore.Query, collection string, pageSize int32, pageToken string) (firestore.Query, error) {
	query = query.OrderBy("Date", firestore.Asc).OrderBy(firestore.DocumentID, firestore.Asc)

	if pageToken != "" {
		docID, err := DecodePageToken(pageToken)
		if err != nil {
			return query, fmt.Errorf("invalid page token: %w", err)
		}
		cursorDoc, err := s.client.Collection(collection).Doc(docID).Get(ctx)
		if err != nil {
			return query, fmt.Errorf("failed to fetch cursor document: %w", err)
		}
		dateVal := cursorDoc.Data()["Date"]
		query = query.StartAfter(dateVal, docID)
	}

	if pageSize <= 0 {
		pageSize = 100
	}
	query = query.Limit(int(pageSize) + 1) // +1 to detect next page
	return query, nil
}

// CreateTransaction stores a transaction, assigning a document ID if needed.
func (s *FirestoreStore) CreateTransaction(ctx context.Context, txn *insights.Transaction) error {
	if err := insights.ValidateTransaction(*txn); err != nil {
		return err
	}

	ref := s.client.Collection(transactionsCollection).NewDoc()
	if txn.ID != "" {
		ref = s.client.Collection(transactionsCollection).Doc(txn.ID)
	}
	txn.ID = ref.ID
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}

	if _, err := ref.Set(ctx, txn); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransaction retrieves a transaction from Firestore
func (s *FirestoreStore) GetTransaction(ctx context.Context, txnID string) (*insights.Transaction, error) {
	doc, err := s.client.Collection(transactionsCollection).Doc(txnID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("transaction %s: %w", txnID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	var txn insights.Transaction
	if err := doc.DataTo(&txn); err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	return &txn, nil
}

// DeleteTransaction removes a transaction from Firestore
func (s *FirestoreStore) DeleteTransaction(ctx context.Context, txnID string) error {
	if _, err := s.client.Collection(transactionsCollection).Doc(txnID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// ListTransactions lists a user's transactions ordered by date
func (s *FirestoreStore) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*insights.Transaction, string, error) {
	query := s.client.Collection(transactionsCollection).Query

	// NOTE: Field names follow the firestore struct tags on insights.Transaction
	if userID != "" {
		query = query.Where("UserId", "==", userID)
	}
	if startDate != nil {
		query = query.Where("Date", ">=", *startDate)
	}
	if endDate != nil {
		query = query.Where("Date", "<=", *endDate)
	}

	query, err := s.applyDateAwarePagination(ctx, query, transactionsCollection, pageSize, pageToken)
	if err != nil {
		return nil, "", err
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list transactions: %w", err)
	}

	if pageSize <= 0 {
		pageSize = 100
	}

	var nextPageToken string
	if len(docs) > int(pageSize) {
		docs = docs[:pageSize]
		nextPageToken = EncodePageToken(docs[pageSize-1].Ref.ID)
	}

	txns := make([]*insights.Transaction, 0, len(docs))
	for _, doc := range docs {
		var txn insights.Transaction
		if err := doc.DataTo(&txn); err != nil {
			return nil, "", fmt.Errorf("failed to parse transaction: %w", err)
		}
		txn.ID = doc.Ref.ID
		txns = append(txns, &txn)
	}
	return txns, nextPageToken, nil
}

// UpsertCategory creates or replaces a category
func (s *FirestoreStore) UpsertCategory(ctx context.Context, category *insights.Category) error {
	ref := s.client.Collection(categoriesCollection).NewDoc()
	if category.ID != "" {
		ref = s.client.Collection(categoriesCollection).Doc(category.ID)
	}
	category.ID = ref.ID

	if _, err := ref.Set(ctx, category); err != nil {
		return fmt.Errorf("failed to upsert category: %w", err)
	}
	return nil
}

// ListCategories returns the user's categories
func (s *FirestoreStore) ListCategories(ctx context.Context, userID string) ([]*insights.Category, error) {
	iter := s.client.Collection(categoriesCollection).Where("UserId", "==", userID).Documents(ctx)
	defer iter.Stop()

	var categories []*insights.Category
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		var category insights.Category
		if err := doc.DataTo(&category); err != nil {
			return nil, fmt.Errorf("failed to parse category: %w", err)
		}
		category.ID = doc.Ref.ID
		categories = append(categories, &category)
	}
	return categories, nil
}

// GetBalanceSheet reads the user's balance sheet, keyed by user ID
func (s *FirestoreStore) GetBalanceSheet(ctx context.Context, userID string) (*insights.BalanceSheet, error) {
	doc, err := s.client.Collection(balanceSheetsCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("balance sheet for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get balance sheet: %w", err)
	}

	var sheet insights.BalanceSheet
	if err := doc.DataTo(&sheet); err != nil {
		return nil, fmt.Errorf("failed to parse balance sheet: %w", err)
	}
	return &sheet, nil
}

// UpdateBalanceSheet replaces the user's balance sheet
func (s *FirestoreStore) UpdateBalanceSheet(ctx context.Context, sheet *insights.BalanceSheet) error {
	if sheet.UserID == "" {
		return fmt.Errorf("balance sheet requires a user id")
	}
	if sheet.UpdatedAt.IsZero() {
		sheet.UpdatedAt = time.Now()
	}

	if _, err := s.client.Collection(balanceSheetsCollection).Doc(sheet.UserID).Set(ctx, sheet); err != nil {
		return fmt.Errorf("failed to update balance sheet: %w", err)
	}
	return nil
}
