package insights

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidDateRange is returned when a range starts after it ends.
	ErrInvalidDateRange = errors.New("start date is after end date")
	// ErrInvalidAmount is returned for negative, NaN or infinite amounts.
	ErrInvalidAmount = errors.New("amount must be a finite non-negative number")
	// ErrInvalidTransactionType is returned when a transaction is neither income nor expense.
	ErrInvalidTransactionType = errors.New("transaction type must be income or expense")
)

// ValidateTransaction checks the amount and type of a single transaction.
func ValidateTransaction(t Transaction) error {
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount < 0 {
		return fmt.Errorf("transaction %s: %w", t.ID, ErrInvalidAmount)
	}
	if t.Type != TransactionTypeIncome && t.Type != TransactionTypeExpense {
		return fmt.Errorf("transaction %s: %w", t.ID, ErrInvalidTransactionType)
	}
	return nil
}

// ValidateTransactions returns the first validation failure in txns, if any.
func ValidateTransactions(txns []Transaction) error {
	for _, t := range txns {
		if err := ValidateTransaction(t); err != nil {
			return err
		}
	}
	return nil
}
