package service

import (
	"errors"
	"fmt"
	"time"

	"connectrpc.com/connect"
	"github.com/castlemilk/pfinsight/internal/store"
)

// maxRangeDays bounds explicit date ranges on analytics requests.
const maxRangeDays = 366

// ledgerPageSize is the page size used when reading a user's whole ledger.
const ledgerPageSize int32 = 500

// RequireUserID returns an invalid-argument error when the request names no user.
func RequireUserID(userID string) error {
	if userID == "" {
		return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("user_id is required"))
	}
	return nil
}

// ValidateDateRange checks that start is not after end and that the range is at
// most maxRangeDays long. Only the calendar dates are compared.
func ValidateDateRange(start, end time.Time) error {
	from, to := calendarDate(start), calendarDate(end)
	if from.After(to) {
		return connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("start_date must not be after end_date"))
	}
	if to.Sub(from).Hours()/24 > maxRangeDays {
		return connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("date range must not exceed %d days", maxRangeDays))
	}
	return nil
}

// calendarDate returns midnight UTC of t's calendar date.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizePageSize returns a valid page size (default 100, max 1000)
func NormalizePageSize(pageSize int32) int32 {
	if pageSize <= 0 {
		return 100
	}
	if pageSize > 1000 {
		return 1000
	}
	return pageSize
}

// WrapStoreError wraps store errors with operation context and a connect code
func WrapStoreError(operation string, err error) error {
	if err == nil {
		return nil
	}
	code := connect.CodeInternal
	if errors.Is(err, store.ErrNotFound) {
		code = connect.CodeNotFound
	}
	return connect.NewError(code, fmt.Errorf("failed to %s: %w", operation, err))
}
