// Package services contains server-side business logic: account registration
// and login (UserService) and buy/sell balance adjustments (LedgerService).
package services

import (
	"context"
	"errors"
	"time"

	"github.com/vkazakov/cryptoexchange/internal/common"
)

// storageCtx bounds a storage call with the configured timeout. A zero
// timeout leaves the caller's context as is.
func storageCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// mapStorageErr converts context expiry from a storage call into the
// retryable transient-storage failure kind.
func mapStorageErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return common.ErrTransientStorage
	}
	return err
}
