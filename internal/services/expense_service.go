package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"expenses/internal/cache"
	"expenses/internal/core"
	"expenses/internal/ledger"
	applog "expenses/internal/log"
)

// ExpenseService orchestrates expense operations: validated appends,
// ledger reads and window summaries, with short-lived caches over the
// derived views. Appends purge the caches so reads never go stale.
type ExpenseService struct {
	store        ledger.Store
	listCache    *cache.LRUCache[ledger.LoadResult]
	summaryCache *cache.LRUCache[core.Summary]
}

func NewExpenseService(store ledger.Store, cacheTTL time.Duration) *ExpenseService {
	return &ExpenseService{
		store:        store,
		listCache:    cache.NewLRUCache[ledger.LoadResult](4, cacheTTL),
		summaryCache: cache.NewLRUCache[core.Summary](16, cacheTTL),
	}
}

// CreateExpense validates and appends a record to the ledger.
func (s *ExpenseService) CreateExpense(ctx context.Context, rec core.Record) (string, error) {
	ref, err := s.store.Append(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("append expense: %w", err)
	}

	s.listCache.Purge()
	s.summaryCache.Purge()

	slog.InfoContext(ctx, "Expense created",
		applog.FieldRowRef, ref,
		applog.FieldDate, rec.Date.String(),
		applog.FieldCategory, rec.Category,
		applog.FieldAmount, rec.Amount.Cents)

	return ref, nil
}

// ListExpenses returns all records sorted most recent first, the order
// the table view displays. Ties on the same date keep append order.
func (s *ExpenseService) ListExpenses(ctx context.Context) ([]core.Record, error) {
	res, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.Record, len(res.Records))
	copy(out, res.Records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Date.Before(out[i].Date.Time)
	})
	return out, nil
}

// Summarize computes the window summary anchored at now.
func (s *ExpenseService) Summarize(ctx context.Context, w core.Window, now time.Time) (core.Summary, error) {
	key := string(w) + "@" + core.DateOf(now).String()
	if sum, ok := s.summaryCache.Get(key); ok {
		slog.DebugContext(ctx, "Summary cache hit", applog.FieldWindow, string(w))
		return sum, nil
	}

	res, err := s.load(ctx)
	if err != nil {
		return core.Summary{}, err
	}

	sum := core.Summarize(res.Records, w, now)
	s.summaryCache.Set(key, sum)
	return sum, nil
}

func (s *ExpenseService) load(ctx context.Context) (ledger.LoadResult, error) {
	const key = "ledger"
	if res, ok := s.listCache.Get(key); ok {
		return res, nil
	}

	res, err := s.store.Load(ctx)
	if err != nil {
		return ledger.LoadResult{}, fmt.Errorf("load ledger: %w", err)
	}

	// Skipped rows are surfaced, never silently dropped
	for _, sk := range res.Skipped {
		slog.WarnContext(ctx, "Skipped unparsable ledger row",
			"line", sk.Line,
			"reason", sk.Reason)
	}

	s.listCache.Set(key, res)
	return res, nil
}

// SkippedRows reports rows the last load could not parse.
func (s *ExpenseService) SkippedRows(ctx context.Context) ([]ledger.SkippedRow, error) {
	res, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return res.Skipped, nil
}

// CacheCleaners exposes the service caches for periodic expiry cleanup.
func (s *ExpenseService) CacheCleaners() []cache.Cleaner {
	return []cache.Cleaner{s.listCache, s.summaryCache}
}

// Close releases the underlying store if it holds resources.
func (s *ExpenseService) Close() error {
	if closer, ok := s.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("close store: %w", err)
		}
	}
	return nil
}
