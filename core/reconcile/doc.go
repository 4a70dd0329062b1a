// Package reconcile merges freshly fetched sale events with the history
// already persisted for a work item.
//
// Each work item (a player and rarity pair) has a sales history of at most
// MaxEvents entries. A pass fetches only the most recent sales from the API
// and folds them into that history:
//
//  1. Request size adapts to what is known: a small page when a prior record
//     exists, a larger one on cold start.
//  2. Persisted prices are optionally run through the unit heuristic in
//     package price, using the freshest API prices as reference. When there
//     is no reference price the persisted sales are counted as unverified and
//     left unchanged.
//  3. Fresh and persisted events are unioned, deduplicated by millisecond
//     timestamp (the fresh event wins), sorted newest first and truncated.
//  4. Summarize derives daily counts and trailing-window averages per
//     eligibility flag.
//
// Merging is idempotent: feeding the output back in as the prior record with
// the same fresh events produces the same history.
//
// # Usage
//
//	engine := reconcile.NewEngine(reconcile.DefaultOptions(), logger)
//	merged, err := engine.Reconcile(ctx, key, prior, func(ctx context.Context, limit int) ([]reconcile.SaleEvent, error) {
//	    return client.SaleEvents(ctx, slug, rarity, limit)
//	})
//	summary := reconcile.Summarize(merged.Events, time.Now(), loc)
package reconcile
