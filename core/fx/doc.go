// Package fx fetches the exchange rates used to convert marketplace prices
// into euros.
//
// The ETH rate comes from CoinGecko and the USD and GBP rates from
// exchangerate-api. Both are fetched concurrently. A failed or malformed
// response never fails the caller: the affected rates fall back to fixed
// values and a warning is logged.
//
// Rates are fetched at most once per Provider. Concurrent callers share the
// same in-flight request.
package fx
