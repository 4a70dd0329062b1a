// Package price normalizes marketplace amounts into euros.
//
// Amounts arrive from the API in several denominations at once (euro, dollar
// and pound cents, or wei for ETH listings) and in free text when read back
// from the sheet store. This package converts both into a float euro value.
//
// # Conversion
//
//	rates := price.Rates{USDToEUR: 0.92, GBPToEUR: 1.17, ETHToEUR: 3000}
//	eur, ok := price.ToEUR(amounts, rates)
//
// A missing or malformed amount yields ok == false. Zero is a valid amount.
//
// # Parsing
//
// ParsePrice accepts both "1.234,56" and "1,234.56" style strings, deciding
// which separator is the decimal point by whichever appears last.
//
// # Unit correction
//
// Older rows sometimes hold prices that were stored in cents. CorrectUnit
// divides such a value by 100 when it is implausibly large compared to recent
// reference prices.
package price
