// Package zakah provides the calculation and persistence engine for a
// multi-person Zakah (almsgiving) tracker. It is designed to be
// local-first and auditable: all data lives in a single human-readable
// JSON document on disk, and every computed figure can be traced back
// to user-entered holdings, prices and exchange rates.
//
// The core functionalities include:
//   - Money Conversion: normalizing cash balances held in arbitrary
//     currencies into a single base currency using a user-maintained
//     exchange-rate table.
//   - Metal Valuation: pricing gold and silver holdings of varying
//     purity from per-gram market prices, with optional per-karat
//     price overrides for gold.
//   - Zakah Calculation: aggregating all holdings into total wealth,
//     comparing it against the Nisab threshold (85 grams of 24k gold)
//     and deriving the 2.5% obligation, the amount already paid and
//     the amount remaining.
//   - Data Persistence: a versioned multi-person document store with
//     automatic, one-way migration from the legacy single-person
//     format, plus backup import/export in both formats.
//
// This package serves as the foundational logic for the `zkt`
// command-line tool; presentation layers consume the Store's derived
// State and CalculationResult and never touch the document directly.
package zakah
