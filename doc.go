// Package btcfolio computes profit and loss reports of bitcoin portfolios.
//
// A Report is a named list of investments, realized profits or losses and
// withdrawals, each an amount of BTC (or satoshis) on a day. To value a
// report:
//   - Entries validates the records and sorts them chronologically; invalid
//     records are set aside as DataErrors, never fatal.
//   - Normalize prices every entry at the BTC closing price of its day, in
//     USD and in the display currency, using a PriceOracle. Missing quotes
//     are resolved by a GapPolicy.
//   - A Ledger replays the resulting Buy and Sell operations with the
//     weighted average cost method, and accumulates the realized profit.
//   - MonthlyBreakdowns folds the operations month by month, carrying the
//     position over from one month to the next.
//
// Calculator runs the whole pipeline for a report, Compare puts several
// reports side by side. Contribution statistics (NewReportStats) only use
// BTC amounts and need no price.
//
// All computations are pure functions of their inputs: reports are never
// modified, and the same inputs always give the same result.
package btcfolio
