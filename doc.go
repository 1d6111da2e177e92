// Package analyzer turns a personal investment account's transaction ledger
// and per-fund holdings snapshots into portfolio analytics: reconstructed
// price histories, per-fund and blended yearly returns, money-weighted (IRR)
// performance summaries, and country/sector/company exposure breakdowns.
//
// The engine is a pure function of its file inputs: each run reads the
// transactions CSV (plus the fund reference table), or the holdings cache and
// account valuation CSV, and writes flat CSV tables for an external
// presentation layer. It keeps no state between runs.
package analyzer
