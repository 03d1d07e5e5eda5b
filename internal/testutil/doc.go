// Package testutil provides shared test helpers: descriptor builders and an
// in-process stub agent endpoint used by wire-level tests.
package testutil
