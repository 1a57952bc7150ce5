// Package card builds Lark interactive-card payloads.
//
// Block constructors return plain key-value trees matching the card wire
// schema, and CardBuilder layers a fluent, stateful API on top: append body
// blocks in order, open and close at most one column set at a time, then
// Build the finished document. Builder misuse (a column operation without an
// open set, or finalizing with one still open) is recorded as a StateError at
// the offending call and surfaced by Build and Err.
//
// A CardBuilder is meant to be populated and consumed within one call stack;
// it is not safe for concurrent mutation.
package card
