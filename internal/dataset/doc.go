// Package dataset implements the loading stage of the shopmetrics pipeline:
// reading the six raw CSV source tables, coercing types, joining them into
// the denormalized order-record set, window filtering, per-table
// summarization, and an explicit loaded-dataset cache.
//
// The join establishes the revenue-bearing backbone first (inner join of
// orders and order items) and then enriches it with left joins against
// products, customers, and reviews, so backbone rows are never dropped by
// missing reference data.
//
// A missing or unreadable source file is fatal to the load and surfaces as
// a missing-source error; it is never silently replaced with empty data.
// Malformed field values inside a readable file degrade to null (zero time,
// nil pointer) without failing the row.
package dataset
