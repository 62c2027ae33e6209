// Package exporter writes shopmetrics report artifacts.
//
// This package contains five writers:
//
// CSVWriter: core CSV writing with headers, streaming, and UTF-8 BOM for
// Excel compatibility, plus the per-metric-group report CSVs.
//
// JSONExporter: the full report as one indented JSON document with a
// metadata envelope.
//
// XLSXExporter: one workbook with a sheet per metric group.
//
// TextExporter: the sectioned, human-readable executive summary with
// compact currency formatting and growth indicators.
//
// SheetsUploader: optional upload of the executive summary table to a
// Google spreadsheet; value marshaling is separated from the network call
// so it is testable offline.
package exporter
