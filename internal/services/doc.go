// Package services orchestrates the shopmetrics pipeline: source
// validation, cached dataset loading, window filtering, metric
// calculation for the current and optional comparison period, and report
// export in the requested formats.
package services
