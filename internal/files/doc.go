// Package files provides file system discovery utilities for the
// shopmetrics pipeline.
//
// Discovery locates the six source CSV tables in a configured directory,
// enumerates generated report files and per-run report directories, and
// includes helpers for selecting the latest file or filtering by
// modification time.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//
//	// Map logical table names to their files
//	tables, err := discovery.FindSourceTables("sources")
//
//	// List previous report runs
//	runs, err := discovery.ListDirectories("reports")
package files
