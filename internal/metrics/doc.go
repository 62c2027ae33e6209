// Package metrics implements the business-metrics calculator for the
// shopmetrics pipeline.
//
// A Calculator is constructed from one denormalized order-record set and
// partitions it once into the delivered subset (revenue-bearing rows) and
// the full set (operational rows). Every public method is a side-effect-free
// read over those two partitions, so independent callers may use separate
// Calculator instances concurrently without locking.
//
// # Metric Groups
//
// Five independent groups plus a composed executive summary:
//
//  1. Revenue: totals, order-granularity AOV, monthly trend, optional
//     period-over-period growth figures
//  2. Product: per-category revenue with shares, top products
//  3. Geographic: per-state revenue with shares, top cities
//  4. Customer experience: delivery-time statistics and buckets, review
//     statistics, satisfaction by delivery speed
//  5. Operational: status distribution and fulfillment/cancellation/return
//     rates over the unfiltered record set
//
// # Architecture
//
//   - types.go: result structures, JSON-tagged for export
//   - calculator.go: the five metric groups and the executive summary
//   - stats.go: aggregation primitives (mean, median, sample standard
//     deviation, fixed-edge delivery buckets, zero-guarded rates)
//   - trend.go: revenue trend at weekly, monthly, or quarterly granularity
//   - comparator.go: period comparison and previous-window derivation
//
// # Usage Example
//
//	calc := metrics.NewCalculator(records, slog.Default())
//
//	revenue, err := calc.RevenueMetrics(ctx, previousRecords)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	summary, err := calc.ExecutiveSummary(ctx, previousRecords)
//	if errors.IsEmptyDataset(err) {
//	    // the filtered window held no delivered rows
//	}
//
// All growth and rate figures are zero-guarded: when a denominator or a
// previous-period value is zero the result is 0, never NaN or infinity.
package metrics
