package domain

import (
	"time"
)

// TableSummary describes one loaded source table
type TableSummary struct {
	Name          string         `json:"name"`
	Rows          int            `json:"rows"`
	Columns       int            `json:"columns"`
	MissingValues map[string]int `json:"missing_values,omitempty"`
}

// DatasetSummary describes a loaded dataset: one entry per source table
// plus the purchase-timestamp range observed in the orders table.
type DatasetSummary struct {
	GeneratedAt time.Time      `json:"generated_at"`
	SourceDir   string         `json:"source_dir"`
	Tables      []TableSummary `json:"tables"`
	DateFrom    time.Time      `json:"date_from,omitempty"`
	DateTo      time.Time      `json:"date_to,omitempty"`
}

// Table returns the summary for a named table, or nil if absent
func (s *DatasetSummary) Table(name string) *TableSummary {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}
