package dto

// KindStats tallies validation outcomes for one entity kind.
// An entity with errors is counted only under WithErrors.
type KindStats struct {
	Total        int `json:"total"`
	Valid        int `json:"valid"`
	WithWarnings int `json:"withWarnings"`
	WithErrors   int `json:"withErrors"`
}

// ValidationReport is the outcome of a full validation run
type ValidationReport struct {
	Valid      bool                 `json:"valid"`
	Errors     []string             `json:"errors"`
	Warnings   []string             `json:"warnings"`
	Statistics map[string]KindStats `json:"statistics"`
}

// NewValidationReport returns an empty, valid report with zeroed statistics for kinds
func NewValidationReport(kinds []string) *ValidationReport {
	stats := make(map[string]KindStats, len(kinds))
	for _, k := range kinds {
		stats[k] = KindStats{}
	}
	return &ValidationReport{
		Valid:      true,
		Errors:     []string{},
		Warnings:   []string{},
		Statistics: stats,
	}
}

// ErrorCount returns the number of error findings
func (r *ValidationReport) ErrorCount() int { return len(r.Errors) }

// WarningCount returns the number of warning findings
func (r *ValidationReport) WarningCount() int { return len(r.Warnings) }
