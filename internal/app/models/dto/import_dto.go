package dto

// ImportResult summarizes one donor CSV ingestion run. Skipped counts
// rows whose donor already existed; Errors carries per-row failures.
type ImportResult struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// ImportPreviewRow is one extracted donor annotated with what an import
// would do with it.
type ImportPreviewRow struct {
	Row      int    `json:"row"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Housing  string `json:"housing,omitempty"`
	GradYear string `json:"gradYear,omitempty"`
	Valid    bool   `json:"valid"`
	Exists   bool   `json:"exists"`
	Error    string `json:"error,omitempty"`
}

// ImportPreviewResult is the dry-run response for a donor CSV.
type ImportPreviewResult struct {
	Total  int                `json:"total"`
	Format string             `json:"format"`
	Rows   []ImportPreviewRow `json:"rows"`
}
