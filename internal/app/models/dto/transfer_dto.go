package dto

// RowError describes a spreadsheet row that could not be imported
type RowError struct {
	Row    int    `json:"row" example:"4"`
	Reason string `json:"reason" example:"marks is not a number"`
}

// ImportReportResponse summarizes a bulk import. Skipped rows are always
// reported; partial success without reporting is not allowed.
type ImportReportResponse struct {
	Created int        `json:"created" example:"10"`
	Skipped int        `json:"skipped" example:"2"`
	Errors  []RowError `json:"errors,omitempty"`
}
