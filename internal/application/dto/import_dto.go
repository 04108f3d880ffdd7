package dto

// ImportSummary resultado de una importación masiva.
type ImportSummary struct {
	Success      bool          `json:"success"`
	Kind         string        `json:"kind"`
	TotalRecords int           `json:"total_records"`
	Imported     int           `json:"imported"`
	Errors       []string      `json:"errors"` // máximo 20
	Details      ImportDetails `json:"details"`
}

// ImportDetails muestras de registros creados y omitidos (máximo 10 cada una).
type ImportDetails struct {
	SampleCreated []string `json:"sample_created"`
	SampleSkipped []string `json:"sample_skipped"`
}
