package models

// ImportRowError reports why one CSV line was skipped. Row is the 1-based line number.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult is returned by a CSV inventory import.
type ImportResult struct {
	ProcessedCount int              `json:"processed_count"`
	FramesCreated  int              `json:"frames_created"`
	Errors         []ImportRowError `json:"errors"`
}
