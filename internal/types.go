package internal

import "time"

// RunRecord is one persisted rewrite.
type RunRecord struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	SourceText    string    `json:"source_text"`
	ResultText    string    `json:"result_text"`
	Seed          int64     `json:"seed"`
	Toolkit       string    `json:"toolkit"`
	OriginalWords int       `json:"original_words"`
	ResultWords   int       `json:"result_words"`
	Timestamp     time.Time `json:"timestamp"`
}
