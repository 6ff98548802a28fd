// Package models defines the data structures shared by the importer pipeline.
package models

// SourceRecord is one email export read from the source directory.
// Any of the fields may be absent; absent fields decode to "".
type SourceRecord struct {
	HTML    string `json:"html"`
	Date    string `json:"date"`
	Subject string `json:"subject"`
}
