package filestorage

import "context"

// Document is one raw fixture file. Name is the logical collection name,
// the file name without its .json extension.
type Document struct {
	Name string
	Data []byte
}

// DocumentSource supplies fixture documents for ingestion
type DocumentSource interface {
	// ReadDocuments returns every document in a stable order
	ReadDocuments(ctx context.Context) ([]Document, error)
}

// ExportTarget stores serialized export documents
type ExportTarget interface {
	// SaveFile writes data under filename and returns the full path written
	SaveFile(filename string, data []byte) (string, error)
}
