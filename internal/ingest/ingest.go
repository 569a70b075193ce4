// Package ingest models an uploaded document and the MIME sniffing applied at
// the pipeline entrance.
package ingest

import (
	"path/filepath"
	"strings"
)

// MIME types the OCR processor understands; anything unrecognized falls back
// to the generic octet-stream type.
const (
	MIMEJPEG        = "image/jpeg"
	MIMEPNG         = "image/png"
	MIMEPDF         = "application/pdf"
	MIMEOctetStream = "application/octet-stream"
)

// Document is an uploaded file as handed to the pipeline: raw payload, the
// client-declared MIME type (may be empty) and the original file name used as
// a sniffing fallback. Consumed once by the text extractor.
type Document struct {
	Bytes    []byte
	MIMEType string
	FileName string
}

// Empty reports whether the document carries no payload.
func (d *Document) Empty() bool {
	return d == nil || len(d.Bytes) == 0
}

// SniffMIMEType resolves a document's media type. A non-empty declared type
// wins verbatim; otherwise the file extension is matched case-insensitively.
// Total: unknown extensions yield application/octet-stream.
func SniffMIMEType(declared, fileName string) string {
	if declared != "" {
		return declared
	}
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), ".")) {
	case "jpg", "jpeg":
		return MIMEJPEG
	case "png":
		return MIMEPNG
	case "pdf":
		return MIMEPDF
	default:
		return MIMEOctetStream
	}
}
