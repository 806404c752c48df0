package models

import "encoding/json"

// DefaultTitle is shown for documents uploaded without a title.
const DefaultTitle = "Untitled"

// Document is one analysed upload as reported by the service.
// Optional fields are empty strings when the service omits them.
type Document struct {
	ID              ID        `json:"doc_id"`
	Title           string    `json:"title,omitempty"`
	UploadedAt      Timestamp `json:"upload_date"`
	ExtractedText   string    `json:"extracted_text,omitempty"`
	AnalysisSummary string    `json:"analysis,omitempty"`
}

// DisplayTitle returns the title, or DefaultTitle when it is empty.
func (d Document) DisplayTitle() string {
	if d.Title == "" {
		return DefaultTitle
	}
	return d.Title
}

// UnmarshalJSON also accepts the alternative keys "id", "uploaded_at" and
// "analysis_summary".
func (d *Document) UnmarshalJSON(b []byte) error {
	var w struct {
		DocID           ID        `json:"doc_id"`
		ID              ID        `json:"id"`
		Title           *string   `json:"title"`
		UploadDate      Timestamp `json:"upload_date"`
		UploadedAt      Timestamp `json:"uploaded_at"`
		ExtractedText   *string   `json:"extracted_text"`
		Analysis        *string   `json:"analysis"`
		AnalysisSummary *string   `json:"analysis_summary"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*d = Document{ID: w.DocID, UploadedAt: w.UploadDate}
	if d.ID == "" {
		d.ID = w.ID
	}
	if d.UploadedAt.IsZero() {
		d.UploadedAt = w.UploadedAt
	}
	d.Title = deref(w.Title)
	d.ExtractedText = deref(w.ExtractedText)
	d.AnalysisSummary = deref(w.Analysis)
	if d.AnalysisSummary == "" {
		d.AnalysisSummary = deref(w.AnalysisSummary)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// UploadRequest is a file the user wants analysed. MimeType is the declared
// type and may be empty, in which case it is sniffed from Data.
type UploadRequest struct {
	Title    string
	FileName string
	MimeType string
	Data     []byte
}

// SizeBytes is the payload size.
func (r UploadRequest) SizeBytes() int64 { return int64(len(r.Data)) }
