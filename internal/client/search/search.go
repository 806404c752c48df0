// Package search filters the cached document list by a free-text query.
package search

import (
	"strings"

	"github.com/dmitrijs2005/docspace/internal/client/models"
)

// Matches reports whether doc contains query, ignoring case, in its title,
// analysis summary or extracted text. An empty query matches every document.
func Matches(doc models.Document, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range []string{doc.Title, doc.AnalysisSummary, doc.ExtractedText} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Filter returns the documents that match query, in their original order.
// The result is always a new slice.
func Filter(docs []models.Document, query string) []models.Document {
	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if Matches(d, query) {
			out = append(out, d)
		}
	}
	return out
}
