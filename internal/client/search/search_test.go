package search

import (
	"testing"

	"github.com/dmitrijs2005/docspace/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var docs = []models.Document{
	{ID: "1", Title: "Invoice March", AnalysisSummary: "total 120 EUR"},
	{ID: "2", Title: "Receipt", ExtractedText: "coffee and INVOICE number"},
	{ID: "3", Title: ""},
	{ID: "4", Title: "Photo", AnalysisSummary: "a cat"},
}

func ids(ds []models.Document) []models.ID {
	out := make([]models.ID, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.ID)
	}
	return out
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name  string
		doc   models.Document
		query string
		want  bool
	}{
		{"empty query", models.Document{}, "", true},
		{"title case-insensitive", docs[0], "invoice", true},
		{"analysis", docs[0], "EUR", true},
		{"extracted text", docs[1], "Invoice", true},
		{"absent fields", docs[2], "x", false},
		{"no match", docs[3], "dog", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.doc, tt.query))
		})
	}
}

func TestFilter(t *testing.T) {
	got := Filter(docs, "invoice")
	if diff := cmp.Diff([]models.ID{"1", "2"}, ids(got)); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, ids(got), ids(Filter(got, "invoice")), "idempotent")
	assert.Equal(t, ids(docs), ids(Filter(docs, "")), "empty query keeps order")
	assert.Empty(t, Filter(docs, "nothing"))
	assert.NotNil(t, Filter(nil, ""))
}

func TestFilter_NewSlice(t *testing.T) {
	in := []models.Document{{ID: "a", Title: "x"}}
	out := Filter(in, "")
	out[0].Title = "changed"
	assert.Equal(t, "x", in[0].Title)
}
