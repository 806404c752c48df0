package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/docspace/internal/client/models"
	"github.com/dustin/go-humanize"
)

// now is a seam for relative times in listings.
var now = time.Now

const previewLen = 60

func printDocuments(w io.Writer, docs []models.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tUPLOADED\tPREVIEW")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, d.DisplayTitle(), uploaded(d.UploadedAt), preview(d))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%s document(s)\n", humanize.Comma(int64(len(docs))))
}

func printDocument(w io.Writer, d models.Document) {
	fmt.Fprintf(w, "ID:       %s\n", d.ID)
	fmt.Fprintf(w, "Title:    %s\n", d.DisplayTitle())
	fmt.Fprintf(w, "Uploaded: %s\n", uploaded(d.UploadedAt))
	if d.AnalysisSummary != "" {
		fmt.Fprintf(w, "Analysis: %s\n", d.AnalysisSummary)
	}
	fmt.Fprintln(w, "Text:")
	if d.ExtractedText == "" {
		fmt.Fprintln(w, "  (no text extracted)")
		return
	}
	fmt.Fprintln(w, d.ExtractedText)
}

func printProfile(w io.Writer, p models.UserProfile) {
	fmt.Fprintf(w, "Username: %s\n", p.Username)
	if p.Email != "" {
		fmt.Fprintf(w, "Email:    %s\n", p.Email)
	}
	fmt.Fprintf(w, "User ID:  %s\n", p.ID)
}

func uploaded(ts models.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return humanize.RelTime(ts.Time, now(), "ago", "from now")
}

func preview(d models.Document) string {
	s := d.AnalysisSummary
	if s == "" {
		s = d.ExtractedText
	}
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > previewLen {
		return string(r[:previewLen-3]) + "..."
	}
	return s
}
