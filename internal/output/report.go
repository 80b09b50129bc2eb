package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tidygit/tidygit/internal/models"
)

// WriteReport renders an inbound analysis report.
func WriteReport(w io.Writer, report *models.InboundReport) {
	fmt.Fprintf(w, "Inbound analysis for %s/%s\n", report.Remote, report.Branch)
	fmt.Fprintf(w, "%s\n\n", report.Summary.Description)

	if len(report.Conflicts) > 0 {
		tbl := table.NewWriter()
		tbl.SetOutputMirror(w)
		tbl.SetStyle(table.StyleLight)
		tbl.AppendHeader(table.Row{"Path", "Local", "Remote", "Severity", "~Local", "~Remote"})
		for _, c := range report.Conflicts {
			tbl.AppendRow(table.Row{
				c.Path, c.LocalStatus, c.RemoteStatus, c.Severity,
				c.LocalChanges, c.RemoteChanges,
			})
		}
		tbl.Render()
		fmt.Fprintln(w)
	}

	if len(report.Summary.FileTypes) > 0 {
		fmt.Fprint(w, "Inbound file types:")
		exts := make([]string, 0, len(report.Summary.FileTypes))
		for ext := range report.Summary.FileTypes {
			exts = append(exts, ext)
		}
		sort.Strings(exts)
		for _, ext := range exts {
			fmt.Fprintf(w, " %s(%d)", ext, report.Summary.FileTypes[ext])
		}
		fmt.Fprintln(w)
	}

	for _, rec := range report.Summary.Recommendations {
		fmt.Fprintf(w, "  - %s\n", rec)
	}
	fmt.Fprintf(w, "\nDiff: %s\n", report.DiffLink)
}
