// Package output renders group plans, inbound reports, and batch history
// for terminal and machine consumption.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tidygit/tidygit/internal/models"
)

// WritePlan renders the proposed commit groups as a table.
func WritePlan(w io.Writer, groups []models.ChangeGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "Working tree is clean; nothing to commit.")
		return
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"#", "Message", "Files", "Similarity"})

	for i, group := range groups {
		msg := ""
		if group.SuggestedMessage != nil {
			msg = group.SuggestedMessage.Full
		}
		tbl.AppendRow(table.Row{
			i + 1,
			msg,
			strings.Join(group.Paths(), "\n"),
			fmt.Sprintf("%.2f", group.Similarity),
		})
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("%d groups", len(groups)), "", ""})
	tbl.Render()
}

// WriteRecords renders the commits produced by a batch run.
func WriteRecords(w io.Writer, records []models.CommitRecord) {
	for _, r := range records {
		short := r.Hash
		if len(short) > 8 {
			short = short[:8]
		}
		fmt.Fprintf(w, "%s  %s (%d files)\n", short, r.Message, len(r.Files))
	}
}

// WriteJSON renders any value as indented JSON, for --json modes.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
