package output

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/tidygit/tidygit/internal/models"
)

// WriteBatches renders past batch runs, newest last.
func WriteBatches(w io.Writer, batches []models.BatchRecord) {
	if len(batches) == 0 {
		fmt.Fprintln(w, "No batch history recorded yet.")
		return
	}

	for _, batch := range batches {
		id := batch.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(w, "%s  %s  branch %s, %d commits\n",
			id, humanize.Time(batch.Timestamp), batch.Branch, len(batch.Commits))
		for _, c := range batch.Commits {
			short := c.Hash
			if len(short) > 8 {
				short = short[:8]
			}
			fmt.Fprintf(w, "    %s  %s\n", short, c.Message)
		}
	}
}
