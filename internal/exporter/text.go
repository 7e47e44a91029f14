package exporter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// missingText is how a missing cell prints in a terminal
const missingText = "NaN"

// WriteText prints each grid as aligned columns under its table name.
func WriteText(w io.Writer, grids ...*Grid) error {
	for i, g := range grids {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s (%d rows)\n", g.Name(), len(g.Rows)); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, strings.Join(g.Header, "\t")+"\t")
		for _, row := range g.Rows {
			cells := make([]string, len(row))
			for j, c := range row {
				cells[j] = formatCell(c, missingText)
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
