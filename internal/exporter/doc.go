// Package exporter renders dump tables for people and for other tools.
//
// Every table is first flattened into a Grid: a header and rows of cells,
// where a missing value (NaN or an absent measurement) is a nil cell. A Grid
// is then written in one of four formats:
//
//	text  aligned columns for a terminal (text/tabwriter)
//	csv   one file or stream per table, optional UTF-8 BOM for Excel
//	json  {"table": ..., "columns": [...], "rows": [[...]]}, missing cells as null
//	xlsx  one worksheet per table (excelize)
//
// Example usage:
//
//	grid, err := exporter.ToGrid(table)
//	if err != nil {
//	    return err
//	}
//	err = exporter.Write(os.Stdout, exporter.FormatText, grid)
package exporter
