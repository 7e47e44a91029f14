// Package dataprocessing reshapes a raw spectrometer dump into tables.
//
// A dump is the nested record the instrument's dumper writes: a
// line-definition section, and a list of probes, each holding replicate
// measurements ("parallels") with one reading per spectral line. The Parser
// owns such a record and derives the tables on demand:
//
//	line           one row per line definition
//	index          one row per (probe, parallel) pair
//	intensity      per-replicate intensity, one column per line id
//	active         per-replicate activity flag, same shape as intensity
//	concentration  one row per probe, one column per chemical element
//	filename       stem of the stored file path
//	filepath       stored file path
//	skipped        probes left out because they have no parallels
//
// # Caching
//
// Each table is derived at most once. The first call computes it, later
// calls return the same value (same pointer for pointer tables) or the same
// error. Derivation is guarded per table, so a Parser may be shared between
// goroutines.
//
// # Errors
//
// A probe without parallels is not an error: it is recorded in the skipped
// table and, in verbose mode, logged once. A field missing from the record
// yields a MISSING_FIELD error and a field of the wrong type a
// MALFORMED_FIELD error; both name the field path, for example
// Probe[2].Parallel[0].Column[5].Intensity.
//
// # Usage
//
//	p := dataprocessing.NewParser(record, dataprocessing.Options{Verbose: true})
//	lines, err := p.Line()
//	if err != nil {
//	    return err
//	}
//	active, err := p.Active()
package dataprocessing
