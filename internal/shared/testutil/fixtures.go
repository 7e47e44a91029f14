package testutil

import "spectrumloader/pkg/contracts/domain"

// LineDef describes one entry of the dump's line-definition section.
type LineDef struct {
	ID                       int
	Symbol                   string
	Wavelength               float64
	DatabaseIntensity        float64
	DatabaseIonizationDegree int
}

// Measurement is one per-line reading inside a parallel.
type Measurement struct {
	ColumnID      int
	Active        bool
	Concentration float64
	Intensity     float64
}

// LineRecord renders l the way the dumper stores it.
func LineRecord(l LineDef) map[string]any {
	return map[string]any{
		"ColumnID":                 l.ID,
		"ElementShortName":         l.Symbol,
		"Wavelength":               l.Wavelength,
		"DatabaseIntensity":        l.DatabaseIntensity,
		"DatabaseIonizationDegree": l.DatabaseIonizationDegree,
	}
}

// ActiveBytes encodes a flag as the two-byte little-endian group the dumper writes.
func ActiveBytes(active bool) []byte {
	if active {
		return []byte{0x01, 0x00}
	}
	return []byte{0x00, 0x00}
}

// MeasurementRecord renders m the way the dumper stores it.
func MeasurementRecord(m Measurement) map[string]any {
	return map[string]any{
		"ColumnID":      m.ColumnID,
		"Active":        ActiveBytes(m.Active),
		"Concentration": m.Concentration,
		"Intensity":     m.Intensity,
	}
}

// ParallelRecord builds one replicate measurement.
func ParallelRecord(name string, measurements ...Measurement) map[string]any {
	columns := make([]any, len(measurements))
	for i, m := range measurements {
		columns[i] = MeasurementRecord(m)
	}
	return map[string]any{
		"ParallelName": name,
		"Column":       columns,
	}
}

// ProbeRecord builds a probe. With no parallels the Parallel key is omitted,
// which is how the dumper writes a probe that was never measured.
func ProbeRecord(name string, parallels ...map[string]any) map[string]any {
	probe := map[string]any{"ProbeName": name}
	if len(parallels) == 0 {
		return probe
	}
	items := make([]any, len(parallels))
	for i, p := range parallels {
		items[i] = p
	}
	probe["Parallel"] = items
	return probe
}

// RawDump assembles a complete raw record.
func RawDump(filename string, lines []LineDef, probes ...map[string]any) domain.RawRecord {
	defs := make([]any, len(lines))
	for i, l := range lines {
		defs[i] = LineRecord(l)
	}
	items := make([]any, len(probes))
	for i, p := range probes {
		items[i] = p
	}
	return domain.RawRecord{
		"Filename": filename,
		"Columns":  []any{map[string]any{"Column": defs}},
		"Probe":    items,
	}
}

// FeLine is the single iron line used by the reference scenario.
var FeLine = LineDef{ID: 1, Symbol: "Fe", Wavelength: 259.9, DatabaseIntensity: -1, DatabaseIonizationDegree: 1}

// FeScenario is a dump with one iron line and one probe P1 measured once
// (parallel A): active, concentration 2.5, intensity 100.
func FeScenario() domain.RawRecord {
	return RawDump(`C:\Spectra\fe_calibration.pkl`, []LineDef{FeLine},
		ProbeRecord("P1",
			ParallelRecord("A", Measurement{ColumnID: 1, Active: true, Concentration: 2.5, Intensity: 100.0}),
		),
	)
}

// SteelLines has two iron lines, one manganese line and a chromium line
// with both database sentinels set.
var SteelLines = []LineDef{
	{ID: 10, Symbol: "Fe", Wavelength: 259.94, DatabaseIntensity: 1200, DatabaseIonizationDegree: 2},
	{ID: 11, Symbol: "Mn", Wavelength: 293.3, DatabaseIntensity: 400, DatabaseIonizationDegree: 2},
	{ID: 12, Symbol: "Fe", Wavelength: 300, DatabaseIntensity: -1, DatabaseIonizationDegree: 1},
	{ID: 13, Symbol: "Cr", Wavelength: 267.72, DatabaseIntensity: -1, DatabaseIonizationDegree: 0},
}

// SteelScenario is a dump over SteelLines with two measured probes, one probe
// without parallels between them, and a stray column id 99 unknown to the
// line table.
func SteelScenario() domain.RawRecord {
	return RawDump("/data/steel_run.pkl", SteelLines,
		ProbeRecord("S1",
			ParallelRecord("1",
				Measurement{ColumnID: 10, Active: true, Concentration: 97.1, Intensity: 5000},
				Measurement{ColumnID: 11, Active: true, Concentration: 0.8, Intensity: 320},
				Measurement{ColumnID: 12, Active: false, Concentration: 96.5, Intensity: 4100},
				Measurement{ColumnID: 99, Active: true, Concentration: 1, Intensity: 1},
			),
			ParallelRecord("2",
				Measurement{ColumnID: 10, Active: false, Concentration: 50, Intensity: 5100},
				Measurement{ColumnID: 11, Active: true, Concentration: 50, Intensity: 310},
			),
		),
		ProbeRecord("Blank"),
		ProbeRecord("S2",
			ParallelRecord("1",
				Measurement{ColumnID: 12, Active: true, Concentration: 95.2, Intensity: 4200},
				Measurement{ColumnID: 11, Active: false, Concentration: 1.2, Intensity: 330},
				Measurement{ColumnID: 13, Active: true, Concentration: 0.3, Intensity: 80},
			),
		),
	)
}
