package dataprocessing

import (
	"log/slog"

	apperrors "spectrumloader/internal/errors"
	"spectrumloader/pkg/contracts/domain"
)

const skipReason = "no parallel measurements"

// measuredProbe is a probe that has at least one parallel.
type measuredProbe struct {
	name      string
	parallels []record
}

// partition splits the probes into measured and skipped ones. It is shared
// by every probe-derived table, so each skip is reported once per dump.
type partition struct {
	measured []measuredProbe
	skipped  domain.SkippedProbes
}

func (p *Parser) partition() (*partition, error) {
	return p.probes.get(p.partitionProbes)
}

func (p *Parser) partitionProbes() (*partition, error) {
	probes, err := p.root.Records("Probe")
	if err != nil {
		return nil, err
	}

	part := &partition{}
	for i, probe := range probes {
		parallels, err := probe.OptionalRecords("Parallel")
		if err != nil {
			return nil, err
		}

		if len(parallels) == 0 {
			// the name is informational here, so a missing one is tolerated
			name, _ := probe.String("ProbeName")
			part.skipped = append(part.skipped, domain.SkippedProbe{
				Position:  i,
				ProbeName: name,
				Reason:    skipReason,
			})
			p.reportSkipped(name, i)
			continue
		}

		name, err := probe.String("ProbeName")
		if err != nil {
			return nil, err
		}
		part.measured = append(part.measured, measuredProbe{name: name, parallels: parallels})
	}
	return part, nil
}

func (p *Parser) reportSkipped(name string, position int) {
	if p.recorder != nil {
		p.recorder.ObserveSkippedProbe()
	}
	if !p.verbose {
		return
	}
	err := apperrors.NewMissingReplicateError(name, position)
	p.logger.Warn("probe skipped",
		slog.String("probe_name", name),
		slog.Int("probe_position", position),
		slog.String("error", err.Error()))
}

func (p *Parser) parseIndex() (*domain.IndexTable, error) {
	part, err := p.partition()
	if err != nil {
		return nil, err
	}

	table := &domain.IndexTable{Rows: []domain.ProbeKey{}}
	for _, probe := range part.measured {
		for _, parallel := range probe.parallels {
			name, err := parallel.String("ParallelName")
			if err != nil {
				return nil, err
			}
			table.Rows = append(table.Rows, domain.ProbeKey{ProbeName: probe.name, ParallelName: name})
		}
	}
	return table, nil
}
