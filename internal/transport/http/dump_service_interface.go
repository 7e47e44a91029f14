package http

import (
	"context"

	"spectrumloader/internal/services"
	"spectrumloader/pkg/contracts/domain"
)

// DumpServiceInterface defines the dump catalog operations the handlers use
type DumpServiceInterface interface {
	List(ctx context.Context) ([]services.DumpSummary, error)
	Describe(ctx context.Context, name string) (*services.DumpDetail, error)
	Table(ctx context.Context, name, table string) (domain.Table, error)
}
