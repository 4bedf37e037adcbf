package export

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/internal/service"
	"github.com/fsdevblog/gumball-machine/internal/transport/export/client"
)

type Client interface {
	Send(ctx context.Context, entry client.Entry) error
}

type Servicer interface {
	EntriesForExport(ctx context.Context, limit uint) ([]domain.JournalEntry, error)
	UpdateExported(ctx context.Context, results []service.ExportResult) error
}
