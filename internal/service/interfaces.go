package service

import (
	"context"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/internal/repository/repoargs"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type MachineRepository interface {
	Create(ctx context.Context, machine domain.Machine) (*domain.Machine, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Machine, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Machine, error)
	Save(ctx context.Context, machine domain.Machine) (*domain.Machine, error)
}

type JournalRepository interface {
	Create(ctx context.Context, args repoargs.JournalCreate) (*domain.JournalEntry, error)
	GetByMachineID(ctx context.Context, machineID uuid.UUID, limit uint) ([]domain.JournalEntry, error)
	GetForExport(ctx context.Context, limit uint) ([]domain.JournalEntry, error)
	MarkExported(ctx context.Context, ids []int64, fn repoargs.BatchExecQueryRow)
	IncrementAttempts(ctx context.Context, ids []int64) error
}

type StaffBadgeRepository interface {
	Create(ctx context.Context, badge domain.StaffBadge) (*domain.StaffBadge, error)
}
