package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/gumball-machine/internal/access"
	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/internal/ledger"
	"github.com/fsdevblog/gumball-machine/internal/service"
	"github.com/fsdevblog/gumball-machine/internal/vending"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MachineServicer интерфейс исключительно для моков.
type MachineServicer interface {
	Instantiate(ctx context.Context, args service.InstantiateArgs) (*domain.Machine, string, error)
	GetMachine(ctx context.Context, id uuid.UUID) (*domain.Machine, error)
	GetPrice(ctx context.Context, id uuid.UUID, c access.Credentials) (decimal.Decimal, error)
	SetPrice(ctx context.Context, id uuid.UUID, c access.Credentials, price decimal.Decimal) (*domain.Machine, error)
	Buy(ctx context.Context, id uuid.UUID, c access.Credentials, payment ledger.Bucket) (*vending.Sale, error)
	Withdraw(ctx context.Context, id uuid.UUID, c access.Credentials, amount *decimal.Decimal) (ledger.Bucket, error)
	Restock(ctx context.Context, id uuid.UUID, c access.Credentials, quantity *decimal.Decimal) (*domain.Machine, error)
	IssueStaffBadge(
		ctx context.Context,
		id uuid.UUID,
		c access.Credentials,
		identity string,
	) (*service.IssuedStaffBadge, error)
	SetRule(
		ctx context.Context,
		id uuid.UUID,
		c access.Credentials,
		op domain.Operation,
		spec domain.RuleSpec,
	) (*domain.Machine, error)
	Journal(ctx context.Context, id uuid.UUID, c access.Credentials, limit uint) ([]domain.JournalEntry, error)
}
