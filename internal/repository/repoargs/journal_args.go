package repoargs

import (
	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type JournalCreate struct {
	MachineID uuid.UUID
	Kind      domain.JournalKindType
	Resource  domain.ResourceID
	Amount    decimal.Decimal
	Details   string
}
