package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResourceID неизменяемый идентификатор типа токена (ресурса).
type ResourceID string

type ResourceKind string

const (
	ResourceFungible    ResourceKind = "fungible"
	ResourceNonFungible ResourceKind = "non_fungible"
)

// Resources идентификаторы ресурсов, с которыми работает автомат. Staff пустой, если автомат создан
// без бейджей персонала.
type Resources struct {
	Product ResourceID
	Payment ResourceID
	Admin   ResourceID
	Staff   ResourceID
}

// HasStaff сообщает, создан ли автомат с типом бейджа персонала.
func (r Resources) HasStaff() bool {
	return r.Staff != ""
}

// Machine состояние автомата в хранилище.
type Machine struct {
	ID                uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Flavor            string
	Price             decimal.Decimal
	Resources         Resources
	Inventory         decimal.Decimal
	Treasury          decimal.Decimal
	ProductSupply     decimal.Decimal
	StaffBadgesIssued uint64
	DefaultDecision   DecisionType
	RulesUpdatable    bool
	Rules             map[Operation]RuleSpec
	// MintRule правило минта продукта на уровне ресурса, фиксируется при создании автомата.
	MintRule RuleSpec
}

// JournalEntry запись журнала изменений состояния автомата.
type JournalEntry struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	MachineID uuid.UUID
	Kind      JournalKindType
	Resource  ResourceID
	Amount    decimal.Decimal
	Details   string
	Status    ExportStatusType
	Attempts  uint
}

// StaffBadge выданный бейдж персонала.
type StaffBadge struct {
	MachineID uuid.UUID
	LocalID   uint64
	Identity  string
	CreatedAt time.Time
}
