package ledger

import (
	"fmt"

	"github.com/fsdevblog/gumball-machine/internal/access"
	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/shopspring/decimal"
)

// MintOperation имя операции в ошибке отказа политики минта.
const MintOperation domain.Operation = "mint"

// ResourceManager политика ресурса: минт разрешен только при выполнении mintRule, независимо от
// правил компонента, который вызывает минт.
type ResourceManager struct {
	id           domain.ResourceID
	kind         domain.ResourceKind
	divisibility int32
	mintRule     access.Rule
	totalSupply  decimal.Decimal
	lastLocalID  uint64
}

func NewFungible(id domain.ResourceID, divisibility int32, mintRule access.Rule) *ResourceManager {
	return &ResourceManager{
		id:           id,
		kind:         domain.ResourceFungible,
		divisibility: divisibility,
		mintRule:     mintRule,
		totalSupply:  decimal.Zero,
	}
}

func NewNonFungible(id domain.ResourceID, mintRule access.Rule) *ResourceManager {
	return &ResourceManager{
		id:           id,
		kind:         domain.ResourceNonFungible,
		divisibility: 0,
		mintRule:     mintRule,
		totalSupply:  decimal.Zero,
	}
}

// WithSupply восстанавливает уже выпущенный объем.
func (m *ResourceManager) WithSupply(supply decimal.Decimal, lastLocalID uint64) *ResourceManager {
	m.totalSupply = supply
	m.lastLocalID = lastLocalID
	return m
}

func (m *ResourceManager) ID() domain.ResourceID {
	return m.id
}

func (m *ResourceManager) Divisibility() int32 {
	return m.divisibility
}

func (m *ResourceManager) TotalSupply() decimal.Decimal {
	return m.totalSupply
}

func (m *ResourceManager) LastLocalID() uint64 {
	return m.lastLocalID
}

func (m *ResourceManager) MintRule() access.Rule {
	return m.mintRule
}

// Mint выпускает amount новых взаимозаменяемых токенов.
func (m *ResourceManager) Mint(amount decimal.Decimal, c access.Credentials) (Bucket, error) {
	if m.kind != domain.ResourceFungible {
		return Bucket{}, fmt.Errorf("mint `%s`: resource is not fungible", m.id)
	}
	if !m.mintRule.Allows(c) {
		return Bucket{}, fmt.Errorf("mint `%s`: %w", m.id, domain.NewAuthorizationError(MintOperation))
	}
	if !ValidAmount(amount, m.divisibility) {
		return Bucket{}, fmt.Errorf("mint %s of `%s`: %w", amount, m.id, domain.ErrInvalidAmount)
	}
	m.totalSupply = m.totalSupply.Add(amount)
	return NewBucket(m.id, amount), nil
}

// MintNonFungible выпускает один экземпляр с очередным локальным идентификатором.
func (m *ResourceManager) MintNonFungible(identity string, c access.Credentials) (NonFungible, error) {
	if m.kind != domain.ResourceNonFungible {
		return NonFungible{}, fmt.Errorf("mint `%s`: resource is fungible", m.id)
	}
	if !m.mintRule.Allows(c) {
		return NonFungible{}, fmt.Errorf("mint `%s`: %w", m.id, domain.NewAuthorizationError(MintOperation))
	}
	m.lastLocalID++
	m.totalSupply = m.totalSupply.Add(decimal.NewFromInt(1))
	return NonFungible{Resource: m.id, LocalID: m.lastLocalID, Identity: identity}, nil
}

func (m *ResourceManager) Clone() *ResourceManager {
	c := *m
	return &c
}
