// Package vending компонент торгового автомата: продает продукт за фиксированную цену в платежном
// токене, позволяет администратору выводить выручку, менять цену и пополнять запас.
//
// Machine не безопасен для конкурентного использования: вызовы одного автомата сериализует хост
// (сервисный слой). Каждая операция атомарна: при ошибке состояние возвращается к исходному.
package vending

import (
	"fmt"
	"time"

	"github.com/fsdevblog/gumball-machine/internal/access"
	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/internal/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultInitialStock    = 100
	DefaultRestockQuantity = 100
	adminBadgeSupply       = 1
)

// Params параметры создания автомата.
type Params struct {
	Price           decimal.Decimal
	Flavor          string
	PaymentResource domain.ResourceID
	InitialStock    decimal.Decimal
	Profile         access.Profile
}

// Machine компонент автомата.
type Machine struct {
	id        uuid.UUID
	createdAt time.Time
	flavor    string
	resources domain.Resources
	price     decimal.Decimal
	inventory *ledger.Vault
	treasury  *ledger.Vault
	products  *ledger.ResourceManager
	staff     *ledger.ResourceManager
	policy    *access.Policy
}

// Instantiate создает автомат, выпускает admin бейдж (единственный экземпляр) и начальный запас
// продукта. Бейдж возвращается вызывающему.
func Instantiate(p Params) (*Machine, ledger.Bucket, error) {
	if err := checkPrice(p.Price); err != nil {
		return nil, ledger.Bucket{}, fmt.Errorf("instantiate: %w", err)
	}
	if p.PaymentResource == "" {
		return nil, ledger.Bucket{}, fmt.Errorf("instantiate: payment resource is not set")
	}

	resources := domain.Resources{
		Product: ledger.NewResourceID(),
		Payment: p.PaymentResource,
		Admin:   ledger.NewResourceID(),
	}
	if p.Profile.Staff {
		resources.Staff = ledger.NewResourceID()
	}
	aliases := access.AliasesFor(resources)

	policy, policyErr := p.Profile.Policy(aliases)
	if policyErr != nil {
		return nil, ledger.Bucket{}, fmt.Errorf("instantiate: %w", policyErr)
	}
	mintRule, mintRuleErr := access.Compile(p.Profile.MintRule, aliases)
	if mintRuleErr != nil {
		return nil, ledger.Bucket{}, fmt.Errorf("instantiate: mint rule: %w", mintRuleErr)
	}

	m := &Machine{
		id:        uuid.New(),
		createdAt: time.Now(),
		flavor:    p.Flavor,
		resources: resources,
		price:     p.Price,
		inventory: ledger.NewVault(resources.Product, ledger.ProductDivisibility),
		treasury:  ledger.NewVault(resources.Payment, ledger.PaymentDivisibility),
		products:  ledger.NewFungible(resources.Product, ledger.ProductDivisibility, mintRule),
		policy:    policy,
	}
	if resources.HasStaff() {
		m.staff = ledger.NewNonFungible(resources.Staff, access.Require(resources.Admin))
	}

	adminBadge := ledger.NewBucket(resources.Admin, decimal.NewFromInt(adminBadgeSupply))

	// начальный запас выпускается от имени только что созданного admin бейджа.
	stock, mintErr := m.products.Mint(p.InitialStock, access.NewCredentials(resources.Admin))
	if mintErr != nil {
		return nil, ledger.Bucket{}, fmt.Errorf("instantiate: initial stock: %w", mintErr)
	}
	if putErr := m.inventory.Put(stock); putErr != nil {
		return nil, ledger.Bucket{}, fmt.Errorf("instantiate: %w", putErr)
	}

	return m, adminBadge, nil
}

// Restore восстанавливает автомат из сохраненного состояния.
func Restore(rec domain.Machine) (*Machine, error) {
	aliases := access.AliasesFor(rec.Resources)

	rules, rulesErr := access.CompileAll(rec.Rules, aliases)
	if rulesErr != nil {
		return nil, fmt.Errorf("restore machine %s: %w", rec.ID, rulesErr)
	}
	mintRule, mintRuleErr := access.Compile(rec.MintRule, aliases)
	if mintRuleErr != nil {
		return nil, fmt.Errorf("restore machine %s: mint rule: %w", rec.ID, mintRuleErr)
	}

	inventory, invErr := ledger.RestoreVault(rec.Resources.Product, ledger.ProductDivisibility, rec.Inventory)
	if invErr != nil {
		return nil, fmt.Errorf("restore machine %s: %w", rec.ID, invErr)
	}
	treasury, trErr := ledger.RestoreVault(rec.Resources.Payment, ledger.PaymentDivisibility, rec.Treasury)
	if trErr != nil {
		return nil, fmt.Errorf("restore machine %s: %w", rec.ID, trErr)
	}

	m := &Machine{
		id:        rec.ID,
		createdAt: rec.CreatedAt,
		flavor:    rec.Flavor,
		resources: rec.Resources,
		price:     rec.Price,
		inventory: inventory,
		treasury:  treasury,
		products: ledger.NewFungible(rec.Resources.Product, ledger.ProductDivisibility, mintRule).
			WithSupply(rec.ProductSupply, 0),
		policy: access.NewPolicy(rec.DefaultDecision, rec.RulesUpdatable, rules),
	}
	if rec.Resources.HasStaff() {
		m.staff = ledger.NewNonFungible(rec.Resources.Staff, access.Require(rec.Resources.Admin)).
			WithSupply(decimal.NewFromInt(int64(rec.StaffBadgesIssued)), rec.StaffBadgesIssued) //nolint:gosec
	}
	return m, nil
}

// Snapshot состояние автомата для сохранения.
func (m *Machine) Snapshot() domain.Machine {
	rec := domain.Machine{
		ID:              m.id,
		CreatedAt:       m.createdAt,
		Flavor:          m.flavor,
		Price:           m.price,
		Resources:       m.resources,
		Inventory:       m.inventory.Amount(),
		Treasury:        m.treasury.Amount(),
		ProductSupply:   m.products.TotalSupply(),
		DefaultDecision: m.policy.DefaultDecision(),
		RulesUpdatable:  m.policy.Updatable(),
		Rules:           m.policy.Specs(),
		MintRule:        m.products.MintRule().Spec(),
	}
	if m.staff != nil {
		rec.StaffBadgesIssued = m.staff.LastLocalID()
	}
	return rec
}

func (m *Machine) ID() uuid.UUID {
	return m.id
}

func (m *Machine) Resources() domain.Resources {
	return m.resources
}

func (m *Machine) Inventory() decimal.Decimal {
	return m.inventory.Amount()
}

func (m *Machine) Treasury() decimal.Decimal {
	return m.treasury.Amount()
}

func (m *Machine) Policy() *access.Policy {
	return m.policy
}

// state копия изменяемой части автомата.
type state struct {
	price     decimal.Decimal
	inventory *ledger.Vault
	treasury  *ledger.Vault
	products  *ledger.ResourceManager
	staff     *ledger.ResourceManager
}

func (m *Machine) checkpoint() state {
	s := state{
		price:     m.price,
		inventory: m.inventory.Clone(),
		treasury:  m.treasury.Clone(),
		products:  m.products.Clone(),
	}
	if m.staff != nil {
		s.staff = m.staff.Clone()
	}
	return s
}

func (m *Machine) rollback(s state) {
	m.price = s.price
	m.inventory = s.inventory
	m.treasury = s.treasury
	m.products = s.products
	m.staff = s.staff
}

// atomically выполняет fn и откатывает все изменения, если fn вернула ошибку.
func (m *Machine) atomically(fn func() error) error {
	cp := m.checkpoint()
	if err := fn(); err != nil {
		m.rollback(cp)
		return err
	}
	return nil
}
