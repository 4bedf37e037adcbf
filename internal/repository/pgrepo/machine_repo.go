package pgrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const machineColumns = `id, created_at, updated_at, flavor, price,
	product_resource, payment_resource, admin_resource, staff_resource,
	inventory, treasury, product_supply, staff_badges_issued,
	default_decision, rules_updatable, rules, mint_rule`

type MachineRepository struct {
	conn uow.DBTX
}

func NewMachineRepository(conn uow.DBTX) *MachineRepository {
	return &MachineRepository{conn: conn}
}

func (r *MachineRepository) Create(ctx context.Context, m domain.Machine) (*domain.Machine, error) {
	rules, mintRule, encErr := encodeRules(m)
	if encErr != nil {
		return nil, convertErr(encErr, "encoding rules of machine %s", m.ID)
	}

	row := r.conn.QueryRow(ctx, `
		INSERT INTO machines (
			id, flavor, price, product_resource, payment_resource, admin_resource, staff_resource,
			inventory, treasury, product_supply, staff_badges_issued,
			default_decision, rules_updatable, rules, mint_rule
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+machineColumns,
		m.ID, m.Flavor, m.Price,
		string(m.Resources.Product), string(m.Resources.Payment), string(m.Resources.Admin), string(m.Resources.Staff),
		m.Inventory, m.Treasury, m.ProductSupply, int64(m.StaffBadgesIssued), //nolint:gosec
		string(m.DefaultDecision), m.RulesUpdatable, rules, mintRule,
	)

	created, err := scanMachine(row)
	if err != nil {
		return nil, convertErr(err, "creating machine %s", m.ID)
	}
	return created, nil
}

func (r *MachineRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Machine, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+machineColumns+` FROM machines WHERE id = $1`, id)
	m, err := scanMachine(row)
	if err != nil {
		return nil, convertErr(err, "getting machine %s", id)
	}
	return m, nil
}

// GetForUpdate блокирует строку автомата до конца транзакции. Вызовы одного автомата выполняются
// последовательно.
func (r *MachineRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Machine, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+machineColumns+` FROM machines WHERE id = $1 FOR UPDATE`, id)
	m, err := scanMachine(row)
	if err != nil {
		return nil, convertErr(err, "locking machine %s", id)
	}
	return m, nil
}

// Save сохраняет изменяемую часть состояния. Ресурсы и правило минта после создания не меняются.
func (r *MachineRepository) Save(ctx context.Context, m domain.Machine) (*domain.Machine, error) {
	rules, _, encErr := encodeRules(m)
	if encErr != nil {
		return nil, convertErr(encErr, "encoding rules of machine %s", m.ID)
	}

	row := r.conn.QueryRow(ctx, `
		UPDATE machines SET
			price = $2, inventory = $3, treasury = $4, product_supply = $5, staff_badges_issued = $6,
			rules = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+machineColumns,
		m.ID, m.Price, m.Inventory, m.Treasury, m.ProductSupply, int64(m.StaffBadgesIssued), rules, //nolint:gosec
	)

	saved, err := scanMachine(row)
	if err != nil {
		return nil, convertErr(err, "saving machine %s", m.ID)
	}
	return saved, nil
}

func encodeRules(m domain.Machine) ([]byte, []byte, error) {
	specs := m.Rules
	if specs == nil {
		specs = map[domain.Operation]domain.RuleSpec{}
	}
	rules, rulesErr := json.Marshal(specs)
	if rulesErr != nil {
		return nil, nil, fmt.Errorf("marshal rules: %w", rulesErr)
	}
	mintRule, mintErr := json.Marshal(m.MintRule)
	if mintErr != nil {
		return nil, nil, fmt.Errorf("marshal mint rule: %w", mintErr)
	}
	return rules, mintRule, nil
}

func scanMachine(row pgx.Row) (*domain.Machine, error) {
	var (
		m                              domain.Machine
		product, payment, admin, staff string
		decision                       string
		staffIssued                    int64
		rules, mintRule                []byte
	)
	if err := row.Scan(
		&m.ID, &m.CreatedAt, &m.UpdatedAt, &m.Flavor, &m.Price,
		&product, &payment, &admin, &staff,
		&m.Inventory, &m.Treasury, &m.ProductSupply, &staffIssued,
		&decision, &m.RulesUpdatable, &rules, &mintRule,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}

	m.Resources = domain.Resources{
		Product: domain.ResourceID(product),
		Payment: domain.ResourceID(payment),
		Admin:   domain.ResourceID(admin),
		Staff:   domain.ResourceID(staff),
	}
	m.DefaultDecision = domain.DecisionType(decision)
	m.StaffBadgesIssued = uint64(staffIssued) //nolint:gosec

	if err := json.Unmarshal(rules, &m.Rules); err != nil {
		return nil, fmt.Errorf("unmarshal rules: %w", err)
	}
	if err := json.Unmarshal(mintRule, &m.MintRule); err != nil {
		return nil, fmt.Errorf("unmarshal mint rule: %w", err)
	}
	return &m, nil
}
