package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fsdevblog/gumball-machine/internal/access"
	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/internal/ledger"
	"github.com/fsdevblog/gumball-machine/internal/repository/repoargs"
	"github.com/fsdevblog/gumball-machine/internal/service/tokens"
	"github.com/fsdevblog/gumball-machine/internal/vending"
	"github.com/fsdevblog/gumball-machine/pkg/uow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultJournalLimit сколько записей журнала возвращается, если лимит не задан.
const DefaultJournalLimit uint = 100

// Deployment параметры, общие для всех автоматов инсталляции.
type Deployment struct {
	PaymentResource domain.ResourceID
	Profile         access.Profile
	InitialStock    decimal.Decimal
	RestockQuantity decimal.Decimal
}

// MachineService хост автоматов: каждый вызов загружает автомат под блокировкой строки, выполняет
// одну операцию и сохраняет состояние в той же транзакции. Вызовы одного автомата сериализуются
// базой.
type MachineService struct {
	uow         uow.UOW
	machineRepo MachineRepository
	journalRepo JournalRepository
	deployment  Deployment
	badgeSecret []byte
}

func NewMachineService(u uow.UOW, deployment Deployment, badgeSecret []byte) (*MachineService, error) {
	machineRepo, machineRepoErr := uow.GetRepositoryAs[MachineRepository](
		u, uow.RepositoryName(repoargs.MachineRepoName),
	)
	if machineRepoErr != nil {
		return nil, machineRepoErr //nolint:wrapcheck
	}
	journalRepo, journalRepoErr := uow.GetRepositoryAs[JournalRepository](
		u, uow.RepositoryName(repoargs.JournalRepoName),
	)
	if journalRepoErr != nil {
		return nil, journalRepoErr //nolint:wrapcheck
	}
	if deployment.PaymentResource == "" {
		return nil, fmt.Errorf("machine service: payment resource is not set")
	}
	return &MachineService{
		uow:         u,
		machineRepo: machineRepo,
		journalRepo: journalRepo,
		deployment:  deployment,
		badgeSecret: badgeSecret,
	}, nil
}

type InstantiateArgs struct {
	Price  decimal.Decimal
	Flavor string
}

// Instantiate создает автомат и возвращает его вместе с доказательством владения admin бейджем.
// Доказательство бессрочное: это единственный способ администрировать автомат.
func (s *MachineService) Instantiate(ctx context.Context, args InstantiateArgs) (*domain.Machine, string, error) {
	m, adminBadge, err := vending.Instantiate(vending.Params{
		Price:           args.Price,
		Flavor:          args.Flavor,
		PaymentResource: s.deployment.PaymentResource,
		InitialStock:    s.deployment.InitialStock,
		Profile:         s.deployment.Profile,
	})
	if err != nil {
		return nil, "", fmt.Errorf("instantiating machine: %w", err)
	}

	proof, proofErr := tokens.GenerateBadgeJWT(tokens.Badge{Resource: adminBadge.Resource}, 0, s.badgeSecret)
	if proofErr != nil {
		return nil, "", fmt.Errorf("instantiating machine: %w", proofErr)
	}

	var created *domain.Machine
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[MachineRepository](tx, uow.RepositoryName(repoargs.MachineRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		var createErr error
		created, createErr = repo.Create(c, m.Snapshot())
		if createErr != nil {
			return createErr //nolint:wrapcheck
		}
		if created.Inventory.IsZero() {
			return nil
		}
		return record(c, tx, repoargs.JournalCreate{
			MachineID: created.ID,
			Kind:      domain.JournalRestock,
			Resource:  created.Resources.Product,
			Amount:    created.Inventory,
			Details:   "initial stock",
		})
	})
	if txErr != nil {
		return nil, "", fmt.Errorf("instantiating machine: %w", txErr)
	}
	return created, proof, nil
}

// GetMachine публичная информация об автомате.
func (s *MachineService) GetMachine(ctx context.Context, id uuid.UUID) (*domain.Machine, error) {
	m, err := s.machineRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting machine %s: %w", id, err)
	}
	return m, nil
}

func (s *MachineService) GetPrice(ctx context.Context, id uuid.UUID, c access.Credentials) (decimal.Decimal, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	price, priceErr := m.GetPrice(c)
	if priceErr != nil {
		return decimal.Zero, fmt.Errorf("getting price of machine %s: %w", id, priceErr)
	}
	return price, nil
}

func (s *MachineService) SetPrice(
	ctx context.Context,
	id uuid.UUID,
	c access.Credentials,
	price decimal.Decimal,
) (*domain.Machine, error) {
	saved, err := s.mutate(ctx, id, func(ctx context.Context, tx uow.TX, m *vending.Machine) error {
		if err := m.SetPrice(c, price); err != nil {
			return err //nolint:wrapcheck
		}
		return record(ctx, tx, repoargs.JournalCreate{
			MachineID: m.ID(),
			Kind:      domain.JournalPriceChange,
			Resource:  m.Resources().Payment,
			Amount:    price,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("setting price of machine %s: %w", id, err)
	}
	return saved, nil
}

// Buy продает один продукт. Возвращает продукт и сдачу.
func (s *MachineService) Buy(
	ctx context.Context,
	id uuid.UUID,
	c access.Credentials,
	payment ledger.Bucket,
) (*vending.Sale, error) {
	var sale vending.Sale
	_, err := s.mutate(ctx, id, func(ctx context.Context, tx uow.TX, m *vending.Machine) error {
		var buyErr error
		if sale, buyErr = m.Buy(c, payment); buyErr != nil {
			return buyErr //nolint:wrapcheck
		}
		return record(ctx, tx, repoargs.JournalCreate{
			MachineID: m.ID(),
			Kind:      domain.JournalSale,
			Resource:  m.Resources().Payment,
			Amount:    sale.Price,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("buying from machine %s: %w", id, err)
	}
	return &sale, nil
}

// Withdraw выводит выручку. amount == nil выводит всю казну.
func (s *MachineService) Withdraw(
	ctx context.Context,
	id uuid.UUID,
	c access.Credentials,
	amount *decimal.Decimal,
) (ledger.Bucket, error) {
	var earnings ledger.Bucket
	_, err := s.mutate(ctx, id, func(ctx context.Context, tx uow.TX, m *vending.Machine) error {
		var withdrawErr error
		if amount == nil {
			earnings, withdrawErr = m.WithdrawEarnings(c)
		} else {
			earnings, withdrawErr = m.Withdraw(c, *amount)
		}
		if withdrawErr != nil {
			return withdrawErr //nolint:wrapcheck
		}
		if earnings.IsEmpty() {
			return nil
		}
		return record(ctx, tx, repoargs.JournalCreate{
			MachineID: m.ID(),
			Kind:      domain.JournalWithdrawal,
			Resource:  earnings.Resource,
			Amount:    earnings.Amount,
		})
	})
	if err != nil {
		return ledger.Bucket{}, fmt.Errorf("withdrawing from machine %s: %w", id, err)
	}
	return earnings, nil
}

// Restock пополняет запас. quantity == nil пополняет на объем по умолчанию.
func (s *MachineService) Restock(
	ctx context.Context,
	id uuid.UUID,
	c access.Credentials,
	quantity *decimal.Decimal,
) (*domain.Machine, error) {
	q := s.deployment.RestockQuantity
	if quantity != nil {
		q = *quantity
	}
	saved, err := s.mutate(ctx, id, func(ctx context.Context, tx uow.TX, m *vending.Machine) error {
		if err := m.Restock(c, q); err != nil {
			return err //nolint:wrapcheck
		}
		return record(ctx, tx, repoargs.JournalCreate{
			MachineID: m.ID(),
			Kind:      domain.JournalRestock,
			Resource:  m.Resources().Product,
			Amount:    q,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("restocking machine %s: %w", id, err)
	}
	return saved, nil
}

// IssuedStaffBadge выпущенный бейдж персонала и доказательство владения им.
type IssuedStaffBadge struct {
	Badge ledger.NonFungible
	Proof string
}

func (s *MachineService) IssueStaffBadge(
	ctx context.Context,
	id uuid.UUID,
	c access.Credentials,
	identity string,
) (*IssuedStaffBadge, error) {
	var issued IssuedStaffBadge
	_, err := s.mutate(ctx, id, func(ctx context.Context, tx uow.TX, m *vending.Machine) error {
		badge, issueErr := m.IssueStaffBadge(c, identity)
		if issueErr != nil {
			return issueErr //nolint:wrapcheck
		}

		repo, repoErr := uow.GetAs[StaffBadgeRepository](tx, uow.RepositoryName(repoargs.StaffBadgeRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		if _, createErr := repo.Create(ctx, domain.StaffBadge{
			MachineID: m.ID(),
			LocalID:   badge.LocalID,
			Identity:  badge.Identity,
		}); createErr != nil {
			return createErr //nolint:wrapcheck
		}

		proof, proofErr := tokens.GenerateBadgeJWT(tokens.Badge{
			Resource: badge.Resource,
			LocalID:  badge.LocalID,
			Holder:   badge.Identity,
		}, 0, s.badgeSecret)
		if proofErr != nil {
			return proofErr //nolint:wrapcheck
		}
		issued = IssuedStaffBadge{Badge: badge, Proof: proof}

		return record(ctx, tx, repoargs.JournalCreate{
			MachineID: m.ID(),
			Kind:      domain.JournalStaffBadge,
			Resource:  badge.Resource,
			Amount:    decimal.NewFromInt(1),
			Details:   fmt.Sprintf("#%d %s", badge.LocalID, badge.Identity),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("issuing staff badge on machine %s: %w", id, err)
	}
	return &issued, nil
}

// SetRule заменяет правило доступа операции op.
func (s *MachineService) SetRule(
	ctx context.Context,
	id uuid.UUID,
	c access.Credentials,
	op domain.Operation,
	spec domain.RuleSpec,
) (*domain.Machine, error) {
	saved, err := s.mutate(ctx, id, func(ctx context.Context, tx uow.TX, m *vending.Machine) error {
		if err := m.SetRule(c, op, spec); err != nil {
			return err //nolint:wrapcheck
		}
		details, marshalErr := json.Marshal(m.Policy().Specs()[op])
		if marshalErr != nil {
			return fmt.Errorf("marshal rule: %w", marshalErr)
		}
		return record(ctx, tx, repoargs.JournalCreate{
			MachineID: m.ID(),
			Kind:      domain.JournalRuleUpdate,
			Details:   fmt.Sprintf("%s: %s", op, details),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("setting `%s` rule of machine %s: %w", op, id, err)
	}
	return saved, nil
}

// Journal последние записи журнала автомата.
func (s *MachineService) Journal(
	ctx context.Context,
	id uuid.UUID,
	c access.Credentials,
	limit uint,
) ([]domain.JournalEntry, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewErr := m.CanViewJournal(c); viewErr != nil {
		return nil, fmt.Errorf("viewing journal of machine %s: %w", id, viewErr)
	}
	if limit == 0 {
		limit = DefaultJournalLimit
	}
	entries, journalErr := s.journalRepo.GetByMachineID(ctx, id, limit)
	if journalErr != nil {
		return nil, fmt.Errorf("viewing journal of machine %s: %w", id, journalErr)
	}
	return entries, nil
}

// load восстанавливает автомат для операций, не изменяющих состояние.
func (s *MachineService) load(ctx context.Context, id uuid.UUID) (*vending.Machine, error) {
	rec, err := s.machineRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading machine %s: %w", id, err)
	}
	m, restoreErr := vending.Restore(*rec)
	if restoreErr != nil {
		return nil, fmt.Errorf("loading machine %s: %w", id, restoreErr)
	}
	return m, nil
}

// mutate выполняет fn над автоматом в транзакции.
//
// Алгоритм работы:
//  1. Блокирует строку автомата (SELECT ... FOR UPDATE) до конца транзакции.
//  2. Восстанавливает автомат и выполняет fn.
//  3. Сохраняет новое состояние. Любая ошибка откатывает транзакцию целиком, а состояние в памяти
//     уже откачено самим автоматом.
func (s *MachineService) mutate(
	ctx context.Context,
	id uuid.UUID,
	fn func(ctx context.Context, tx uow.TX, m *vending.Machine) error,
) (*domain.Machine, error) {
	var saved *domain.Machine
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[MachineRepository](tx, uow.RepositoryName(repoargs.MachineRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		rec, getErr := repo.GetForUpdate(c, id)
		if getErr != nil {
			return getErr //nolint:wrapcheck
		}
		m, restoreErr := vending.Restore(*rec)
		if restoreErr != nil {
			return restoreErr //nolint:wrapcheck
		}

		if err := fn(c, tx, m); err != nil {
			return err
		}

		var saveErr error
		saved, saveErr = repo.Save(c, m.Snapshot())
		return saveErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, txErr //nolint:wrapcheck
	}
	return saved, nil
}

// record добавляет запись в журнал в рамках транзакции tx.
func record(ctx context.Context, tx uow.TX, args repoargs.JournalCreate) error {
	repo, repoErr := uow.GetAs[JournalRepository](tx, uow.RepositoryName(repoargs.JournalRepoName))
	if repoErr != nil {
		return repoErr //nolint:wrapcheck
	}
	if _, err := repo.Create(ctx, args); err != nil {
		return err //nolint:wrapcheck
	}
	return nil
}
