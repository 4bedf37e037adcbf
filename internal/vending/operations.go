package vending

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/gumball-machine/internal/access"
	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/internal/ledger"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Sale результат покупки: один продукт и сдача.
type Sale struct {
	Product ledger.Bucket
	Change  ledger.Bucket
	Price   decimal.Decimal
}

func (m *Machine) GetPrice(c access.Credentials) (decimal.Decimal, error) {
	if err := m.policy.Authorize(domain.OpGetPrice, c); err != nil {
		return decimal.Zero, err //nolint:wrapcheck
	}
	return m.price, nil
}

// SetPrice заменяет цену. Цена, которую нельзя выразить в платежном токене (отрицательная или
// мельче его делимости), отклоняется с domain.ErrInvalidPrice.
func (m *Machine) SetPrice(c access.Credentials, price decimal.Decimal) error {
	if err := m.policy.Authorize(domain.OpSetPrice, c); err != nil {
		return err //nolint:wrapcheck
	}
	if err := checkPrice(price); err != nil {
		return fmt.Errorf("set price: %w", err)
	}
	m.price = price
	return nil
}

// Buy продает один продукт за текущую цену.
//
// Алгоритм работы:
//  1. Проверяет, что оплата в платежном токене автомата.
//  2. Забирает ровно цену в казну.
//  3. Забирает из запаса один продукт. Если запас пуст, оплата возвращается из казны.
//  4. Возвращает продукт и остаток оплаты.
//
// payment передается по значению: при ошибке у вызывающего остается нетронутое ведро.
func (m *Machine) Buy(c access.Credentials, payment ledger.Bucket) (Sale, error) {
	if err := m.policy.Authorize(domain.OpBuy, c); err != nil {
		return Sale{}, err //nolint:wrapcheck
	}

	var sale Sale
	err := m.atomically(func() error {
		if payment.Resource != m.resources.Payment {
			return fmt.Errorf(
				"buy: paid with `%s`, want `%s`: %w", payment.Resource, m.resources.Payment, domain.ErrWrongTokenType,
			)
		}

		share, takeErr := payment.Take(m.price)
		if takeErr != nil {
			if errors.Is(takeErr, ledger.ErrInsufficientBalance) {
				return fmt.Errorf("buy: paid %s, price %s: %w", payment.Amount, m.price, domain.ErrInsufficientPayment)
			}
			return fmt.Errorf("buy: %w", takeErr)
		}
		if putErr := m.treasury.Put(share); putErr != nil {
			return fmt.Errorf("buy: %w", putErr)
		}

		product, productErr := m.takeOne()
		if productErr != nil {
			return fmt.Errorf("buy: %w", productErr)
		}

		sale = Sale{Product: product, Change: payment, Price: share.Amount}
		return nil
	})
	if err != nil {
		return Sale{}, err
	}
	return sale, nil
}

// takeOne забирает ровно один продукт из запаса.
func (m *Machine) takeOne() (ledger.Bucket, error) {
	product, err := m.inventory.Take(one)
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			return ledger.Bucket{}, domain.ErrInsufficientInventory
		}
		return ledger.Bucket{}, err //nolint:wrapcheck
	}
	return product, nil
}

// WithdrawEarnings выводит всю выручку. Повторный вызов вернет пустое ведро.
func (m *Machine) WithdrawEarnings(c access.Credentials) (ledger.Bucket, error) {
	if err := m.policy.Authorize(domain.OpWithdraw, c); err != nil {
		return ledger.Bucket{}, err //nolint:wrapcheck
	}
	return m.treasury.TakeAll(), nil
}

// Withdraw выводит часть выручки. Если amount больше баланса казны — domain.ErrInsufficientFunds.
func (m *Machine) Withdraw(c access.Credentials, amount decimal.Decimal) (ledger.Bucket, error) {
	if err := m.policy.Authorize(domain.OpWithdraw, c); err != nil {
		return ledger.Bucket{}, err //nolint:wrapcheck
	}

	var earnings ledger.Bucket
	err := m.atomically(func() error {
		b, takeErr := m.treasury.Take(amount)
		if takeErr != nil {
			if errors.Is(takeErr, ledger.ErrInsufficientBalance) {
				return fmt.Errorf(
					"withdraw %s, treasury %s: %w", amount, m.treasury.Amount(), domain.ErrInsufficientFunds,
				)
			}
			return fmt.Errorf("withdraw: %w", takeErr)
		}
		earnings = b
		return nil
	})
	return earnings, err
}

// Restock выпускает quantity новых продуктов в запас. Минт дополнительно проверяется политикой
// ресурса продукта.
func (m *Machine) Restock(c access.Credentials, quantity decimal.Decimal) error {
	if err := m.policy.Authorize(domain.OpRestock, c); err != nil {
		return err //nolint:wrapcheck
	}

	return m.atomically(func() error {
		minted, mintErr := m.products.Mint(quantity, c)
		if mintErr != nil {
			return fmt.Errorf("restock: %w", mintErr)
		}
		if putErr := m.inventory.Put(minted); putErr != nil {
			return fmt.Errorf("restock: %w", putErr)
		}
		return nil
	})
}

// IssueStaffBadge выпускает бейдж персонала с данными держателя.
func (m *Machine) IssueStaffBadge(c access.Credentials, identity string) (ledger.NonFungible, error) {
	if err := m.policy.Authorize(domain.OpIssueStaffBadge, c); err != nil {
		return ledger.NonFungible{}, err //nolint:wrapcheck
	}
	if m.staff == nil {
		return ledger.NonFungible{}, fmt.Errorf("issue staff badge: %w", domain.ErrStaffBadgesDisabled)
	}

	var badge ledger.NonFungible
	err := m.atomically(func() error {
		b, mintErr := m.staff.MintNonFungible(identity, c)
		if mintErr != nil {
			return fmt.Errorf("issue staff badge: %w", mintErr)
		}
		badge = b
		return nil
	})
	return badge, err
}

// SetRule заменяет правило операции op. Алиасы в spec разрешаются в ресурсы автомата.
func (m *Machine) SetRule(c access.Credentials, op domain.Operation, spec domain.RuleSpec) error {
	rule, compileErr := access.Compile(spec, access.AliasesFor(m.resources))
	if compileErr != nil {
		return fmt.Errorf("set rule for `%s`: %w", op, compileErr)
	}
	if err := m.policy.SetRule(op, rule, c); err != nil {
		return err //nolint:wrapcheck
	}
	return nil
}

// CanViewJournal проверяет доступ к журналу автомата.
func (m *Machine) CanViewJournal(c access.Credentials) error {
	return m.policy.Authorize(domain.OpViewJournal, c) //nolint:wrapcheck
}

// checkPrice цена должна быть допустимой суммой платежного токена, иначе выручку нельзя вывести.
func checkPrice(price decimal.Decimal) error {
	if !ledger.ValidAmount(price, ledger.PaymentDivisibility) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidPrice, price)
	}
	return nil
}
