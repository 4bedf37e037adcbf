package vending

import (
	"errors"
	"testing"

	"github.com/fsdevblog/gumball-machine/internal/access"
	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/internal/ledger"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

// TestBuyConservation покупка успешна тогда и только тогда, когда оплаты хватает и запас не пуст;
// сумма казны и сдачи всегда равна внесенной оплате.
func TestBuyConservation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("buy preserves payment and inventory", prop.ForAll(
		func(price, paid, stock int64) bool {
			m, _, err := newTestMachine(access.ProfileStrict, price, stock)
			if err != nil {
				return false
			}

			payment := ledger.NewBucket(nativeToken, decimal.NewFromInt(paid))
			sale, buyErr := m.Buy(access.NewCredentials(), payment)

			shouldSucceed := paid >= price && stock >= 1
			if (buyErr == nil) != shouldSucceed {
				return false
			}
			if buyErr != nil {
				return m.Treasury().IsZero() && m.Inventory().Equal(decimal.NewFromInt(stock))
			}

			return m.Treasury().Equal(decimal.NewFromInt(price)) &&
				sale.Change.Amount.Equal(decimal.NewFromInt(paid-price)) &&
				m.Treasury().Add(sale.Change.Amount).Equal(payment.Amount) &&
				m.Inventory().Equal(decimal.NewFromInt(stock-1))
		},
		gen.Int64Range(0, 50),
		gen.Int64Range(0, 50),
		gen.Int64Range(0, 3),
	))

	properties.TestingRun(t)
}

// TestRestockAddsExactly пополнение на q увеличивает запас ровно на q, отказ ничего не меняет.
func TestRestockAddsExactly(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("restock by admin adds quantity", prop.ForAll(
		func(stock, quantity int64, asAdmin bool) bool {
			m, badge, err := newTestMachine(access.ProfileStrict, 1, stock)
			if err != nil {
				return false
			}

			creds := access.NewCredentials()
			if asAdmin {
				creds.Add(badge.Resource)
			}
			restockErr := m.Restock(creds, decimal.NewFromInt(quantity))

			if !asAdmin {
				return errors.Is(restockErr, domain.ErrAuthorizationDenied) && m.Inventory().Equal(decimal.NewFromInt(stock))
			}
			return restockErr == nil && m.Inventory().Equal(decimal.NewFromInt(stock+quantity))
		},
		gen.Int64Range(0, 1000),
		gen.Int64Range(0, 1000),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestWithdrawDrainsTreasury после вывода казна пуста, а выведено ровно накопленное.
func TestWithdrawDrainsTreasury(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("withdraw returns all earnings", prop.ForAll(
		func(price int64, sales int) bool {
			m, badge, err := newTestMachine(access.ProfileStrict, price, DefaultInitialStock)
			if err != nil {
				return false
			}
			for range sales {
				if _, buyErr := m.Buy(access.NewCredentials(), ledger.NewBucket(nativeToken, decimal.NewFromInt(price))); buyErr != nil {
					return false
				}
			}

			earnings, withdrawErr := m.WithdrawEarnings(access.NewCredentials(badge.Resource))
			if withdrawErr != nil {
				return false
			}
			return earnings.Amount.Equal(decimal.NewFromInt(price*int64(sales))) && m.Treasury().IsZero()
		},
		gen.Int64Range(0, 100),
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}
