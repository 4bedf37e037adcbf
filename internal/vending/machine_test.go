package vending

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/gumball-machine/internal/access"
	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/internal/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const nativeToken domain.ResourceID = "resource_native"

type MachineTestSuite struct {
	suite.Suite
	machine    *Machine
	adminBadge ledger.Bucket
	admin      access.Credentials
	anonymous  access.Credentials
}

func TestMachineSuite(t *testing.T) {
	suite.Run(t, new(MachineTestSuite))
}

func newTestMachine(profileName string, price, stock int64) (*Machine, ledger.Bucket, error) {
	profile, err := access.BuiltinProfile(profileName)
	if err != nil {
		return nil, ledger.Bucket{}, err
	}
	return Instantiate(Params{
		Price:           decimal.NewFromInt(price),
		Flavor:          gofakeit.Fruit(),
		PaymentResource: nativeToken,
		InitialStock:    decimal.NewFromInt(stock),
		Profile:         profile,
	})
}

func (s *MachineTestSuite) SetupTest() {
	var err error
	s.machine, s.adminBadge, err = newTestMachine(access.ProfileStrict, 5, DefaultInitialStock)
	s.Require().NoError(err)

	s.admin = access.NewCredentials(s.adminBadge.Resource)
	s.anonymous = access.NewCredentials()
}

func (s *MachineTestSuite) payment(amount int64) ledger.Bucket {
	return ledger.NewBucket(nativeToken, decimal.NewFromInt(amount))
}

func (s *MachineTestSuite) TestInstantiate() {
	s.True(decimal.NewFromInt(1).Equal(s.adminBadge.Amount))
	s.Equal(s.machine.Resources().Admin, s.adminBadge.Resource)
	s.True(decimal.NewFromInt(DefaultInitialStock).Equal(s.machine.Inventory()))
	s.True(s.machine.Treasury().IsZero())
	s.False(s.machine.Resources().HasStaff())

	for _, price := range []string{"-1", "0.0000000000000000001"} {
		_, _, err := Instantiate(Params{
			Price:           decimal.RequireFromString(price),
			PaymentResource: nativeToken,
			Profile:         access.Profile{MintRule: domain.RuleSpec{Kind: domain.RuleAllowAll}},
		})
		s.Require().ErrorIs(err, domain.ErrInvalidPrice, price)
	}
}

// TestSetPrice_FinestPriceWithdrawable выручка по цене с максимальной точностью платежного токена
// выводится без ошибок.
func (s *MachineTestSuite) TestSetPrice_FinestPriceWithdrawable() {
	price := decimal.RequireFromString("1.000000000000000001")
	s.Require().NoError(s.machine.SetPrice(s.admin, price))

	_, buyErr := s.machine.Buy(s.anonymous, s.payment(2))
	s.Require().NoError(buyErr)

	earnings, withdrawErr := s.machine.Withdraw(s.admin, s.machine.Treasury())
	s.Require().NoError(withdrawErr)
	s.True(price.Equal(earnings.Amount))
	s.True(s.machine.Treasury().IsZero())
}

// TestBuy_Scenario цена 5, запас 100, казна пуста; оплата 7 -> продукт и 2 сдачи.
func (s *MachineTestSuite) TestBuy_Scenario() {
	sale, err := s.machine.Buy(s.anonymous, s.payment(7))
	s.Require().NoError(err)

	s.Equal(s.machine.Resources().Product, sale.Product.Resource)
	s.True(decimal.NewFromInt(1).Equal(sale.Product.Amount))
	s.Equal(nativeToken, sale.Change.Resource)
	s.True(decimal.NewFromInt(2).Equal(sale.Change.Amount))
	s.True(decimal.NewFromInt(5).Equal(s.machine.Treasury()))
	s.True(decimal.NewFromInt(99).Equal(s.machine.Inventory()))
}

func (s *MachineTestSuite) TestBuy_Errors() {
	cases := []struct {
		name    string
		payment ledger.Bucket
		wantErr error
	}{
		{name: "wrong token", payment: ledger.NewBucket("resource_other", decimal.NewFromInt(10)), wantErr: domain.ErrWrongTokenType},
		{name: "not enough", payment: s.payment(4), wantErr: domain.ErrInsufficientPayment},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			paid := t.payment
			_, err := s.machine.Buy(s.anonymous, paid)
			s.Require().ErrorIs(err, t.wantErr)

			s.True(t.payment.Amount.Equal(paid.Amount))
			s.True(s.machine.Treasury().IsZero())
			s.True(decimal.NewFromInt(DefaultInitialStock).Equal(s.machine.Inventory()))
		})
	}
}

// TestBuy_EmptyInventory оплата не списывается, если продукта нет.
func (s *MachineTestSuite) TestBuy_EmptyInventory() {
	m, _, err := newTestMachine(access.ProfileStrict, 5, 0)
	s.Require().NoError(err)

	payment := s.payment(10)
	_, buyErr := m.Buy(s.anonymous, payment)

	s.Require().ErrorIs(buyErr, domain.ErrInsufficientInventory)
	s.True(m.Treasury().IsZero())
	s.True(decimal.NewFromInt(10).Equal(payment.Amount))
}

func (s *MachineTestSuite) TestWithdrawEarnings() {
	_, buyErr := s.machine.Buy(s.anonymous, s.payment(5))
	s.Require().NoError(buyErr)

	_, denyErr := s.machine.WithdrawEarnings(s.anonymous)
	s.Require().ErrorIs(denyErr, domain.ErrAuthorizationDenied)
	s.True(decimal.NewFromInt(5).Equal(s.machine.Treasury()))

	earnings, err := s.machine.WithdrawEarnings(s.admin)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(5).Equal(earnings.Amount))
	s.True(s.machine.Treasury().IsZero())

	again, againErr := s.machine.WithdrawEarnings(s.admin)
	s.Require().NoError(againErr)
	s.True(again.IsEmpty())
}

func (s *MachineTestSuite) TestWithdraw_Partial() {
	for range 3 {
		_, err := s.machine.Buy(s.anonymous, s.payment(5))
		s.Require().NoError(err)
	}

	part, err := s.machine.Withdraw(s.admin, decimal.NewFromInt(6))
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(6).Equal(part.Amount))
	s.True(decimal.NewFromInt(9).Equal(s.machine.Treasury()))

	_, tooMuchErr := s.machine.Withdraw(s.admin, decimal.NewFromInt(10))
	s.Require().ErrorIs(tooMuchErr, domain.ErrInsufficientFunds)
	s.True(decimal.NewFromInt(9).Equal(s.machine.Treasury()))
}

func (s *MachineTestSuite) TestSetPrice() {
	cases := []struct {
		name      string
		creds     access.Credentials
		price     decimal.Decimal
		wantErr   error
		wantPrice decimal.Decimal
	}{
		{name: "anonymous", creds: s.anonymous, price: decimal.NewFromInt(1), wantErr: domain.ErrAuthorizationDenied, wantPrice: decimal.NewFromInt(5)},
		{name: "negative", creds: s.admin, price: decimal.NewFromInt(-1), wantErr: domain.ErrInvalidPrice, wantPrice: decimal.NewFromInt(5)},
		{
			name:      "finer than payment divisibility",
			creds:     s.admin,
			price:     decimal.RequireFromString("1.0000000000000000001"),
			wantErr:   domain.ErrInvalidPrice,
			wantPrice: decimal.NewFromInt(5),
		},
		{
			name:      "exactly payment divisibility",
			creds:     s.admin,
			price:     decimal.RequireFromString("1.000000000000000001"),
			wantPrice: decimal.RequireFromString("1.000000000000000001"),
		},
		{name: "admin", creds: s.admin, price: decimal.RequireFromString("2.5"), wantPrice: decimal.RequireFromString("2.5")},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			err := s.machine.SetPrice(t.creds, t.price)
			if t.wantErr != nil {
				s.Require().ErrorIs(err, t.wantErr)
			} else {
				s.Require().NoError(err)
			}
			price, priceErr := s.machine.GetPrice(s.anonymous)
			s.Require().NoError(priceErr)
			s.True(t.wantPrice.Equal(price))
		})
	}
}

func (s *MachineTestSuite) TestRestock() {
	s.Require().NoError(s.machine.Restock(s.admin, decimal.NewFromInt(10)))
	s.True(decimal.NewFromInt(110).Equal(s.machine.Inventory()))

	s.Require().ErrorIs(s.machine.Restock(s.anonymous, decimal.NewFromInt(10)), domain.ErrAuthorizationDenied)
	s.Require().ErrorIs(s.machine.Restock(s.admin, decimal.NewFromInt(-1)), domain.ErrInvalidAmount)
	s.True(decimal.NewFromInt(110).Equal(s.machine.Inventory()))
	s.True(decimal.NewFromInt(110).Equal(s.machine.Snapshot().ProductSupply))
}

// TestRestock_MintPolicy в публичном профиле правило компонента пропускает всех, но минт продукта
// по-прежнему требует admin бейдж.
func (s *MachineTestSuite) TestRestock_MintPolicy() {
	m, badge, err := newTestMachine(access.ProfilePublic, 1, 0)
	s.Require().NoError(err)

	restockErr := m.Restock(s.anonymous, decimal.NewFromInt(5))
	s.Require().ErrorIs(restockErr, domain.ErrAuthorizationDenied)

	var authErr *domain.AuthorizationError
	s.Require().ErrorAs(restockErr, &authErr)
	s.Equal(ledger.MintOperation, authErr.Operation)
	s.True(m.Inventory().IsZero())

	s.Require().NoError(m.Restock(access.NewCredentials(badge.Resource), decimal.NewFromInt(5)))
	s.True(decimal.NewFromInt(5).Equal(m.Inventory()))
}

func (s *MachineTestSuite) TestStaffBadges() {
	_, disabledErr := s.machine.IssueStaffBadge(s.admin, "Alice")
	s.Require().ErrorIs(disabledErr, domain.ErrAuthorizationDenied)

	m, badge, err := newTestMachine(access.ProfileStaff, 5, 0)
	s.Require().NoError(err)
	admin := access.NewCredentials(badge.Resource)

	identity := gofakeit.Name()
	staffBadge, issueErr := m.IssueStaffBadge(admin, identity)
	s.Require().NoError(issueErr)
	s.Equal(m.Resources().Staff, staffBadge.Resource)
	s.Equal(uint64(1), staffBadge.LocalID)
	s.Equal(identity, staffBadge.Identity)

	staff := access.NewCredentials(staffBadge.Resource)
	_, staffIssueErr := m.IssueStaffBadge(staff, "Bob")
	s.Require().ErrorIs(staffIssueErr, domain.ErrAuthorizationDenied)

	s.Require().NoError(m.SetPrice(staff, decimal.NewFromInt(3)))
	s.Require().NoError(m.Restock(staff, decimal.NewFromInt(2)))
	s.True(decimal.NewFromInt(2).Equal(m.Inventory()))

	_, withdrawErr := m.WithdrawEarnings(staff)
	s.Require().ErrorIs(withdrawErr, domain.ErrAuthorizationDenied)
}

func (s *MachineTestSuite) TestStaffBadges_Disabled() {
	m, badge, err := newTestMachine(access.ProfileStrict, 5, 0)
	s.Require().NoError(err)
	s.Require().NoError(m.SetRule(
		access.NewCredentials(badge.Resource),
		domain.OpIssueStaffBadge,
		domain.RuleSpec{Kind: domain.RuleRequire, Resource: access.AliasAdmin},
	))

	_, issueErr := m.IssueStaffBadge(access.NewCredentials(badge.Resource), "Alice")
	s.Require().ErrorIs(issueErr, domain.ErrStaffBadgesDisabled)
}

func (s *MachineTestSuite) TestSetRule() {
	err := s.machine.SetRule(s.anonymous, domain.OpSetPrice, domain.RuleSpec{Kind: domain.RuleAllowAll})
	s.Require().ErrorIs(err, domain.ErrAuthorizationDenied)

	s.Require().NoError(s.machine.SetRule(s.admin, domain.OpSetPrice, domain.RuleSpec{Kind: domain.RuleAllowAll}))
	s.Require().NoError(s.machine.SetPrice(s.anonymous, decimal.NewFromInt(9)))

	invalidErr := s.machine.SetRule(s.admin, domain.OpSetPrice, domain.RuleSpec{Kind: domain.RuleExpr, Expr: "1 +"})
	s.Require().ErrorIs(invalidErr, domain.ErrInvalidRule)

	m, badge, pubErr := newTestMachine(access.ProfilePublic, 1, 0)
	s.Require().NoError(pubErr)
	lockedErr := m.SetRule(access.NewCredentials(badge.Resource), domain.OpBuy, domain.RuleSpec{Kind: domain.RuleDenyAll})
	s.Require().ErrorIs(lockedErr, domain.ErrRulesLocked)
}

func (s *MachineTestSuite) TestSnapshotRestore() {
	_, buyErr := s.machine.Buy(s.anonymous, s.payment(8))
	s.Require().NoError(buyErr)
	s.Require().NoError(s.machine.SetRule(s.admin, domain.OpSetPrice, domain.RuleSpec{
		Kind: domain.RuleExpr,
		Expr: "admin in credentials",
	}))

	rec := s.machine.Snapshot()
	restored, err := Restore(rec)
	s.Require().NoError(err)

	s.Equal(rec, restored.Snapshot())
	s.Require().NoError(restored.SetPrice(s.admin, decimal.NewFromInt(1)))
	s.Require().ErrorIs(restored.SetPrice(s.anonymous, decimal.NewFromInt(1)), domain.ErrAuthorizationDenied)
}
