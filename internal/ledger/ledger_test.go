package ledger

import (
	"testing"

	"github.com/fsdevblog/gumball-machine/internal/access"
	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LedgerTestSuite struct {
	suite.Suite
	product domain.ResourceID
	admin   domain.ResourceID
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) SetupTest() {
	s.product = NewResourceID()
	s.admin = NewResourceID()
}

func (s *LedgerTestSuite) TestVault_Take() {
	v, err := RestoreVault(s.product, ProductDivisibility, decimal.NewFromInt(3))
	s.Require().NoError(err)

	cases := []struct {
		name       string
		amount     decimal.Decimal
		wantErr    error
		wantRemain decimal.Decimal
	}{
		{name: "take one", amount: decimal.NewFromInt(1), wantRemain: decimal.NewFromInt(2)},
		{name: "negative", amount: decimal.NewFromInt(-1), wantErr: domain.ErrInvalidAmount, wantRemain: decimal.NewFromInt(2)},
		{name: "fraction", amount: decimal.RequireFromString("0.5"), wantErr: domain.ErrInvalidAmount, wantRemain: decimal.NewFromInt(2)},
		{name: "too much", amount: decimal.NewFromInt(3), wantErr: ErrInsufficientBalance, wantRemain: decimal.NewFromInt(2)},
		{name: "the rest", amount: decimal.NewFromInt(2), wantRemain: decimal.Zero},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			b, takeErr := v.Take(t.amount)
			if t.wantErr != nil {
				s.Require().ErrorIs(takeErr, t.wantErr)
			} else {
				s.Require().NoError(takeErr)
				s.True(t.amount.Equal(b.Amount))
				s.Equal(s.product, b.Resource)
			}
			s.True(t.wantRemain.Equal(v.Amount()), "remain %s", v.Amount())
		})
	}
}

func (s *LedgerTestSuite) TestVault_PutWrongResource() {
	v := NewVault(s.product, ProductDivisibility)

	err := v.Put(NewBucket(s.admin, decimal.NewFromInt(1)))

	s.Require().ErrorIs(err, domain.ErrWrongTokenType)
	s.True(v.Amount().IsZero())
}

func (s *LedgerTestSuite) TestVault_TakeAll() {
	v := NewVault(s.product, ProductDivisibility)
	s.Require().NoError(v.Put(NewBucket(s.product, decimal.NewFromInt(7))))

	first := v.TakeAll()
	second := v.TakeAll()

	s.True(decimal.NewFromInt(7).Equal(first.Amount))
	s.True(second.IsEmpty())
	s.True(v.Amount().IsZero())
}

func (s *LedgerTestSuite) TestRestoreVault_Negative() {
	_, err := RestoreVault(s.product, ProductDivisibility, decimal.NewFromInt(-1))
	s.Require().ErrorIs(err, domain.ErrInvalidAmount)
}

func (s *LedgerTestSuite) TestBucket_TakeKeepsBucketOnError() {
	b := NewBucket(s.product, decimal.NewFromInt(4))

	_, err := b.Take(decimal.NewFromInt(5))
	s.Require().ErrorIs(err, ErrInsufficientBalance)
	s.True(decimal.NewFromInt(4).Equal(b.Amount))

	part, takeErr := b.Take(decimal.NewFromInt(3))
	s.Require().NoError(takeErr)
	s.True(decimal.NewFromInt(3).Equal(part.Amount))
	s.True(decimal.NewFromInt(1).Equal(b.Amount))
}

func (s *LedgerTestSuite) TestResourceManager_Mint() {
	m := NewFungible(s.product, ProductDivisibility, access.Require(s.admin))

	_, denyErr := m.Mint(decimal.NewFromInt(10), access.NewCredentials())
	s.Require().ErrorIs(denyErr, domain.ErrAuthorizationDenied)
	s.True(m.TotalSupply().IsZero())

	b, err := m.Mint(decimal.NewFromInt(10), access.NewCredentials(s.admin))
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(10).Equal(b.Amount))
	s.True(decimal.NewFromInt(10).Equal(m.TotalSupply()))

	_, nfErr := m.MintNonFungible("bob", access.NewCredentials(s.admin))
	s.Require().Error(nfErr)
}

func (s *LedgerTestSuite) TestResourceManager_MintNonFungible() {
	staff := NewResourceID()
	m := NewNonFungible(staff, access.Require(s.admin)).WithSupply(decimal.NewFromInt(2), 2)

	badge, err := m.MintNonFungible("Alice", access.NewCredentials(s.admin))
	s.Require().NoError(err)
	s.Equal(uint64(3), badge.LocalID)
	s.Equal("Alice", badge.Identity)
	s.Equal(staff, badge.Resource)
	s.Equal(uint64(3), m.LastLocalID())

	_, denyErr := m.MintNonFungible("Mallory", access.NewCredentials(staff))
	s.Require().ErrorIs(denyErr, domain.ErrAuthorizationDenied)
	s.Equal(uint64(3), m.LastLocalID())
}
