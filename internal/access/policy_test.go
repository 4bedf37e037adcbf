package access

import (
	"testing"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/stretchr/testify/suite"
)

type PolicyTestSuite struct {
	suite.Suite
	resources domain.Resources
	aliases   Aliases
}

func TestPolicySuite(t *testing.T) {
	suite.Run(t, new(PolicyTestSuite))
}

func (s *PolicyTestSuite) SetupTest() {
	s.resources = domain.Resources{
		Product: "resource_product",
		Payment: "resource_native",
		Admin:   "resource_admin",
		Staff:   "resource_staff",
	}
	s.aliases = AliasesFor(s.resources)
}

func (s *PolicyTestSuite) TestAuthorize_DefaultDecision() {
	rules := map[domain.Operation]Rule{
		domain.OpSetPrice: Require(s.resources.Admin),
	}
	cases := []struct {
		name     string
		decision domain.DecisionType
		op       domain.Operation
		creds    Credentials
		wantErr  error
	}{
		{name: "deny by default", decision: domain.DecisionDeny, op: domain.OpBuy, wantErr: domain.ErrAuthorizationDenied},
		{name: "allow by default", decision: domain.DecisionAllow, op: domain.OpBuy},
		{
			name:     "declared rule wins over default allow",
			decision: domain.DecisionAllow,
			op:       domain.OpSetPrice,
			wantErr:  domain.ErrAuthorizationDenied,
		},
		{
			name:     "declared rule satisfied",
			decision: domain.DecisionDeny,
			op:       domain.OpSetPrice,
			creds:    NewCredentials(s.resources.Admin),
		},
		{
			name:     "update rules never falls back to default",
			decision: domain.DecisionAllow,
			op:       domain.OpUpdateRules,
			creds:    NewCredentials(s.resources.Admin),
			wantErr:  domain.ErrAuthorizationDenied,
		},
		{
			name:     "unknown operation",
			decision: domain.DecisionAllow,
			op:       domain.Operation("self_destruct"),
			wantErr:  domain.ErrUnknownOperation,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			p := NewPolicy(t.decision, false, rules)
			err := p.Authorize(t.op, t.creds)
			if t.wantErr != nil {
				s.Require().ErrorIs(err, t.wantErr)
				return
			}
			s.Require().NoError(err)
		})
	}
}

func (s *PolicyTestSuite) TestAuthorize_ReturnsOperationInError() {
	p := NewPolicy(domain.DecisionDeny, false, nil)

	err := p.Authorize(domain.OpWithdraw, NewCredentials())

	var authErr *domain.AuthorizationError
	s.Require().ErrorAs(err, &authErr)
	s.Equal(domain.OpWithdraw, authErr.Operation)
}

func (s *PolicyTestSuite) TestAuthorize_ComparesResourceOnly() {
	p := NewPolicy(domain.DecisionDeny, false, map[domain.Operation]Rule{
		domain.OpRestock: AnyOf(Require(s.resources.Admin), Require(s.resources.Staff)),
	})

	s.Require().NoError(p.Authorize(domain.OpRestock, NewCredentials(s.resources.Staff)))
	s.Require().ErrorIs(
		p.Authorize(domain.OpRestock, NewCredentials(s.resources.Product, s.resources.Payment)),
		domain.ErrAuthorizationDenied,
	)
}

func (s *PolicyTestSuite) TestSetRule() {
	admin := NewCredentials(s.resources.Admin)
	staff := NewCredentials(s.resources.Staff)

	s.Run("locked policy", func() {
		p := NewPolicy(domain.DecisionDeny, false, map[domain.Operation]Rule{
			domain.OpUpdateRules: Require(s.resources.Admin),
		})
		err := p.SetRule(domain.OpSetPrice, AllowAll, admin)
		s.Require().ErrorIs(err, domain.ErrRulesLocked)
	})

	s.Run("caller without update authority", func() {
		p := NewPolicy(domain.DecisionDeny, true, map[domain.Operation]Rule{
			domain.OpUpdateRules: Require(s.resources.Admin),
			domain.OpSetPrice:    Require(s.resources.Admin),
		})
		err := p.SetRule(domain.OpSetPrice, AllowAll, staff)
		s.Require().ErrorIs(err, domain.ErrAuthorizationDenied)

		// правило не изменилось.
		s.Require().ErrorIs(p.Authorize(domain.OpSetPrice, staff), domain.ErrAuthorizationDenied)
	})

	s.Run("replacement applies to later calls", func() {
		p := NewPolicy(domain.DecisionDeny, true, map[domain.Operation]Rule{
			domain.OpUpdateRules: Require(s.resources.Admin),
			domain.OpSetPrice:    Require(s.resources.Admin),
		})
		s.Require().NoError(p.SetRule(domain.OpSetPrice, Require(s.resources.Staff), admin))

		s.Require().NoError(p.Authorize(domain.OpSetPrice, staff))
		s.Require().ErrorIs(p.Authorize(domain.OpSetPrice, admin), domain.ErrAuthorizationDenied)
	})
}

func (s *PolicyTestSuite) TestCompile_ResolvesAliases() {
	spec := domain.RuleSpec{
		Kind: domain.RuleAllOf,
		Rules: []domain.RuleSpec{
			{Kind: domain.RuleRequire, Resource: AliasAdmin},
			{Kind: domain.RuleRequire, Resource: "resource_other"},
		},
	}

	rule, err := Compile(spec, s.aliases)
	s.Require().NoError(err)

	compiled := rule.Spec()
	s.Equal(string(s.resources.Admin), compiled.Rules[0].Resource)
	s.Equal("resource_other", compiled.Rules[1].Resource)
	s.True(rule.Allows(NewCredentials(s.resources.Admin, "resource_other")))
	s.False(rule.Allows(NewCredentials(s.resources.Admin)))
}

func (s *PolicyTestSuite) TestCompile_Invalid() {
	noStaff := AliasesFor(domain.Resources{Admin: "resource_admin"})

	cases := []struct {
		name    string
		spec    domain.RuleSpec
		aliases Aliases
	}{
		{name: "unknown kind", spec: domain.RuleSpec{Kind: "maybe"}, aliases: s.aliases},
		{name: "require without resource", spec: domain.RuleSpec{Kind: domain.RuleRequire}, aliases: s.aliases},
		{name: "empty any_of", spec: domain.RuleSpec{Kind: domain.RuleAnyOf}, aliases: s.aliases},
		{name: "unbound alias", spec: requireAlias(AliasStaff), aliases: noStaff},
		{name: "broken expr", spec: domain.RuleSpec{Kind: domain.RuleExpr, Expr: "admin in"}, aliases: s.aliases},
		{name: "non bool expr", spec: domain.RuleSpec{Kind: domain.RuleExpr, Expr: "admin"}, aliases: s.aliases},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			_, err := Compile(t.spec, t.aliases)
			s.Require().ErrorIs(err, domain.ErrInvalidRule)
		})
	}
}

func (s *PolicyTestSuite) TestExpr() {
	rule, err := Expr("admin in credentials || (staff in credentials && size(credentials) == 1)", s.aliases)
	s.Require().NoError(err)

	s.True(rule.Allows(NewCredentials(s.resources.Admin)))
	s.True(rule.Allows(NewCredentials(s.resources.Staff)))
	s.False(rule.Allows(NewCredentials(s.resources.Staff, s.resources.Product)))
	s.False(rule.Allows(NewCredentials()))
	s.Equal(domain.RuleSpec{Kind: domain.RuleExpr, Expr: rule.Spec().Expr}, rule.Spec())
}

func (s *PolicyTestSuite) TestBuiltinProfiles() {
	for _, name := range []string{ProfilePublic, ProfileStrict, ProfileStaff} {
		s.Run(name, func() {
			profile, err := BuiltinProfile(name)
			s.Require().NoError(err)

			p, pErr := profile.Policy(s.aliases)
			s.Require().NoError(pErr)

			// покупка и цена открыты во всех профилях.
			s.Require().NoError(p.Authorize(domain.OpBuy, NewCredentials()))
			s.Require().NoError(p.Authorize(domain.OpGetPrice, NewCredentials()))
		})
	}

	_, err := BuiltinProfile("nope")
	s.Require().Error(err)
}
