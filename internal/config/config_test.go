package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsdevblog/gumball-machine/internal/access"
	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/internal/vending"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestLoadConfig() {
	s.T().Setenv("DATABASE_URI", "postgres://env")
	s.T().Setenv("BADGE_SECRET", "env secret")
	s.T().Setenv("RUN_ADDRESS", "")

	conf, err := LoadConfig([]string{"-d", "postgres://flag", "-a", ":9090", "-r", "http://accounting"})
	s.Require().NoError(err)

	s.Equal("postgres://env", conf.DatabaseDSN, "env wins over flags")
	s.Equal(":9090", conf.RunAddress)
	s.Equal("http://accounting", conf.ExportAddress)
	s.Equal(defaultMigrationsDir, conf.MigrationsDir)
	s.Equal(defaultPaymentResource, conf.PaymentResource)
	s.NotContains(conf.String(), "env secret")
}

func (s *ConfigTestSuite) TestLoadConfig_Required() {
	s.T().Setenv("DATABASE_URI", "")
	s.T().Setenv("BADGE_SECRET", "")

	_, err := LoadConfig([]string{"-s", "secret"})
	s.Require().Error(err)

	_, err = LoadConfig([]string{"-d", "postgres://flag"})
	s.Require().Error(err)

	_, err = LoadConfig([]string{"-unknown"})
	s.Require().Error(err)
}

func (s *ConfigTestSuite) TestLoadDeployment_Default() {
	d, err := LoadDeployment("")
	s.Require().NoError(err)

	s.Equal(access.ProfileStrict, d.Profile.Name)
	s.True(decimal.NewFromInt(vending.DefaultInitialStock).Equal(d.InitialStock))
	s.True(decimal.NewFromInt(vending.DefaultRestockQuantity).Equal(d.RestockQuantity))
}

func (s *ConfigTestSuite) TestLoadDeployment_File() {
	path := filepath.Join(s.T().TempDir(), "deployment.yaml")
	data := []byte(`
profile: staff
default_decision: allow
rules_updatable: false
rules:
  get_price:
    kind: require
    resource: staff
  view_journal:
    kind: expr
    expr: admin in credentials || staff in credentials
initial_stock: "50"
restock_quantity: "25"
`)
	s.Require().NoError(os.WriteFile(path, data, 0o600))

	d, err := LoadDeployment(path)
	s.Require().NoError(err)

	s.Equal(access.ProfileStaff, d.Profile.Name)
	s.True(d.Profile.Staff)
	s.Equal(domain.DecisionAllow, d.Profile.DefaultDecision)
	s.False(d.Profile.RulesUpdatable)
	s.Equal(domain.RuleSpec{Kind: domain.RuleRequire, Resource: access.AliasStaff}, d.Profile.Rules[domain.OpGetPrice])
	s.Equal(domain.RuleRequire, d.Profile.Rules[domain.OpWithdraw].Kind, "not overridden rules are kept")
	s.True(decimal.NewFromInt(50).Equal(d.InitialStock))
	s.True(decimal.NewFromInt(25).Equal(d.RestockQuantity))
}

func (s *ConfigTestSuite) TestParseDeployment_Errors() {
	cases := []struct {
		name string
		data string
	}{
		{name: "unknown profile", data: "profile: chaos"},
		{name: "unknown decision", data: "default_decision: maybe"},
		{name: "unknown operation", data: "rules: {self_destruct: {kind: allow_all}}"},
		{name: "require without resource", data: "rules: {buy: {kind: require}}"},
		{name: "broken expr", data: "rules: {buy: {kind: expr, expr: 'admin in'}}"},
		{name: "fractional stock", data: `initial_stock: "1.5"`},
		{name: "negative restock", data: `restock_quantity: "-1"`},
		{name: "broken yaml", data: "rules: ["},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			_, err := ParseDeployment([]byte(t.data))
			s.Require().Error(err)
		})
	}
}
