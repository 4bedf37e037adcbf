package access

import (
	"fmt"

	"github.com/fsdevblog/gumball-machine/internal/domain"
)

const (
	ProfilePublic = "public"
	ProfileStrict = "strict"
	ProfileStaff  = "staff"
)

// Profile набор правил, выбираемый при развертывании автомата.
type Profile struct {
	Name            string                              `yaml:"name"`
	DefaultDecision domain.DecisionType                 `yaml:"default_decision"`
	RulesUpdatable  bool                                `yaml:"rules_updatable"`
	Staff           bool                                `yaml:"staff"`
	MintRule        domain.RuleSpec                     `yaml:"mint_rule"`
	Rules           map[domain.Operation]domain.RuleSpec `yaml:"rules"`
}

func requireAlias(alias string) domain.RuleSpec {
	return domain.RuleSpec{Kind: domain.RuleRequire, Resource: alias}
}

var (
	allowAllSpec = domain.RuleSpec{Kind: domain.RuleAllowAll}
	adminSpec    = requireAlias(AliasAdmin)
	adminOrStaff = domain.RuleSpec{
		Kind:  domain.RuleAnyOf,
		Rules: []domain.RuleSpec{requireAlias(AliasAdmin), requireAlias(AliasStaff)},
	}
)

// BuiltinProfile возвращает один из встроенных профилей:
//   - public: все операции открыты, минт продукта по-прежнему требует admin бейдж;
//   - strict: запрещено все, что не объявлено, управление только с admin бейджем;
//   - staff: как strict, плюс бейджи персонала, которым доступны set_price и restock.
func BuiltinProfile(name string) (Profile, error) {
	switch name {
	case ProfilePublic:
		return Profile{
			Name:            ProfilePublic,
			DefaultDecision: domain.DecisionAllow,
			MintRule:        adminSpec,
			Rules:           map[domain.Operation]domain.RuleSpec{},
		}, nil
	case ProfileStrict:
		return Profile{
			Name:            ProfileStrict,
			DefaultDecision: domain.DecisionDeny,
			RulesUpdatable:  true,
			MintRule:        adminSpec,
			Rules: map[domain.Operation]domain.RuleSpec{
				domain.OpGetPrice:    allowAllSpec,
				domain.OpBuy:         allowAllSpec,
				domain.OpSetPrice:    adminSpec,
				domain.OpWithdraw:    adminSpec,
				domain.OpRestock:     adminSpec,
				domain.OpUpdateRules: adminSpec,
				domain.OpViewJournal: adminSpec,
			},
		}, nil
	case ProfileStaff:
		return Profile{
			Name:            ProfileStaff,
			DefaultDecision: domain.DecisionDeny,
			RulesUpdatable:  true,
			Staff:           true,
			MintRule:        adminOrStaff,
			Rules: map[domain.Operation]domain.RuleSpec{
				domain.OpGetPrice:        allowAllSpec,
				domain.OpBuy:             allowAllSpec,
				domain.OpSetPrice:        adminOrStaff,
				domain.OpWithdraw:        adminSpec,
				domain.OpRestock:         adminOrStaff,
				domain.OpIssueStaffBadge: adminSpec,
				domain.OpUpdateRules:     adminSpec,
				domain.OpViewJournal:     adminSpec,
			},
		}, nil
	default:
		return Profile{}, fmt.Errorf("unknown access profile `%s`", name)
	}
}

// Policy компилирует правила профиля для конкретных ресурсов.
func (p Profile) Policy(aliases Aliases) (*Policy, error) {
	rules, err := CompileAll(p.Rules, aliases)
	if err != nil {
		return nil, fmt.Errorf("profile `%s`: %w", p.Name, err)
	}
	return NewPolicy(p.DefaultDecision, p.RulesUpdatable, rules), nil
}
