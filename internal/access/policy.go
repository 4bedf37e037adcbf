package access

import (
	"fmt"
	"maps"

	"github.com/fsdevblog/gumball-machine/internal/domain"
)

// Policy сопоставляет операции правило доступа. Для операций без правила используется явно
// заданное решение по умолчанию. OpUpdateRules всегда требует явного правила.
type Policy struct {
	rules           map[domain.Operation]Rule
	defaultDecision domain.DecisionType
	updatable       bool
}

func NewPolicy(def domain.DecisionType, updatable bool, rules map[domain.Operation]Rule) *Policy {
	if def != domain.DecisionAllow {
		def = domain.DecisionDeny
	}
	return &Policy{
		rules:           maps.Clone(rules),
		defaultDecision: def,
		updatable:       updatable,
	}
}

// Authorize возвращает nil, если предъявленные бейджи удовлетворяют правилу операции, иначе
// *domain.AuthorizationError.
func (p *Policy) Authorize(op domain.Operation, c Credentials) error {
	if !op.IsKnown() {
		return fmt.Errorf("authorize: %w: `%s`", domain.ErrUnknownOperation, op)
	}

	rule, ok := p.rules[op]
	if !ok {
		if op == domain.OpUpdateRules || p.defaultDecision != domain.DecisionAllow {
			return domain.NewAuthorizationError(op)
		}
		return nil
	}

	if !rule.Allows(c) {
		return domain.NewAuthorizationError(op)
	}
	return nil
}

// SetRule заменяет правило операции op. Доступно только для обновляемых политик и вызывающему,
// удовлетворяющему правилу OpUpdateRules. Замена действует на все последующие вызовы.
func (p *Policy) SetRule(op domain.Operation, rule Rule, c Credentials) error {
	if !op.IsKnown() {
		return fmt.Errorf("set rule: %w: `%s`", domain.ErrUnknownOperation, op)
	}
	if !p.updatable {
		return fmt.Errorf("set rule for `%s`: %w", op, domain.ErrRulesLocked)
	}
	if err := p.Authorize(domain.OpUpdateRules, c); err != nil {
		return err
	}

	rules := maps.Clone(p.rules)
	if rules == nil {
		rules = make(map[domain.Operation]Rule, 1)
	}
	rules[op] = rule
	p.rules = rules
	return nil
}

func (p *Policy) Rule(op domain.Operation) (Rule, bool) {
	rule, ok := p.rules[op]
	return rule, ok
}

func (p *Policy) DefaultDecision() domain.DecisionType {
	return p.defaultDecision
}

func (p *Policy) Updatable() bool {
	return p.updatable
}

// Specs сериализуемое представление правил.
func (p *Policy) Specs() map[domain.Operation]domain.RuleSpec {
	res := make(map[domain.Operation]domain.RuleSpec, len(p.rules))
	for op, rule := range p.rules {
		res[op] = rule.Spec()
	}
	return res
}
