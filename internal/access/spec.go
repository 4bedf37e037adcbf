package access

import (
	"fmt"

	"github.com/fsdevblog/gumball-machine/internal/domain"
)

const (
	AliasAdmin   = "admin"
	AliasStaff   = "staff"
	AliasProduct = "product"
	AliasPayment = "payment"
)

// KnownAliases алиасы, доступные в правилах и CEL выражениях.
var KnownAliases = []string{AliasAdmin, AliasStaff, AliasProduct, AliasPayment}

// Aliases сопоставляет алиас неизменяемому идентификатору ресурса.
type Aliases map[string]domain.ResourceID

// AliasesFor строит алиасы для ресурсов автомата.
func AliasesFor(r domain.Resources) Aliases {
	return Aliases{
		AliasAdmin:   r.Admin,
		AliasStaff:   r.Staff,
		AliasProduct: r.Product,
		AliasPayment: r.Payment,
	}
}

func (a Aliases) resolve(ref string) (domain.ResourceID, error) {
	if id, ok := a[ref]; ok {
		if id == "" {
			return "", fmt.Errorf("%w: alias `%s` is not bound", domain.ErrInvalidRule, ref)
		}
		return id, nil
	}
	return domain.ResourceID(ref), nil
}

// Compile строит Rule по описанию. Алиасы в поле Resource заменяются идентификаторами ресурсов,
// поэтому Spec() скомпилированного правила содержит уже идентификаторы.
func Compile(spec domain.RuleSpec, aliases Aliases) (Rule, error) {
	switch spec.Kind {
	case domain.RuleAllowAll:
		return AllowAll, nil
	case domain.RuleDenyAll:
		return DenyAll, nil
	case domain.RuleRequire:
		if spec.Resource == "" {
			return nil, fmt.Errorf("%w: require without resource", domain.ErrInvalidRule)
		}
		id, err := aliases.resolve(spec.Resource)
		if err != nil {
			return nil, err
		}
		return Require(id), nil
	case domain.RuleAnyOf, domain.RuleAllOf:
		if len(spec.Rules) == 0 {
			return nil, fmt.Errorf("%w: empty `%s`", domain.ErrInvalidRule, spec.Kind)
		}
		rules := make([]Rule, len(spec.Rules))
		for i, s := range spec.Rules {
			rule, err := Compile(s, aliases)
			if err != nil {
				return nil, err
			}
			rules[i] = rule
		}
		if spec.Kind == domain.RuleAnyOf {
			return AnyOf(rules...), nil
		}
		return AllOf(rules...), nil
	case domain.RuleExpr:
		return Expr(spec.Expr, aliases)
	default:
		return nil, fmt.Errorf("%w: unknown kind `%s`", domain.ErrInvalidRule, spec.Kind)
	}
}

// CompileAll компилирует набор правил по операциям.
func CompileAll(specs map[domain.Operation]domain.RuleSpec, aliases Aliases) (map[domain.Operation]Rule, error) {
	rules := make(map[domain.Operation]Rule, len(specs))
	for op, spec := range specs {
		if !op.IsKnown() {
			return nil, fmt.Errorf("compile rules: %w: `%s`", domain.ErrUnknownOperation, op)
		}
		rule, err := Compile(spec, aliases)
		if err != nil {
			return nil, fmt.Errorf("compile rule for `%s`: %w", op, err)
		}
		rules[op] = rule
	}
	return rules, nil
}
