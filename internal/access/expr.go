package access

import (
	"fmt"
	"sync"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/google/cel-go/cel"
)

const (
	credentialsVar = "credentials"
	exprCostLimit  = 1000
)

// exprEnv общее CEL окружение: список предъявленных бейджей и строковые переменные алиасов.
var exprEnv = sync.OnceValues(func() (*cel.Env, error) {
	opts := []cel.EnvOption{cel.Variable(credentialsVar, cel.ListType(cel.StringType))}
	for _, alias := range KnownAliases {
		opts = append(opts, cel.Variable(alias, cel.StringType))
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}
	return env, nil
})

// exprRule правило, заданное CEL выражением, например `admin in credentials || staff in credentials`.
type exprRule struct {
	expr    string
	prg     cel.Program
	aliases Aliases
}

// Expr компилирует CEL выражение. Выражение обязано возвращать bool.
func Expr(expr string, aliases Aliases) (Rule, error) {
	env, envErr := exprEnv()
	if envErr != nil {
		return nil, envErr
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile `%s`: %w: %s", expr, domain.ErrInvalidRule, issues.Err().Error())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("compile `%s`: %w: result is not bool", expr, domain.ErrInvalidRule)
	}

	prg, prgErr := env.Program(ast, cel.CostLimit(exprCostLimit))
	if prgErr != nil {
		return nil, fmt.Errorf("program `%s`: %w: %s", expr, domain.ErrInvalidRule, prgErr.Error())
	}

	return &exprRule{expr: expr, prg: prg, aliases: aliases}, nil
}

// Allows при ошибке вычисления запрещает доступ.
func (r *exprRule) Allows(c Credentials) bool {
	activation := map[string]any{credentialsVar: c.IDs()}
	for _, alias := range KnownAliases {
		activation[alias] = string(r.aliases[alias])
	}

	out, _, err := r.prg.Eval(activation)
	if err != nil {
		return false
	}
	allowed, ok := out.Value().(bool)
	return ok && allowed
}

func (r *exprRule) Spec() domain.RuleSpec {
	return domain.RuleSpec{Kind: domain.RuleExpr, Expr: r.expr}
}
