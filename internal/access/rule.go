// Package access реализует контроль доступа к операциям автомата: правила — булевы выражения над
// множеством предъявленных бейджей, и политику, сопоставляющую правило каждой операции.
package access

import (
	"sort"

	"github.com/fsdevblog/gumball-machine/internal/domain"
)

// Credentials множество идентификаторов ресурсов, экземпляры которых предъявил вызывающий.
// Данные конкретного экземпляра (например, имя сотрудника) в проверке не участвуют.
type Credentials map[domain.ResourceID]struct{}

func NewCredentials(ids ...domain.ResourceID) Credentials {
	c := make(Credentials, len(ids))
	for _, id := range ids {
		c.Add(id)
	}
	return c
}

func (c Credentials) Add(id domain.ResourceID) {
	if id == "" {
		return
	}
	c[id] = struct{}{}
}

func (c Credentials) Has(id domain.ResourceID) bool {
	if id == "" {
		return false
	}
	_, ok := c[id]
	return ok
}

// IDs возвращает отсортированный список идентификаторов.
func (c Credentials) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	return ids
}

// Rule предикат над предъявленными бейджами.
type Rule interface {
	Allows(c Credentials) bool
	Spec() domain.RuleSpec
}

type requireRule struct {
	resource domain.ResourceID
}

// Require пропускает вызывающего, предъявившего хотя бы один экземпляр ресурса id.
func Require(id domain.ResourceID) Rule {
	return requireRule{resource: id}
}

func (r requireRule) Allows(c Credentials) bool {
	return c.Has(r.resource)
}

func (r requireRule) Spec() domain.RuleSpec {
	return domain.RuleSpec{Kind: domain.RuleRequire, Resource: string(r.resource)}
}

type anyOfRule struct {
	rules []Rule
}

// AnyOf логическое ИЛИ. Пустой AnyOf никого не пропускает.
func AnyOf(rules ...Rule) Rule {
	return anyOfRule{rules: rules}
}

func (r anyOfRule) Allows(c Credentials) bool {
	for _, rule := range r.rules {
		if rule.Allows(c) {
			return true
		}
	}
	return false
}

func (r anyOfRule) Spec() domain.RuleSpec {
	return domain.RuleSpec{Kind: domain.RuleAnyOf, Rules: specs(r.rules)}
}

type allOfRule struct {
	rules []Rule
}

// AllOf логическое И.
func AllOf(rules ...Rule) Rule {
	return allOfRule{rules: rules}
}

func (r allOfRule) Allows(c Credentials) bool {
	for _, rule := range r.rules {
		if !rule.Allows(c) {
			return false
		}
	}
	return true
}

func (r allOfRule) Spec() domain.RuleSpec {
	return domain.RuleSpec{Kind: domain.RuleAllOf, Rules: specs(r.rules)}
}

type constRule bool

var (
	AllowAll Rule = constRule(true)
	DenyAll  Rule = constRule(false)
)

func (r constRule) Allows(Credentials) bool {
	return bool(r)
}

func (r constRule) Spec() domain.RuleSpec {
	if r {
		return domain.RuleSpec{Kind: domain.RuleAllowAll}
	}
	return domain.RuleSpec{Kind: domain.RuleDenyAll}
}

func specs(rules []Rule) []domain.RuleSpec {
	res := make([]domain.RuleSpec, len(rules))
	for i, rule := range rules {
		res[i] = rule.Spec()
	}
	return res
}
