package domain

// Operation имя операции автомата, по которому в политике доступа ищется правило.
type Operation string

const (
	OpGetPrice        Operation = "get_price"
	OpSetPrice        Operation = "set_price"
	OpBuy             Operation = "buy"
	OpWithdraw        Operation = "withdraw_earnings"
	OpRestock         Operation = "restock"
	OpIssueStaffBadge Operation = "issue_staff_badge"
	OpUpdateRules     Operation = "update_rules"
	OpViewJournal     Operation = "view_journal"
)

// Operations все известные операции автомата.
var Operations = []Operation{
	OpGetPrice,
	OpSetPrice,
	OpBuy,
	OpWithdraw,
	OpRestock,
	OpIssueStaffBadge,
	OpUpdateRules,
	OpViewJournal,
}

// IsKnown сообщает, является ли операция одной из Operations.
func (o Operation) IsKnown() bool {
	for _, op := range Operations {
		if op == o {
			return true
		}
	}
	return false
}

// DecisionType решение политики для операций без явно объявленного правила.
type DecisionType string

const (
	DecisionDeny  DecisionType = "deny"
	DecisionAllow DecisionType = "allow"
)

type RuleKind string

const (
	RuleRequire  RuleKind = "require"
	RuleAnyOf    RuleKind = "any_of"
	RuleAllOf    RuleKind = "all_of"
	RuleAllowAll RuleKind = "allow_all"
	RuleDenyAll  RuleKind = "deny_all"
	RuleExpr     RuleKind = "expr"
)

// RuleSpec сериализуемое описание правила доступа. Хранится в БД как JSON и читается из YAML файла
// деплоя. В поле Resource допускается как идентификатор ресурса, так и алиас (admin, staff, ...).
type RuleSpec struct {
	Kind     RuleKind   `json:"kind"               yaml:"kind"`
	Resource string     `json:"resource,omitempty" yaml:"resource,omitempty"`
	Rules    []RuleSpec `json:"rules,omitempty"    yaml:"rules,omitempty"`
	Expr     string     `json:"expr,omitempty"     yaml:"expr,omitempty"`
}

type JournalKindType string

const (
	JournalSale        JournalKindType = "sale"
	JournalWithdrawal  JournalKindType = "withdrawal"
	JournalRestock     JournalKindType = "restock"
	JournalPriceChange JournalKindType = "price_change"
	JournalStaffBadge  JournalKindType = "staff_badge"
	JournalRuleUpdate  JournalKindType = "rule_update"
)

type ExportStatusType string

const (
	ExportStatusNew      ExportStatusType = "NEW"
	ExportStatusExported ExportStatusType = "EXPORTED"
)
