package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/fsdevblog/gumball-machine/internal/access"
	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/fsdevblog/gumball-machine/internal/vending"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultProfile профиль, который используется без файла деплоя.
const DefaultProfile = access.ProfileStrict

var ErrInvalidDeployment = errors.New("invalid deployment")

// Deployment профиль доступа и объемы запаса, общие для всех автоматов инсталляции.
type Deployment struct {
	Profile         access.Profile
	InitialStock    decimal.Decimal
	RestockQuantity decimal.Decimal
}

// deploymentFile формат YAML файла деплоя. Профиль берется из встроенных по имени, заданные поля
// его переопределяют. Правила из rules заменяют правила профиля по операциям, остальные остаются.
//
//	profile: staff
//	default_decision: deny
//	rules:
//	  get_price: {kind: require, resource: staff}
//	initial_stock: "50"
type deploymentFile struct {
	Profile         string                               `yaml:"profile"`
	DefaultDecision *domain.DecisionType                 `yaml:"default_decision"`
	RulesUpdatable  *bool                                `yaml:"rules_updatable"`
	MintRule        *domain.RuleSpec                     `yaml:"mint_rule"`
	Rules           map[domain.Operation]domain.RuleSpec `yaml:"rules"`
	InitialStock    string                               `yaml:"initial_stock"`
	RestockQuantity string                               `yaml:"restock_quantity"`
}

// LoadDeployment читает файл деплоя. Пустой path означает встроенный DefaultProfile с объемами
// по умолчанию.
func LoadDeployment(path string) (*Deployment, error) {
	if path == "" {
		return buildDeployment(deploymentFile{})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load deployment %q: %w", path, err)
	}
	return ParseDeployment(data)
}

// ParseDeployment разбирает и проверяет содержимое YAML файла деплоя.
func ParseDeployment(data []byte) (*Deployment, error) {
	var file deploymentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse deployment: %w", err)
	}
	return buildDeployment(file)
}

func buildDeployment(file deploymentFile) (*Deployment, error) {
	name := defaultIfBlank(file.Profile, DefaultProfile)
	profile, profileErr := access.BuiltinProfile(name)
	if profileErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDeployment, profileErr.Error())
	}

	if file.DefaultDecision != nil {
		switch *file.DefaultDecision {
		case domain.DecisionAllow, domain.DecisionDeny:
			profile.DefaultDecision = *file.DefaultDecision
		default:
			return nil, fmt.Errorf("%w: unknown default decision `%s`", ErrInvalidDeployment, *file.DefaultDecision)
		}
	}
	if file.RulesUpdatable != nil {
		profile.RulesUpdatable = *file.RulesUpdatable
	}
	if file.MintRule != nil {
		profile.MintRule = *file.MintRule
	}
	for op, spec := range file.Rules {
		if !op.IsKnown() {
			return nil, fmt.Errorf("%w: %w `%s`", ErrInvalidDeployment, domain.ErrUnknownOperation, op)
		}
		profile.Rules[op] = spec
	}

	if checkErr := checkProfile(profile); checkErr != nil {
		return nil, checkErr
	}

	initialStock, stockErr := quantity(file.InitialStock, vending.DefaultInitialStock)
	if stockErr != nil {
		return nil, fmt.Errorf("%w: initial_stock: %w", ErrInvalidDeployment, stockErr)
	}
	restockQuantity, restockErr := quantity(file.RestockQuantity, vending.DefaultRestockQuantity)
	if restockErr != nil {
		return nil, fmt.Errorf("%w: restock_quantity: %w", ErrInvalidDeployment, restockErr)
	}

	return &Deployment{
		Profile:         profile,
		InitialStock:    initialStock,
		RestockQuantity: restockQuantity,
	}, nil
}

// checkProfile компилирует правила профиля на произвольных ресурсах, чтобы ошибка в файле деплоя
// обнаружилась при старте, а не при создании первого автомата.
func checkProfile(profile access.Profile) error {
	aliases := access.AliasesFor(domain.Resources{
		Product: "check_product",
		Payment: "check_payment",
		Admin:   "check_admin",
		Staff:   "check_staff",
	})
	if _, err := profile.Policy(aliases); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDeployment, err)
	}
	if _, err := access.Compile(profile.MintRule, aliases); err != nil {
		return fmt.Errorf("%w: mint rule: %w", ErrInvalidDeployment, err)
	}
	return nil
}

// quantity разбирает объем продукта. Продукт неделимый, поэтому значение должно быть целым
// и не отрицательным.
func quantity(value string, def int64) (decimal.Decimal, error) {
	if value == "" {
		return decimal.NewFromInt(def), nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrInvalidAmount, err.Error())
	}
	if d.IsNegative() || !d.Equal(d.Truncate(0)) {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return d, nil
}
