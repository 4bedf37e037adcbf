package ledger

import (
	"fmt"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/shopspring/decimal"
)

// Vault хранилище баланса одного ресурса. Баланс никогда не становится отрицательным.
// Не безопасен для конкурентного использования.
type Vault struct {
	resource     domain.ResourceID
	divisibility int32
	amount       decimal.Decimal
}

func NewVault(resource domain.ResourceID, divisibility int32) *Vault {
	return &Vault{
		resource:     resource,
		divisibility: divisibility,
		amount:       decimal.Zero,
	}
}

// RestoreVault восстанавливает хранилище из сохраненного баланса.
func RestoreVault(resource domain.ResourceID, divisibility int32, amount decimal.Decimal) (*Vault, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("restore vault `%s` with %s: %w", resource, amount, domain.ErrInvalidAmount)
	}
	return &Vault{resource: resource, divisibility: divisibility, amount: amount}, nil
}

func (v *Vault) Resource() domain.ResourceID {
	return v.resource
}

func (v *Vault) Amount() decimal.Decimal {
	return v.amount
}

// Put кладет содержимое ведра в хранилище. Ведро другого ресурса отклоняется с domain.ErrWrongTokenType.
func (v *Vault) Put(b Bucket) error {
	if b.Resource != v.resource {
		return fmt.Errorf("put `%s` into vault of `%s`: %w", b.Resource, v.resource, domain.ErrWrongTokenType)
	}
	v.amount = v.amount.Add(b.Amount)
	return nil
}

// Take забирает amount. Возвращает domain.ErrInvalidAmount для отрицательного или слишком дробного
// количества и ErrInsufficientBalance, если баланса не хватает.
func (v *Vault) Take(amount decimal.Decimal) (Bucket, error) {
	if !ValidAmount(amount, v.divisibility) {
		return Bucket{}, fmt.Errorf("take %s from vault `%s`: %w", amount, v.resource, domain.ErrInvalidAmount)
	}
	if v.amount.LessThan(amount) {
		return Bucket{}, fmt.Errorf(
			"take %s from vault `%s` holding %s: %w", amount, v.resource, v.amount, ErrInsufficientBalance,
		)
	}
	v.amount = v.amount.Sub(amount)
	return NewBucket(v.resource, amount), nil
}

// TakeAll опустошает хранилище.
func (v *Vault) TakeAll() Bucket {
	b := NewBucket(v.resource, v.amount)
	v.amount = decimal.Zero
	return b
}

func (v *Vault) Clone() *Vault {
	c := *v
	return &c
}
