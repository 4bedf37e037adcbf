// Package ledger примитивы хост-леджера: ведра (временные переносы токенов), хранилища и менеджеры
// ресурсов с политикой минта.
package ledger

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

const (
	PaymentDivisibility int32 = 18
	ProductDivisibility int32 = 0
	BadgeDivisibility   int32 = 0
)

// NewResourceID генерирует идентификатор нового ресурса.
func NewResourceID() domain.ResourceID {
	return domain.ResourceID("resource_" + uuid.NewString())
}

// Bucket временный перенос некоторого количества токенов одного ресурса. Живет в рамках одного вызова.
type Bucket struct {
	Resource domain.ResourceID `json:"resource"`
	Amount   decimal.Decimal   `json:"amount"`
}

func NewBucket(resource domain.ResourceID, amount decimal.Decimal) Bucket {
	return Bucket{Resource: resource, Amount: amount}
}

func EmptyBucket(resource domain.ResourceID) Bucket {
	return Bucket{Resource: resource, Amount: decimal.Zero}
}

func (b Bucket) IsEmpty() bool {
	return b.Amount.IsZero()
}

// Take забирает amount из ведра в новое ведро. При нехватке возвращает ErrInsufficientBalance,
// ведро при этом не меняется.
func (b *Bucket) Take(amount decimal.Decimal) (Bucket, error) {
	if amount.IsNegative() {
		return Bucket{}, fmt.Errorf("take %s from bucket: %w", amount, domain.ErrInvalidAmount)
	}
	if b.Amount.LessThan(amount) {
		return Bucket{}, fmt.Errorf("take %s from bucket of %s: %w", amount, b.Amount, ErrInsufficientBalance)
	}
	b.Amount = b.Amount.Sub(amount)
	return NewBucket(b.Resource, amount), nil
}

// NonFungible экземпляр невзаимозаменяемого ресурса с данными держателя.
type NonFungible struct {
	Resource domain.ResourceID `json:"resource"`
	LocalID  uint64            `json:"localId"`
	Identity string            `json:"identity"`
}

// ValidAmount проверяет, что amount неотрицателен и не мельче делимости ресурса.
func ValidAmount(amount decimal.Decimal, divisibility int32) bool {
	if amount.IsNegative() {
		return false
	}
	return amount.Equal(amount.Truncate(divisibility))
}
