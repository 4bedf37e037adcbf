package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	ErrWrongTokenType        = errors.New("wrong token type")
	ErrInsufficientPayment   = errors.New("insufficient payment")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrAuthorizationDenied   = errors.New("authorization denied")

	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrRulesLocked         = errors.New("access rules are locked")
	ErrStaffBadgesDisabled = errors.New("staff badges are disabled")
	ErrUnknownOperation    = errors.New("unknown operation")
	ErrInvalidRule         = errors.New("invalid access rule")
)

// AuthorizationError отказ в доступе к конкретной операции. errors.Is(err, ErrAuthorizationDenied) == true.
type AuthorizationError struct {
	Operation Operation
}

func NewAuthorizationError(op Operation) error {
	return &AuthorizationError{Operation: op}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: operation `%s`", ErrAuthorizationDenied.Error(), e.Operation)
}

func (e *AuthorizationError) Unwrap() error {
	return ErrAuthorizationDenied
}
