package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a rejected operation.
type Kind string

const (
	UserNotFound               Kind = "USER_NOT_FOUND"
	AccountNotFound            Kind = "ACCOUNT_NOT_FOUND"
	OwnerMismatch              Kind = "OWNER_MISMATCH"
	AccountAlreadyClosed       Kind = "ACCOUNT_ALREADY_CLOSED"
	AmountExceedsBalance       Kind = "AMOUNT_EXCEEDS_BALANCE"
	TransactionNotFound        Kind = "TRANSACTION_NOT_FOUND"
	TransactionAccountMismatch Kind = "TRANSACTION_ACCOUNT_MISMATCH"
	CancelMustBeFull           Kind = "CANCEL_MUST_BE_FULL"
	TooOldToCancel             Kind = "TOO_OLD_TO_CANCEL"
	LockUnavailable            Kind = "LOCK_UNAVAILABLE"
	BalanceNotEmpty            Kind = "BALANCE_NOT_EMPTY"
	InvalidRequest             Kind = "INVALID_REQUEST"
)

var defaultMessages = map[Kind]string{
	UserNotFound:               "user not found",
	AccountNotFound:            "account not found",
	OwnerMismatch:              "account is not owned by the user",
	AccountAlreadyClosed:       "account is already closed",
	AmountExceedsBalance:       "amount exceeds account balance",
	TransactionNotFound:        "transaction not found",
	TransactionAccountMismatch: "transaction does not belong to the account",
	CancelMustBeFull:           "partial cancel is not allowed",
	TooOldToCancel:             "transaction is too old to cancel",
	LockUnavailable:            "account is in use by another transaction",
	BalanceNotEmpty:            "account balance is not empty",
	InvalidRequest:             "invalid request",
}

// Sentinels for errors.Is comparisons; matching is by Kind only.
var (
	ErrUserNotFound               = New(UserNotFound)
	ErrAccountNotFound            = New(AccountNotFound)
	ErrOwnerMismatch              = New(OwnerMismatch)
	ErrAccountAlreadyClosed       = New(AccountAlreadyClosed)
	ErrAmountExceedsBalance       = New(AmountExceedsBalance)
	ErrTransactionNotFound        = New(TransactionNotFound)
	ErrTransactionAccountMismatch = New(TransactionAccountMismatch)
	ErrCancelMustBeFull           = New(CancelMustBeFull)
	ErrTooOldToCancel             = New(TooOldToCancel)
	ErrLockUnavailable            = New(LockUnavailable)
	ErrBalanceNotEmpty            = New(BalanceNotEmpty)
	ErrInvalidRequest             = New(InvalidRequest)
)

// Error is a typed rejection of a single attempted operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New builds an error of the given kind with its default message.
func New(kind Kind) *Error {
	return &Error{Kind: kind, Message: defaultMessage(kind)}
}

// Newf builds an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches an underlying cause to a kind.
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: defaultMessage(kind), Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

func defaultMessage(kind Kind) string {
	if msg, ok := defaultMessages[kind]; ok {
		return msg
	}
	return string(kind)
}
