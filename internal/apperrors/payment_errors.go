package apperrors

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FallbackConfirmationError is returned when a cash payment cannot be covered
// by the requested account but a configured fallback account can. The caller
// must re-invoke the payment with use_fallback=true against the fallback
// account; the ledger never switches accounts silently.
type FallbackConfirmationError struct {
	SourceAccountID   string
	SourceBalance     decimal.Decimal
	FallbackAccountID string
	FallbackBalance   decimal.Decimal
}

func (e *FallbackConfirmationError) Error() string {
	return fmt.Sprintf("account %s holds %s: confirmation required to pay from fallback account %s (balance %s)",
		e.SourceAccountID, e.SourceBalance.StringFixed(2), e.FallbackAccountID, e.FallbackBalance.StringFixed(2))
}

func (e *FallbackConfirmationError) Unwrap() error {
	return ErrNeedsFallbackConfirmation
}

// InsufficientFundsError reports the exact shortfall, including the fallback
// balance when one is configured, so callers can surface a precise message.
type InsufficientFundsError struct {
	AccountID       string
	Balance         decimal.Decimal
	Requested       decimal.Decimal
	FallbackBalance *decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	if e.FallbackBalance != nil {
		return fmt.Sprintf("account %s holds %s, fallback holds %s: neither covers %s",
			e.AccountID, e.Balance.StringFixed(2), e.FallbackBalance.StringFixed(2), e.Requested.StringFixed(2))
	}
	return fmt.Sprintf("account %s holds %s: cannot cover %s",
		e.AccountID, e.Balance.StringFixed(2), e.Requested.StringFixed(2))
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}
