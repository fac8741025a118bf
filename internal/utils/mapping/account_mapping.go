package mapping

import (
	"github.com/univenta/retail_ledger_app/internal/core/domain"
	"github.com/univenta/retail_ledger_app/internal/models"
)

// ToModelAccount converts a domain balance account to its persistence model.
func ToModelAccount(d domain.BalanceAccount) models.BalanceAccount {
	return models.BalanceAccount{
		AccountID:         d.AccountID,
		Code:              d.Code,
		Name:              d.Name,
		Kind:              models.AccountKind(d.Kind),
		Balance:           d.Balance,
		FallbackAccountID: d.FallbackAccountID,
		IsActive:          d.IsActive,
		AuditFields:       toModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a persistence model to the domain representation.
func ToDomainAccount(m models.BalanceAccount) domain.BalanceAccount {
	return domain.BalanceAccount{
		AccountID:         m.AccountID,
		Code:              m.Code,
		Name:              m.Name,
		Kind:              domain.AccountKind(m.Kind),
		Balance:           m.Balance,
		FallbackAccountID: m.FallbackAccountID,
		IsActive:          m.IsActive,
		AuditFields:       toDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAuditEntry converts an account audit row to the domain type.
func ToDomainAuditEntry(m models.AccountAuditEntry) domain.AccountAuditEntry {
	return domain.AccountAuditEntry{
		EntryID:         m.EntryID,
		AccountID:       m.AccountID,
		PreviousBalance: m.PreviousBalance,
		NewBalance:      m.NewBalance,
		Reason:          m.Reason,
		SetBy:           m.SetBy,
		SetAt:           m.SetAt,
	}
}

func toModelAuditFields(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toDomainAuditFields(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}
