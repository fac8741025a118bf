package mapping

import (
	"github.com/univenta/retail_ledger_app/internal/core/domain"
	"github.com/univenta/retail_ledger_app/internal/models"
)

// ToModelDebt converts a domain debt to its persistence model.
func ToModelDebt(d domain.Debt) models.Debt {
	return models.Debt{
		DebtID:       d.DebtID,
		Kind:         string(d.Kind),
		Description:  d.Description,
		Counterparty: d.Counterparty,
		Amount:       d.Amount,
		AmountPaid:   d.AmountPaid,
		InvoiceDate:  d.InvoiceDate,
		DueDate:      d.DueDate,
		AuditFields:  toModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebt converts a persistence model to the domain representation.
func ToDomainDebt(m models.Debt) domain.Debt {
	return domain.Debt{
		DebtID:       m.DebtID,
		Kind:         domain.DebtKind(m.Kind),
		Description:  m.Description,
		Counterparty: m.Counterparty,
		Amount:       m.Amount,
		AmountPaid:   m.AmountPaid,
		InvoiceDate:  m.InvoiceDate,
		DueDate:      m.DueDate,
		AuditFields:  toDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDebtSlice converts a slice of debt models.
func ToDomainDebtSlice(ms []models.Debt) []domain.Debt {
	ds := make([]domain.Debt, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDebt(m)
	}
	return ds
}
