package mapping

import (
	"github.com/univenta/retail_ledger_app/internal/core/domain"
	"github.com/univenta/retail_ledger_app/internal/models"
)

// ToModelExpense converts a domain expense to its persistence model.
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:        d.ExpenseID,
		Category:         string(d.Category),
		Description:      d.Description,
		Amount:           d.Amount,
		AmountPaid:       d.AmountPaid,
		ExpenseDate:      d.ExpenseDate,
		DueDate:          d.DueDate,
		Vendor:           d.Vendor,
		PaymentAccountID: d.PaymentAccountID,
		PaymentMethod:    d.PaymentMethod,
		PaidAt:           d.PaidAt,
		AuditFields:      toModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a persistence model to the domain representation.
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:        m.ExpenseID,
		Category:         domain.ExpenseCategory(m.Category),
		Description:      m.Description,
		Amount:           m.Amount,
		AmountPaid:       m.AmountPaid,
		ExpenseDate:      m.ExpenseDate,
		DueDate:          m.DueDate,
		Vendor:           m.Vendor,
		PaymentAccountID: m.PaymentAccountID,
		PaymentMethod:    m.PaymentMethod,
		PaidAt:           m.PaidAt,
		AuditFields:      toDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of expense models.
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}

// ToDomainAdjustment converts an adjustment audit row to the domain type.
func ToDomainAdjustment(m models.AdjustmentRecord) domain.AdjustmentRecord {
	return domain.AdjustmentRecord{
		AdjustmentID:      m.AdjustmentID,
		ExpenseID:         m.ExpenseID,
		Reason:            domain.AdjustmentReason(m.Reason),
		PreviousAmount:    m.PreviousAmount,
		NewAmount:         m.NewAmount,
		AdjustmentDelta:   m.AdjustmentDelta,
		PreviousAccountID: m.PreviousAccountID,
		NewAccountID:      m.NewAccountID,
		Description:       m.Description,
		AdjustedBy:        m.AdjustedBy,
		AdjustedAt:        m.AdjustedAt,
	}
}
