package mapping

import (
	"github.com/danghm/famledger/internal/core/domain"
	"github.com/danghm/famledger/internal/models"
)

// ToDomainSplitRatio converts decoded split items to the domain structure.
func ToDomainSplitRatio(items []models.SplitItem) []domain.SplitItem {
	if len(items) == 0 {
		return nil
	}
	ratio := make([]domain.SplitItem, len(items))
	for i, item := range items {
		ratio[i] = domain.SplitItem{MemberID: item.MemberID, Percentage: item.Percentage}
	}
	return ratio
}

// ToModelSplitRatio converts a domain split ratio to its storage structure.
func ToModelSplitRatio(ratio []domain.SplitItem) []models.SplitItem {
	if len(ratio) == 0 {
		return nil
	}
	items := make([]models.SplitItem, len(ratio))
	for i, item := range ratio {
		items[i] = models.SplitItem{MemberID: item.MemberID, Percentage: item.Percentage}
	}
	return items
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		GroupID:       m.GroupID,
		CategoryID:    m.CategoryID,
		Amount:        m.Amount,
		Date:          m.Date,
		Type:          domain.TransactionType(m.Type),
		PayerID:       m.PayerID,
		IsShared:      m.IsShared,
		SplitRatio:    ToDomainSplitRatio(m.SplitRatio),
		Note:          m.Note,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSettlement converts a model Settlement to a domain Settlement.
func ToDomainSettlement(m models.Settlement) domain.Settlement {
	return domain.Settlement{
		SettlementID: m.SettlementID,
		GroupID:      m.GroupID,
		PayerID:      m.PayerID,
		PayeeID:      m.PayeeID,
		Amount:       m.Amount,
		Date:         m.Date,
		Note:         m.Note,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSettlement converts a domain Settlement to a model Settlement.
func ToModelSettlement(d domain.Settlement) models.Settlement {
	return models.Settlement{
		SettlementID: d.SettlementID,
		GroupID:      d.GroupID,
		PayerID:      d.PayerID,
		PayeeID:      d.PayeeID,
		Amount:       d.Amount,
		Date:         d.Date,
		Note:         d.Note,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category.
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:   m.CategoryID,
		GroupID:      m.GroupID,
		Name:         m.Name,
		ParentID:     m.ParentID,
		BudgetLimit:  m.BudgetLimit,
		DisplayOrder: m.DisplayOrder,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
