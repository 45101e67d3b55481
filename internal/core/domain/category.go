package domain

import "github.com/shopspring/decimal"

// Category classifies transactions within a group. Categories form their own
// tree via ParentID, independent of the group tree. BudgetLimit is a monthly
// spending limit; nil means no budget is tracked for the category.
type Category struct {
	CategoryID   string           `json:"categoryID"` // Primary Key (UUID)
	GroupID      string           `json:"groupID"`    // FK -> Group.groupID (Not Null)
	Name         string           `json:"name"`       // Display name (Not Null)
	ParentID     *string          `json:"parentID"`   // FK -> Category.categoryID, nullable
	BudgetLimit  *decimal.Decimal `json:"budgetLimit"`
	DisplayOrder int              `json:"displayOrder"`
	AuditFields
}
