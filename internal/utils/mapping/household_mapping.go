package mapping

import (
	"github.com/danghm/famledger/internal/core/domain"
	"github.com/danghm/famledger/internal/models"
)

// ToDomainAuditFields converts model audit fields to domain audit fields.
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelAuditFields converts domain audit fields to model audit fields.
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainGroup converts a model Group to a domain Group.
func ToDomainGroup(m models.Group) domain.Group {
	return domain.Group{
		GroupID:     m.GroupID,
		Name:        m.Name,
		ParentID:    m.ParentID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMembership converts a model Membership to a domain Membership.
func ToDomainMembership(m models.Membership) domain.Membership {
	return domain.Membership{
		MembershipID: m.MembershipID,
		PersonID:     m.PersonID,
		GroupID:      m.GroupID,
		PersonName:   m.PersonName,
		IsActive:     m.IsActive,
		DisplayOrder: m.DisplayOrder,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
