package domain

// Membership associates a person with one group. A person may hold multiple
// memberships, one per group; at most one may be active per (person, group)
// pair.
type Membership struct {
	MembershipID string `json:"membershipID"` // Primary Key (UUID)
	PersonID     string `json:"personID"`     // FK -> Person.personID (Not Null)
	GroupID      string `json:"groupID"`      // FK -> Group.groupID (Not Null)
	PersonName   string `json:"personName"`   // Denormalized for display
	IsActive     bool   `json:"isActive"`
	DisplayOrder int    `json:"displayOrder"` // Display only, no semantic weight
	AuditFields
}
