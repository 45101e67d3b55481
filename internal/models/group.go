package models

// Group is the database representation of a family group.
type Group struct {
	GroupID  string  `db:"group_id"`
	Name     string  `db:"name"`
	ParentID *string `db:"parent_id"`
	AuditFields
}

// Person is the database representation of a person.
type Person struct {
	PersonID string `db:"person_id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Phone    string `db:"phone"`
	AuditFields
}

// Membership is the database representation of a person's membership in one
// group. PersonName is joined in from persons for display.
type Membership struct {
	MembershipID string `db:"membership_id"`
	PersonID     string `db:"person_id"`
	GroupID      string `db:"group_id"`
	PersonName   string `db:"person_name"`
	IsActive     bool   `db:"is_active"`
	DisplayOrder int    `db:"display_order"`
	AuditFields
}
