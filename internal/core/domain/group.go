package domain

// Group is a node in the family tree. ParentID is nil for a root group;
// every chain of parents must terminate at exactly one root with no cycles.
type Group struct {
	GroupID  string  `json:"groupID"`  // Primary Key (UUID)
	Name     string  `json:"name"`     // Display name (Not Null)
	ParentID *string `json:"parentID"` // FK -> Group.groupID, nil at the root
	AuditFields
}

// Person is a human identity independent of any group.
type Person struct {
	PersonID string `json:"personID"` // Primary Key (UUID)
	Name     string `json:"name"`     // Display name (Not Null)
	Email    string `json:"email"`    // Nullable contact field
	Phone    string `json:"phone"`    // Nullable contact field
	AuditFields
}
