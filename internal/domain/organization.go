package domain

import "time"

// Organization is the top-level tenant owning projects and tasks.
type Organization struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
}

// Project groups tasks within an organization and carries the operator and
// region context used for station registry lookups.
type Project struct {
	ID        string
	OrgID     string
	Name      string
	Operator  string
	Region    string
	CreatedAt time.Time
}

// User is an acting identity resolved by the auth layer. Identity management
// itself is external to this core.
type User struct {
	ID        string
	OrgID     string
	Name      string
	Email     string
	Token     string
	IsActive  bool
	CreatedAt time.Time
}
