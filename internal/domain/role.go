package domain

// Role represents a publishing role on the site
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// DefaultRole is assigned at registration when no role is requested.
const DefaultRole = RoleEditor

// Action is something a role may or may not be allowed to do.
type Action string

const (
	ActionPublishArticle Action = "article:publish"
)

// IsValid checks if a role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor:
		return true
	}
	return false
}

// Allowed reports whether the role may perform the given action.
func (r Role) Allowed(action Action) bool {
	switch action {
	case ActionPublishArticle:
		return r == RoleAdmin || r == RoleEditor
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}
