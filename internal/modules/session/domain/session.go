package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Persisted keys, written in lockstep with the in-memory session.
const (
	TokenKey = "cvp_token"
	UserKey  = "cvp_user"
)

type Role string

const (
	RoleCreator    Role = "CREATOR"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

var Roles = []Role{RoleCreator, RoleAdmin, RoleSuperAdmin}

// ParseRole normalizes case and the legacy SUPERADMIN spelling.
func ParseRole(raw string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	switch normalized {
	case string(RoleCreator):
		return RoleCreator, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RoleSuperAdmin), "SUPERADMIN":
		return RoleSuperAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

func (r Role) Label() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleAdmin:
		return "Admin"
	case RoleCreator:
		return "Creator"
	default:
		return string(r)
	}
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UnmarshalJSON accepts `_id` for the id and any known role spelling.
func (u *User) UnmarshalJSON(raw []byte) error {
	var wire struct {
		ID       string `json:"id"`
		MongoID  string `json:"_id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Role     string `json:"role"`
		FullName string `json:"fullName"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}
	u.ID = wire.ID
	if u.ID == "" {
		u.ID = wire.MongoID
	}
	u.Name = wire.Name
	if u.Name == "" {
		u.Name = wire.FullName
	}
	u.Email = wire.Email
	u.Role = Role(strings.ToUpper(wire.Role))
	if role, err := ParseRole(wire.Role); err == nil {
		u.Role = role
	}
	return nil
}

// Session is authenticated only when both the token and the user are set.
type Session struct {
	Token string
	User  *User
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}
