package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account roles.
type Role uint8

const (
	RoleUser Role = iota + 1
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	}
	return ""
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	}
	return 0, fmt.Errorf("invalid role %q", s)
}

func (r Role) MarshalJSON() ([]byte, error) {
	if r.String() == "" {
		return nil, fmt.Errorf("invalid role %d", r)
	}
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Account never serialises its password hash.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NormalizeEmail is the canonical form used for lookups and storage.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	AccountID string
	Role      Role
}

func (p Principal) IsAdmin() bool { return p.Role.IsAdmin() }
