package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Role is the closed set of actors known to the workflow. The zero value is
// not a valid role and is denied everywhere.
type Role uint8

const (
	RoleApplicant Role = iota + 1
	RoleAdmin
	RoleBot
)

var ErrInvalidRole = errors.New("invalid role")

func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "applicant":
		return RoleApplicant, nil
	case "admin":
		return RoleAdmin, nil
	case "bot":
		return RoleBot, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleApplicant, RoleAdmin, RoleBot:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	switch r {
	case RoleApplicant:
		return "applicant"
	case RoleAdmin:
		return "admin"
	case RoleBot:
		return "bot"
	default:
		return "unknown"
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRole, uint8(r))
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
