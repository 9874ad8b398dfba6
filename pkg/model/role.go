package model

//go:generate go run github.com/dmarkham/enumer -type Role -trimprefix Role -transform lower -output role.gen.go

import (
	"database/sql/driver"
	"fmt"
)

// Role marks the authorization level of an account. Admin accounts may
// mutate content they do not own.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

// Value stores the role as its lowercase name.
func (r Role) Value() (driver.Value, error) {
	if !r.IsARole() {
		return nil, fmt.Errorf("invalid role value %d", int(r))
	}
	return r.String(), nil
}

// Scan accepts the lowercase name form used in the role column.
func (r *Role) Scan(src interface{}) error {
	var name string
	switch v := src.(type) {
	case string:
		name = v
	case []byte:
		name = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Role", src)
	}

	parsed, err := RoleString(name)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
