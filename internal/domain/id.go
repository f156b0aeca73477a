// internal/domain/id.go
package domain

import (
	"bytes"
	"encoding/json"
)

// ID is an entity identifier. Upstream services are inconsistent about
// whether ids arrive as JSON numbers or strings, so IDs are normalized to
// their string form and compared by string identity.
type ID string

// IsZero reports whether the id is absent.
func (id ID) IsZero() bool { return id == "" }

func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts string, numeric or null id representations.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	// Numeric token: keep the literal digits as the canonical form.
	*id = ID(string(b))
	return nil
}

// MarshalJSON always emits the string form.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}
