// Package models defines the client-side data shapes of gophaccount.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UserProfile is the profile returned by the login endpoint. Only the name
// and email fields are read by the client; everything else the API sends is
// kept in Extra and written back unchanged when the profile is persisted.
type UserProfile struct {
	FirstName string
	LastName  string
	Email     string
	Extra     map[string]json.RawMessage
}

var profileFields = []string{"first_name", "last_name", "email"}

// MarshalJSON emits the known fields (when set) merged with Extra.
func (u UserProfile) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Extra)+3)
	for k, v := range u.Extra {
		out[k] = v
	}
	for k, v := range map[string]string{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
	} {
		if v != "" {
			out[k] = v
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a JSON object, splitting known fields from the rest.
// A JSON null leaves u unchanged.
func (u *UserProfile) UnmarshalJSON(b []byte) error {
	if string(bytes.TrimSpace(b)) == "null" {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("user profile: %w", err)
	}

	*u = UserProfile{}
	targets := map[string]*string{
		"first_name": &u.FirstName,
		"last_name":  &u.LastName,
		"email":      &u.Email,
	}
	for _, k := range profileFields {
		v, ok := raw[k]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, targets[k]); err != nil {
			return fmt.Errorf("user profile field %s: %w", k, err)
		}
		delete(raw, k)
	}
	if len(raw) > 0 {
		u.Extra = raw
	}
	return nil
}

// DisplayName is the name shown in the prompt, falling back to the email.
func (u *UserProfile) DisplayName() string {
	if u == nil {
		return ""
	}
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}
