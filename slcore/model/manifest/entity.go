/*
   Copyright 2026 The SLML Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package manifest

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model"
)

// Entity is one declared participant in an SLML manifest: a person, class
// of people, group, artifact, or the system itself.
//
// This type implements the model.Model interface. The shape contract
// requires only a non-empty ID, since an entity without an identifier cannot be
// referenced by any other manifest section, so its absence is a load
// failure. Whether the entity's Role is declared, and whether IDs are
// unique across the manifest, is rule territory (role integrity) and does
// not block loading.
type Entity struct {
	// ID is the manifest-unique entity identifier, conventionally a
	// dotted token such as "person.tommy_raven" or "class.slml_adopter".
	//
	// ID MUST NOT be empty for a loadable entity entry.
	ID string `json:"id" yaml:"id"`

	// Role is the entity's declared role. RoleUndeclared (absent field)
	// loads successfully and is reported by the role-integrity rule.
	Role Role `json:"role,omitempty" yaml:"role,omitempty"`
}

// String returns a human-readable representation of the Entity.
func (e Entity) String() string {
	if e.Role.IsZero() {
		return "Entity{" + e.ID + "}"
	}
	return "Entity{" + e.ID + " " + e.Role.String() + "}"
}

// Redacted returns the same representation as String; entity identifiers
// are declarations about a system, not personal data carried by slmlv.
func (e Entity) Redacted() string {
	return e.String()
}

// TypeName returns "Entity". This method implements part of the
// model.Model interface.
func (e Entity) TypeName() string {
	return "Entity"
}

// IsZero reports whether the Entity is empty. This method implements part
// of the model.Model interface.
func (e Entity) IsZero() bool {
	return e.ID == "" && e.Role.IsZero()
}

// Validate checks the Entity's type shape: a non-empty ID and a Role value
// within the closed vocabulary. It deliberately does not require the Role
// to be declared; that is the role-integrity rule's concern.
func (e Entity) Validate() error {
	if e.ID == "" {
		return &errors.ValidationError{
			Type:   "Entity",
			Field:  "ID",
			Reason: "must not be empty",
		}
	}
	return e.Role.Validate()
}

// MarshalJSON implements json.Marshaler for Entity.
func (e Entity) MarshalJSON() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	type alias Entity
	return json.Marshal((alias)(e))
}

// UnmarshalJSON implements json.Unmarshaler for Entity.
func (e *Entity) UnmarshalJSON(data []byte) error {
	type alias Entity
	if err := json.Unmarshal(data, (*alias)(e)); err != nil {
		return &errors.UnmarshalError{Type: "Entity", Data: data, Reason: err.Error()}
	}
	return e.Validate()
}

// MarshalYAML implements yaml.Marshaler for Entity.
func (e Entity) MarshalYAML() (any, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	type alias Entity
	return (alias)(e), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Entity.
func (e *Entity) UnmarshalYAML(node *yaml.Node) error {
	type alias Entity
	if err := node.Decode((*alias)(e)); err != nil {
		return &errors.UnmarshalError{Type: "Entity", Reason: err.Error()}
	}
	return e.Validate()
}

// Compile-time check that Entity implements the model.Model interface.
var _ model.Model = (*Entity)(nil)
