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
	"fmt"

	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model"
)

// ControlDirection declares which way control flows between designer and
// user in the described system.
//
// The zero value is DirectionUndeclared (absent field). The
// control-direction rule accepts only DirectionDesignerToUser; both an
// undeclared and an inverted direction are rule failures, not load
// failures.
type ControlDirection int

const (
	// DirectionUndeclared indicates the control_direction field is
	// absent.
	DirectionUndeclared ControlDirection = iota

	// DirectionDesignerToUser declares that the designer cedes control
	// toward the user, the only direction the standard admits.
	DirectionDesignerToUser

	// DirectionUserToDesigner declares control flowing from user to
	// designer. Loadable, never admissible.
	DirectionUserToDesigner
)

// String constants for ControlDirection values as written in manifests.
const (
	DirectionUndeclaredStr     = ""
	DirectionDesignerToUserStr = "DESIGNER_TO_USER"
	DirectionUserToDesignerStr = "USER_TO_DESIGNER"
)

// ParseControlDirection converts a textual representation into a
// ControlDirection value, returning a *ParseError for anything outside
// the closed vocabulary.
func ParseControlDirection(s string) (ControlDirection, error) {
	switch s {
	case DirectionUndeclaredStr:
		return DirectionUndeclared, nil
	case DirectionDesignerToUserStr:
		return DirectionDesignerToUser, nil
	case DirectionUserToDesignerStr:
		return DirectionUserToDesigner, nil
	default:
		return DirectionUndeclared, &errors.ParseError{Type: "ControlDirection", Value: s}
	}
}

// String returns the canonical manifest representation of the
// ControlDirection.
func (d ControlDirection) String() string {
	switch d {
	case DirectionUndeclared:
		return DirectionUndeclaredStr
	case DirectionDesignerToUser:
		return DirectionDesignerToUserStr
	case DirectionUserToDesigner:
		return DirectionUserToDesignerStr
	default:
		return "unknown"
	}
}

// Valid reports whether the ControlDirection is one of the defined
// constants, including DirectionUndeclared.
func (d ControlDirection) Valid() bool {
	return d >= DirectionUndeclared && d <= DirectionUserToDesigner
}

// TypeName returns "ControlDirection". This method implements part of the
// model.Model interface.
func (d ControlDirection) TypeName() string {
	return "ControlDirection"
}

// Redacted returns the same representation as String. This method
// implements part of the model.Model interface.
func (d ControlDirection) Redacted() string {
	return d.String()
}

// IsZero reports whether the ControlDirection is DirectionUndeclared. This
// method implements part of the model.Model interface.
func (d ControlDirection) IsZero() bool {
	return d == DirectionUndeclared
}

// Validate returns nil if the ControlDirection is within the closed
// vocabulary.
func (d ControlDirection) Validate() error {
	if !d.Valid() {
		return &errors.ValidationError{
			Type:   "ControlDirection",
			Reason: "invalid ControlDirection value",
			Value:  int(d),
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for ControlDirection.
func (d ControlDirection) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, &errors.MarshalError{Type: "ControlDirection", Value: int(d)}
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler for ControlDirection.
func (d *ControlDirection) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "ControlDirection", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseControlDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for ControlDirection.
func (d ControlDirection) MarshalYAML() (any, error) {
	if !d.Valid() {
		return nil, &errors.MarshalError{Type: "ControlDirection", Value: int(d)}
	}
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for ControlDirection.
func (d *ControlDirection) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "ControlDirection", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseControlDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Compile-time check that ControlDirection implements the model.Model
// interface.
var _ model.Model = (*ControlDirection)(nil)

// Ownership is the manifest section declaring how explicitly ownership of
// the described system is stated and which way control flows.
//
// This type implements the model.Model interface. Absence of the whole
// section is represented by a nil *Ownership on the Manifest; absence of
// individual fields decodes to their zero values, which the ownership
// rules treat as explicit failing inputs (an undeclared declaration is a
// declaration of nothing).
type Ownership struct {
	// Explicit declares whether ownership of the system is stated
	// explicitly. The ownership rule requires true; an absent field
	// decodes to false and fails the rule.
	Explicit bool `json:"ownership_explicit" yaml:"ownership_explicit"`

	// ControlDirection declares the direction of control. Only
	// DESIGNER_TO_USER is admissible.
	ControlDirection ControlDirection `json:"control_direction,omitempty" yaml:"control_direction,omitempty"`
}

// String returns a human-readable representation of the Ownership section.
func (o Ownership) String() string {
	return fmt.Sprintf("Ownership{explicit:%t direction:%s}", o.Explicit, o.ControlDirection)
}

// Redacted returns the same representation as String. This method
// implements part of the model.Model interface.
func (o Ownership) Redacted() string {
	return o.String()
}

// TypeName returns "Ownership". This method implements part of the
// model.Model interface.
func (o Ownership) TypeName() string {
	return "Ownership"
}

// IsZero reports whether the Ownership section is empty. This method
// implements part of the model.Model interface.
func (o Ownership) IsZero() bool {
	return !o.Explicit && o.ControlDirection.IsZero()
}

// Validate checks the Ownership type shape. All field values, including
// the zero value, are loadable; only the ControlDirection vocabulary is
// enforced here.
func (o Ownership) Validate() error {
	return o.ControlDirection.Validate()
}

// MarshalJSON implements json.Marshaler for Ownership.
func (o Ownership) MarshalJSON() ([]byte, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	type alias Ownership
	return json.Marshal((alias)(o))
}

// UnmarshalJSON implements json.Unmarshaler for Ownership.
func (o *Ownership) UnmarshalJSON(data []byte) error {
	type alias Ownership
	if err := json.Unmarshal(data, (*alias)(o)); err != nil {
		return &errors.UnmarshalError{Type: "Ownership", Data: data, Reason: err.Error()}
	}
	return o.Validate()
}

// MarshalYAML implements yaml.Marshaler for Ownership.
func (o Ownership) MarshalYAML() (any, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	type alias Ownership
	return (alias)(o), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Ownership.
func (o *Ownership) UnmarshalYAML(node *yaml.Node) error {
	type alias Ownership
	if err := node.Decode((*alias)(o)); err != nil {
		return &errors.UnmarshalError{Type: "Ownership", Reason: err.Error()}
	}
	return o.Validate()
}

// Compile-time check that Ownership implements the model.Model interface.
var _ model.Model = (*Ownership)(nil)
