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

// Role classifies an entity declared in an SLML manifest.
//
// Roles are a closed vocabulary fixed by the standard: the invariant rules
// dispatch on them (user/beneficiary alignment, burden coverage, coercion
// checks), so an unknown role string is a type-shape failure at load time,
// not a rule failure.
//
// The zero value is RoleUndeclared, representing an entity entry whose
// role field is absent. An undeclared role is well-formed and the manifest
// still loads, but the role-integrity rule reports it, keeping "manifest
// is not even parseable" distinct from "manifest is structurally
// inadmissible".
type Role int

const (
	// RoleUndeclared indicates the entity entry carries no role field.
	//
	// This is the explicit "absent" input value required by rule
	// evaluation; it is never written by a conforming author.
	RoleUndeclared Role = iota

	// RoleDesigner identifies the party that defines and controls the
	// system the manifest describes.
	RoleDesigner

	// RoleUser identifies a party the system is declared to be operated
	// by. The standard requires the declared user set to equal the
	// declared beneficiary set.
	RoleUser

	// RoleBeneficiary identifies a party the system is declared to
	// benefit.
	RoleBeneficiary

	// RoleComponent identifies an internal constituent of the system,
	// such as a maintainer group.
	RoleComponent

	// RoleProduct identifies an artifact the system produces or consists
	// of.
	RoleProduct

	// RoleSystem identifies the system under declaration itself.
	RoleSystem
)

// String constants for Role values. These form the stable external
// representation used in manifests and MUST NOT change for a published
// standard version.
const (
	RoleUndeclaredStr  = ""
	RoleDesignerStr    = "DESIGNER"
	RoleUserStr        = "USER"
	RoleBeneficiaryStr = "BENEFICIARY"
	RoleComponentStr   = "COMPONENT"
	RoleProductStr     = "PRODUCT"
	RoleSystemStr      = "SYSTEM"
)

// ParseRole converts a textual representation into a Role value.
//
// The vocabulary is exactly the uppercase forms written in manifests, plus
// the empty string for an undeclared role. Any other input yields a
// *ParseError, which the loader surfaces as a malformed-manifest
// condition.
func ParseRole(s string) (Role, error) {
	switch s {
	case RoleUndeclaredStr:
		return RoleUndeclared, nil
	case RoleDesignerStr:
		return RoleDesigner, nil
	case RoleUserStr:
		return RoleUser, nil
	case RoleBeneficiaryStr:
		return RoleBeneficiary, nil
	case RoleComponentStr:
		return RoleComponent, nil
	case RoleProductStr:
		return RoleProduct, nil
	case RoleSystemStr:
		return RoleSystem, nil
	default:
		return RoleUndeclared, &errors.ParseError{Type: "Role", Value: s}
	}
}

// String returns the canonical manifest representation of the Role.
// RoleUndeclared renders as the empty string; values outside the defined
// constants render as "unknown".
func (r Role) String() string {
	switch r {
	case RoleUndeclared:
		return RoleUndeclaredStr
	case RoleDesigner:
		return RoleDesignerStr
	case RoleUser:
		return RoleUserStr
	case RoleBeneficiary:
		return RoleBeneficiaryStr
	case RoleComponent:
		return RoleComponentStr
	case RoleProduct:
		return RoleProductStr
	case RoleSystem:
		return RoleSystemStr
	default:
		return "unknown"
	}
}

// Valid reports whether the Role is one of the defined constants,
// including RoleUndeclared.
func (r Role) Valid() bool {
	return r >= RoleUndeclared && r <= RoleSystem
}

// Declared reports whether the Role carries an actual role declaration.
// The role-integrity rule fails entities for which Declared is false.
func (r Role) Declared() bool {
	return r.Valid() && r != RoleUndeclared
}

// TypeName returns "Role". This method implements part of the model.Model
// interface.
func (r Role) TypeName() string {
	return "Role"
}

// Redacted returns the same representation as String; roles carry no
// sensitive information. This method implements part of the model.Model
// interface.
func (r Role) Redacted() string {
	return r.String()
}

// IsZero reports whether the Role is RoleUndeclared, the zero value. This
// method implements part of the model.Model interface.
func (r Role) IsZero() bool {
	return r == RoleUndeclared
}

// Validate returns nil if the Role is one of the defined constants, or a
// *ValidationError otherwise. RoleUndeclared is valid at the shape level;
// rejecting it is the role-integrity rule's job.
func (r Role) Validate() error {
	if !r.Valid() {
		return &errors.ValidationError{
			Type:   "Role",
			Reason: "invalid Role value",
			Value:  int(r),
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for Role, emitting the canonical
// uppercase string form.
func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, &errors.MarshalError{Type: "Role", Value: int(r)}
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON implements json.Unmarshaler for Role, accepting only the
// canonical string vocabulary.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Role", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for Role.
func (r Role) MarshalYAML() (any, error) {
	if !r.Valid() {
		return nil, &errors.MarshalError{Type: "Role", Value: int(r)}
	}
	return r.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Role.
func (r *Role) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Role", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Compile-time check that Role implements the model.Model interface.
var _ model.Model = (*Role)(nil)
