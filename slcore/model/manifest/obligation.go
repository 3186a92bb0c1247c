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
	"time"

	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model"
)

// ObligationType classifies a declared obligation.
//
// The zero value is ObligationUndeclared (absent field); the vocabulary is
// closed per standard revision.
type ObligationType int

const (
	// ObligationUndeclared indicates the obligation entry carries no
	// type field.
	ObligationUndeclared ObligationType = iota

	// ObligationInformationalDisclosure obliges disclosure of
	// information, such as the standard definition itself.
	ObligationInformationalDisclosure

	// ObligationMaintenance obliges upkeep work, such as schema
	// revision or validator consistency.
	ObligationMaintenance

	// ObligationServiceProvision obliges provision of an ongoing
	// service.
	ObligationServiceProvision

	// ObligationCompliance obliges conformance to an external
	// requirement.
	ObligationCompliance
)

// String constants for ObligationType values as written in manifests.
const (
	ObligationUndeclaredStr              = ""
	ObligationInformationalDisclosureStr = "INFORMATIONAL_DISCLOSURE"
	ObligationMaintenanceStr             = "MAINTENANCE"
	ObligationServiceProvisionStr        = "SERVICE_PROVISION"
	ObligationComplianceStr              = "COMPLIANCE"
)

// ParseObligationType converts a textual representation into an
// ObligationType value, returning a *ParseError for anything outside the
// closed vocabulary.
func ParseObligationType(s string) (ObligationType, error) {
	switch s {
	case ObligationUndeclaredStr:
		return ObligationUndeclared, nil
	case ObligationInformationalDisclosureStr:
		return ObligationInformationalDisclosure, nil
	case ObligationMaintenanceStr:
		return ObligationMaintenance, nil
	case ObligationServiceProvisionStr:
		return ObligationServiceProvision, nil
	case ObligationComplianceStr:
		return ObligationCompliance, nil
	default:
		return ObligationUndeclared, &errors.ParseError{Type: "ObligationType", Value: s}
	}
}

// String returns the canonical manifest representation of the
// ObligationType.
func (t ObligationType) String() string {
	switch t {
	case ObligationUndeclared:
		return ObligationUndeclaredStr
	case ObligationInformationalDisclosure:
		return ObligationInformationalDisclosureStr
	case ObligationMaintenance:
		return ObligationMaintenanceStr
	case ObligationServiceProvision:
		return ObligationServiceProvisionStr
	case ObligationCompliance:
		return ObligationComplianceStr
	default:
		return "unknown"
	}
}

// Valid reports whether the ObligationType is one of the defined
// constants, including ObligationUndeclared.
func (t ObligationType) Valid() bool {
	return t >= ObligationUndeclared && t <= ObligationCompliance
}

// TypeName returns "ObligationType". This method implements part of the
// model.Model interface.
func (t ObligationType) TypeName() string {
	return "ObligationType"
}

// Redacted returns the same representation as String. This method
// implements part of the model.Model interface.
func (t ObligationType) Redacted() string {
	return t.String()
}

// IsZero reports whether the ObligationType is ObligationUndeclared. This
// method implements part of the model.Model interface.
func (t ObligationType) IsZero() bool {
	return t == ObligationUndeclared
}

// Validate returns nil if the ObligationType is within the closed
// vocabulary.
func (t ObligationType) Validate() error {
	if !t.Valid() {
		return &errors.ValidationError{
			Type:   "ObligationType",
			Reason: "invalid ObligationType value",
			Value:  int(t),
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for ObligationType.
func (t ObligationType) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, &errors.MarshalError{Type: "ObligationType", Value: int(t)}
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler for ObligationType.
func (t *ObligationType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "ObligationType", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseObligationType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for ObligationType.
func (t ObligationType) MarshalYAML() (any, error) {
	if !t.Valid() {
		return nil, &errors.MarshalError{Type: "ObligationType", Value: int(t)}
	}
	return t.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for ObligationType.
func (t *ObligationType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "ObligationType", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseObligationType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Compile-time check that ObligationType implements the model.Model
// interface.
var _ model.Model = (*ObligationType)(nil)

// Obligation declares a directed commitment between two declared entities.
//
// This type implements the model.Model interface. The shape contract
// requires only a non-empty ID; everything else (whether From and To
// reference declared entities, whether an expiry is present, whether the
// consent flags form a coercive combination) is decided by the obligation
// rules so that a defective obligation reports CORRUPTED with a reason
// code rather than failing to load.
type Obligation struct {
	// ID is the manifest-unique obligation identifier, conventionally a
	// dotted token such as "obl.slml.disclosure".
	ID string `json:"id" yaml:"id"`

	// From is the entity ID the obligation originates from.
	From string `json:"from,omitempty" yaml:"from,omitempty"`

	// To is the entity ID the obligation is owed to.
	To string `json:"to,omitempty" yaml:"to,omitempty"`

	// Type classifies the obligation.
	Type ObligationType `json:"type,omitempty" yaml:"type,omitempty"`

	// Scope lists the declared scope tokens of the obligation.
	Scope []string `json:"scope,omitempty" yaml:"scope,omitempty"`

	// ConsentRequired declares whether discharging the obligation
	// requires the counterparty's consent.
	ConsentRequired bool `json:"consent_required" yaml:"consent_required"`

	// Revocable declares whether the obligation can be revoked.
	Revocable bool `json:"revocable" yaml:"revocable"`

	// ExpiresAt declares when the obligation lapses. The zero value
	// means no expiry is declared, which the obligation-expiry rule
	// reports.
	ExpiresAt time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// String returns a human-readable representation of the Obligation.
func (o Obligation) String() string {
	return fmt.Sprintf("Obligation{%s %s->%s %s}", o.ID, o.From, o.To, o.Type)
}

// Redacted returns the same representation as String. This method
// implements part of the model.Model interface.
func (o Obligation) Redacted() string {
	return o.String()
}

// TypeName returns "Obligation". This method implements part of the
// model.Model interface.
func (o Obligation) TypeName() string {
	return "Obligation"
}

// IsZero reports whether the Obligation is empty. This method implements
// part of the model.Model interface.
func (o Obligation) IsZero() bool {
	return o.ID == "" && o.From == "" && o.To == "" && o.Type.IsZero() &&
		len(o.Scope) == 0 && !o.ConsentRequired && !o.Revocable && o.ExpiresAt.IsZero()
}

// Validate checks the Obligation's type shape: a non-empty ID and a Type
// within the closed vocabulary.
func (o Obligation) Validate() error {
	if o.ID == "" {
		return &errors.ValidationError{
			Type:   "Obligation",
			Field:  "ID",
			Reason: "must not be empty",
		}
	}
	return o.Type.Validate()
}

// MarshalJSON implements json.Marshaler for Obligation.
func (o Obligation) MarshalJSON() ([]byte, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	type alias Obligation
	return json.Marshal((alias)(o))
}

// UnmarshalJSON implements json.Unmarshaler for Obligation.
func (o *Obligation) UnmarshalJSON(data []byte) error {
	type alias Obligation
	if err := json.Unmarshal(data, (*alias)(o)); err != nil {
		return &errors.UnmarshalError{Type: "Obligation", Data: data, Reason: err.Error()}
	}
	return o.Validate()
}

// MarshalYAML implements yaml.Marshaler for Obligation.
func (o Obligation) MarshalYAML() (any, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	type alias Obligation
	return (alias)(o), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Obligation.
func (o *Obligation) UnmarshalYAML(node *yaml.Node) error {
	type alias Obligation
	if err := node.Decode((*alias)(o)); err != nil {
		return &errors.UnmarshalError{Type: "Obligation", Reason: err.Error()}
	}
	return o.Validate()
}

// Compile-time check that Obligation implements the model.Model interface.
var _ model.Model = (*Obligation)(nil)
