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
	"strings"

	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model"
)

// Claim binds an assertion identifier to the manifest field paths that
// encode it.
//
// Claims carry no truth value and never influence admissibility; they
// exist so the claim/evidence binder can produce a traceability record for
// external auditors. The invariant engine ignores them entirely.
type Claim struct {
	// ID is the manifest-unique claim identifier, conventionally a
	// dotted token such as "claim.determinism".
	ID string `json:"id" yaml:"id"`

	// Fields lists the manifest field paths that encode the claim, in
	// declaration order (for example "ownership.control_direction").
	Fields []string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// String returns a human-readable representation of the Claim.
func (c Claim) String() string {
	return "Claim{" + c.ID + " [" + strings.Join(c.Fields, " ") + "]}"
}

// Redacted returns the same representation as String. This method
// implements part of the model.Model interface.
func (c Claim) Redacted() string {
	return c.String()
}

// TypeName returns "Claim". This method implements part of the
// model.Model interface.
func (c Claim) TypeName() string {
	return "Claim"
}

// IsZero reports whether the Claim is empty. This method implements part
// of the model.Model interface.
func (c Claim) IsZero() bool {
	return c.ID == "" && len(c.Fields) == 0
}

// Validate checks the Claim's type shape: a non-empty ID and non-empty
// field paths.
func (c Claim) Validate() error {
	if c.ID == "" {
		return &errors.ValidationError{
			Type:   "Claim",
			Field:  "ID",
			Reason: "must not be empty",
		}
	}
	for _, f := range c.Fields {
		if f == "" {
			return &errors.ValidationError{
				Type:   "Claim",
				Field:  "Fields",
				Reason: "field paths must not be empty",
			}
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for Claim.
func (c Claim) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	type alias Claim
	return json.Marshal((alias)(c))
}

// UnmarshalJSON implements json.Unmarshaler for Claim.
func (c *Claim) UnmarshalJSON(data []byte) error {
	type alias Claim
	if err := json.Unmarshal(data, (*alias)(c)); err != nil {
		return &errors.UnmarshalError{Type: "Claim", Data: data, Reason: err.Error()}
	}
	return c.Validate()
}

// MarshalYAML implements yaml.Marshaler for Claim.
func (c Claim) MarshalYAML() (any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	type alias Claim
	return (alias)(c), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Claim.
func (c *Claim) UnmarshalYAML(node *yaml.Node) error {
	type alias Claim
	if err := node.Decode((*alias)(c)); err != nil {
		return &errors.UnmarshalError{Type: "Claim", Reason: err.Error()}
	}
	return c.Validate()
}

// Compile-time check that Claim implements the model.Model interface.
var _ model.Model = (*Claim)(nil)
