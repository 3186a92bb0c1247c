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

// Consent is the manifest section declaring the consent regime between
// the described system and its users.
//
// This type implements the model.Model interface.
//
// ImpliedAccepted is a pointer because the standard distinguishes three
// inputs: declared false (admissible), declared true (rule failure), and
// absent (rule failure; silence about implied consent is not a denial of
// it). The plain bool fields need no such split: for them, absence and
// false fail the same rule the same way.
//
// ExpiresAt is a declaration, not a deadline the validator enforces: the
// consent-expiry rule checks only that an expiry is declared (non-zero),
// never compares it to the current time. Evaluation must not consult the
// clock.
type Consent struct {
	// Explicit declares whether user consent is obtained explicitly.
	// The consent-explicit rule requires true.
	Explicit bool `json:"consent_explicit" yaml:"consent_explicit"`

	// ImpliedAccepted declares whether the system treats implied consent
	// as acceptance. Admissibility requires a declared false; nil means
	// the field is absent.
	ImpliedAccepted *bool `json:"implied_consent_accepted,omitempty" yaml:"implied_consent_accepted,omitempty"`

	// RenegotiationOnChange declares whether consent is renegotiated
	// when the system changes. The renegotiation rule requires true.
	RenegotiationOnChange bool `json:"renegotiation_on_change" yaml:"renegotiation_on_change"`

	// ExpiresAt declares when the consent expires, RFC 3339 in
	// serialized form. The zero value means no expiry is declared.
	ExpiresAt time.Time `json:"consent_expires_at,omitempty" yaml:"consent_expires_at,omitempty"`
}

// String returns a human-readable representation of the Consent section.
func (c Consent) String() string {
	implied := "absent"
	if c.ImpliedAccepted != nil {
		implied = fmt.Sprintf("%t", *c.ImpliedAccepted)
	}
	expires := "absent"
	if !c.ExpiresAt.IsZero() {
		expires = c.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("Consent{explicit:%t implied:%s renegotiation:%t expires:%s}",
		c.Explicit, implied, c.RenegotiationOnChange, expires)
}

// Redacted returns the same representation as String. This method
// implements part of the model.Model interface.
func (c Consent) Redacted() string {
	return c.String()
}

// TypeName returns "Consent". This method implements part of the
// model.Model interface.
func (c Consent) TypeName() string {
	return "Consent"
}

// IsZero reports whether the Consent section is empty. This method
// implements part of the model.Model interface.
func (c Consent) IsZero() bool {
	return !c.Explicit && c.ImpliedAccepted == nil &&
		!c.RenegotiationOnChange && c.ExpiresAt.IsZero()
}

// Validate checks the Consent type shape. Every combination of declared
// values is loadable; the consent rules decide admissibility.
func (c Consent) Validate() error {
	return nil
}

// MarshalJSON implements json.Marshaler for Consent.
func (c Consent) MarshalJSON() ([]byte, error) {
	type alias Consent
	return json.Marshal((alias)(c))
}

// UnmarshalJSON implements json.Unmarshaler for Consent.
func (c *Consent) UnmarshalJSON(data []byte) error {
	type alias Consent
	if err := json.Unmarshal(data, (*alias)(c)); err != nil {
		return &errors.UnmarshalError{Type: "Consent", Data: data, Reason: err.Error()}
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler for Consent.
func (c Consent) MarshalYAML() (any, error) {
	type alias Consent
	return (alias)(c), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Consent.
func (c *Consent) UnmarshalYAML(node *yaml.Node) error {
	type alias Consent
	if err := node.Decode((*alias)(c)); err != nil {
		return &errors.UnmarshalError{Type: "Consent", Reason: err.Error()}
	}
	return nil
}

// Compile-time check that Consent implements the model.Model interface.
var _ model.Model = (*Consent)(nil)
