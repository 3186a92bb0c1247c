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

package engine

import (
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model"
)

// Outcome is the terminal verdict of evaluating a manifest against a
// revision's rules.
//
// The verdict vocabulary is binary. There is no partial admissibility, no
// score, and no severity gradation; a manifest either satisfies every
// rule of the revision or it is CORRUPTED.
type Outcome int

const (
	// OutcomeUnknown is the zero value. It never appears in a completed
	// validation result.
	OutcomeUnknown Outcome = iota

	// OutcomeAdmissible means every rule of the revision holds.
	OutcomeAdmissible

	// OutcomeCorrupted means at least one rule does not hold.
	OutcomeCorrupted
)

// outcomeStrings maps each outcome to its canonical wire representation.
var outcomeStrings = map[Outcome]string{
	OutcomeUnknown:    "",
	OutcomeAdmissible: "ADMISSIBLE",
	OutcomeCorrupted:  "CORRUPTED",
}

// ParseOutcome converts a wire representation into an Outcome. The empty
// string parses to OutcomeUnknown; any other unknown string is an error.
func ParseOutcome(s string) (Outcome, error) {
	for outcome, str := range outcomeStrings {
		if s == str {
			return outcome, nil
		}
	}
	return OutcomeUnknown, &errors.ParseError{Type: "Outcome", Value: s}
}

// String returns the canonical wire representation of the outcome, or
// "Outcome(N)" for values outside the known set.
func (o Outcome) String() string {
	if s, ok := outcomeStrings[o]; ok {
		return s
	}
	return "Outcome(" + strconv.Itoa(int(o)) + ")"
}

// Valid reports whether the outcome is one of the defined constants,
// including OutcomeUnknown.
func (o Outcome) Valid() bool {
	_, ok := outcomeStrings[o]
	return ok
}

// TypeName returns "Outcome". This method implements part of the
// model.Model interface.
func (o Outcome) TypeName() string { return "Outcome" }

// Redacted returns the same representation as String. This method
// implements part of the model.Model interface.
func (o Outcome) Redacted() string { return o.String() }

// IsZero reports whether the outcome is OutcomeUnknown. This method
// implements part of the model.Model interface.
func (o Outcome) IsZero() bool { return o == OutcomeUnknown }

// Validate returns nil if the outcome is a defined constant.
func (o Outcome) Validate() error {
	if !o.Valid() {
		return &errors.ValidationError{
			Type:   "Outcome",
			Reason: "unknown outcome",
			Value:  int(o),
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for Outcome.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if !o.Valid() {
		return nil, &errors.MarshalError{Type: "Outcome", Value: int(o)}
	}
	return json.Marshal(o.String())
}

// UnmarshalJSON implements json.Unmarshaler for Outcome.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Outcome", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseOutcome(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for Outcome.
func (o Outcome) MarshalYAML() (any, error) {
	if !o.Valid() {
		return nil, &errors.MarshalError{Type: "Outcome", Value: int(o)}
	}
	return o.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Outcome.
func (o *Outcome) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Outcome", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseOutcome(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Compile-time check that Outcome implements the model.Model interface.
var _ model.Model = (*Outcome)(nil)
