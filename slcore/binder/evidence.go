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

package binder

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model"
)

// Evidence is one piece of externally supplied support for a claim: a
// class label naming what kind of support it is, and a locator pointing
// at where it lives.
//
// The class vocabulary is open. The binder checks only that a class is on
// the permitted list the revision declares for the claim; it never
// interprets the class or dereferences the locator.
type Evidence struct {
	// Class is the evidence class label, e.g. "primary-source".
	Class string `json:"class" yaml:"class"`

	// Locator points at the evidence, e.g. a URL or file path. The binder
	// treats it as an opaque string.
	Locator string `json:"locator" yaml:"locator"`
}

// TypeName returns "Evidence". This method implements part of the
// model.Model interface.
func (e Evidence) TypeName() string { return "Evidence" }

// String returns the full representation including the locator.
func (e Evidence) String() string {
	return "Evidence{" + e.Class + " " + e.Locator + "}"
}

// Redacted masks the locator. Locators can point at internal systems and
// do not belong in production logs. This method implements part of the
// model.Model interface.
func (e Evidence) Redacted() string {
	return "Evidence{" + e.Class + " [locator redacted]}"
}

// IsZero reports whether the evidence is empty. This method implements
// part of the model.Model interface.
func (e Evidence) IsZero() bool {
	return e.Class == "" && e.Locator == ""
}

// Validate returns nil if the evidence carries a class and a locator.
func (e Evidence) Validate() error {
	if e.Class == "" {
		return &errors.ValidationError{Type: "Evidence", Field: "class", Reason: "must not be empty"}
	}
	if e.Locator == "" {
		return &errors.ValidationError{Type: "Evidence", Field: "locator", Reason: "must not be empty", Value: e.Class}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for Evidence.
func (e Evidence) MarshalJSON() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	type alias Evidence
	return json.Marshal(alias(e))
}

// UnmarshalJSON implements json.Unmarshaler for Evidence.
func (e *Evidence) UnmarshalJSON(data []byte) error {
	type alias Evidence
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return &errors.UnmarshalError{Type: "Evidence", Data: data, Reason: err.Error()}
	}
	parsed := Evidence(a)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*e = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for Evidence.
func (e Evidence) MarshalYAML() (any, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	type alias Evidence
	return alias(e), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Evidence.
func (e *Evidence) UnmarshalYAML(node *yaml.Node) error {
	type alias Evidence
	var a alias
	if err := node.Decode(&a); err != nil {
		return &errors.UnmarshalError{Type: "Evidence", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed := Evidence(a)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Compile-time check that Evidence implements the model.Model interface.
var _ model.Model = (*Evidence)(nil)

// Index maps claim identifiers to the evidence supplied for them. The
// binder reads it; callers build it from whatever store holds their
// evidence records.
type Index map[string][]Evidence
