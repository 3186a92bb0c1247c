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
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model"
)

// Dimension names one axis of the standard's inconvenience model.
//
// Dimensions form a closed vocabulary fixed per standard revision. They
// are represented as a string type rather than an integer enum because
// they serve as map keys in weights and burden loads; validation against
// the vocabulary happens in Validate.
type Dimension string

const (
	// DimensionTime weighs time demanded of an entity.
	DimensionTime Dimension = "TIME"

	// DimensionCost weighs monetary cost borne by an entity.
	DimensionCost Dimension = "COST"

	// DimensionRisk weighs risk exposure imposed on an entity.
	DimensionRisk Dimension = "RISK"

	// DimensionAgency weighs loss of agency imposed on an entity.
	DimensionAgency Dimension = "AGENCY"
)

// Dimensions lists the closed vocabulary in canonical order.
var Dimensions = []Dimension{DimensionTime, DimensionCost, DimensionRisk, DimensionAgency}

// String returns the canonical uppercase form of the Dimension.
func (d Dimension) String() string { return string(d) }

// Valid reports whether the Dimension is in the closed vocabulary.
func (d Dimension) Valid() bool {
	switch d {
	case DimensionTime, DimensionCost, DimensionRisk, DimensionAgency:
		return true
	default:
		return false
	}
}

// Validate returns nil if the Dimension is in the closed vocabulary, or a
// *ValidationError otherwise. An unknown dimension key is a type-shape
// failure: the weight-normalization rule reasons over the vocabulary, not
// over arbitrary keys.
func (d Dimension) Validate() error {
	if !d.Valid() {
		return &errors.ValidationError{
			Type:   "Dimension",
			Reason: "unknown inconvenience dimension",
			Value:  string(d),
		}
	}
	return nil
}

// Weights maps each inconvenience dimension to its declared weight.
//
// The shape contract admits any float values under known dimension keys;
// non-negativity and normalization (sum within epsilon of 1) are checked
// by the weight-normalization rule, so a manifest with bad weights loads
// and then reports CORRUPTED rather than failing to parse.
type Weights map[Dimension]float64

// Sum returns the sum of all declared weights.
func (w Weights) Sum() float64 {
	var sum float64
	for _, v := range w {
		sum += v
	}
	return sum
}

// String returns a deterministic human-readable representation of the
// Weights, with dimensions in canonical vocabulary order.
func (w Weights) String() string {
	parts := make([]string, 0, len(w))
	for _, d := range Dimensions {
		if v, ok := w[d]; ok {
			parts = append(parts, fmt.Sprintf("%s:%g", d, v))
		}
	}
	// Unknown keys, if any survived construction, render last and sorted.
	var rest []string
	for d, v := range w {
		if !d.Valid() {
			rest = append(rest, fmt.Sprintf("%s:%g", d, v))
		}
	}
	sort.Strings(rest)
	return "Weights{" + strings.Join(append(parts, rest...), " ") + "}"
}

// Redacted returns the same representation as String. This method
// implements part of the model.Model interface.
func (w Weights) Redacted() string {
	return w.String()
}

// TypeName returns "Weights". This method implements part of the
// model.Model interface.
func (w Weights) TypeName() string {
	return "Weights"
}

// IsZero reports whether no weights are declared. This method implements
// part of the model.Model interface.
func (w Weights) IsZero() bool {
	return len(w) == 0
}

// Validate checks that every declared key is a known dimension.
func (w Weights) Validate() error {
	for d := range w {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for Weights.
func (w Weights) MarshalJSON() ([]byte, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	type alias Weights
	return json.Marshal((alias)(w))
}

// UnmarshalJSON implements json.Unmarshaler for Weights.
func (w *Weights) UnmarshalJSON(data []byte) error {
	type alias Weights
	if err := json.Unmarshal(data, (*alias)(w)); err != nil {
		return &errors.UnmarshalError{Type: "Weights", Data: data, Reason: err.Error()}
	}
	return w.Validate()
}

// MarshalYAML implements yaml.Marshaler for Weights.
func (w Weights) MarshalYAML() (any, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	type alias Weights
	return (alias)(w), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Weights.
func (w *Weights) UnmarshalYAML(node *yaml.Node) error {
	type alias Weights
	if err := node.Decode((*alias)(w)); err != nil {
		return &errors.UnmarshalError{Type: "Weights", Reason: err.Error()}
	}
	return w.Validate()
}

// Compile-time check that Weights implements the model.Model interface.
var _ model.Model = (*Weights)(nil)

// Burden declares the expected inconvenience loads one entity bears, per
// dimension.
//
// A dimension absent from Loads contributes zero to the entity's weighted
// total; that is the rule-level meaning of absence for burden entries,
// chosen so sparsely declared burdens evaluate deterministically.
type Burden struct {
	// Entity is the ID of the entity bearing the burden. It MUST
	// reference an entry in the manifest's entity list for coverage
	// rules to hold, but the shape contract requires only that it is
	// non-empty.
	Entity string `json:"entity" yaml:"entity"`

	// Loads maps dimensions to expected load values.
	Loads map[Dimension]float64 `json:"loads,omitempty" yaml:"loads,omitempty"`
}

// WeightedTotal returns the weighted sum of the Burden's loads under the
// given weights. Dimensions absent from Loads contribute zero; dimensions
// absent from the weights contribute zero weight.
func (b Burden) WeightedTotal(w Weights) float64 {
	var total float64
	for d, weight := range w {
		total += weight * b.Loads[d]
	}
	return total
}

// String returns a deterministic human-readable representation of the
// Burden.
func (b Burden) String() string {
	parts := make([]string, 0, len(b.Loads))
	for _, d := range Dimensions {
		if v, ok := b.Loads[d]; ok {
			parts = append(parts, fmt.Sprintf("%s:%g", d, v))
		}
	}
	return "Burden{" + b.Entity + " " + strings.Join(parts, " ") + "}"
}

// Redacted returns the same representation as String. This method
// implements part of the model.Model interface.
func (b Burden) Redacted() string {
	return b.String()
}

// TypeName returns "Burden". This method implements part of the
// model.Model interface.
func (b Burden) TypeName() string {
	return "Burden"
}

// IsZero reports whether the Burden is empty. This method implements part
// of the model.Model interface.
func (b Burden) IsZero() bool {
	return b.Entity == "" && len(b.Loads) == 0
}

// Validate checks the Burden's type shape: a non-empty entity reference
// and known dimension keys.
func (b Burden) Validate() error {
	if b.Entity == "" {
		return &errors.ValidationError{
			Type:   "Burden",
			Field:  "Entity",
			Reason: "must not be empty",
		}
	}
	for d := range b.Loads {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for Burden.
func (b Burden) MarshalJSON() ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	type alias Burden
	return json.Marshal((alias)(b))
}

// UnmarshalJSON implements json.Unmarshaler for Burden.
func (b *Burden) UnmarshalJSON(data []byte) error {
	type alias Burden
	if err := json.Unmarshal(data, (*alias)(b)); err != nil {
		return &errors.UnmarshalError{Type: "Burden", Data: data, Reason: err.Error()}
	}
	return b.Validate()
}

// MarshalYAML implements yaml.Marshaler for Burden.
func (b Burden) MarshalYAML() (any, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	type alias Burden
	return (alias)(b), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Burden.
func (b *Burden) UnmarshalYAML(node *yaml.Node) error {
	type alias Burden
	if err := node.Decode((*alias)(b)); err != nil {
		return &errors.UnmarshalError{Type: "Burden", Reason: err.Error()}
	}
	return b.Validate()
}

// Compile-time check that Burden implements the model.Model interface.
var _ model.Model = (*Burden)(nil)

// Inconvenience is the manifest section carrying the inconvenience model:
// declared weights plus expected per-entity burdens.
type Inconvenience struct {
	// Weights are the declared dimension weights.
	Weights Weights `json:"weights,omitempty" yaml:"weights,omitempty"`

	// Expected lists the declared per-entity burdens.
	Expected []Burden `json:"expected,omitempty" yaml:"expected,omitempty"`
}

// String returns a human-readable representation of the Inconvenience
// section.
func (i Inconvenience) String() string {
	return fmt.Sprintf("Inconvenience{%s expected:%d}", i.Weights, len(i.Expected))
}

// Redacted returns the same representation as String. This method
// implements part of the model.Model interface.
func (i Inconvenience) Redacted() string {
	return i.String()
}

// TypeName returns "Inconvenience". This method implements part of the
// model.Model interface.
func (i Inconvenience) TypeName() string {
	return "Inconvenience"
}

// IsZero reports whether the Inconvenience section is empty. This method
// implements part of the model.Model interface.
func (i Inconvenience) IsZero() bool {
	return i.Weights.IsZero() && len(i.Expected) == 0
}

// Validate checks the section's type shape: valid weights and valid
// burden entries.
func (i Inconvenience) Validate() error {
	if err := i.Weights.Validate(); err != nil {
		return err
	}
	for idx, b := range i.Expected {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("expected[%d]: %w", idx, err)
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for Inconvenience.
func (i Inconvenience) MarshalJSON() ([]byte, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	type alias Inconvenience
	return json.Marshal((alias)(i))
}

// UnmarshalJSON implements json.Unmarshaler for Inconvenience.
func (i *Inconvenience) UnmarshalJSON(data []byte) error {
	type alias Inconvenience
	if err := json.Unmarshal(data, (*alias)(i)); err != nil {
		return &errors.UnmarshalError{Type: "Inconvenience", Data: data, Reason: err.Error()}
	}
	return i.Validate()
}

// MarshalYAML implements yaml.Marshaler for Inconvenience.
func (i Inconvenience) MarshalYAML() (any, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	type alias Inconvenience
	return (alias)(i), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Inconvenience.
func (i *Inconvenience) UnmarshalYAML(node *yaml.Node) error {
	type alias Inconvenience
	if err := node.Decode((*alias)(i)); err != nil {
		return &errors.UnmarshalError{Type: "Inconvenience", Reason: err.Error()}
	}
	return i.Validate()
}

// Compile-time check that Inconvenience implements the model.Model
// interface.
var _ model.Model = (*Inconvenience)(nil)
