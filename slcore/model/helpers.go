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

package model

import (
	"encoding/json"
	"fmt"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates a slice of models and returns every validation
// failure encountered, not only the first one.
//
// The function invokes Validate on each element. Failures are wrapped with
// the element's zero-based position and type name, then aggregated with
// multierr so callers receive the complete defect set in one pass, the
// same reporting policy the invariant engine applies to rules. Empty
// slices are valid and return nil.
//
//	if err := model.ValidateAll(manifest.Entities); err != nil {
//	    return err // "model[1] (Entity): ...; model[3] (Entity): ..."
//	}
func ValidateAll[T interface {
	Validatable
	Identifiable
}](models []T) error {
	var err error

	for i, m := range models {
		if verr := m.Validate(); verr != nil {
			err = multierr.Append(err, fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), verr))
		}
	}

	return err
}

// FilterZero returns a new slice containing only the non-zero models from
// the input, as reported by each model's IsZero method.
//
// The returned slice is always a fresh allocation and never shares backing
// storage with the input. A nil or empty input yields an empty, non-nil
// slice. FilterZero does not validate; it only drops placeholder values,
// typically before serialization or hashing so that empty entries cannot
// perturb a content digest.
func FilterZero[T ZeroCheckable](models []T) []T {
	result := make([]T, 0, len(models))

	for _, m := range models {
		if !m.IsZero() {
			result = append(result, m)
		}
	}

	return result
}

// MustValidate validates a model and panics if validation fails.
//
// This is for contexts where an invalid model is a programming error
// rather than a runtime condition: test fixtures, compiled-in rule sets,
// and package initialization. The panic message includes the type name and
// the underlying validation error.
func MustValidate[T interface {
	Validatable
	Identifiable
}](m T) T {
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("invalid %s: %v", m.TypeName(), err))
	}
	return m
}

// ToJSON serializes a model to JSON after validating it.
//
// Returning an error instead of marshaling an invalid value keeps bad data
// out of artifacts and payloads. The output is compact (no indentation),
// which is the canonical form used for content hashing.
func ToJSON[T interface {
	Validatable
	Identifiable
}](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML serializes a model to YAML after validating it.
//
// YAML is the artifact format for rule sets and manifests on disk; JSON is
// the canonical hashing form. Both are guarded by the same validation.
func ToYAML[T interface {
	Validatable
	Identifiable
}](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}
