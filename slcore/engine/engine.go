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

// Package engine evaluates SLML manifests against the invariant rules of
// a published revision.
//
// Evaluation is a pure function of the revision identifier and the
// manifest content. Rules never short-circuit: every rule of the revision
// is evaluated and every failing rule contributes its reason code, in
// rule declaration order. The engine memoizes completed results by
// (revision, manifest digest); memoization is an optimization only and is
// observable by nothing but timing.
package engine

import (
	"sync"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model/manifest"
	"slml.dev/slmlv/slcore/model/specver"
	"slml.dev/slmlv/slcore/spec"
)

// Engine evaluates manifests against the rule sets a registry resolves.
// An Engine is safe for concurrent use.
type Engine struct {
	registry *spec.Registry

	mu   sync.Mutex
	memo map[memoKey]ValidationResult
}

// memoKey identifies one completed evaluation: a frozen revision plus the
// content digest of the manifest it was applied to.
type memoKey struct {
	version string
	digest  string
}

// New creates an engine over the given registry.
func New(registry *spec.Registry) *Engine {
	return &Engine{
		registry: registry,
		memo:     make(map[memoKey]ValidationResult),
	}
}

// Evaluate validates a manifest against the named revision and returns
// the complete result.
//
// The manifest must declare exactly the requested version; a mismatch is
// reported as *errors.VersionMismatchError and no rules are evaluated.
// An unresolvable revision propagates the registry's error. A CORRUPTED
// verdict is a valid result, not an error.
func (e *Engine) Evaluate(m manifest.Manifest, v specver.Version) (ValidationResult, error) {
	if err := m.Validate(); err != nil {
		return ValidationResult{}, err
	}
	rs, err := e.registry.Resolve(v)
	if err != nil {
		return ValidationResult{}, err
	}
	if !m.SLMLVersion.Equal(v) {
		return ValidationResult{}, &errors.VersionMismatchError{
			Declared:  m.SLMLVersion.String(),
			Requested: v.String(),
		}
	}

	digest, err := m.Digest()
	if err != nil {
		return ValidationResult{}, err
	}
	key := memoKey{version: v.String(), digest: digest}

	e.mu.Lock()
	cached, ok := e.memo[key]
	e.mu.Unlock()
	if ok {
		return cached, nil
	}

	result, err := evaluate(rs, m, digest)
	if err != nil {
		return ValidationResult{}, err
	}

	e.mu.Lock()
	e.memo[key] = result
	e.mu.Unlock()
	return result, nil
}

// evaluate runs every rule of the revision against the manifest.
func evaluate(rs *spec.RuleSet, m manifest.Manifest, digest string) (ValidationResult, error) {
	var reasons []spec.ReasonCode
	for _, rule := range rs.Rules {
		holds, err := ruleHolds(rule, m)
		if err != nil {
			return ValidationResult{}, err
		}
		if !holds {
			reasons = append(reasons, rule.Code)
		}
	}

	outcome := OutcomeAdmissible
	if len(reasons) > 0 {
		outcome = OutcomeCorrupted
	}
	return ValidationResult{
		Outcome:        outcome,
		Reasons:        reasons,
		SpecVersion:    rs.Version,
		ManifestDigest: digest,
	}, nil
}
