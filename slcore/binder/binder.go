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

// Package binder attaches supplied evidence to the claims a manifest
// declares, under the evidence policies of a published revision.
//
// Binding is traceability only. It runs after rule evaluation and feeds
// nothing back into it: a manifest's verdict is identical with or without
// evidence, and a binding failure never changes an ADMISSIBLE outcome to
// CORRUPTED. What binding guarantees is that every declared claim is
// supported by at least one piece of evidence of a permitted class.
package binder

import (
	"sort"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model/manifest"
	"slml.dev/slmlv/slcore/model/specver"
	"slml.dev/slmlv/slcore/spec"
)

// ClaimBinding is one claim together with the evidence bound to it.
type ClaimBinding struct {
	// Claim is the claim identifier.
	Claim string `json:"claim" yaml:"claim"`

	// Fields are the manifest fields the claim refers to, as declared.
	Fields []string `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Evidence is the bound evidence, in the order it was supplied.
	Evidence []Evidence `json:"evidence" yaml:"evidence"`
}

// Binding is the complete result of binding one manifest's claims.
//
// Claims are ordered by claim identifier, so the same manifest and the
// same supplied evidence always produce an identical binding.
type Binding struct {
	// SpecVersion is the revision whose evidence policies were applied.
	SpecVersion specver.Version `json:"spec_version" yaml:"spec_version"`

	// Claims are the bound claims, sorted by identifier.
	Claims []ClaimBinding `json:"claims" yaml:"claims"`
}

// Bind attaches the supplied evidence to every claim the manifest
// declares, under the revision's evidence policies.
//
// Every declared claim must end up with at least one piece of evidence
// whose class the revision permits for that claim; a claim with none is
// reported as *errors.UnboundClaimError. Evidence of a class outside the
// permitted list is reported as *errors.DisallowedEvidenceClassError; it
// is never silently skipped. A claim the revision declares no policy for
// permits no classes at all. Evidence supplied for claims the manifest
// does not declare is ignored.
//
// Bind is pure: it mutates neither the manifest nor the index, and the
// same inputs always produce the same binding.
func Bind(m manifest.Manifest, idx Index, rs *spec.RuleSet) (Binding, error) {
	claims := make([]manifest.Claim, len(m.Claims))
	copy(claims, m.Claims)
	sort.Slice(claims, func(i, j int) bool { return claims[i].ID < claims[j].ID })

	bound := make([]ClaimBinding, 0, len(claims))
	for _, claim := range claims {
		policy, hasPolicy := rs.Policy(claim.ID)
		supplied := idx[claim.ID]

		if len(supplied) == 0 {
			return Binding{}, &errors.UnboundClaimError{Claim: claim.ID}
		}
		for _, ev := range supplied {
			if err := ev.Validate(); err != nil {
				return Binding{}, err
			}
			if !hasPolicy || !policy.Permits(ev.Class) {
				return Binding{}, &errors.DisallowedEvidenceClassError{
					Claim:     claim.ID,
					Class:     ev.Class,
					Permitted: policy.Classes,
				}
			}
		}

		evidence := make([]Evidence, len(supplied))
		copy(evidence, supplied)
		bound = append(bound, ClaimBinding{
			Claim:    claim.ID,
			Fields:   claim.Fields,
			Evidence: evidence,
		})
	}

	return Binding{SpecVersion: rs.Version, Claims: bound}, nil
}
