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
	"math"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model/manifest"
	"slml.dev/slmlv/slcore/spec"
)

// ruleHolds evaluates one rule's predicate against a manifest.
//
// Every predicate is total: any manifest that passed shape validation
// produces a definite true or false, never an error or a crash. Absence
// of a field or section is explicit predicate input; no predicate treats
// a missing declaration as implicitly satisfied unless its definition
// says so. Predicates never consult the clock, the environment, or any
// state outside the manifest and the rule's parameters.
func ruleHolds(r spec.Rule, m manifest.Manifest) (bool, error) {
	switch r.Kind {
	case spec.KindRequiredSections:
		return holdsRequiredSections(m), nil
	case spec.KindRoleIntegrity:
		return holdsRoleIntegrity(m), nil
	case spec.KindUserBeneficiaryAlignment:
		return holdsAlignment(m), nil
	case spec.KindOwnershipExplicit:
		return m.Ownership != nil && m.Ownership.Explicit, nil
	case spec.KindControlDirection:
		return m.Ownership != nil && m.Ownership.ControlDirection == manifest.DirectionDesignerToUser, nil
	case spec.KindConsentExplicit:
		return m.Consent != nil && m.Consent.Explicit, nil
	case spec.KindImpliedConsentAbsent:
		// Implied consent must be declared absent. An undeclared field is
		// not the same statement as "declared false" and does not pass.
		return m.Consent != nil && m.Consent.ImpliedAccepted != nil && !*m.Consent.ImpliedAccepted, nil
	case spec.KindRenegotiationEnabled:
		return m.Consent != nil && m.Consent.RenegotiationOnChange, nil
	case spec.KindConsentExpiry:
		return m.Consent != nil && !m.Consent.ExpiresAt.IsZero(), nil
	case spec.KindWeightNormalization:
		return holdsWeightNormalization(m, r.Params.Epsilon), nil
	case spec.KindBurdenCoverage:
		return holdsBurdenCoverage(m), nil
	case spec.KindCorruptionRatio:
		return holdsCorruptionRatio(m, r.Params.MaxRatio), nil
	case spec.KindSymmetryTolerance:
		return holdsSymmetryTolerance(m, r.Params.Tolerance), nil
	case spec.KindObligationDirection:
		return holdsObligationDirection(m), nil
	case spec.KindObligationConsent:
		return holdsObligationConsent(m), nil
	case spec.KindObligationExpiry:
		return holdsObligationExpiry(m), nil
	case spec.KindUserCoercion:
		return holdsUserCoercion(m), nil
	default:
		return false, &errors.ValidationError{
			Type:   "Rule",
			Field:  "kind",
			Reason: "no predicate for rule kind",
			Value:  r.Kind.String(),
		}
	}
}

// holdsRequiredSections requires the system section with both entity set
// declarations present. An empty list is a declaration; a missing key is
// not.
func holdsRequiredSections(m manifest.Manifest) bool {
	return m.System != nil &&
		m.System.DeclaredUserEntities != nil &&
		m.System.DeclaredBeneficiaryEntities != nil
}

// holdsRoleIntegrity requires every declared entity to carry a role and a
// unique identifier. A manifest with no entities passes vacuously; the
// balance rules fail it on their own terms.
func holdsRoleIntegrity(m manifest.Manifest) bool {
	seen := make(map[string]struct{}, len(m.Entities))
	for _, e := range m.Entities {
		if !e.Role.Declared() {
			return false
		}
		if _, dup := seen[e.ID]; dup {
			return false
		}
		seen[e.ID] = struct{}{}
	}
	return true
}

// holdsAlignment requires the declared user and beneficiary entity sets
// to be equal as sets. Undeclared sets compare as empty.
func holdsAlignment(m manifest.Manifest) bool {
	var users, beneficiaries []string
	if m.System != nil {
		users = m.System.DeclaredUserEntities
		beneficiaries = m.System.DeclaredBeneficiaryEntities
	}
	userSet := make(map[string]struct{}, len(users))
	for _, id := range users {
		userSet[id] = struct{}{}
	}
	beneficiarySet := make(map[string]struct{}, len(beneficiaries))
	for _, id := range beneficiaries {
		beneficiarySet[id] = struct{}{}
	}
	if len(userSet) != len(beneficiarySet) {
		return false
	}
	for id := range userSet {
		if _, ok := beneficiarySet[id]; !ok {
			return false
		}
	}
	return true
}

// holdsWeightNormalization requires every declared inconvenience weight
// to be non-negative and the weights to sum to one within epsilon. An
// undeclared dimension carries zero weight; the sum requirement is what
// forces weight to be declared at all, so an absent section or an empty
// map fails.
func holdsWeightNormalization(m manifest.Manifest, epsilon float64) bool {
	if m.Inconvenience == nil {
		return false
	}
	w := m.Inconvenience.Weights
	for _, v := range w {
		if v < 0 {
			return false
		}
	}
	return math.Abs(w.Sum()-1) <= epsilon
}

// holdsBurdenCoverage requires an expected burden entry for every entity
// holding the user or beneficiary role.
func holdsBurdenCoverage(m manifest.Manifest) bool {
	covered := make(map[string]struct{})
	if m.Inconvenience != nil {
		for _, b := range m.Inconvenience.Expected {
			covered[b.Entity] = struct{}{}
		}
	}
	for _, e := range m.Entities {
		if e.Role != manifest.RoleUser && e.Role != manifest.RoleBeneficiary {
			continue
		}
		if _, ok := covered[e.ID]; !ok {
			return false
		}
	}
	return true
}

// meanWeightedBurden averages the weighted burden totals of the entities
// holding the given role. Entities without a burden entry contribute
// zero; burden coverage reports that omission separately. The second
// return is false when no entity holds the role.
func meanWeightedBurden(m manifest.Manifest, role manifest.Role) (float64, bool) {
	ids := m.EntityIDsWithRole(role)
	if len(ids) == 0 {
		return 0, false
	}
	var weights manifest.Weights
	totals := make(map[string]float64, len(ids))
	if m.Inconvenience != nil {
		weights = m.Inconvenience.Weights
		for _, b := range m.Inconvenience.Expected {
			totals[b.Entity] = b.WeightedTotal(weights)
		}
	}
	var sum float64
	for _, id := range ids {
		sum += totals[id]
	}
	return sum / float64(len(ids)), true
}

// holdsCorruptionRatio bounds the mean weighted user burden by maxRatio
// times the mean weighted beneficiary burden. A manifest with no user or
// no beneficiary entities cannot attest balance and fails. A zero
// beneficiary mean passes only when the user mean is also zero.
func holdsCorruptionRatio(m manifest.Manifest, maxRatio float64) bool {
	userMean, ok := meanWeightedBurden(m, manifest.RoleUser)
	if !ok {
		return false
	}
	beneficiaryMean, ok := meanWeightedBurden(m, manifest.RoleBeneficiary)
	if !ok {
		return false
	}
	if beneficiaryMean == 0 {
		return userMean == 0
	}
	return userMean/beneficiaryMean <= maxRatio
}

// holdsSymmetryTolerance bounds the relative spread between the mean
// weighted user and beneficiary burdens. Two zero means have zero spread
// and pass; absent roles fail as in holdsCorruptionRatio.
func holdsSymmetryTolerance(m manifest.Manifest, tolerance float64) bool {
	userMean, ok := meanWeightedBurden(m, manifest.RoleUser)
	if !ok {
		return false
	}
	beneficiaryMean, ok := meanWeightedBurden(m, manifest.RoleBeneficiary)
	if !ok {
		return false
	}
	larger := math.Max(userMean, beneficiaryMean)
	if larger == 0 {
		return true
	}
	return math.Abs(userMean-beneficiaryMean)/larger <= tolerance
}

// holdsObligationDirection requires every obligation to run between two
// declared entities.
func holdsObligationDirection(m manifest.Manifest) bool {
	for _, o := range m.Obligations {
		if o.From == "" || o.To == "" {
			return false
		}
		if !m.HasEntity(o.From) || !m.HasEntity(o.To) {
			return false
		}
	}
	return true
}

// holdsObligationConsent requires every consent-requiring obligation to
// remain revocable.
func holdsObligationConsent(m manifest.Manifest) bool {
	for _, o := range m.Obligations {
		if o.ConsentRequired && !o.Revocable {
			return false
		}
	}
	return true
}

// holdsObligationExpiry requires every obligation to declare an expiry
// instant. The instant is never compared to the clock.
func holdsObligationExpiry(m manifest.Manifest) bool {
	for _, o := range m.Obligations {
		if o.ExpiresAt.IsZero() {
			return false
		}
	}
	return true
}

// holdsUserCoercion requires that no entity holding the user role bears
// an irrevocable consent-requiring obligation.
func holdsUserCoercion(m manifest.Manifest) bool {
	users := make(map[string]struct{})
	for _, id := range m.EntityIDsWithRole(manifest.RoleUser) {
		users[id] = struct{}{}
	}
	for _, o := range m.Obligations {
		if _, ok := users[o.To]; !ok {
			continue
		}
		if o.ConsentRequired && !o.Revocable {
			return false
		}
	}
	return true
}
