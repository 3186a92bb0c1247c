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

package spec

import (
	"time"

	"slml.dev/slmlv/slcore/model/manifest"
	"slml.dev/slmlv/slcore/model/specver"
)

// V01 is the version identifier of the compiled-in first revision.
var V01 = specver.Version{Major: 0, Minor: 1}

// Thresholds of the v0.1 revision. Published constants; they never change
// for this revision.
const (
	v01Epsilon   = 0.001
	v01MaxRatio  = 1.5
	v01Tolerance = 0.15
)

// noExpiry is the sentinel instant for obligations that remain in force
// for the lifetime of the standard.
var noExpiry = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// NewV01 builds the v0.1 rule set. Each call returns a fresh value; the
// registry is responsible for freezing one copy per process.
//
// Rule order is the published evaluation order of the revision and is
// load-bearing: reason codes appear in CORRUPTED results in exactly this
// order.
func NewV01() *RuleSet {
	return &RuleSet{
		Version: V01,
		Rules: []Rule{
			{ID: "slml.required-sections", Kind: KindRequiredSections, Code: ReasonBurdenMissing},
			{ID: "slml.role-integrity", Kind: KindRoleIntegrity, Code: ReasonRoleIntegrity},
			{ID: "slml.user-beneficiary-alignment", Kind: KindUserBeneficiaryAlignment, Code: ReasonUserBeneficiary},
			{ID: "slml.ownership-explicit", Kind: KindOwnershipExplicit, Code: ReasonOwnershipNotExplicit},
			{ID: "slml.control-direction", Kind: KindControlDirection, Code: ReasonControlDirection},
			{ID: "slml.consent-explicit", Kind: KindConsentExplicit, Code: ReasonConsentNotExplicit},
			{ID: "slml.implied-consent-absent", Kind: KindImpliedConsentAbsent, Code: ReasonImpliedConsent},
			{ID: "slml.renegotiation-enabled", Kind: KindRenegotiationEnabled, Code: ReasonRenegotiationDisabled},
			{ID: "slml.consent-expiry", Kind: KindConsentExpiry, Code: ReasonConsentExpiryMissing},
			{ID: "slml.weight-normalization", Kind: KindWeightNormalization, Code: ReasonWeightsInvalid, Params: Params{Epsilon: v01Epsilon}},
			{ID: "slml.burden-coverage", Kind: KindBurdenCoverage, Code: ReasonBurdenMissing},
			{ID: "slml.corruption-ratio", Kind: KindCorruptionRatio, Code: ReasonInconvenienceRatio, Params: Params{MaxRatio: v01MaxRatio}},
			{ID: "slml.symmetry-tolerance", Kind: KindSymmetryTolerance, Code: ReasonSymmetryTolerance, Params: Params{Tolerance: v01Tolerance}},
			{ID: "slml.obligation-direction", Kind: KindObligationDirection, Code: ReasonObligationDirection},
			{ID: "slml.obligation-consent", Kind: KindObligationConsent, Code: ReasonConsentRulesViolated},
			{ID: "slml.obligation-expiry", Kind: KindObligationExpiry, Code: ReasonExpiryMissing},
			{ID: "slml.user-coercion", Kind: KindUserCoercion, Code: ReasonUserCoercion},
		},
		Evidence: []EvidencePolicy{
			{Claim: "claim.explicit_consent", Classes: []string{"primary-source", "audit-log"}},
			{Claim: "claim.user_alignment", Classes: []string{"primary-source"}},
		},
		SelfManifest: v01SelfManifest(),
	}
}

// v01SelfManifest is the manifest the v0.1 revision publishes about
// itself. It must evaluate ADMISSIBLE under the v0.1 rules; a revision
// that cannot pass its own validation is not release-eligible.
func v01SelfManifest() manifest.Manifest {
	impliedDeclined := false
	return manifest.Manifest{
		SLMLVersion: V01,
		Entities: []manifest.Entity{
			{ID: "person.slml_author", Role: manifest.RoleDesigner},
			{ID: "class.slml_adopter", Role: manifest.RoleUser},
			{ID: "class.slml_adopter_beneficiary", Role: manifest.RoleBeneficiary},
			{ID: "group.slml_maintainers", Role: manifest.RoleComponent},
			{ID: "artifact.slml_standard", Role: manifest.RoleProduct},
			{ID: "system.slml", Role: manifest.RoleSystem},
		},
		System: &manifest.System{
			DeclaredUserEntities:        []string{"class.slml_adopter"},
			DeclaredBeneficiaryEntities: []string{"class.slml_adopter"},
		},
		Ownership: &manifest.Ownership{
			Explicit:         true,
			ControlDirection: manifest.DirectionDesignerToUser,
		},
		Consent: &manifest.Consent{
			Explicit:              true,
			ImpliedAccepted:       &impliedDeclined,
			RenegotiationOnChange: true,
			ExpiresAt:             noExpiry,
		},
		Inconvenience: &manifest.Inconvenience{
			Weights: manifest.Weights{
				manifest.DimensionTime:   0.25,
				manifest.DimensionCost:   0.25,
				manifest.DimensionRisk:   0.25,
				manifest.DimensionAgency: 0.25,
			},
			Expected: []manifest.Burden{
				{
					Entity: "class.slml_adopter",
					Loads: map[manifest.Dimension]float64{
						manifest.DimensionTime:   5,
						manifest.DimensionCost:   0,
						manifest.DimensionRisk:   0,
						manifest.DimensionAgency: 0.02,
					},
				},
				{
					Entity: "class.slml_adopter_beneficiary",
					Loads: map[manifest.Dimension]float64{
						manifest.DimensionTime:   5,
						manifest.DimensionCost:   0,
						manifest.DimensionRisk:   0,
						manifest.DimensionAgency: 0.02,
					},
				},
				{
					Entity: "group.slml_maintainers",
					Loads: map[manifest.Dimension]float64{
						manifest.DimensionTime:   40,
						manifest.DimensionCost:   10,
						manifest.DimensionRisk:   1,
						manifest.DimensionAgency: 0.1,
					},
				},
			},
		},
		Obligations: []manifest.Obligation{
			{
				ID:              "obl.slml.disclosure",
				From:            "artifact.slml_standard",
				To:              "class.slml_adopter",
				Type:            manifest.ObligationInformationalDisclosure,
				Scope:           []string{"standards"},
				ConsentRequired: false,
				Revocable:       true,
				ExpiresAt:       noExpiry,
			},
			{
				ID:              "obl.slml.maintenance",
				From:            "system.slml",
				To:              "group.slml_maintainers",
				Type:            manifest.ObligationMaintenance,
				Scope:           []string{"standards", "tools"},
				ConsentRequired: true,
				Revocable:       true,
				ExpiresAt:       time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		Claims: []manifest.Claim{
			{ID: "claim.explicit_consent", Fields: []string{"consent.consent_explicit"}},
			{ID: "claim.user_alignment", Fields: []string{"system.declared_user_entities", "system.declared_beneficiary_entities"}},
		},
	}
}
