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
	stderrors "errors"
	"testing"

	slmlerrors "slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model/manifest"
	"slml.dev/slmlv/slcore/model/specver"
	"slml.dev/slmlv/slcore/spec"
)

// admissibleManifest returns a manifest known to satisfy every v0.1
// rule. Tests break individual fields to provoke targeted failures.
func admissibleManifest() manifest.Manifest {
	return spec.NewV01().SelfManifest
}

func newEngine() *Engine {
	return New(spec.DefaultRegistry())
}

func assertReasons(t *testing.T, result ValidationResult, want ...spec.ReasonCode) {
	t.Helper()
	if len(want) == 0 {
		if result.Outcome != OutcomeAdmissible {
			t.Fatalf("outcome = %v, want ADMISSIBLE (reasons: %v)", result.Outcome, result.Reasons)
		}
		if len(result.Reasons) != 0 {
			t.Fatalf("ADMISSIBLE result carries reasons: %v", result.Reasons)
		}
		return
	}
	if result.Outcome != OutcomeCorrupted {
		t.Fatalf("outcome = %v, want CORRUPTED", result.Outcome)
	}
	if len(result.Reasons) != len(want) {
		t.Fatalf("reasons = %v, want %v", result.Reasons, want)
	}
	for i := range want {
		if result.Reasons[i] != want[i] {
			t.Fatalf("reasons = %v, want %v", result.Reasons, want)
		}
	}
}

func TestEvaluate_AdmissibleManifest(t *testing.T) {
	result, err := newEngine().Evaluate(admissibleManifest(), spec.V01)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	assertReasons(t, result)
	if !result.SpecVersion.Equal(spec.V01) {
		t.Errorf("result version = %s, want %s", result.SpecVersion, spec.V01)
	}
	if result.ManifestDigest == "" {
		t.Error("result carries no manifest digest")
	}
}

func TestEvaluate_CollectsEveryFailure(t *testing.T) {
	m := admissibleManifest()
	m.Ownership.Explicit = false
	m.Consent.Explicit = false
	m.Consent.ImpliedAccepted = nil

	result, err := newEngine().Evaluate(m, spec.V01)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	assertReasons(t, result,
		spec.ReasonOwnershipNotExplicit,
		spec.ReasonConsentNotExplicit,
		spec.ReasonImpliedConsent,
	)
}

func TestEvaluate_AbsentConsentSection(t *testing.T) {
	m := admissibleManifest()
	m.Consent = nil

	result, err := newEngine().Evaluate(m, spec.V01)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	assertReasons(t, result,
		spec.ReasonConsentNotExplicit,
		spec.ReasonImpliedConsent,
		spec.ReasonRenegotiationDisabled,
		spec.ReasonConsentExpiryMissing,
	)
}

func TestEvaluate_AbsentSystemSection(t *testing.T) {
	m := admissibleManifest()
	m.System = nil

	result, err := newEngine().Evaluate(m, spec.V01)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	// Declared sets both compare as empty, so alignment still holds.
	assertReasons(t, result, spec.ReasonBurdenMissing)
}

func TestEvaluate_MisalignedDeclaredSets(t *testing.T) {
	m := admissibleManifest()
	m.System.DeclaredBeneficiaryEntities = []string{"corp.vendor"}

	result, err := newEngine().Evaluate(m, spec.V01)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	assertReasons(t, result, spec.ReasonUserBeneficiary)
}

func TestEvaluate_LopsidedBurdens(t *testing.T) {
	m := admissibleManifest()
	m.Inconvenience.Expected[0].Loads[manifest.DimensionTime] = 50

	result, err := newEngine().Evaluate(m, spec.V01)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	assertReasons(t, result,
		spec.ReasonInconvenienceRatio,
		spec.ReasonSymmetryTolerance,
	)
}

func TestEvaluate_PartialWeights(t *testing.T) {
	m := admissibleManifest()
	m.Inconvenience.Weights = manifest.Weights{manifest.DimensionTime: 0.5}

	result, err := newEngine().Evaluate(m, spec.V01)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	assertReasons(t, result, spec.ReasonWeightsInvalid)
}

func TestEvaluate_NegativeWeight(t *testing.T) {
	m := admissibleManifest()
	// Sums to exactly one; only the negative value violates the rule.
	m.Inconvenience.Weights = manifest.Weights{
		manifest.DimensionTime:   -0.5,
		manifest.DimensionCost:   0.5,
		manifest.DimensionRisk:   0.5,
		manifest.DimensionAgency: 0.5,
	}

	result, err := newEngine().Evaluate(m, spec.V01)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	assertReasons(t, result, spec.ReasonWeightsInvalid)
}

func TestEvaluate_SingleDimensionWeights(t *testing.T) {
	m := admissibleManifest()
	// Undeclared dimensions carry zero weight; declaring only TIME with
	// the whole unit of weight normalizes.
	m.Inconvenience.Weights = manifest.Weights{manifest.DimensionTime: 1.0}

	result, err := newEngine().Evaluate(m, spec.V01)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	assertReasons(t, result)
}

func TestEvaluate_CoerciveObligation(t *testing.T) {
	m := admissibleManifest()
	m.Obligations = append(m.Obligations, manifest.Obligation{
		ID:              "obl.lockin",
		From:            "system.slml",
		To:              "class.slml_adopter",
		Type:            manifest.ObligationCompliance,
		ConsentRequired: true,
		Revocable:       false,
		ExpiresAt:       m.Obligations[0].ExpiresAt,
	})

	result, err := newEngine().Evaluate(m, spec.V01)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	assertReasons(t, result,
		spec.ReasonConsentRulesViolated,
		spec.ReasonUserCoercion,
	)
}

func TestEvaluate_ObligationToStranger(t *testing.T) {
	m := admissibleManifest()
	m.Obligations[0].To = "corp.unknown"

	result, err := newEngine().Evaluate(m, spec.V01)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	assertReasons(t, result, spec.ReasonObligationDirection)
}

func TestEvaluate_VersionMismatch(t *testing.T) {
	m := admissibleManifest()
	m.SLMLVersion = specver.Version{Major: 0, Minor: 2}

	_, err := newEngine().Evaluate(m, spec.V01)
	var mismatch *slmlerrors.VersionMismatchError
	if !stderrors.As(err, &mismatch) {
		t.Fatalf("expected *errors.VersionMismatchError, got %v", err)
	}
	if mismatch.Declared != "v0.2" || mismatch.Requested != "v0.1" {
		t.Errorf("mismatch = %+v", mismatch)
	}
}

func TestEvaluate_UnknownVersion(t *testing.T) {
	m := admissibleManifest()
	m.SLMLVersion = specver.Version{Major: 0, Minor: 2}

	_, err := newEngine().Evaluate(m, specver.Version{Major: 0, Minor: 2})
	var unknown *slmlerrors.UnknownSpecVersionError
	if !stderrors.As(err, &unknown) {
		t.Fatalf("expected *errors.UnknownSpecVersionError, got %v", err)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	m := admissibleManifest()
	m.Consent = nil

	// Fresh engines share no memo; results must still be identical.
	first, err := newEngine().Evaluate(m, spec.V01)
	if err != nil {
		t.Fatal(err)
	}
	second, err := newEngine().Evaluate(m, spec.V01)
	if err != nil {
		t.Fatal(err)
	}
	if first.Outcome != second.Outcome || first.ManifestDigest != second.ManifestDigest {
		t.Errorf("results differ: %v vs %v", first, second)
	}
	if len(first.Reasons) != len(second.Reasons) {
		t.Fatalf("reason counts differ: %v vs %v", first.Reasons, second.Reasons)
	}
	for i := range first.Reasons {
		if first.Reasons[i] != second.Reasons[i] {
			t.Errorf("reason %d differs: %v vs %v", i, first.Reasons[i], second.Reasons[i])
		}
	}
}

func TestEvaluate_MemoizedResultIsStable(t *testing.T) {
	e := newEngine()
	m := admissibleManifest()

	first, err := e.Evaluate(m, spec.V01)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Evaluate(m, spec.V01)
	if err != nil {
		t.Fatal(err)
	}
	if first.Outcome != second.Outcome || first.ManifestDigest != second.ManifestDigest {
		t.Errorf("memoized result differs: %v vs %v", first, second)
	}
}

func TestBootstrap_V01IsAdmissible(t *testing.T) {
	result, err := newEngine().Bootstrap(spec.V01)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	assertReasons(t, result)
}

func TestReleaseEligible_V01(t *testing.T) {
	if err := newEngine().ReleaseEligible(spec.V01); err != nil {
		t.Fatalf("ReleaseEligible: %v", err)
	}
}

// brokenSelfManifestSource serves v0.1 with a self-manifest that fails
// its own consent rules.
type brokenSelfManifestSource struct{}

func (brokenSelfManifestSource) Load(v specver.Version) (*spec.RuleSet, error) {
	if !v.Equal(spec.V01) {
		return nil, &slmlerrors.UnknownSpecVersionError{Version: v.String()}
	}
	rs := spec.NewV01()
	rs.SelfManifest.Consent.Explicit = false
	return rs, nil
}

func TestReleaseEligible_CorruptedSelfManifest(t *testing.T) {
	e := New(spec.NewRegistry(brokenSelfManifestSource{}))

	err := e.ReleaseEligible(spec.V01)
	var bootstrap *slmlerrors.BootstrapError
	if !stderrors.As(err, &bootstrap) {
		t.Fatalf("expected *errors.BootstrapError, got %v", err)
	}
	if len(bootstrap.Reasons) != 1 || bootstrap.Reasons[0] != string(spec.ReasonConsentNotExplicit) {
		t.Errorf("reasons = %v, want [%s]", bootstrap.Reasons, spec.ReasonConsentNotExplicit)
	}
}
