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
	"testing"

	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/model/specver"
)

func TestReasonCode_Valid(t *testing.T) {
	tests := []struct {
		code ReasonCode
		want bool
	}{
		{ReasonWeightsInvalid, true},
		{ReasonUserBeneficiary, true},
		{"R123_SOME_RULE", true},
		{"", false},
		{"R1_SHORT", false},
		{"R001_lowercase", false},
		{"X001_WRONG_PREFIX", false},
		{"R001", false},
	}
	for _, tt := range tests {
		if got := tt.code.Valid(); got != tt.want {
			t.Errorf("ReasonCode(%q).Valid() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestRule_Validate(t *testing.T) {
	valid := Rule{ID: "slml.weight-normalization", Kind: KindWeightNormalization, Code: ReasonWeightsInvalid, Params: Params{Epsilon: 0.001}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid rule failed validation: %v", err)
	}

	tests := []struct {
		name string
		rule Rule
	}{
		{"missing id", Rule{Kind: KindConsentExplicit, Code: ReasonConsentNotExplicit}},
		{"unspecified kind", Rule{ID: "r", Code: ReasonConsentNotExplicit}},
		{"unknown kind", Rule{ID: "r", Kind: RuleKind(99), Code: ReasonConsentNotExplicit}},
		{"malformed code", Rule{ID: "r", Kind: KindConsentExplicit, Code: "BAD"}},
		{"negative epsilon", Rule{ID: "r", Kind: KindWeightNormalization, Code: ReasonWeightsInvalid, Params: Params{Epsilon: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.rule.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestRuleSet_Validate(t *testing.T) {
	rs := NewV01()
	if err := rs.Validate(); err != nil {
		t.Fatalf("built-in v0.1 rule set failed validation: %v", err)
	}
}

func TestRuleSet_ValidateRejectsDuplicateRuleIDs(t *testing.T) {
	rs := NewV01()
	rs.Rules = append(rs.Rules, rs.Rules[0])
	if err := rs.Validate(); err == nil {
		t.Error("duplicate rule id should fail validation")
	}
}

func TestRuleSet_ValidateRejectsSelfManifestVersionDrift(t *testing.T) {
	rs := NewV01()
	rs.SelfManifest.SLMLVersion = specver.Version{Major: 0, Minor: 2}
	if err := rs.Validate(); err == nil {
		t.Error("self-manifest declaring a different version should fail validation")
	}
}

func TestRuleSet_YAMLRoundTripKeepsRuleOrder(t *testing.T) {
	rs := NewV01()
	data, err := yaml.Marshal(rs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded RuleSet
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Rules) != len(rs.Rules) {
		t.Fatalf("rule count changed: got %d, want %d", len(decoded.Rules), len(rs.Rules))
	}
	for i := range rs.Rules {
		if decoded.Rules[i].ID != rs.Rules[i].ID {
			t.Errorf("rule %d: got %q, want %q", i, decoded.Rules[i].ID, rs.Rules[i].ID)
		}
		if decoded.Rules[i].Kind != rs.Rules[i].Kind {
			t.Errorf("rule %d kind: got %v, want %v", i, decoded.Rules[i].Kind, rs.Rules[i].Kind)
		}
		if decoded.Rules[i].Params != rs.Rules[i].Params {
			t.Errorf("rule %d params: got %+v, want %+v", i, decoded.Rules[i].Params, rs.Rules[i].Params)
		}
	}
}

func TestRuleSet_Policy(t *testing.T) {
	rs := NewV01()

	policy, ok := rs.Policy("claim.explicit_consent")
	if !ok {
		t.Fatal("v0.1 should declare a policy for claim.explicit_consent")
	}
	if !policy.Permits("audit-log") {
		t.Error("claim.explicit_consent should permit audit-log")
	}
	if policy.Permits("hearsay") {
		t.Error("claim.explicit_consent should not permit hearsay")
	}

	if _, ok := rs.Policy("claim.unknown"); ok {
		t.Error("unknown claim should have no policy")
	}
}

func TestNewV01_SelfManifestShape(t *testing.T) {
	rs := NewV01()
	if err := rs.SelfManifest.Validate(); err != nil {
		t.Fatalf("self-manifest failed shape validation: %v", err)
	}
	if !rs.SelfManifest.SLMLVersion.Equal(V01) {
		t.Errorf("self-manifest declares %s, want %s", rs.SelfManifest.SLMLVersion, V01)
	}
	for _, claim := range rs.SelfManifest.Claims {
		if _, ok := rs.Policy(claim.ID); !ok {
			t.Errorf("self-manifest claim %s has no evidence policy", claim.ID)
		}
	}
}
