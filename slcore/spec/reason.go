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

// Package spec holds the published revisions of the SLML standard and
// resolves version identifiers to them.
//
// A revision is data: an ordered list of invariant rules, per-claim
// evidence policies, a self-manifest, and the release hashes recorded
// when the revision was tagged. Once a revision is resolved it is frozen
// for the life of the process; published revisions are never patched in
// place, and a tampered revision directory is refused outright.
package spec

import (
	"encoding/json"
	"regexp"

	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model"
)

// ReasonCode is the machine-checkable identifier a failing invariant rule
// emits into a CORRUPTED validation result.
//
// Codes follow the standard's fixed format "RNNN_UPPER_SNAKE" (for
// example "R007_WEIGHTS_INVALID"). The code names the rule that failed;
// it carries no severity, no score, and no remediation hint. Codes are
// part of a published standard revision and MUST NOT change for that
// revision.
type ReasonCode string

// Reason codes of SLML v0.1, in no particular order. The evaluation order
// of the rules that emit them is fixed by the rule set, not by this list.
const (
	ReasonParseFailure          ReasonCode = "R000_PARSE_FAILURE"
	ReasonUserBeneficiary       ReasonCode = "R001_USER_BENEFICIARY_MISMATCH"
	ReasonOwnershipNotExplicit  ReasonCode = "R002_OWNERSHIP_NOT_EXPLICIT"
	ReasonControlDirection      ReasonCode = "R003_CONTROL_DIRECTION_INVALID"
	ReasonConsentNotExplicit    ReasonCode = "R004_CONSENT_NOT_EXPLICIT"
	ReasonImpliedConsent        ReasonCode = "R005_IMPLIED_CONSENT_PRESENT"
	ReasonRenegotiationDisabled ReasonCode = "R006_RENEGOTIATION_DISABLED"
	ReasonWeightsInvalid        ReasonCode = "R007_WEIGHTS_INVALID"
	ReasonBurdenMissing         ReasonCode = "R008_BURDEN_MISSING"
	ReasonInconvenienceRatio    ReasonCode = "R009_INCONVENIENCE_RATIO_FAIL"
	ReasonSymmetryTolerance     ReasonCode = "R010_SYMMETRY_TOLERANCE_FAIL"
	ReasonObligationDirection   ReasonCode = "R011_OBLIGATION_DIRECTION_INVALID"
	ReasonConsentRulesViolated  ReasonCode = "R012_CONSENT_RULES_VIOLATED"
	ReasonExpiryMissing         ReasonCode = "R013_EXPIRY_MISSING"
	ReasonUserCoercion          ReasonCode = "R014_USER_COERCIVE_OBLIGATION"
	ReasonRoleIntegrity         ReasonCode = "R017_ROLE_INTEGRITY_FAIL"
	ReasonConsentExpiryMissing  ReasonCode = "R018_CONSENT_EXPIRY_MISSING"
)

// reasonCodeRegexp validates the fixed "RNNN_UPPER_SNAKE" format.
var reasonCodeRegexp = regexp.MustCompile(`^R[0-9]{3}_[A-Z][A-Z0-9_]*$`)

// String returns the code itself.
func (c ReasonCode) String() string { return string(c) }

// Valid reports whether the code matches the standard's format.
func (c ReasonCode) Valid() bool {
	return reasonCodeRegexp.MatchString(string(c))
}

// TypeName returns "ReasonCode". This method implements part of the
// model.Model interface.
func (c ReasonCode) TypeName() string { return "ReasonCode" }

// Redacted returns the same representation as String. This method
// implements part of the model.Model interface.
func (c ReasonCode) Redacted() string { return c.String() }

// IsZero reports whether the code is empty. This method implements part
// of the model.Model interface.
func (c ReasonCode) IsZero() bool { return c == "" }

// Validate returns nil if the code matches the standard's format.
func (c ReasonCode) Validate() error {
	if !c.Valid() {
		return &errors.ValidationError{
			Type:   "ReasonCode",
			Reason: "must match RNNN_UPPER_SNAKE",
			Value:  string(c),
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for ReasonCode.
func (c ReasonCode) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(string(c))
}

// UnmarshalJSON implements json.Unmarshaler for ReasonCode.
func (c *ReasonCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "ReasonCode", Data: data, Reason: err.Error()}
	}
	parsed := ReasonCode(s)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for ReasonCode.
func (c ReasonCode) MarshalYAML() (any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return string(c), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for ReasonCode.
func (c *ReasonCode) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "ReasonCode", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed := ReasonCode(s)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Compile-time check that ReasonCode implements the model.Model interface.
var _ model.Model = (*ReasonCode)(nil)
