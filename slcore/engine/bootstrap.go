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
	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model/specver"
)

// Bootstrap evaluates a revision's self-manifest under that revision's
// own rules and returns the complete result.
//
// This is the same evaluation path ordinary manifests take; the
// self-manifest receives no special treatment and a CORRUPTED verdict is
// returned as a result, not an error.
func (e *Engine) Bootstrap(v specver.Version) (ValidationResult, error) {
	rs, err := e.registry.Resolve(v)
	if err != nil {
		return ValidationResult{}, err
	}
	return e.Evaluate(rs.SelfManifest, v)
}

// ReleaseEligible reports whether the revision may be published: its
// self-manifest must evaluate ADMISSIBLE under its own rules.
//
// A failing self-manifest is returned as *errors.BootstrapError carrying
// the reason codes in rule declaration order. The condition gates only
// the named revision; it says nothing about any other revision.
func (e *Engine) ReleaseEligible(v specver.Version) error {
	result, err := e.Bootstrap(v)
	if err != nil {
		return err
	}
	if result.Admissible() {
		return nil
	}
	reasons := make([]string, len(result.Reasons))
	for i, c := range result.Reasons {
		reasons[i] = c.String()
	}
	return &errors.BootstrapError{Version: v.String(), Reasons: reasons}
}
