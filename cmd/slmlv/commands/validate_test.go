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

package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	slmlerrors "slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/spec"
)

// writeManifestFile serializes the built-in self-manifest to a temp file
// so command-level tests exercise the same loading path as users.
func writeManifestFile(t *testing.T) string {
	t.Helper()
	raw, err := yaml.Marshal(spec.NewV01().SelfManifest)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestEvaluateFile_Admissible(t *testing.T) {
	path := writeManifestFile(t)

	result, err := evaluateFile(path, "v0.1")
	require.NoError(t, err)
	assert.True(t, result.Admissible())
	assert.Empty(t, result.Reasons)
}

func TestEvaluateFile_Corrupted(t *testing.T) {
	m := spec.NewV01().SelfManifest
	m.Consent = nil
	raw, err := yaml.Marshal(m)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	result, err := evaluateFile(path, "v0.1")
	require.NoError(t, err)
	assert.False(t, result.Admissible())
	assert.Equal(t, []spec.ReasonCode{
		spec.ReasonConsentNotExplicit,
		spec.ReasonImpliedConsent,
		spec.ReasonRenegotiationDisabled,
		spec.ReasonConsentExpiryMissing,
	}, result.Reasons)
}

func TestEvaluateFile_MalformedManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entities: [unclosed"), 0o644))

	_, err := evaluateFile(path, "v0.1")
	require.Error(t, err)
	var malformed *slmlerrors.MalformedManifestError
	assert.ErrorAs(t, err, &malformed)
}

func TestEvaluateFile_UnknownVersion(t *testing.T) {
	path := writeManifestFile(t)

	_, err := evaluateFile(path, "v0.9")
	require.Error(t, err)
	var unknown *slmlerrors.UnknownSpecVersionError
	assert.ErrorAs(t, err, &unknown)
}

func TestEvaluateFile_VersionMismatch(t *testing.T) {
	// The manifest declares v0.1; evaluating it "as" another known
	// revision must be refused, so publish a v0.2 next to it.
	m := spec.NewV01().SelfManifest
	raw, err := yaml.Marshal(m)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	standards := t.TempDir()
	publishRevision(t, standards, "v0.2")
	standardsDir = standards
	defer func() { standardsDir = "" }()

	_, err = evaluateFile(path, "v0.2")
	require.Error(t, err)
	var mismatch *slmlerrors.VersionMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestEvaluateFile_MissingFile(t *testing.T) {
	_, err := evaluateFile(filepath.Join(t.TempDir(), "absent.yaml"), "v0.1")
	assert.Error(t, err)
}
