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

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/model/specver"
	"slml.dev/slmlv/slcore/spec"
)

// publishRevision writes a complete revision directory under the given
// standards root: rule definition, self-manifest, and recorded hashes.
// The revision reuses the v0.1 rules under the given version identifier.
func publishRevision(t *testing.T, root, version string) {
	t.Helper()
	v := specver.MustParse(version)
	dir := filepath.Join(root, v.DirName())
	require.NoError(t, os.MkdirAll(dir, 0o755))

	rs := spec.NewV01()
	rs.Version = v
	rs.SelfManifest.SLMLVersion = v

	rulesRaw, err := yaml.Marshal(rs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, spec.RuleSetFileName), rulesRaw, 0o644))

	selfRaw, err := yaml.Marshal(rs.SelfManifest)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, spec.SelfManifestFileName), selfRaw, 0o644))

	_, err = spec.WriteHashFile(dir)
	require.NoError(t, err)
}
