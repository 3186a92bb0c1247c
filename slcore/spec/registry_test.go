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
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model/specver"
)

// writeStandardsDir publishes the v0.1 revision into a standards layout
// on disk, hash manifest included, and returns the standards root.
func writeStandardsDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, V01.DirName())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	rs := NewV01()
	rulesRaw, err := yaml.Marshal(rs)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, RuleSetFileName), rulesRaw, 0o644); err != nil {
		t.Fatal(err)
	}

	selfRaw, err := yaml.Marshal(rs.SelfManifest)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, SelfManifestFileName), selfRaw, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteHashFile(dir); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestBuiltinSource_Load(t *testing.T) {
	rs, err := BuiltinSource{}.Load(V01)
	if err != nil {
		t.Fatalf("Load(v0.1): %v", err)
	}
	if len(rs.Rules) == 0 {
		t.Error("built-in v0.1 has no rules")
	}

	_, err = BuiltinSource{}.Load(specver.Version{Major: 9, Minor: 9})
	var unknown *errors.UnknownSpecVersionError
	if !asError(err, &unknown) {
		t.Fatalf("expected *errors.UnknownSpecVersionError, got %v", err)
	}
	if unknown.Version != "v9.9" {
		t.Errorf("UnknownSpecVersionError.Version = %q, want %q", unknown.Version, "v9.9")
	}
}

func TestDirSource_Load(t *testing.T) {
	root := writeStandardsDir(t)

	rs, err := DirSource{Root: root}.Load(V01)
	if err != nil {
		t.Fatalf("Load(v0.1): %v", err)
	}
	if !rs.Version.Equal(V01) {
		t.Errorf("loaded version %s, want %s", rs.Version, V01)
	}
	if len(rs.Rules) != len(NewV01().Rules) {
		t.Errorf("loaded %d rules, want %d", len(rs.Rules), len(NewV01().Rules))
	}
	if rs.SelfManifest.IsZero() {
		t.Error("self-manifest was not attached")
	}
	if rs.Digest == "" {
		t.Error("revision digest was not computed")
	}
}

func TestDirSource_LoadUnknownVersion(t *testing.T) {
	root := writeStandardsDir(t)

	_, err := DirSource{Root: root}.Load(specver.Version{Major: 0, Minor: 2})
	var unknown *errors.UnknownSpecVersionError
	if !asError(err, &unknown) {
		t.Fatalf("expected *errors.UnknownSpecVersionError, got %v", err)
	}
}

func TestDirSource_LoadTamperedRevision(t *testing.T) {
	root := writeStandardsDir(t)
	dir := filepath.Join(root, V01.DirName())

	raw, err := os.ReadFile(filepath.Join(dir, RuleSetFileName))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, RuleSetFileName), append(raw, '\n'), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err = DirSource{Root: root}.Load(V01)
	var integrity *errors.IntegrityError
	if !asError(err, &integrity) {
		t.Fatalf("expected *errors.IntegrityError, got %v", err)
	}
	if len(integrity.Violations) != 1 || integrity.Violations[0] != "MISMATCH: "+RuleSetFileName {
		t.Errorf("violations = %v, want single mismatch for %s", integrity.Violations, RuleSetFileName)
	}
}

func TestRegistry_ResolveFreezes(t *testing.T) {
	reg := DefaultRegistry()

	first, err := reg.Resolve(V01)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := reg.Resolve(V01)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("Resolve returned different pointers for the same version")
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	reg := DefaultRegistry()

	_, err := reg.Resolve(specver.Version{Major: 0, Minor: 2})
	var unknown *errors.UnknownSpecVersionError
	if !asError(err, &unknown) {
		t.Fatalf("expected *errors.UnknownSpecVersionError, got %v", err)
	}
}

func TestRegistry_SourceOrder(t *testing.T) {
	// An empty standards directory defers to the built-in revisions.
	reg := NewRegistry(DirSource{Root: t.TempDir()}, BuiltinSource{})

	rs, err := reg.Resolve(V01)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !rs.Version.Equal(V01) {
		t.Errorf("resolved %s, want %s", rs.Version, V01)
	}
}

func TestRegistry_Versions(t *testing.T) {
	reg := DefaultRegistry()
	if got := reg.Versions(); len(got) != 0 {
		t.Fatalf("fresh registry reports versions %v", got)
	}
	if _, err := reg.Resolve(V01); err != nil {
		t.Fatal(err)
	}
	got := reg.Versions()
	if len(got) != 1 || !got[0].Equal(V01) {
		t.Errorf("Versions() = %v, want [v0.1]", got)
	}
}
