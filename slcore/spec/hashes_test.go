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
)

// writeReleaseDir lays out a small revision directory for hashing tests.
func writeReleaseDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"ruleset.yaml":       "version: v0.1\n",
		"self_manifest.yaml": "slml_version: v0.1\n",
		"notes/CHANGELOG.md": "initial revision\n",
		"notes/decisions.md": "rule order is load-bearing\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestHashDir_SortedAndExcludesSelf(t *testing.T) {
	dir := writeReleaseDir(t)
	if err := os.WriteFile(filepath.Join(dir, HashFileName), []byte("stale\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	hashes, err := HashDir(dir)
	if err != nil {
		t.Fatalf("HashDir: %v", err)
	}

	wantPaths := []string{
		"notes/CHANGELOG.md",
		"notes/decisions.md",
		"ruleset.yaml",
		"self_manifest.yaml",
	}
	if len(hashes) != len(wantPaths) {
		t.Fatalf("got %d entries, want %d", len(hashes), len(wantPaths))
	}
	for i, want := range wantPaths {
		if hashes[i].Path != want {
			t.Errorf("entry %d path = %q, want %q", i, hashes[i].Path, want)
		}
		if len(hashes[i].SHA256) != 64 {
			t.Errorf("entry %d digest has length %d, want 64", i, len(hashes[i].SHA256))
		}
	}
}

func TestHashDir_RefusesSymlinks(t *testing.T) {
	dir := writeReleaseDir(t)
	if err := os.Symlink(filepath.Join(dir, "ruleset.yaml"), filepath.Join(dir, "link.yaml")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	if _, err := HashDir(dir); err == nil {
		t.Error("HashDir should refuse a directory containing symlinks")
	}
}

func TestWriteHashFile_RoundTrip(t *testing.T) {
	dir := writeReleaseDir(t)

	written, err := WriteHashFile(dir)
	if err != nil {
		t.Fatalf("WriteHashFile: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, HashFileName))
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := ParseHashes(raw)
	if err != nil {
		t.Fatalf("ParseHashes: %v", err)
	}
	if len(parsed) != len(written) {
		t.Fatalf("parsed %d entries, wrote %d", len(parsed), len(written))
	}
	for i := range written {
		if parsed[i] != written[i] {
			t.Errorf("entry %d: parsed %+v, wrote %+v", i, parsed[i], written[i])
		}
	}
}

func TestParseHashes_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing separator", "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n"},
		{"single space", "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef f\n"},
		{"short digest", "abc123  ruleset.yaml\n"},
		{"uppercase digest", "0123456789ABCDEF0123456789abcdef0123456789abcdef0123456789abcdef  f\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseHashes([]byte(tt.data)); err == nil {
				t.Error("expected parse error, got nil")
			}
		})
	}
}

func TestVerifyDir_Clean(t *testing.T) {
	dir := writeReleaseDir(t)
	recorded, err := WriteHashFile(dir)
	if err != nil {
		t.Fatal(err)
	}

	violations, err := VerifyDir(dir, recorded)
	if err != nil {
		t.Fatalf("VerifyDir: %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("clean directory reported violations: %v", violations)
	}
}

func TestVerifyDir_ReportsEveryDiscrepancy(t *testing.T) {
	dir := writeReleaseDir(t)
	recorded, err := WriteHashFile(dir)
	if err != nil {
		t.Fatal(err)
	}

	// Tamper with one file, delete another, and plant an unrecorded one.
	if err := os.WriteFile(filepath.Join(dir, "ruleset.yaml"), []byte("version: v9.9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(dir, "notes", "CHANGELOG.md")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "planted.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	violations, err := VerifyDir(dir, recorded)
	if err != nil {
		t.Fatalf("VerifyDir: %v", err)
	}
	want := []string{
		"EXTRA: planted.txt",
		"MISMATCH: ruleset.yaml",
		"MISSING: notes/CHANGELOG.md",
	}
	if len(violations) != len(want) {
		t.Fatalf("got violations %v, want %v", violations, want)
	}
	for i := range want {
		if violations[i] != want[i] {
			t.Errorf("violation %d = %q, want %q", i, violations[i], want[i])
		}
	}
}

func TestDirDigest_StableAndContentSensitive(t *testing.T) {
	dir := writeReleaseDir(t)

	first, err := DirDigest(dir)
	if err != nil {
		t.Fatalf("DirDigest: %v", err)
	}
	second, err := DirDigest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("digest not stable: %q vs %q", first, second)
	}

	// The hash manifest itself must not influence the digest.
	if _, err := WriteHashFile(dir); err != nil {
		t.Fatal(err)
	}
	withHashFile, err := DirDigest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if withHashFile != first {
		t.Error("digest changed after writing the hash manifest")
	}

	if err := os.WriteFile(filepath.Join(dir, "ruleset.yaml"), []byte("version: v9.9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	changed, err := DirDigest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if changed == first {
		t.Error("digest did not change after editing a file")
	}
}
