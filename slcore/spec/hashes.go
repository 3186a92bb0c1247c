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
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/sumdb/dirhash"

	"slml.dev/slmlv/slcore/errors"
)

// HashFileName is the fixed name of the release hash manifest stored in
// each revision directory.
const HashFileName = "HASHES.sha256"

// FileHash is one entry of a release hash manifest: the SHA-256 digest of
// one file, keyed by its slash-separated path relative to the revision
// directory.
type FileHash struct {
	// Path is the slash-separated relative path of the hashed file.
	Path string

	// SHA256 is the lowercase hex SHA-256 digest of the file contents.
	SHA256 string
}

// HashDir computes the hash entries for every regular file under dir,
// sorted by path. The hash manifest itself is excluded. Symbolic links
// are refused; a release directory must not reference content outside
// itself.
func HashDir(dir string) ([]FileHash, error) {
	var hashes []FileHash
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return &errors.ValidationError{
				Type:   "HashDir",
				Reason: "symbolic links are not allowed in a release directory",
				Value:  path,
			}
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == HashFileName {
			return nil
		}
		sum, err := hashFile(path)
		if err != nil {
			return err
		}
		hashes = append(hashes, FileHash{Path: rel, SHA256: sum})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i].Path < hashes[j].Path })
	return hashes, nil
}

// FormatHashes renders hash entries into the canonical hash manifest
// text: one "<sha256>  <path>" line per file, in the order given.
func FormatHashes(hashes []FileHash) []byte {
	var b strings.Builder
	for _, h := range hashes {
		b.WriteString(h.SHA256)
		b.WriteString("  ")
		b.WriteString(h.Path)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// WriteHashFile computes the hash entries for dir and writes the hash
// manifest into it. It returns the entries that were written.
func WriteHashFile(dir string) ([]FileHash, error) {
	hashes, err := HashDir(dir)
	if err != nil {
		return nil, err
	}
	name := filepath.Join(dir, HashFileName)
	if err := os.WriteFile(name, FormatHashes(hashes), 0o644); err != nil {
		return nil, err
	}
	return hashes, nil
}

// ParseHashes parses the canonical hash manifest text. Blank lines are
// ignored; any other line that does not match "<sha256>  <path>" is an
// error.
func ParseHashes(data []byte) ([]FileHash, error) {
	var hashes []FileHash
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		sum, path, ok := strings.Cut(line, "  ")
		if !ok || path == "" || !validSHA256(sum) {
			return nil, &errors.ValidationError{
				Type:   "HashFile",
				Reason: "malformed hash line",
				Value:  line,
			}
		}
		hashes = append(hashes, FileHash{Path: path, SHA256: sum})
	}
	return hashes, nil
}

// VerifyDir checks every file under dir against the recorded hash
// manifest and returns the discrepancies in sorted order. Each violation
// has one of the forms "MISSING: path" (recorded but absent),
// "EXTRA: path" (present but unrecorded) or "MISMATCH: path" (contents
// changed). An empty result means the directory matches its record.
func VerifyDir(dir string, recorded []FileHash) ([]string, error) {
	actual, err := HashDir(dir)
	if err != nil {
		return nil, err
	}
	actualByPath := make(map[string]string, len(actual))
	for _, h := range actual {
		actualByPath[h.Path] = h.SHA256
	}
	recordedByPath := make(map[string]string, len(recorded))
	for _, h := range recorded {
		recordedByPath[h.Path] = h.SHA256
	}

	var violations []string
	for path, want := range recordedByPath {
		got, ok := actualByPath[path]
		switch {
		case !ok:
			violations = append(violations, "MISSING: "+path)
		case got != want:
			violations = append(violations, "MISMATCH: "+path)
		}
	}
	for path := range actualByPath {
		if _, ok := recordedByPath[path]; !ok {
			violations = append(violations, "EXTRA: "+path)
		}
	}
	sort.Strings(violations)
	return violations, nil
}

// DirDigest computes a composite content digest over every hashed file of
// a revision directory, excluding the hash manifest itself. The digest is
// stable across platforms and file orderings.
func DirDigest(dir string) (string, error) {
	hashes, err := HashDir(dir)
	if err != nil {
		return "", err
	}
	files := make([]string, len(hashes))
	for i, h := range hashes {
		files[i] = h.Path
	}
	return dirhash.Hash1(files, func(name string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(dir, filepath.FromSlash(name)))
	})
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func validSHA256(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}
