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
	stderrors "errors"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model/manifest"
	"slml.dev/slmlv/slcore/model/specver"
)

// Fixed artifact names inside a revision directory.
const (
	// RuleSetFileName is the serialized rule definition of a revision.
	RuleSetFileName = "ruleset.yaml"

	// SelfManifestFileName is the revision's manifest about itself.
	SelfManifestFileName = "self_manifest.yaml"
)

// Source resolves a version identifier to its rule set. A source returns
// *errors.UnknownSpecVersionError when it does not carry the requested
// version; any other error is a loading failure for a version the source
// does carry.
type Source interface {
	Load(v specver.Version) (*RuleSet, error)
}

// BuiltinSource serves the revisions compiled into the binary.
type BuiltinSource struct{}

// Load implements the Source interface for BuiltinSource.
func (BuiltinSource) Load(v specver.Version) (*RuleSet, error) {
	if v.Equal(V01) {
		return NewV01(), nil
	}
	return nil, &errors.UnknownSpecVersionError{Version: v.String()}
}

// DirSource serves revisions from a standards directory on disk. Each
// revision lives in its own subdirectory named after the version (for
// example "standards/v0.1") and carries its rule definition, its
// self-manifest, and the release hash manifest recorded when the revision
// was tagged.
//
// Integrity is checked before anything is parsed: a revision whose files
// do not match their recorded hashes fails with *errors.IntegrityError
// and is never served.
type DirSource struct {
	// Root is the standards directory holding one subdirectory per
	// published revision.
	Root string
}

// Load implements the Source interface for DirSource.
func (s DirSource) Load(v specver.Version) (*RuleSet, error) {
	dir := filepath.Join(s.Root, v.DirName())
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, &errors.UnknownSpecVersionError{Version: v.String()}
	} else if err != nil {
		return nil, err
	}

	recordedRaw, err := os.ReadFile(filepath.Join(dir, HashFileName))
	if err != nil {
		return nil, err
	}
	recorded, err := ParseHashes(recordedRaw)
	if err != nil {
		return nil, err
	}
	violations, err := VerifyDir(dir, recorded)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, &errors.IntegrityError{Version: v.String(), Violations: violations}
	}

	rulesRaw, err := os.ReadFile(filepath.Join(dir, RuleSetFileName))
	if err != nil {
		return nil, err
	}
	var rs RuleSet
	if err := yaml.Unmarshal(rulesRaw, &rs); err != nil {
		return nil, err
	}

	selfRaw, err := os.ReadFile(filepath.Join(dir, SelfManifestFileName))
	if err != nil {
		return nil, err
	}
	self, err := manifest.Load(selfRaw)
	if err != nil {
		return nil, err
	}
	rs.SelfManifest = self

	digest, err := DirDigest(dir)
	if err != nil {
		return nil, err
	}
	rs.Digest = digest

	if err := rs.Validate(); err != nil {
		return nil, err
	}
	if !rs.Version.Equal(v) {
		return nil, &errors.VersionMismatchError{Declared: rs.Version.String(), Requested: v.String()}
	}
	return &rs, nil
}

// Registry resolves version identifiers to frozen rule sets.
//
// Each version is loaded at most once per process. The first Resolve for
// a version consults the sources in order; the loaded rule set is then
// frozen and every later Resolve returns the same pointer, so two
// evaluations against the same version always see referentially identical
// rules. A failed load is not cached; a later Resolve retries.
type Registry struct {
	sources []Source

	mu     sync.Mutex
	frozen map[string]*RuleSet
}

// NewRegistry creates a registry over the given sources, consulted in
// order. A registry with no sources resolves nothing.
func NewRegistry(sources ...Source) *Registry {
	return &Registry{
		sources: sources,
		frozen:  make(map[string]*RuleSet),
	}
}

// DefaultRegistry creates a registry serving only the compiled-in
// revisions.
func DefaultRegistry() *Registry {
	return NewRegistry(BuiltinSource{})
}

// Resolve returns the frozen rule set for the given version.
//
// An unknown version is reported as *errors.UnknownSpecVersionError; the
// registry never substitutes another version. Resolve is safe for
// concurrent use.
func (r *Registry) Resolve(v specver.Version) (*RuleSet, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := v.String()
	if rs, ok := r.frozen[key]; ok {
		return rs, nil
	}
	for _, src := range r.sources {
		rs, err := src.Load(v)
		if err != nil {
			var unknown *errors.UnknownSpecVersionError
			if stderrors.As(err, &unknown) {
				continue
			}
			return nil, err
		}
		r.frozen[key] = rs
		return rs, nil
	}
	return nil, &errors.UnknownSpecVersionError{Version: v.String()}
}

// Versions returns the version identifiers resolved so far, in
// unspecified order.
func (r *Registry) Versions() []specver.Version {
	r.mu.Lock()
	defer r.mu.Unlock()

	versions := make([]specver.Version, 0, len(r.frozen))
	for _, rs := range r.frozen {
		versions = append(versions, rs.Version)
	}
	return versions
}
