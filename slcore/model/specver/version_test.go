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

package specver

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{"short with v", "v0.1", Version{Major: 0, Minor: 1}, false},
		{"short without v", "0.1", Version{Major: 0, Minor: 1}, false},
		{"full with v", "v0.1.0", Version{Major: 0, Minor: 1}, false},
		{"full without v", "0.1.0", Version{Major: 0, Minor: 1}, false},
		{"patch release", "v1.2.3", Version{Major: 1, Minor: 2, Patch: 3}, false},
		{"surrounding space", " v0.2 ", Version{Major: 0, Minor: 2}, false},

		{"empty", "", Version{}, true},
		{"garbage", "latest", Version{}, true},
		{"prerelease rejected", "v0.2.0-rc.1", Version{}, true},
		{"metadata rejected", "v0.2.0+build.1", Version{}, true},
		{"negative", "v-1.0", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersion_String(t *testing.T) {
	tests := []struct {
		name    string
		version Version
		want    string
	}{
		{"short form", Version{Major: 0, Minor: 1}, "v0.1"},
		{"patch shown when non-zero", Version{Major: 0, Minor: 1, Patch: 2}, "v0.1.2"},
		{"major release", Version{Major: 2, Minor: 0}, "v2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.version.String(); got != tt.want {
				t.Errorf("Version.String() = %v, want %v", got, tt.want)
			}
			if got := tt.version.DirName(); got != tt.want {
				t.Errorf("Version.DirName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b Version
		want int
	}{
		{"equal", Version{0, 1, 0}, Version{0, 1, 0}, 0},
		{"minor lower", Version{0, 1, 0}, Version{0, 2, 0}, -1},
		{"major higher", Version{1, 0, 0}, Version{0, 9, 0}, 1},
		{"patch lower", Version{0, 1, 0}, Version{0, 1, 1}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVersion_Validate(t *testing.T) {
	tests := []struct {
		name    string
		version Version
		wantErr bool
	}{
		{"valid", Version{Major: 0, Minor: 1}, false},
		{"zero reserved", Version{}, true},
		{"negative major", Version{Major: -1, Minor: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.version.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVersion_IsZero(t *testing.T) {
	if !(Version{}).IsZero() {
		t.Error("IsZero() = false for zero value")
	}
	if (Version{Minor: 1}).IsZero() {
		t.Error("IsZero() = true for v0.1")
	}
}

func TestVersion_JSONRoundTrip(t *testing.T) {
	orig := Version{Major: 0, Minor: 1}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"v0.1"` {
		t.Errorf("Marshal() = %s, want \"v0.1\"", data)
	}

	var back Version
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != orig {
		t.Errorf("round trip = %v, want %v", back, orig)
	}

	if _, err := json.Marshal(Version{}); err == nil {
		t.Error("Marshal() of zero version did not fail")
	}
	if err := json.Unmarshal([]byte(`"nope"`), &back); err == nil {
		t.Error("Unmarshal() of invalid version did not fail")
	}
}

func TestVersion_YAMLRoundTrip(t *testing.T) {
	orig := Version{Major: 1, Minor: 2, Patch: 1}

	data, err := yaml.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var back Version
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != orig {
		t.Errorf("round trip = %v, want %v", back, orig)
	}
}

func TestVersion_TypeName(t *testing.T) {
	var v Version
	if got := v.TypeName(); got != "SpecVersion" {
		t.Errorf("TypeName() = %v, want SpecVersion", got)
	}
}
