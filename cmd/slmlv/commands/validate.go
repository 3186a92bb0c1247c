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
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slml.dev/slmlv/internal/printer"
	"slml.dev/slmlv/slcore/engine"
	"slml.dev/slmlv/slcore/model/manifest"
	"slml.dev/slmlv/slcore/model/specver"
)

// ErrCorrupted marks a completed evaluation whose verdict is CORRUPTED.
// The verdict has already been printed; main maps this error to exit
// code 1, distinct from the conditions that prevent a verdict entirely.
var ErrCorrupted = stderrors.New("manifest is CORRUPTED")

var (
	validateSpecVersion string
	validateOutput      string
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest>",
	Short: "Validate a manifest against a standard revision",
	Long: `Validate an SLML manifest against the named standard revision.

Every invariant rule of the revision is evaluated; evaluation never
stops at the first failure. A CORRUPTED verdict lists the reason code
of every failing rule, in rule declaration order.

The manifest must declare exactly the requested revision. A manifest
declaring a different revision is rejected without evaluating any
rules.

Examples:
  # Validate against the built-in v0.1 revision
  slmlv validate manifest.yaml --spec-version v0.1

  # Validate against a revision published in a standards directory
  slmlv validate manifest.yaml --spec-version v0.2 --standards ./standards

  # Machine-readable result
  slmlv validate manifest.yaml --spec-version v0.1 --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateSpecVersion, "spec-version", "", "Standard revision to validate against (required)")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "default", "Output format (default or json)")
	_ = validateCmd.MarkFlagRequired("spec-version")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	result, err := evaluateFile(args[0], validateSpecVersion)
	if err != nil {
		printer.Error(err)
		return err
	}

	if validateOutput == "json" {
		raw, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			printer.Error(err)
			return err
		}
		fmt.Println(string(raw))
		if !result.Admissible() {
			return ErrCorrupted
		}
		return nil
	}

	if result.Admissible() {
		printer.Admissible()
		printer.Detail("revision %s, manifest %s", result.SpecVersion, result.ManifestDigest)
		return nil
	}
	reasons := make([]string, len(result.Reasons))
	for i, c := range result.Reasons {
		reasons[i] = c.String()
	}
	printer.Corrupted(reasons)
	return ErrCorrupted
}

// evaluateFile loads a manifest from disk and evaluates it against the
// named revision.
func evaluateFile(path, specVersion string) (engine.ValidationResult, error) {
	v, err := specver.Parse(specVersion)
	if err != nil {
		return engine.ValidationResult{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return engine.ValidationResult{}, err
	}
	m, err := manifest.Load(raw)
	if err != nil {
		return engine.ValidationResult{}, err
	}
	return engine.New(newRegistry()).Evaluate(m, v)
}
