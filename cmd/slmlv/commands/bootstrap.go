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
	"github.com/spf13/cobra"

	"slml.dev/slmlv/internal/printer"
	"slml.dev/slmlv/slcore/engine"
	"slml.dev/slmlv/slcore/model/specver"
)

var bootstrapSpecVersion string

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Evaluate a revision's self-manifest under its own rules",
	Long: `Evaluate the self-manifest a standard revision publishes about
itself, under that revision's own rules.

A revision whose self-manifest is not ADMISSIBLE is not eligible for
release. The self-manifest takes the ordinary evaluation path and
receives no special treatment.

Examples:
  # Check the built-in v0.1 revision
  slmlv bootstrap --spec-version v0.1

  # Check a candidate revision in a standards directory
  slmlv bootstrap --spec-version v0.2 --standards ./standards`,
	Args: cobra.NoArgs,
	RunE: runBootstrap,
}

func init() {
	bootstrapCmd.Flags().StringVar(&bootstrapSpecVersion, "spec-version", "", "Standard revision to bootstrap (required)")
	_ = bootstrapCmd.MarkFlagRequired("spec-version")
	rootCmd.AddCommand(bootstrapCmd)
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	v, err := specver.Parse(bootstrapSpecVersion)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := engine.New(newRegistry()).Bootstrap(v)
	if err != nil {
		printer.Error(err)
		return err
	}

	if result.Admissible() {
		printer.Admissible()
		printer.Detail("revision %s is release-eligible", result.SpecVersion)
		return nil
	}
	reasons := make([]string, len(result.Reasons))
	for i, c := range result.Reasons {
		reasons[i] = c.String()
	}
	printer.Corrupted(reasons)
	return ErrCorrupted
}
