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
	"fmt"

	"github.com/spf13/cobra"

	"slml.dev/slmlv/slcore/spec"
)

var (
	version string
	commit  string
	date    string
)

// standardsDir optionally points at a standards directory holding
// published revisions; the compiled-in revisions remain available behind
// it.
var standardsDir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "slmlv",
	Short: "slmlv - SLML manifest validator",
	Long: `slmlv validates System Legitimacy Manifests against a published
revision of the SLML standard.

A manifest either satisfies every invariant rule of the requested
revision (ADMISSIBLE, exit code 0) or it does not (CORRUPTED, exit
code 1, one reason code per failing rule). Any condition that prevents
a verdict, such as a malformed manifest, an unknown revision, or a
tampered standards directory, exits with code 2.`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command. The returned error, if any, has already
// been classified; main maps it to the exit code.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the build information shown by --version.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// newRegistry builds the revision registry for a command invocation. A
// standards directory, when given, is consulted before the compiled-in
// revisions.
func newRegistry() *spec.Registry {
	if standardsDir != "" {
		return spec.NewRegistry(spec.DirSource{Root: standardsDir}, spec.BuiltinSource{})
	}
	return spec.DefaultRegistry()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&standardsDir, "standards", "", "Standards directory holding published revisions (built-in revisions are used behind it)")
}
