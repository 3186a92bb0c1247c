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

	"github.com/spf13/cobra"

	"slml.dev/slmlv/internal/printer"
	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/spec"
)

var hashVerify bool

var hashCmd = &cobra.Command{
	Use:   "hash <dir>",
	Short: "Record or verify release hashes for a revision directory",
	Long: `Record SHA-256 hashes for every file in a revision directory, or
verify the directory against its recorded hashes.

The hash manifest (` + spec.HashFileName + `) lists one "<sha256>  <path>"
line per file, sorted by path, excluding itself. Recording refuses
directories containing symbolic links. Verification reports every
discrepancy: files missing, files added, and files whose contents
changed since the hashes were recorded.

Examples:
  # Record hashes when tagging a revision
  slmlv hash standards/v0.1

  # Verify a revision directory before trusting it
  slmlv hash --verify standards/v0.1`,
	Args: cobra.ExactArgs(1),
	RunE: runHash,
}

func init() {
	hashCmd.Flags().BoolVar(&hashVerify, "verify", false, "Verify against the recorded hashes instead of recording")
	rootCmd.AddCommand(hashCmd)
}

func runHash(cmd *cobra.Command, args []string) error {
	dir := args[0]
	if hashVerify {
		return verifyHashes(dir)
	}
	hashes, err := spec.WriteHashFile(dir)
	if err != nil {
		printer.Error(err)
		return err
	}
	printer.Info("recorded %d file hashes in %s", len(hashes), filepath.Join(dir, spec.HashFileName))
	return nil
}

func verifyHashes(dir string) error {
	raw, err := os.ReadFile(filepath.Join(dir, spec.HashFileName))
	if err != nil {
		printer.Error(err)
		return err
	}
	recorded, err := spec.ParseHashes(raw)
	if err != nil {
		printer.Error(err)
		return err
	}
	violations, err := spec.VerifyDir(dir, recorded)
	if err != nil {
		printer.Error(err)
		return err
	}
	if len(violations) > 0 {
		ierr := &errors.IntegrityError{Version: dir, Violations: violations}
		printer.Error(ierr)
		return ierr
	}
	printer.Info("%s matches its recorded hashes (%d files)", dir, len(recorded))
	return nil
}
