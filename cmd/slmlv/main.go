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

package main

import (
	"errors"
	"os"

	"slml.dev/slmlv/cmd/slmlv/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes. A CORRUPTED verdict is a completed evaluation and gets its
// own code; everything that prevents a verdict shares code 2.
const (
	exitAdmissible = 0
	exitCorrupted  = 1
	exitCondition  = 2
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	err := commands.Execute()
	switch {
	case err == nil:
		os.Exit(exitAdmissible)
	case errors.Is(err, commands.ErrCorrupted):
		os.Exit(exitCorrupted)
	default:
		os.Exit(exitCondition)
	}
}
