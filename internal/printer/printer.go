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

// Package printer renders validator output for the terminal.
//
// Verdict output is deliberately spartan: the outcome and, for CORRUPTED,
// the reason codes in rule declaration order. Reason codes carry no
// severity, no scores, and no remediation advice, and the printer adds
// none.
package printer

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed, color.Bold)
	dim   = color.New(color.Faint)
)

// Admissible prints the ADMISSIBLE verdict.
func Admissible() {
	green.Println("ADMISSIBLE")
}

// Corrupted prints the CORRUPTED verdict followed by one reason code per
// line, in the order given.
func Corrupted(reasons []string) {
	red.Println("CORRUPTED")
	for _, code := range reasons {
		fmt.Printf("  %s\n", code)
	}
}

// Info prints an informational line in the default color.
func Info(format string, a ...any) {
	fmt.Printf(format+"\n", a...)
}

// Detail prints a secondary line in faint color.
func Detail(format string, a ...any) {
	dim.Printf(format+"\n", a...)
}

// Error prints a condition message to stderr in red.
func Error(err error) {
	red.Fprintln(os.Stderr, err.Error())
}
