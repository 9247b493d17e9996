/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package command

import (
	"fmt"
	"os"
)

// exit codes
const (
	ExitSuccess = iota
	ExitError
	ExitBadArgs
)

var exitHandler = os.Exit

// ExitWithError prints err to the standard error and terminates the process with code.
func ExitWithError(code int, err error) {
	_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
	exitHandler(code)
}
