// Package autostart registers the workspace to start with the user's
// session.
package autostart

import (
	"errors"
	"fmt"
	"strings"
)

// AppName is the value name used for the startup entry.
const AppName = "EREZMDI"

// ErrUnsupported is returned where autostart is unavailable.
var ErrUnsupported = errors.New("autostart: not supported on this platform")

// CommandLine builds the startup command for exe. The path is always
// quoted; args are appended as given.
func CommandLine(exe string, args ...string) string {
	cmd := fmt.Sprintf(`"%s"`, exe)
	if len(args) > 0 {
		cmd += " " + strings.Join(args, " ")
	}
	return cmd
}

// IsOurs reports whether a startup entry launches exe.
func IsOurs(entry, exe string) bool {
	return strings.HasPrefix(strings.ToLower(entry), strings.ToLower(CommandLine(exe)))
}
