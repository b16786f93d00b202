//go:build windows

package buildsys

import "os/exec"

func setProcessGroup(cmd *exec.Cmd) {
	// Windows has no POSIX process groups; the default Cancel kills the
	// direct child and WaitDelay keeps Wait from blocking on pipes held
	// by descendants.
}
