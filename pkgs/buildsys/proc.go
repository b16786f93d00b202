package buildsys

import (
	"os/exec"
	"time"
)

// waitDelay bounds how long Wait blocks on inherited output pipes after
// the process has been signalled, so a straggling descendant holding
// the pipes open cannot stall the harness.
const waitDelay = 5 * time.Second

// OwnProcessGroup arranges for cmd to run in its own process group and
// for context cancellation to signal the whole group. Build tools spawn
// children (cmake --build runs make or ninja, which run compilers);
// killing only the direct child would orphan those descendants and
// leave them holding the stdout/stderr pipes.
func OwnProcessGroup(cmd *exec.Cmd) {
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)
}
