// Package process runs external converters in their own process group so a
// timeout or cancellation reaches every child they spawn.
package process

import (
	"os/exec"
	"time"
)

// WaitDelay bounds how long Wait blocks for output pipes after the process
// group was killed.
const WaitDelay = 5 * time.Second

// Isolate configures cmd to start in a new process group and to kill the
// whole group when its context is done. Call before cmd.Start.
func Isolate(cmd *exec.Cmd) {
	setGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		KillProcessGroup(cmd.Process.Pid)
		return nil
	}
	cmd.WaitDelay = WaitDelay
}
