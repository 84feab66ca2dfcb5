//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

func setGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillProcessGroup sends SIGKILL to the process group led by pid.
func KillProcessGroup(pid int) {
	// Best-effort; the group may already be gone.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
