//go:build !windows

// Package process manages the process groups of external tools so that a
// cancelled conversion also stops the children a tool spawns (pandoc runs
// filters and LaTeX helpers as subprocesses).
package process

import (
	"os/exec"
	"syscall"
)

// Isolate starts cmd in its own process group.
func Isolate(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// KillGroup sends SIGKILL to the whole process group led by pid.
func KillGroup(pid int) error {
	if pid <= 0 {
		return syscall.ESRCH
	}
	return syscall.Kill(-pid, syscall.SIGKILL)
}
