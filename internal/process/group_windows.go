//go:build windows

// Package process manages the process groups of external tools so that a
// cancelled conversion also stops the children a tool spawns.
package process

import (
	"errors"
	"os/exec"
	"strconv"
	"syscall"
)

// Isolate starts cmd in a new process group.
func Isolate(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= syscall.CREATE_NEW_PROCESS_GROUP
}

// KillGroup terminates pid and its children with taskkill.
// /F = force kill, /T = terminate child processes (tree kill).
func KillGroup(pid int) error {
	if pid <= 0 {
		return errors.New("invalid pid")
	}
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
