//go:build windows

package player

import (
	"os/exec"
	"syscall"
)

// ownGroup hides the console window mpv would otherwise open.
func ownGroup() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: 0x08000000, // CREATE_NO_WINDOW
	}
}

func kill(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
