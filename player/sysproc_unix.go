//go:build !windows

package player

import (
	"os/exec"
	"syscall"
)

// ownGroup puts mpv in its own process group so a terminal SIGINT reaches only us
// and we decide how each tile shuts down.
func ownGroup() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}

func kill(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	return cmd.Process.Kill()
}
