//go:build !windows

// Package process terminates headless browser process trees left behind by
// PDF rendering.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking the
// browser's renderer and GPU children down with it.
func KillProcessGroup(pid int) {
	// Best-effort; the launcher's own Kill covers the leader if this fails.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
