//go:build windows

// Package process terminates headless browser process trees left behind by
// PDF rendering.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup force-kills pid and its child processes with taskkill /T.
func KillProcessGroup(pid int) {
	// Best-effort; the launcher's own Kill covers the leader if this fails.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
