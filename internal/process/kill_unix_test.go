//go:build !windows

package process

// Notes:
// - The child runs in its own process group so the group kill cannot reach
//   the test binary.

import (
	"errors"
	"os/exec"
	"syscall"
	"testing"
	"time"
)

func TestKillProcessGroup(t *testing.T) {
	t.Parallel()

	sleep, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}

	cmd := exec.Command(sleep, "30")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	KillProcessGroup(cmd.Process.Pid)

	select {
	case err := <-done:
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("Wait() = %v, want exit error", err)
		}
		status, ok := exitErr.Sys().(syscall.WaitStatus)
		if !ok || !status.Signaled() || status.Signal() != syscall.SIGKILL {
			t.Errorf("child status = %v, want killed by SIGKILL", exitErr)
		}
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("child still running after KillProcessGroup")
	}
}

func TestKillProcessGroup_NoSuchProcess(t *testing.T) {
	t.Parallel()

	// Must not panic; the error from kill(2) is discarded.
	KillProcessGroup(1 << 30)
}
