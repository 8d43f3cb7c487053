package main

import (
	"context"
	"net"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestRunServe_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env, _, _ := testEnv("")
	if err := runServe(ctx, []string{"--addr", "127.0.0.1:0", "-q"}, env); err != nil {
		t.Errorf("runServe() = %v, want nil after cancel", err)
	}
}

func TestRunServe_AddressInUse(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("port reuse semantics differ on Windows")
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer func() { _ = ln.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	env, _, _ := testEnv("")
	err = runServe(ctx, []string{"--addr", ln.Addr().String(), "-q"}, env)
	if err == nil {
		t.Fatal("runServe() = nil, want address in use error")
	}
	if !strings.Contains(err.Error(), "hint:") {
		t.Errorf("error = %q, want hint", err)
	}
}

func TestRunServe_InvalidConfig(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv("")
	code := runMain([]string{"lexical2html", "serve", "--cache-size=-1"}, env)
	if code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
}
