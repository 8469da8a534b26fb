// PULSE - Heartbeat Daemon
//
// Copyright (c) 2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//
package osutils

import (
	"os"
	"testing"
)

func TestProcessIsRunning_Self(t *testing.T) {
	running, err := ProcessIsRunning(os.Getpid())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !running {
		t.Error("Expected our own pid to be reported as running")
	}
}

func TestProcessIsRunning_NonExistentPid(t *testing.T) {
	// Far beyond any real pid range on supported platforms.
	running, _ := ProcessIsRunning(99999999)
	if running {
		t.Error("Expected nonsense pid to be reported as not running")
	}
}
