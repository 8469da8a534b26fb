// PULSE - Heartbeat Daemon
//
// Copyright (c) 2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//
package main

import (
	"testing"
)

func TestParse_NoArgsDefaultsToRun(t *testing.T) {
	action, err := parse([]string{"pulse"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if action != "run" {
		t.Errorf("Expected 'run', got %q", action)
	}
}

func TestParse_ValidActions(t *testing.T) {
	for _, action := range []string{"install", "uninstall", "start", "stop", "validate", "run", "help"} {
		got, err := parse([]string{"pulse", action})
		if err != nil {
			t.Errorf("%s: unexpected error: %v", action, err)
		}
		if got != action {
			t.Errorf("Expected %q, got %q", action, got)
		}
	}
}

func TestParse_Aliases(t *testing.T) {
	cases := map[string]string{
		"setup":  "install",
		"remove": "uninstall",
		"delete": "uninstall",
		"check":  "validate",
		"test":   "validate",
		"usage":  "help",
	}
	for alias, want := range cases {
		got, err := parse([]string{"pulse", alias})
		if err != nil {
			t.Errorf("%s: unexpected error: %v", alias, err)
		}
		if got != want {
			t.Errorf("Alias %q: expected %q, got %q", alias, want, got)
		}
	}
}

func TestParse_StripsFlagPrefixes(t *testing.T) {
	for _, arg := range []string{"-help", "--help", "/help"} {
		got, err := parse([]string{"pulse", arg})
		if err != nil {
			t.Errorf("%s: unexpected error: %v", arg, err)
		}
		if got != "help" {
			t.Errorf("Expected 'help' for %q, got %q", arg, got)
		}
	}
}

func TestParse_InvalidActionShouldRaiseError(t *testing.T) {
	if _, err := parse([]string{"pulse", "explode"}); err == nil {
		t.Error("Expect error on unknown action")
	}
}
