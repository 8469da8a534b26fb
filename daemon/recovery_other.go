// Copyright (c) 2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.

//go:build !windows

package main

// setServiceRecovery does nothing on macOS and Linux; restart-on-failure is
// the init system's job there.
func setServiceRecovery(name string) error {
	return nil
}
