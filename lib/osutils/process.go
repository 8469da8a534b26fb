// PULSE - Heartbeat Daemon
//
// Copyright (c) 2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//
package osutils

// ProcessIsRunning reports whether a process with the given pid currently
// exists. Used to detect stale pid files.
func ProcessIsRunning(pid int) (bool, error) {
	return processIsRunning(pid)
}
