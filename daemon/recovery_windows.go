// Copyright (c) 2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.

//go:build windows

package main

import (
	"fmt"
	"time"

	"golang.org/x/sys/windows/svc/mgr"
)

const (
	recoveryRestartDelay  = 5 * time.Second
	failCountResetSeconds = 3600
)

// setServiceRecovery asks the SCM to restart the daemon on failure. The
// service must already be registered; install calls this straight after
// service.Control succeeds.
func setServiceRecovery(name string) error {
	manager, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("failed to open service control manager: %v", err)
	}
	defer func() {
		_ = manager.Disconnect()
	}()

	svc, err := manager.OpenService(name)
	if err != nil {
		return fmt.Errorf("failed to open service %s: %v", name, err)
	}
	defer func() {
		_ = svc.Close()
	}()

	actions := []mgr.RecoveryAction{{
		Type:  mgr.ServiceRestart,
		Delay: recoveryRestartDelay,
	}}
	if err := svc.SetRecoveryActions(actions, failCountResetSeconds); err != nil {
		return fmt.Errorf("failed to set recovery action: %v", err)
	}
	return nil
}
