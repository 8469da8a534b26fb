package main

import (
	"errors"
	"strings"
)

// parse maps the command line onto a single action verb. No arguments means
// "run" - plain invocation starts the heartbeat.
func parse(args []string) (action string, err error) {
	normalizeArgs(args)

	if !isArgsValid(args) {
		return "", errors.New("invalid arguments")
	}

	if len(args) < 2 {
		return "run", nil
	}
	return args[1], nil
}

var validArgs = []string{
	"install",
	"uninstall",
	"start",
	"stop",
	"validate",
	"run",
	"help",
}

func isArgsValid(args []string) bool {
	if len(args) < 2 {
		// No action to validate
		return true
	}

	for _, arg := range validArgs {
		if arg == args[1] {
			return true
		}
	}
	return false
}

var aliases = map[string]string{
	"setup":  "install",
	"remove": "uninstall",
	"delete": "uninstall",
	"check":  "validate",
	"test":   "validate",
	"usage":  "help",
}

func normalizeArgs(args []string) {
	if len(args) <= 1 {
		return
	}

	// Strip off any of the standard prefixes on first arg
	args[1] = strings.TrimLeft(args[1], "-/")

	if alias, ok := aliases[args[1]]; ok {
		args[1] = alias
	}
}
