package main

import "strings"

const githubUsageText = "usage: si github <auth|doctor>"

func cmdGithub(args []string) {
	if len(args) == 0 {
		printUsage(githubUsageText)
		return
	}
	cmd := strings.ToLower(strings.TrimSpace(args[0]))
	rest := args[1:]
	switch cmd {
	case "help", "-h", "--help":
		printUsage(githubUsageText)
	case "auth":
		cmdGithubAuth(rest)
	case "doctor":
		cmdGithubDoctor(rest)
	default:
		printUnknown("github", cmd)
		printUsage(githubUsageText)
	}
}
