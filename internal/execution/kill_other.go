//go:build !unix

package execution

import "os/exec"

// configureKill keeps the default cancel behavior, which kills the subject process.
func configureKill(cmd *exec.Cmd) {}

// killGroup is a no-op without process groups; the subject itself is already reaped.
func killGroup(cmd *exec.Cmd) {}
