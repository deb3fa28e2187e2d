//go:build windows

package compiler

import (
	"os/exec"
)

func setProcessGroup(*exec.Cmd) {}
