//go:build !unix

package process

import "os/exec"

// configureProcessGroup keeps the default behaviour of killing the direct child.
func configureProcessGroup(cmd *exec.Cmd) {}
