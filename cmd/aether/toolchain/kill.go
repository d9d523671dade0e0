package toolchain

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/process"
)

// killTree terminates pid and every process below it, children first.
func killTree(pid int32) error {
	p, err := process.NewProcess(pid)
	if err != nil {
		return fmt.Errorf("unable to find PID %d: %w", pid, err)
	}
	if children, err := p.Children(); err == nil {
		for _, c := range children {
			_ = killTree(c.Pid)
		}
	}
	if err := p.Kill(); err != nil {
		return fmt.Errorf("failed to terminate process %d: %w", pid, err)
	}
	return nil
}
