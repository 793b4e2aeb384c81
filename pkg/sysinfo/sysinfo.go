// Package sysinfo provides host and disk probes used for conversion
// preflight checks and the info command.
package sysinfo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// DiskUsage returns usage for the filesystem holding path, walking up to the
// nearest existing ancestor when the path does not exist yet.
func DiskUsage(path string) (*disk.UsageStat, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	for {
		if _, err := os.Stat(abs); err == nil {
			break
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			break
		}
		abs = parent
	}

	usage, err := disk.Usage(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat filesystem of %s: %w", abs, err)
	}
	return usage, nil
}

// CheckFree verifies that the filesystem holding path has at least required
// bytes free.
func CheckFree(path string, required uint64) error {
	usage, err := DiskUsage(path)
	if err != nil {
		return err
	}
	if usage.Free < required {
		return fmt.Errorf("insufficient disk space for output: %d bytes free on %s, %d required",
			usage.Free, usage.Path, required)
	}
	return nil
}

// HostSummary returns a short host description for the info command.
func HostSummary() (string, error) {
	info, err := host.Info()
	if err != nil {
		return "", fmt.Errorf("failed to read host info: %w", err)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return "", fmt.Errorf("failed to read memory info: %w", err)
	}

	return fmt.Sprintf("%s (%s %s, %s), %.1f GB memory",
		info.Hostname, info.Platform, info.PlatformVersion, info.KernelArch,
		float64(vm.Total)/(1024*1024*1024)), nil
}
