package utils

import (
	"context"
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/cpu"
)

// LogicalCPUs returns the number of logical CPUs of the host.
func LogicalCPUs(ctx context.Context) int {
	vcpus, err := cpu.CountsWithContext(ctx, true)
	if err != nil || vcpus <= 0 {
		log.Ctx(ctx).Debug().Err(err).Msg("failed to count CPUs, falling back to runtime")
		return runtime.NumCPU()
	}
	return vcpus
}
