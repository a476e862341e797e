package ml

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// defaultThreads returns the intra-op thread count used when none is configured.
func defaultThreads() int {
	if n := cpuid.CPU.PhysicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// CPUSummary describes the host CPU the way it matters for CPU inference.
func CPUSummary() string {
	return fmt.Sprintf("%s, %d physical / %d logical cores, avx2=%t avx512f=%t",
		cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores,
		cpuid.CPU.Supports(cpuid.AVX2), cpuid.CPU.Supports(cpuid.AVX512F))
}
