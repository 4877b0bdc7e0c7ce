// Package cpufeature performs the startup environment assertion spec.md §6/§7
// describe: on x86-64 the engine's bit tricks assume bmi1, bmi2, popcnt, avx
// and avx2 are present. Check reports which of those are missing so the
// caller (cmd/uttt) can abort with a descriptive message before any search
// runs, rather than silently falling back partway through one. On every
// other architecture the check is a no-op: the portable fallbacks in
// internal/bitops never depend on these instructions existing.
package cpufeature

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/cpu"
)

// MissingError describes which required x86-64 feature bits were absent.
type MissingError struct {
	Missing []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("cpufeature: required x86-64 features not detected: %v", e.Missing)
}

// Check reports the required instruction-set extensions this engine assumes
// are present on amd64 (bmi1, bmi2, popcnt, avx, avx2), returning a
// *MissingError naming every one absent. On non-amd64 architectures it
// always returns nil: there is nothing to check, since internal/bitops never
// takes an amd64-only fast path.
func Check() error {
	if runtime.GOARCH != "amd64" {
		return nil
	}

	required := []struct {
		name    string
		present bool
	}{
		{"bmi1", cpu.X86.HasBMI1},
		{"bmi2", cpu.X86.HasBMI2},
		{"popcnt", cpu.X86.HasPOPCNT},
		{"avx", cpu.X86.HasAVX},
		{"avx2", cpu.X86.HasAVX2},
	}

	var missing []string
	for _, r := range required {
		if !r.present {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return &MissingError{Missing: missing}
	}
	return nil
}
