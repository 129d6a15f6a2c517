//go:build amd64

package scanner

import (
	"golang.org/x/sys/cpu"
)

// wideScan enables the word-at-a-time string scan. The mask lookup leans on
// TZCNT, which arrived with BMI1.
var wideScan = cpu.X86.HasBMI1
