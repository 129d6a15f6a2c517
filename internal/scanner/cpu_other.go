//go:build !amd64

package scanner

import (
	"golang.org/x/sys/cpu"
)

// wideScan enables the word-at-a-time string scan. Little-endian words
// can be loaded without a byte swap, which is what makes it pay off.
var wideScan = !cpu.IsBigEndian
