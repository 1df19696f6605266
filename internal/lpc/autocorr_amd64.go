//go:build amd64 && !purego

package lpc

import "golang.org/x/sys/cpu"

var autocorrImpl = autocorrLags4

func init() {
	// math.FMA is a single instruction only on cores with FMA. Elsewhere it
	// falls back to a software routine much slower than a multiply and add.
	if cpu.X86.HasFMA {
		autocorrImpl = autocorrLags4FMA
	}
}
