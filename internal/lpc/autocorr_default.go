//go:build !amd64 || purego

package lpc

var autocorrImpl = autocorrLags4
