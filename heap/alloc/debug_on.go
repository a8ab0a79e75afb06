//go:build segheapdebug

package alloc

const debugChecks = true
