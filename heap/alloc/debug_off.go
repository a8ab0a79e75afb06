//go:build !segheapdebug

package alloc

// debugChecks enables bounds and alignment assertions on every tag access.
// Build with -tags segheapdebug to turn them on.
const debugChecks = false
