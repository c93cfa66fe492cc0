//go:build !windows
// +build !windows

package output

// enableANSI is a no-op on Unix-like systems, terminals there handle ANSI
// escape sequences already
func enableANSI(fd uintptr) bool {
	return true
}
