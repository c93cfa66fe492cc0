//go:build windows
// +build windows

package output

import (
	"syscall"
	"unsafe"
)

const enableVirtualTerminalProcessing = 0x0004

var (
	kernel32           = syscall.NewLazyDLL("kernel32.dll")
	procGetConsoleMode = kernel32.NewProc("GetConsoleMode")
	procSetConsoleMode = kernel32.NewProc("SetConsoleMode")
)

// enableANSI turns on virtual terminal processing for the console behind fd
// (Windows 10+). It returns false when the console refuses.
func enableANSI(fd uintptr) bool {
	var mode uint32
	ret, _, _ := procGetConsoleMode.Call(fd, uintptr(unsafe.Pointer(&mode)))
	if ret == 0 {
		return false
	}
	if mode&enableVirtualTerminalProcessing != 0 {
		return true
	}

	ret, _, _ = procSetConsoleMode.Call(fd, uintptr(mode|enableVirtualTerminalProcessing))
	return ret != 0
}
