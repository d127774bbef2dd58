//go:build windows

package input

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW         = user32.NewProc("FindWindowW")
	procShowWindow          = user32.NewProc("ShowWindow")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
)

const swRestore = 9

// activateNative foregrounds a window by exact title via user32. Exact
// match only; the caller falls back to process-name matching when this
// fails.
func activateNative(title string) error {
	ptr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return fmt.Errorf("encode window title: %w", err)
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(ptr)))
	if hwnd == 0 {
		return fmt.Errorf("no window titled %q", title)
	}
	procShowWindow.Call(hwnd, swRestore)
	procSetForegroundWindow.Call(hwnd)
	return nil
}
