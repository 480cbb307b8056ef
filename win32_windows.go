//go:build windows

package winhotkey

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterHotKey   = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey = user32.NewProc("UnregisterHotKey")

	procGetMessageW      = user32.NewProc("GetMessageW")
	procTranslateMessage = user32.NewProc("TranslateMessage")
	procDispatchMessageW = user32.NewProc("DispatchMessageW")
	procPostMessageW     = user32.NewProc("PostMessageW")

	procCreateWindowExW  = user32.NewProc("CreateWindowExW")
	procDestroyWindow    = user32.NewProc("DestroyWindow")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")

	procGetModuleHandleW = kernel32.NewProc("GetModuleHandleW")
)

const (
	WM_NULL   = 0x0000
	WM_HOTKEY = 0x0312

	wsDisabled     = 0x08000000
	wsExNoActivate = 0x08000000

	// Message-only window parent pseudo handle.
	hwndMessage = ^uintptr(2) // (HWND)-3
)

// MSG is the Windows message structure filled by GetMessageW.
type MSG struct {
	HWnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// createMessageWindow creates a hidden, disabled, non-activating message-only
// window. The predefined "Static" window class is used so no window procedure
// has to be registered; the owning manager pulls its messages directly off
// the queue instead of dispatching them.
//
// Returns:
//   - uintptr: Handle to the created window.
//   - error: Non-nil if the window cannot be created.
func createMessageWindow() (uintptr, error) {
	className, err := syscall.UTF16PtrFromString("Static")
	if err != nil {
		return 0, err
	}

	instance, _, _ := procGetModuleHandleW.Call(0)

	hwnd, _, lastErr := procCreateWindowExW.Call(
		wsExNoActivate,
		uintptr(unsafe.Pointer(className)),
		0,
		wsDisabled,
		0, 0, 0, 0,
		hwndMessage,
		0, instance, 0,
	)
	if hwnd == 0 {
		return 0, fmt.Errorf("create message-only window: %w", lastErr)
	}
	return hwnd, nil
}

// getMessage blocks until a message in [loMsg, hiMsg] arrives for hwnd and
// fills msg. It returns -1 if the window handle is no longer valid.
func getMessage(msg *MSG, hwnd uintptr, loMsg, hiMsg uint32) int32 {
	r, _, _ := procGetMessageW.Call(
		uintptr(unsafe.Pointer(msg)),
		hwnd,
		uintptr(loMsg),
		uintptr(hiMsg),
	)
	return int32(r)
}

// dispatchMessage hands a message that the manager does not consume to the
// default window procedure.
func dispatchMessage(msg *MSG) {
	procTranslateMessage.Call(uintptr(unsafe.Pointer(msg))) //nolint:errcheck
	procDispatchMessageW.Call(uintptr(unsafe.Pointer(msg))) //nolint:errcheck
}

// GlobalKeyState reports whether the key is pressed at the time of the call,
// polled with GetAsyncKeyState. The most significant bit of the returned
// state carries the pressed flag.
func GlobalKeyState(k VKey) bool {
	state, _, _ := procGetAsyncKeyState.Call(uintptr(k))
	return uint16(state)&0x8000 != 0
}
