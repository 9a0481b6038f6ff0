//go:build windows

package winhook

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/deskappio/deskapp/internal/propstore"
)

// callbacks run in-context, on whatever thread of this process raised the event
const wineventIncontext = 0x0004

var (
	modUser32   = windows.NewLazySystemDLL("user32.dll")
	modShell32  = windows.NewLazySystemDLL("shell32.dll")
	modKernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procSetWinEventHook                         = modUser32.NewProc("SetWinEventHook")
	procSetCurrentProcessExplicitAppUserModelID = modShell32.NewProc("SetCurrentProcessExplicitAppUserModelID")
	procGetModuleHandleW                        = modKernel32.NewProc("GetModuleHandleW")
)

var globalTagger = newTagger(windowStore)

// winEventProc matches the WINEVENTPROC signature. Errors cannot be surfaced
// from here, the event is simply skipped.
var winEventProc = syscall.NewCallback(func(hook, event, hwnd, idObject, idChild, idEventThread, eventTime uintptr) uintptr {
	_ = globalTagger.handle(uint32(event), hwnd, int32(idObject))
	return 0
})

// Install stores the appid and subscribes to window creation and destruction
// events of the current process. Call it once, before any windows needing
// tagging are created; windows created earlier are not retroactively tagged.
// There is no uninstall: the subscriptions live until process exit, when the
// OS removes them. A second call registers duplicate subscriptions but the
// newest appid wins for all windows created afterwards.
func Install(appID string) error {
	if err := globalTagger.setAppID(appID); err != nil {
		return err
	}

	// handle of the running executable, what the event callback lives in
	exe, _, err := procGetModuleHandleW.Call(0)
	if exe == 0 {
		return fmt.Errorf("GetModuleHandleW: %w", err)
	}
	pid := windows.GetCurrentProcessId()

	for _, event := range []uint32{eventObjectCreate, eventObjectDestroy} {
		handle, _, _ := procSetWinEventHook.Call(
			uintptr(event),
			uintptr(event),
			exe,
			winEventProc,
			uintptr(pid),
			0,
			wineventIncontext,
		)
		if handle == 0 {
			return fmt.Errorf("SetWinEventHook for event 0x%04X failed", event)
		}
	}
	return nil
}

// SetProcessAppID sets the explicit AppUserModelID for the whole process.
// Windows created before the call keep their previous identity.
func SetProcessAppID(appID string) error {
	idPtr, err := windows.UTF16PtrFromString(appID)
	if err != nil {
		return fmt.Errorf("encode appid: %w", err)
	}
	hr, _, _ := procSetCurrentProcessExplicitAppUserModelID.Call(uintptr(unsafe.Pointer(idPtr)))
	if int32(hr) < 0 {
		return fmt.Errorf("SetCurrentProcessExplicitAppUserModelID: HRESULT 0x%08X", uint32(hr))
	}
	return nil
}

func windowStore(window uintptr) (store, error) {
	return propstore.FromWindow(window)
}
