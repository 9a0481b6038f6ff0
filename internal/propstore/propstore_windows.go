//go:build windows

// Package propstore exposes the small slice of the shell property store API
// deskapp needs: reading a store for a window or file and writing the
// AppUserModelID property.
package propstore

import (
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	vtEmpty  = 0
	vtLPWStr = 31

	gpsReadWrite = 2
)

// PropertyKey identifies a property in a shell property store
type PropertyKey struct {
	FmtID windows.GUID
	PID   uint32
}

// KeyAppUserModelID is PKEY_AppUserModel_ID from propkey.h
var KeyAppUserModelID = PropertyKey{
	FmtID: windows.GUID{Data1: 0x9F4C2855, Data2: 0x9F79, Data3: 0x4B39, Data4: [8]byte{0xA8, 0xD0, 0xE1, 0xD4, 0x2D, 0xE1, 0xD5, 0xF3}},
	PID:   5,
}

var iidIPropertyStore = windows.GUID{Data1: 0x886D8EEB, Data2: 0x8CF2, Data3: 0x4446, Data4: [8]byte{0x8D, 0x02, 0xCD, 0xBA, 0x1D, 0xBD, 0xCF, 0x99}}

var (
	modShell32 = windows.NewLazySystemDLL("shell32.dll")

	procSHGetPropertyStoreForWindow       = modShell32.NewProc("SHGetPropertyStoreForWindow")
	procSHGetPropertyStoreFromParsingName = modShell32.NewProc("SHGetPropertyStoreFromParsingName")
)

// propVariant is a PROPVARIANT restricted to the VT_EMPTY and VT_LPWSTR forms.
// The trailing padding matches the 16 byte union of the full structure.
type propVariant struct {
	vt  uint16
	_   [3]uint16
	val uintptr
	_   [8]byte
}

type iPropertyStoreVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
	GetCount       uintptr
	GetAt          uintptr
	GetValue       uintptr
	SetValue       uintptr
	Commit         uintptr
}

type iPropertyStore struct {
	vtbl *iPropertyStoreVtbl
}

// Store wraps an IPropertyStore
type Store struct {
	ptr *iPropertyStore
}

// FromWindow returns the property store of a top-level window
func FromWindow(hwnd uintptr) (*Store, error) {
	var ptr *iPropertyStore
	hr, _, _ := procSHGetPropertyStoreForWindow.Call(
		hwnd,
		uintptr(unsafe.Pointer(&iidIPropertyStore)),
		uintptr(unsafe.Pointer(&ptr)),
	)
	if failed(hr) {
		return nil, fmt.Errorf("SHGetPropertyStoreForWindow: %s", hresult(hr))
	}
	return &Store{ptr: ptr}, nil
}

// FromPath returns the writable property store of a shell item, e.g. a .lnk
// file. Writes must be followed by Commit.
func FromPath(path string) (*Store, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, fmt.Errorf("encode path: %w", err)
	}

	var ptr *iPropertyStore
	hr, _, _ := procSHGetPropertyStoreFromParsingName.Call(
		uintptr(unsafe.Pointer(pathPtr)),
		0,
		gpsReadWrite,
		uintptr(unsafe.Pointer(&iidIPropertyStore)),
		uintptr(unsafe.Pointer(&ptr)),
	)
	if failed(hr) {
		return nil, fmt.Errorf("SHGetPropertyStoreFromParsingName %s: %s", path, hresult(hr))
	}
	return &Store{ptr: ptr}, nil
}

// SetAppID writes the AppUserModelID property. The store copies the value
// during SetValue, so the backing buffer only has to live for the call.
func (s *Store) SetAppID(id string) error {
	buf, err := windows.UTF16FromString(id)
	if err != nil {
		return fmt.Errorf("encode appid: %w", err)
	}
	pv := propVariant{vt: vtLPWStr, val: uintptr(unsafe.Pointer(&buf[0]))}
	err = s.setValue(&KeyAppUserModelID, &pv)
	runtime.KeepAlive(buf)
	return err
}

// ClearAppID writes an empty value for the AppUserModelID property,
// semantically unsetting it.
func (s *Store) ClearAppID() error {
	pv := propVariant{vt: vtEmpty}
	return s.setValue(&KeyAppUserModelID, &pv)
}

func (s *Store) setValue(key *PropertyKey, pv *propVariant) error {
	hr, _, _ := syscall.SyscallN(
		s.ptr.vtbl.SetValue,
		uintptr(unsafe.Pointer(s.ptr)),
		uintptr(unsafe.Pointer(key)),
		uintptr(unsafe.Pointer(pv)),
	)
	if failed(hr) {
		return fmt.Errorf("IPropertyStore::SetValue: %s", hresult(hr))
	}
	return nil
}

// Commit flushes pending writes. Needed for file-backed stores, a window's
// store applies writes immediately.
func (s *Store) Commit() error {
	hr, _, _ := syscall.SyscallN(s.ptr.vtbl.Commit, uintptr(unsafe.Pointer(s.ptr)))
	if failed(hr) {
		return fmt.Errorf("IPropertyStore::Commit: %s", hresult(hr))
	}
	return nil
}

// Release drops the store reference
func (s *Store) Release() {
	_, _, _ = syscall.SyscallN(s.ptr.vtbl.Release, uintptr(unsafe.Pointer(s.ptr)))
}

func failed(hr uintptr) bool {
	return int32(hr) < 0
}

func hresult(hr uintptr) string {
	return fmt.Sprintf("HRESULT 0x%08X", uint32(hr))
}
