//go:build windows

package clean

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// ─── Shell32 Syscalls ────────────────────────────────────────────────────────

var (
	modShell32          = windows.NewLazySystemDLL("shell32.dll")
	procEmptyRecycleBin = modShell32.NewProc("SHEmptyRecycleBinW")
	procQueryRecycleBin = modShell32.NewProc("SHQueryRecycleBinW")
)

const (
	sherbNoConfirmation = 0x00000001
	sherbNoProgressUI   = 0x00000002
	sherbNoSound        = 0x00000004
)

// shQueryRBInfo mirrors the Windows SHQUERYRBINFO struct.
// Go's natural alignment adds padding after cbSize on AMD64,
// matching the C struct layout on both 32-bit and 64-bit.
type shQueryRBInfo struct {
	cbSize      uint32
	i64Size     int64
	i64NumItems int64
}

type shellRecycleBin struct{}

// NewRecycleBin returns the shell32-backed Recycle Bin.
func NewRecycleBin() RecycleBin { return shellRecycleBin{} }

func (shellRecycleBin) Query() (RecycleBinInfo, error) {
	if err := procQueryRecycleBin.Find(); err != nil {
		return RecycleBinInfo{}, err
	}

	var info shQueryRBInfo
	info.cbSize = uint32(unsafe.Sizeof(info))

	// NULL root = all drives.
	ret, _, _ := procQueryRecycleBin.Call(0, uintptr(unsafe.Pointer(&info)))
	if ret != 0 {
		return RecycleBinInfo{}, HResult(uint32(ret))
	}
	return RecycleBinInfo{Size: info.i64Size, Items: info.i64NumItems}, nil
}

// Empty succeeds only on S_OK.
func (shellRecycleBin) Empty() error {
	if err := procEmptyRecycleBin.Find(); err != nil {
		return err
	}

	flags := uintptr(sherbNoConfirmation | sherbNoProgressUI | sherbNoSound)
	ret, _, _ := procEmptyRecycleBin.Call(0, 0, flags)
	if ret != 0 {
		return HResult(uint32(ret))
	}
	return nil
}
