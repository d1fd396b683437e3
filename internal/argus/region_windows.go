//go:build windows

package argus

import (
	"golang.org/x/sys/windows"
	"unsafe"
)

const DefaultMappingName = `Global\ARGUSMONITOR_DATA_INTERFACE`

var (
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procOpenFileMappingW = modkernel32.NewProc("OpenFileMappingW")
)

type mappedRegion struct {
	handle windows.Handle
	addr   uintptr
	data   []byte
}

// OpenRegion opens an existing named file mapping for reading
func OpenRegion(name string, size int) (Region, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, &ConnectionError{Name: name, Op: "open", Err: err}
	}

	h, _, callErr := procOpenFileMappingW.Call(
		uintptr(windows.FILE_MAP_READ),
		0,
		uintptr(unsafe.Pointer(namePtr)),
	)
	if h == 0 {
		return nil, &ConnectionError{Name: name, Op: "open", Err: callErr}
	}
	handle := windows.Handle(h)

	addr, err := windows.MapViewOfFile(handle, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		_ = windows.CloseHandle(handle)
		return nil, &ConnectionError{Name: name, Op: "map", Err: err}
	}

	return &mappedRegion{
		handle: handle,
		addr:   addr,
		data:   unsafe.Slice((*byte)(unsafe.Pointer(addr)), size),
	}, nil
}

func (r *mappedRegion) Bytes() []byte {
	return r.data
}

func (r *mappedRegion) Close() error {
	var err error
	if r.addr != 0 {
		err = windows.UnmapViewOfFile(r.addr)
		r.addr = 0
		r.data = nil
	}
	if r.handle != 0 {
		if closeErr := windows.CloseHandle(r.handle); err == nil {
			err = closeErr
		}
		r.handle = 0
	}
	return err
}
