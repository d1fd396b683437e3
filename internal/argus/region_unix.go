//go:build unix

package argus

import (
	"golang.org/x/sys/unix"
	"path/filepath"
)

// DefaultMappingName points to a POSIX shared memory object, which is where
// a bridge (e.g. under wine) is expected to publish the Argus Monitor table
const DefaultMappingName = "ARGUSMONITOR_DATA_INTERFACE"

const shmDir = "/dev/shm"

type mappedRegion struct {
	data []byte
}

// OpenRegion maps the given file read-only. Relative names are resolved in /dev/shm.
// If the file is smaller than size, only the existing part is mapped.
func OpenRegion(name string, size int) (Region, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(shmDir, name)
	}

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &ConnectionError{Name: path, Op: "open", Err: err}
	}
	defer func() {
		_ = unix.Close(fd)
	}()

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return nil, &ConnectionError{Name: path, Op: "open", Err: err}
	}
	length := size
	if stat.Size < int64(length) {
		length = int(stat.Size)
	}
	if length <= 0 {
		return nil, &ConnectionError{Name: path, Op: "map", Err: unix.EINVAL}
	}

	data, err := unix.Mmap(fd, 0, length, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, &ConnectionError{Name: path, Op: "map", Err: err}
	}

	return &mappedRegion{data: data}, nil
}

func (r *mappedRegion) Bytes() []byte {
	return r.data
}

func (r *mappedRegion) Close() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data = nil
	return err
}
