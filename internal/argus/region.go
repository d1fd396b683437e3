package argus

// Region is a read-only view onto memory owned by another process
type Region interface {
	Bytes() []byte
	Close() error
}

// RegionOpener opens the named region with the given size
type RegionOpener func(name string, size int) (Region, error)
