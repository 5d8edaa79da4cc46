package ptr

import (
	"sync/atomic"
)

// BaseProvider reports the base address at which the shared region is mapped
// in the current address space. How the base is discovered is environment
// specific (a region mapping, a per-process descriptor, a fixed kernel
// window), so it is injected rather than hard-coded here.
type BaseProvider interface {
	DataBase() uintptr
}

// BaseFunc adapts a plain function to a BaseProvider.
type BaseFunc func() uintptr

// DataBase calls f.
func (f BaseFunc) DataBase() uintptr { return f() }

var baseProvider atomic.Pointer[BaseProvider]

// RegisterBase installs the process-wide base provider. It must be called
// before the first translation through a position-independent encoding,
// normally once at startup right after the shared region is mapped.
// *region.Region satisfies BaseProvider directly.
func RegisterBase(p BaseProvider) {
	if p == nil {
		panic("ptr: RegisterBase called with nil provider")
	}
	baseProvider.Store(&p)
}

// dataBase queries the registered provider. The result is intentionally
// never cached: the same stored word may be translated later by a different
// address space, and each translation must use the base of whoever is
// reading right now.
func dataBase() uintptr {
	p := baseProvider.Load()
	if p == nil {
		panic("ptr: no base provider registered, call RegisterBase first")
	}
	return (*p).DataBase()
}
