package paint

import (
	"fmt"
	"slices"
	"sync"
)

// CanvasFactory creates a canvas of the given pixel size.
type CanvasFactory func(width, height int) Canvas

var (
	registryMu sync.RWMutex
	canvases   = make(map[string]CanvasFactory)
)

// RegisterCanvas makes a canvas backend available by name. It is typically
// called from init in the backend package, following the database/sql
// driver pattern:
//
//	import _ "github.com/gogpu/paint/backends/raster"
//
// RegisterCanvas panics if factory is nil or name is already registered.
func RegisterCanvas(name string, factory CanvasFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("paint: RegisterCanvas factory is nil")
	}
	if _, dup := canvases[name]; dup {
		panic("paint: RegisterCanvas called twice for " + name)
	}
	canvases[name] = factory
}

// UnregisterCanvas removes a backend. Unknown names are ignored.
func UnregisterCanvas(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(canvases, name)
}

// NewCanvas creates a canvas from the backend registered under name.
func NewCanvas(name string, width, height int) (Canvas, error) {
	registryMu.RLock()
	factory, ok := canvases[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("paint: unknown canvas backend %q (forgotten import?)", name)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("paint: invalid canvas size %dx%d", width, height)
	}
	return factory(width, height), nil
}

// MustCanvas is like NewCanvas but panics on error.
func MustCanvas(name string, width, height int) Canvas {
	c, err := NewCanvas(name, width, height)
	if err != nil {
		panic(err)
	}
	return c
}

// Canvases returns the registered backend names, sorted.
func Canvases() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(canvases))
	for name := range canvases {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether a backend is registered under name.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := canvases[name]
	return ok
}
