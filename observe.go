package skema

import (
	"sync"

	"github.com/rs/zerolog"
)

// Observer receives build and assignment outcomes. Implementations must be
// safe for concurrent use; see the metrics package for a Prometheus one.
type Observer interface {
	ObserveBuild(typeName string, err error)
	ObserveAssign(typeName, field string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveBuild(string, error)          {}
func (nopObserver) ObserveAssign(string, string, error) {}

var (
	observeMu       sync.RWMutex
	currentLogger   = zerolog.Nop()
	currentObserver Observer = nopObserver{}
)

// SetLogger installs the logger used for debug events (type compiled, nested
// type compiled, build failed). The default discards everything.
func SetLogger(l zerolog.Logger) {
	observeMu.Lock()
	currentLogger = l
	observeMu.Unlock()
}

// SetObserver installs an Observer; nil restores the no-op observer.
func SetObserver(o Observer) {
	observeMu.Lock()
	if o == nil {
		o = nopObserver{}
	}
	currentObserver = o
	observeMu.Unlock()
}

func logger() *zerolog.Logger {
	observeMu.RLock()
	l := currentLogger
	observeMu.RUnlock()
	return &l
}

func observer() Observer {
	observeMu.RLock()
	o := currentObserver
	observeMu.RUnlock()
	return o
}
