package voltjson

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// Registry maps Go types to their root converters. Populate it at
// startup and Freeze it; lookups are lock-free and safe from any number of
// goroutines.
type Registry struct {
	entries *xsync.MapOf[reflect.Type, any]
	frozen  atomic.Bool
	logger  *slog.Logger
}

// NewRegistry returns an empty registry. A nil logger discards.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = discardLogger()
	}
	return &Registry{
		entries: xsync.NewMapOf[reflect.Type, any](),
		logger:  logger,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Register makes conv the converter for T.
func Register[T any](r *Registry, conv Converter[T]) error {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if r.frozen.Load() {
		return fmt.Errorf("%w: cannot register %v", ErrRegistryFrozen, typ)
	}
	if _, loaded := r.entries.LoadOrStore(typ, conv); loaded {
		return fmt.Errorf("%w: %v", ErrAlreadyRegistered, typ)
	}
	r.logger.Debug("registered converter", "type", typ.String())
	return nil
}

// RegisterObject registers the object converter for m under *T and returns
// it so it can be nested in other schemas.
func RegisterObject[T any](r *Registry, m *PropertyMap[T]) (*ObjectConverter[T], error) {
	conv := Object(m)
	if err := Register[*T](r, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// Lookup returns the converter registered for T.
func Lookup[T any](r *Registry) (Converter[T], error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	v, ok := r.entries.Load(typ)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotRegistered, typ)
	}
	return v.(Converter[T]), nil
}

// Freeze rejects further registrations.
func (r *Registry) Freeze() {
	if !r.frozen.Swap(true) {
		r.logger.Info("registry frozen", "types", r.entries.Size())
	}
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool { return r.frozen.Load() }

// Len returns the number of registered types.
func (r *Registry) Len() int { return r.entries.Size() }
