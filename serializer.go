package voltjson

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/biggeezerdevelopment/voltjson/buffer"
	"github.com/biggeezerdevelopment/voltjson/inflate"
)

// Serializer drives registered converters over whole messages. It holds
// no per-call state and is safe for concurrent use.
type Serializer struct {
	reg         *Registry
	policy      Policy
	pool        *buffer.SlicePool[byte]
	initialSize int
	maxInput    int64
	logger      *slog.Logger
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithPolicy sets the write policy passed to every converter.
func WithPolicy(p Policy) Option {
	return func(s *Serializer) { s.policy = p }
}

// WithLogger sets the logger for failed top-level reads and writes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Serializer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithInitialBufferSize sets the capacity rented for each write.
func WithInitialBufferSize(n int) Option {
	return func(s *Serializer) { s.initialSize = n }
}

// WithMaxPooledBufferSize bounds the write buffers kept for reuse.
func WithMaxPooledBufferSize(n int) Option {
	return func(s *Serializer) { s.pool = buffer.NewSlicePool[byte](n) }
}

// WithMaxInputSize caps what ReadFrom accepts. Zero means no limit.
func WithMaxInputSize(n int64) Option {
	return func(s *Serializer) { s.maxInput = n }
}

// WithConfig applies every setting in cfg.
func WithConfig(cfg Config) Option {
	return func(s *Serializer) {
		s.policy = cfg.Policy()
		s.initialSize = cfg.InitialBufferSize
		s.pool = buffer.NewSlicePool[byte](cfg.MaxPooledBufferSize)
		s.maxInput = cfg.MaxInputSize
	}
}

// New returns a serializer over reg.
func New(reg *Registry, opts ...Option) *Serializer {
	cfg := DefaultConfig()
	s := &Serializer{
		reg:         reg,
		pool:        buffer.NewSlicePool[byte](cfg.MaxPooledBufferSize),
		initialSize: cfg.InitialBufferSize,
		maxInput:    cfg.MaxInputSize,
		logger:      discardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the serializer's write policy.
func (s *Serializer) Policy() Policy { return s.policy }

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// Read decodes data, which must hold exactly one value of T surrounded by
// optional whitespace.
func Read[T any](s *Serializer, data []byte) (T, error) {
	conv, err := Lookup[T](s.reg)
	if err != nil {
		var zero T
		return zero, err
	}
	return ReadWith(s, conv, data)
}

// ReadWith is Read with an explicit root converter.
func ReadWith[T any](s *Serializer, conv Converter[T], data []byte) (T, error) {
	c := NewCursor(data)
	defer c.release()

	v, ok := conv.TryRead(c, s.policy)
	if ok && !c.AtEnd() {
		ok = c.failAtPos(c.skipWhitespace(), KindTrailingData)
	}
	if !ok {
		kind, off := c.Failure()
		if kind == KindNone {
			kind, off = KindMalformed, c.Offset()
		}
		err := &SyntaxError{Kind: kind, Offset: off, Type: typeName[T]()}
		s.logger.Debug("read failed", "type", err.Type, "kind", kind.String(), "offset", off, "size", len(data))
		var zero T
		return zero, err
	}
	return v, nil
}

// Write encodes v into a buffer rented from the serializer's pool. The
// caller owns the buffer and must Release it.
func Write[T any](s *Serializer, v T) (*Buffer, error) {
	conv, err := Lookup[T](s.reg)
	if err != nil {
		return nil, err
	}
	return WriteWith(s, conv, v)
}

// WriteWith is Write with an explicit root converter.
func WriteWith[T any](s *Serializer, conv Converter[T], v T) (*Buffer, error) {
	b := buffer.New[byte](s.initialSize, s.pool)
	if !conv.TryWrite(&b, v, s.policy) {
		b.Release()
		err := &SyntaxError{Kind: KindUnwritable, Offset: -1, Type: typeName[T]()}
		s.logger.Debug("write failed", "type", err.Type)
		return nil, err
	}
	return &b, nil
}

// Marshal encodes v into a freshly allocated slice.
func Marshal[T any](s *Serializer, v T) ([]byte, error) {
	b, err := Write(s, v)
	if err != nil {
		return nil, err
	}
	defer b.Release()
	return b.ToOwned(), nil
}

// WriteTo encodes v and copies the result to w.
func WriteTo[T any](s *Serializer, w io.Writer, v T) (int64, error) {
	b, err := Write(s, v)
	if err != nil {
		return 0, err
	}
	defer b.Release()
	n, err := w.Write(b.View())
	return int64(n), err
}

// ReadFrom reads all of r into a pooled buffer and decodes it.
func ReadFrom[T any](s *Serializer, r io.Reader) (T, error) {
	return ReadCompressed[T](s, r, inflate.None)
}

// ReadCompressed decompresses r with enc into a pooled buffer and decodes
// the result. The serializer's input limit applies to the decompressed
// size.
func ReadCompressed[T any](s *Serializer, r io.Reader, enc inflate.Encoding) (T, error) {
	var zero T
	b := buffer.New[byte](s.initialSize, s.pool)
	defer b.Release()

	if _, err := inflate.ReadAll(&b, r, enc, s.maxInput); err != nil {
		if errors.Is(err, buffer.ErrTooLarge) {
			s.logger.Warn("input rejected", "type", typeName[T](), "limit", s.maxInput)
		}
		return zero, fmt.Errorf("voltjson: reading %s: %w", typeName[T](), err)
	}
	return Read[T](s, b.View())
}
