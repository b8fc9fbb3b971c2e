package compress

import (
	"fmt"
	"sync"
)

// Encoder compresses src into a new buffer. Implementations must not modify
// src and must be safe for concurrent use.
type Encoder func(src []byte) ([]byte, error)

// Registry holds the encoders available in this build
type Registry struct {
	mu       sync.RWMutex
	encoders map[Codec]Encoder
}

func NewRegistry() *Registry {
	return &Registry{encoders: make(map[Codec]Encoder)}
}

var defaultRegistry = NewRegistry()

// Default returns the registry populated by the codec files compiled into this binary
func Default() *Registry { return defaultRegistry }

// Register installs enc for c, replacing any earlier encoder
func (r *Registry) Register(c Codec, enc Encoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.encoders[c] = enc
}

// Available reports whether an encoder is registered for c
func (r *Registry) Available(c Codec) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.encoders[c]
	return ok
}

// Negotiate returns the requested codecs that have an encoder, in request
// order and without duplicates. Unavailable codecs are dropped silently.
func (r *Registry) Negotiate(requested []Codec) []Codec {
	enabled := make([]Codec, 0, len(requested))
	seen := make(map[Codec]bool, len(requested))
	for _, c := range requested {
		if seen[c] || !r.Available(c) {
			continue
		}
		seen[c] = true
		enabled = append(enabled, c)
	}
	return enabled
}

// Compress runs the encoder for c over data
func (r *Registry) Compress(data []byte, c Codec) ([]byte, error) {
	r.mu.RLock()
	enc, ok := r.encoders[c]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("codec %s is not available in this build", c)
	}

	out, err := enc(data)
	if err != nil {
		return nil, fmt.Errorf("%s compress: %w", c.Label(), err)
	}
	return out, nil
}

// Enabled lists every codec with a registered encoder
func (r *Registry) Enabled() []Codec {
	return r.Negotiate(All)
}
