package rtpext

import (
	"fmt"

	"github.com/bluenviron/rtpperc/pkg/liberrors"
)

// one-byte header extension IDs.
const (
	MinID = 1
	MaxID = 14
)

// Registry binds header extension kinds to wire IDs.
// It is not safe for concurrent modification.
type Registry struct {
	kinds [MaxID + 1]Kind
	ids   map[Kind]uint8
}

// NewRegistry allocates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		ids: make(map[Kind]uint8),
	}
}

// DefaultRegistry allocates a Registry that contains all supported kinds,
// bound to their default IDs.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, d := range descriptors {
		r.kinds[d.ID] = d.Kind
		r.ids[d.Kind] = d.ID
	}
	return r
}

// Register binds a kind to an ID.
func (r *Registry) Register(id uint8, k Kind) error {
	if id < MinID || id > MaxID {
		return fmt.Errorf("invalid ID %d, must be between %d and %d", id, MinID, MaxID)
	}

	if _, ok := k.Descriptor(); !ok {
		return fmt.Errorf("unsupported extension kind %v", k)
	}

	if cur := r.kinds[id]; cur != 0 {
		if cur == k {
			return nil
		}
		return fmt.Errorf("ID %d is already bound to %v", id, cur)
	}

	if cur, ok := r.ids[k]; ok {
		return fmt.Errorf("%v is already bound to ID %d", k, cur)
	}

	r.kinds[id] = k
	r.ids[k] = id
	return nil
}

// RegisterURI binds the kind identified by an URI to an ID.
func (r *Registry) RegisterURI(id uint8, uri string) error {
	k, ok := KindByURI(uri)
	if !ok {
		return fmt.Errorf("unsupported extension URI '%s'", uri)
	}
	return r.Register(id, k)
}

// Unregister removes the binding of a kind.
func (r *Registry) Unregister(k Kind) {
	id, ok := r.ids[k]
	if !ok {
		return
	}
	delete(r.ids, k)
	r.kinds[id] = 0
}

// Kind returns the kind bound to an ID.
func (r *Registry) Kind(id uint8) (Kind, bool) {
	if id < MinID || id > MaxID || r.kinds[id] == 0 {
		return 0, false
	}
	return r.kinds[id], true
}

// ID returns the ID bound to a kind.
func (r *Registry) ID(k Kind) (uint8, bool) {
	id, ok := r.ids[k]
	return id, ok
}

// Parse decodes the value of the extension with the given ID.
// It returns ErrExtensionUnrecognized when the ID is not bound to any kind,
// ErrExtensionFormat when the value is malformed.
// Both errors are not fatal, the extension can be skipped.
func (r *Registry) Parse(id uint8, buf []byte) (Value, error) {
	k, ok := r.Kind(id)
	if !ok {
		return nil, liberrors.ErrExtensionUnrecognized{ID: id}
	}

	v := newValue(k)

	err := v.Unmarshal(buf)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// ValueSize returns the size of the encoded value.
func (r *Registry) ValueSize(v Value) int {
	return v.MarshalSize()
}

// Write encodes a value into buf and returns the ID bound to its kind
// and the number of written bytes.
func (r *Registry) Write(buf []byte, v Value) (uint8, int, error) {
	id, ok := r.ids[v.Kind()]
	if !ok {
		return 0, 0, fmt.Errorf("%v is not bound to any ID", v.Kind())
	}

	n, err := v.MarshalTo(buf)
	if err != nil {
		return 0, 0, err
	}

	return id, n, nil
}
