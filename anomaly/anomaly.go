package anomaly

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Transform is the interface for all anomaly transforms (spike, delay, flood).
type Transform interface {
	Transform(signal []float64) ([]float64, error) // Returns a new signal with the anomaly applied; the input is not modified
	TypeAsString() string                          // Returns the transform type as a string
}

// TransformParams is the interface for the parameter structs of every transform.
type TransformParams interface {
	TypeAsString() string                        // Returns the type of transform the parameters build
	Build(dataAxis []float64) (Transform, error) // Builds the transform for the given axis
}

// Chain is an ordered collection of transforms, each keyed by a UUID.
// Transforms are applied in the order they were added.
type Chain struct {
	order      []uuid.UUID
	transforms map[uuid.UUID]Transform
}

// Returns an empty chain.
func NewChain() *Chain {
	return &Chain{transforms: make(map[uuid.UUID]Transform)}
}

// Add transform to the end of the chain with a UUID and returns the UUID.
func (c *Chain) AddTransform(transform Transform) uuid.UUID {
	id := uuid.New()
	c.order = append(c.order, id)
	c.transforms[id] = transform
	return id
}

// Removes the transform with the given UUID, returning false if it was not present.
func (c *Chain) RemoveTransform(id uuid.UUID) bool {
	if _, ok := c.transforms[id]; !ok {
		return false
	}
	delete(c.transforms, id)
	c.order = slices.DeleteFunc(c.order, func(other uuid.UUID) bool { return other == id })
	return true
}

// Returns the transform with the given UUID.
func (c *Chain) GetTransform(id uuid.UUID) (Transform, bool) {
	t, ok := c.transforms[id]
	return t, ok
}

// Returns the UUIDs of all transforms in application order.
func (c *Chain) IDs() []uuid.UUID {
	return slices.Clone(c.order)
}

// Returns the number of transforms in the chain.
func (c *Chain) Len() int {
	return len(c.order)
}

// Apply runs every transform in order, feeding each the previous output.
// An empty chain returns a copy of signal.
func (c *Chain) Apply(signal []float64) ([]float64, error) {
	out := slices.Clone(signal)
	for _, id := range c.order {
		t := c.transforms[id]
		next, err := t.Transform(out)
		if err != nil {
			return nil, fmt.Errorf("%s transform %s: %w", t.TypeAsString(), id, err)
		}
		out = next
	}
	return out, nil
}
