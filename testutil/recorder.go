package testutil

import (
	"github.com/c360/searchbind/types"
)

// Recorder captures notification batches as delivered. Single-goroutine,
// matching the binding layer's delivery model.
type Recorder struct {
	Batches [][]types.ChangeRecord
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Listener returns the subscription listener that records into r.
func (r *Recorder) Listener() func(batch []types.ChangeRecord) {
	return func(batch []types.ChangeRecord) {
		r.Batches = append(r.Batches, batch)
	}
}

// BatchCount returns how many batches have been delivered.
func (r *Recorder) BatchCount() int {
	return len(r.Batches)
}

// LastBatch returns the most recent batch, or nil when none arrived.
func (r *Recorder) LastBatch() []types.ChangeRecord {
	if len(r.Batches) == 0 {
		return nil
	}
	return r.Batches[len(r.Batches)-1]
}

// Properties flattens every delivered batch into the ordered list of
// changed property names.
func (r *Recorder) Properties() []types.Property {
	var props []types.Property
	for _, batch := range r.Batches {
		for _, record := range batch {
			props = append(props, record.Property)
		}
	}
	return props
}

// Changed reports whether any delivered batch touched the property.
func (r *Recorder) Changed(p types.Property) bool {
	for _, prop := range r.Properties() {
		if prop == p {
			return true
		}
	}
	return false
}
