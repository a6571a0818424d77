package filterseq

import (
	"iter"
)

type (

	// Predicate decides whether an element of the source sequence is part
	// of the view.
	Predicate[In any] func(in In) bool

	// Transform converts an accepted source element into the view's output
	// value. It is only ever invoked on elements the Predicate accepted.
	Transform[In, Out any] func(in In) Out
)

// View is a lazy projection of the source elements accepted by a predicate.
//
// A View is immutable after construction. It does not own a buffer and does
// not remember how far any iteration got; the cursor lives in the range loop,
// not in the View.
type View[In, Out any] struct {
	src     iter.Seq[In]
	accepts Predicate[In]
	project Transform[In, Out]
}

// New creates a View over src yielding project(e) for every element e that
// accepts(e) holds for.
//
// New panics if src, accepts or project is nil.
func New[In, Out any](src iter.Seq[In], accepts Predicate[In], project Transform[In, Out]) View[In, Out] {
	if src == nil {
		panic("filterseq.New: src must not be nil")
	}

	if accepts == nil {
		panic("filterseq.New: accepts must not be nil")
	}

	if project == nil {
		panic("filterseq.New: project must not be nil")
	}

	return View[In, Out]{
		src:     src,
		accepts: accepts,
		project: project,
	}
}

// Keep creates a View that yields the accepted source elements unchanged,
// for the case where no output conversion is wanted.
//
// Keep panics if src or accepts is nil.
func Keep[In any](src iter.Seq[In], accepts Predicate[In]) View[In, In] {
	return New(src, accepts, func(in In) In { return in })
}

// All returns the sequence of transformed accepted elements.
//
// Every range over the returned sequence starts a fresh pass over the source.
// An empty sequence means no source element satisfied the predicate; that is
// a normal outcome, not an error.
func (v View[In, Out]) All() iter.Seq[Out] {
	return func(yield func(Out) bool) {
		for in := range v.src {
			if !v.accepts(in) {
				continue
			}

			if !yield(v.project(in)) {
				return
			}
		}
	}
}

// Collect materializes one pass over the View into a slice.
func (v View[In, Out]) Collect() []Out {
	var out []Out
	for o := range v.All() {
		out = append(out, o)
	}

	return out
}
