// Package stream is the lazy-sequence runtime that generated data-structure
// implementations are compiled against.
//
// Generated code composes views (filtering, slicing, concatenation) over
// backing collections without materializing intermediates. The contract is
// load-bearing down to its offset bookkeeping: TryGet mutates a running
// index so that a composed view can locate the n-th matching element by
// delegating the remaining offset to its inputs, and ForEach propagates a
// boolean stop flag for early termination. Changing either would break every
// previously generated implementation, so this package must be evolved
// bit-for-bit compatibly.
package stream

// Stream is a lazy sequence of elements.
type Stream[T any] interface {
	// TryGet retrieves the element at *idx, reporting whether it was found.
	// On a miss the stream decrements *idx by the number of elements it
	// skipped, so composed streams can continue the search in later inputs
	// without materializing earlier ones.
	TryGet(idx *int, out *T) bool

	// ForEach visits every element in order until fn returns true (stop).
	// It reports whether the traversal was stopped early.
	ForEach(fn func(T) bool) bool
}

// Collect materializes the stream into an ordered slice of all elements.
func Collect[T any](s Stream[T]) []T {
	var out []T
	s.ForEach(func(e T) bool {
		out = append(out, e)
		return false
	})
	return out
}

// Get returns the element at idx, reporting whether the stream is long
// enough to contain it.
func Get[T any](s Stream[T], idx int) (T, bool) {
	var out T
	ok := s.TryGet(&idx, &out)
	return out, ok
}

// Visit traverses the stream with a visitor that cannot stop early.
func Visit[T any](s Stream[T], fn func(T)) {
	s.ForEach(func(e T) bool {
		fn(e)
		return false
	})
}

// Of returns a stream backed by the given slice. The slice is not copied;
// callers must not mutate it while the stream is in use.
func Of[T any](elems []T) Stream[T] {
	return sliceStream[T](elems)
}

type sliceStream[T any] []T

func (s sliceStream[T]) TryGet(idx *int, out *T) bool {
	if *idx < len(s) {
		*out = s[*idx]
		return true
	}
	*idx -= len(s)
	return false
}

func (s sliceStream[T]) ForEach(fn func(T) bool) bool {
	for _, e := range s {
		if fn(e) {
			return true
		}
	}
	return false
}

// Filter returns a view of s containing only elements for which pred holds.
func Filter[T any](s Stream[T], pred func(T) bool) Stream[T] {
	return filterStream[T]{s: s, pred: pred}
}

type filterStream[T any] struct {
	s    Stream[T]
	pred func(T) bool
}

func (f filterStream[T]) TryGet(idx *int, out *T) bool {
	// Walk the source, counting down the offset per matching element.
	return f.s.ForEach(func(e T) bool {
		if f.pred(e) {
			if *idx == 0 {
				*out = e
				return true
			}
			*idx--
		}
		return false
	})
}

func (f filterStream[T]) ForEach(fn func(T) bool) bool {
	return f.s.ForEach(func(e T) bool {
		if f.pred(e) {
			if fn(e) {
				return true
			}
		}
		return false
	})
}

// Slice returns the bounded view of s from offset start (inclusive) to end
// (exclusive).
func Slice[T any](s Stream[T], start, end int) Stream[T] {
	return sliceView[T]{s: s, start: start, end: end, bounded: true}
}

// SliceFrom returns the unbounded view of s from offset start onward.
func SliceFrom[T any](s Stream[T], start int) Stream[T] {
	return sliceView[T]{s: s, start: start}
}

type sliceView[T any] struct {
	s       Stream[T]
	start   int
	end     int
	bounded bool
}

func (v sliceView[T]) TryGet(idx *int, out *T) bool {
	if v.bounded && *idx >= v.end-v.start {
		return false
	}
	*idx += v.start
	return v.s.TryGet(idx, out)
}

func (v sliceView[T]) ForEach(fn func(T) bool) bool {
	i := 0
	return v.s.ForEach(func(e T) bool {
		if i >= v.start && (!v.bounded || i < v.end) {
			if fn(e) {
				return true
			}
		}
		i++
		return false
	})
}

// Concat returns the view presenting every element of a followed by every
// element of b.
func Concat[T any](a, b Stream[T]) Stream[T] {
	return concatStream[T]{a: a, b: b}
}

type concatStream[T any] struct {
	a Stream[T]
	b Stream[T]
}

func (c concatStream[T]) TryGet(idx *int, out *T) bool {
	if c.a.TryGet(idx, out) {
		return true
	}
	// a has decremented *idx by its length; continue in b.
	return c.b.TryGet(idx, out)
}

func (c concatStream[T]) ForEach(fn func(T) bool) bool {
	if c.a.ForEach(fn) {
		return true
	}
	return c.b.ForEach(fn)
}
