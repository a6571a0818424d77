package magnetlink

import (
	"iter"
	"strings"
)

// QueryParam is one query parameter of a URI: a key with an optional value,
// both of them lazily percent-decodable views into the original text.
type QueryParam struct {
	Key      PctString
	HasValue bool
	Value    PctString
}

// Params is the ordered sequence of query parameters of a URI.
//
// It borrows the raw (still encoded) query text; every iteration pass
// re-scans that text from the start, so the sequence is restartable and
// holds no cursor state.
type Params struct {
	rawQuery string
}

// ParamsOf creates a Params sequence over the given raw query text
// (the part after '?', still percent-encoded, without a leading '?').
func ParamsOf(rawQuery string) Params {
	return Params{rawQuery: rawQuery}
}

// All returns the query parameters in document order.
// Empty segments ("a=1&&b=2") are skipped.
func (ps Params) All() iter.Seq[QueryParam] {
	return func(yield func(QueryParam) bool) {
		rest := ps.rawQuery

		for len(rest) > 0 {
			var segment string

			if idx := strings.IndexByte(rest, '&'); idx >= 0 {
				segment, rest = rest[:idx], rest[idx+1:]
			} else {
				segment, rest = rest, ""
			}

			if segment == "" {
				continue
			}

			if !yield(paramOf(segment)) {
				return
			}
		}
	}
}

// Find returns the first parameter whose key decodes to key,
// in document order.
func (ps Params) Find(key string) (QueryParam, bool) {
	for p := range ps.All() {
		if p.Key.EqualDecoded(key) {
			return p, true
		}
	}

	return QueryParam{}, false
}

func paramOf(segment string) QueryParam {
	if idx := strings.IndexByte(segment, '='); idx >= 0 {
		return QueryParam{
			Key:      PctString{raw: segment[:idx]},
			HasValue: true,
			Value:    PctString{raw: segment[idx+1:]},
		}
	}

	return QueryParam{Key: PctString{raw: segment}}
}
