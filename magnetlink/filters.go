package magnetlink

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/AntonStoeckl/magnet-links-go/filterseq"
)

// IsExactTopic reports whether a query parameter represents a magnet
// "exact topic": its key decodes to "xt", or to "xt." followed by one or
// more decimal digits and nothing else.
//
// The comparison is lazy, so an encoded key like "%78%74" matches too.
func IsExactTopic(p QueryParam) bool {
	rest, ok := p.Key.trimDecodedPrefix("xt")
	if !ok {
		return false
	}

	if rest.IsEmpty() {
		return true
	}

	rest, ok = rest.trimDecodedPrefix(".")
	if !ok {
		return false
	}

	return rest.isDecodedDigits()
}

// IsURLWithKey creates a predicate that accepts a query parameter when its
// key decodes to key and its value, decoded once into buf, parses as an
// absolute URI. Such values are percent-encoded twice in magnet links, so
// one decode must happen before the parse attempt.
//
// The key check short-circuits: buf is only written when the key matches.
// Once it is written, buf's prior contents are invalidated even when the
// predicate returns false, since the value is decoded before its validity
// is known. A buf shared between views must therefore never be used by two
// concurrently running iteration passes.
func IsURLWithKey(key string, buf *bytes.Buffer) filterseq.Predicate[QueryParam] {
	return func(p QueryParam) bool {
		if !p.Key.EqualDecoded(key) {
			return false
		}

		if err := p.Value.DecodeInto(buf); err != nil {
			return false
		}

		_, err := ParseAbsoluteURI(buf.String())

		return err == nil
	}
}

// ToURL converts the value of an exact-topic parameter into a parsed URI.
//
// Exact-topic values are not percent-encoded twice, so the raw value is
// parsed directly. ToURL is only ever invoked on parameters an exact-topic
// predicate accepted; an unparseable value here is a contract violation and
// panics.
func ToURL(p QueryParam) *url.URL {
	u, err := ParseAbsoluteURI(p.Value.Raw())
	if err != nil {
		panic(fmt.Sprintf("magnetlink: ToURL invoked on unvalidated parameter value %q: %v", p.Value.Raw(), err))
	}

	return u
}

// ToInfoHash converts the value of an exact-topic parameter into its info
// hash: the part of the URN after the last colon.
func ToInfoHash(p QueryParam) InfoHashString {
	_, infoHash := SplitTopic(ToURL(p).String())

	return infoHash
}

// ToProtocol converts the value of an exact-topic parameter into its
// protocol tag: the part of the URN before the last colon.
func ToProtocol(p QueryParam) ProtocolString {
	protocol, _ := SplitTopic(ToURL(p).String())

	return protocol
}

// ToDecodedValue converts a query parameter into a lazily-decodable view of
// its value, for fields whose value the caller decodes once, not twice.
func ToDecodedValue(p QueryParam) PctString {
	return p.Value
}
