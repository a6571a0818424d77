package magnetlink

import (
	"bytes"
	"net/url"

	"github.com/AntonStoeckl/magnet-links-go/filterseq"
)

type (
	// TopicsView is a lazy view of all exact-topic URNs in a magnet link.
	TopicsView = filterseq.View[QueryParam, *url.URL]

	// InfoHashesView is a lazy view of the info hashes of all exact topics.
	InfoHashesView = filterseq.View[QueryParam, InfoHashString]

	// ProtocolsView is a lazy view of the protocol tags of all exact topics.
	ProtocolsView = filterseq.View[QueryParam, ProtocolString]

	// KeysView is a lazy view of the once-decoded URL values of all query
	// parameters with a fixed key. Several magnet fields are lists of
	// doubly-encoded URLs sharing one key.
	KeysView = filterseq.View[QueryParam, PctString]
)

// MagnetLink is a view of the fields of a magnet link.
//
// Unlike a generally parsed URI, which only represents the generic syntax,
// a MagnetLink exposes the fields relevant to the magnet scheme while
// ignoring the parts of the generic syntax the scheme does not use.
//
// A MagnetLink is only obtained through ParseMagnetLink, which establishes
// the invariant that the link carries at least one well-formed exact topic.
// The accessors rely on that invariant and do not re-validate. The view
// borrows the parsed URI's backing text and must not outlive it.
//
// Specification:
//   - https://www.bittorrent.org/beps/bep_0009.html (metadata extension)
//   - https://www.bittorrent.org/beps/bep_0053.html (magnet URI extension)
//   - https://en.wikipedia.org/wiki/Magnet_URI_scheme
type MagnetLink struct {
	u *url.URL
}

// String returns the link in its generic URI form.
func (m MagnetLink) String() string {
	return m.u.String()
}

// Params returns the link's query-parameter sequence.
func (m MagnetLink) Params() Params {
	return ParamsOf(m.u.RawQuery)
}

// ExactTopics returns a view of all exact-topic URNs in the link.
//
// An exact topic is the mandatory magnet field: a URN identifying the
// resource by protocol and hash, under the key "xt" or "xt.<digits>".
// The parse rule guarantees at least one element.
func (m MagnetLink) ExactTopics() TopicsView {
	return filterseq.New(m.Params().All(), IsExactTopic, ToURL)
}

// InfoHashes returns a view of the info hashes of all exact topics.
func (m MagnetLink) InfoHashes() InfoHashesView {
	return filterseq.New(m.Params().All(), IsExactTopic, ToInfoHash)
}

// Protocols returns a view of the protocol tags of all exact topics.
func (m MagnetLink) Protocols() ProtocolsView {
	return filterseq.New(m.Params().All(), IsExactTopic, ToProtocol)
}

// AddressTrackers returns a view of all tracker URLs in the link ("tr"),
// used for peer discovery.
//
// buf is the scratch buffer the view decodes candidate values into; see
// IsURLWithKey for the aliasing rules it must follow.
func (m MagnetLink) AddressTrackers(buf *bytes.Buffer) KeysView {
	return m.keysView("tr", buf)
}

// ExactSources returns a view of all exact-source URLs in the link ("xs"),
// direct download locations for the payload.
func (m MagnetLink) ExactSources(buf *bytes.Buffer) KeysView {
	return m.keysView("xs", buf)
}

// AcceptableSources returns a view of all acceptable-source URLs in the
// link ("as"), fallback download locations for the payload.
func (m MagnetLink) AcceptableSources(buf *bytes.Buffer) KeysView {
	return m.keysView("as", buf)
}

// ManifestTopics returns a view of all manifest-topic URLs in the link
// ("mt"), locations of metafiles that list further magnets.
func (m MagnetLink) ManifestTopics(buf *bytes.Buffer) KeysView {
	return m.keysView("mt", buf)
}

// WebSeed returns a view of all web-seed URLs in the link ("ws"), payload
// data served over HTTP(S).
func (m MagnetLink) WebSeed(buf *bytes.Buffer) KeysView {
	return m.keysView("ws", buf)
}

// KeywordTopic returns the search keywords of the link ("kt"), when present.
func (m MagnetLink) KeywordTopic() (PctString, bool) {
	return m.decodedParam("kt")
}

// DisplayName returns the filename to display to the user ("dn"), when
// present. The field exists only for convenience.
func (m MagnetLink) DisplayName() (PctString, bool) {
	return m.decodedParam("dn")
}

// Param returns the value of the extra supplement parameter "x.<key>", when
// present. Keys with the "x." prefix carry informal options and are
// guaranteed to never be standardized.
func (m MagnetLink) Param(key string) (PctString, bool) {
	for p := range m.Params().All() {
		rest, ok := p.Key.trimDecodedPrefix("x.")
		if !ok || !rest.EqualDecoded(key) || !p.HasValue {
			continue
		}

		return p.Value, true
	}

	return PctString{}, false
}

func (m MagnetLink) keysView(key string, buf *bytes.Buffer) KeysView {
	return filterseq.New(m.Params().All(), IsURLWithKey(key, buf), ToDecodedValue)
}

// decodedParam returns the value of the first parameter with the given key.
// Duplicate keys yield the first occurrence in document order.
func (m MagnetLink) decodedParam(key string) (PctString, bool) {
	p, found := m.Params().Find(key)
	if !found || !p.HasValue {
		return PctString{}, false
	}

	return p.Value, true
}

// ParseMagnetLink parses text into a MagnetLink.
//
// The rule has three stages, terminal on the first failure:
//  1. The generic absolute-URI grammar must accept the whole input; its
//     error is returned unchanged.
//  2. The query parameters must contain at least one exact topic; otherwise
//     ErrInvalidMagnetLink is returned.
//  3. Every exact topic's value must parse as an absolute URI; otherwise
//     ErrInvalidMagnetLink is returned. Parameters that are not exact
//     topics are unconstrained.
//
// On success the returned MagnetLink borrows the parsed URI; the input is
// neither copied nor re-encoded.
func ParseMagnetLink(text string) (MagnetLink, error) {
	u, err := ParseAbsoluteURI(text)
	if err != nil {
		return MagnetLink{}, err
	}

	m := MagnetLink{u: u}

	foundTopic := false
	for p := range m.Params().All() {
		if !IsExactTopic(p) {
			continue
		}

		foundTopic = true

		if _, topicErr := ParseAbsoluteURI(p.Value.Raw()); topicErr != nil {
			return MagnetLink{}, ErrInvalidMagnetLink
		}
	}

	if !foundTopic {
		// the exact topic is the only mandatory magnet field
		return MagnetLink{}, ErrInvalidMagnetLink
	}

	return m, nil
}
