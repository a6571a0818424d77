package magnetlink

import (
	"net/url"
	"strings"
)

// ParseAbsoluteURI runs the generic absolute-URI grammar over text.
//
// On top of the generic URI syntax it requires a scheme and rejects a
// fragment part, per the absolute-URI form of RFC 3986. The error of the
// underlying grammar is returned as-is; magnet-specific diagnostics are
// not added here.
func ParseAbsoluteURI(text string) (*url.URL, error) {
	// a raw '#' always starts a fragment, which absolute-URI excludes
	if strings.ContainsRune(text, '#') {
		return nil, ErrURINotAbsolute
	}

	u, err := url.Parse(text)
	if err != nil {
		return nil, err
	}

	if u.Scheme == "" {
		return nil, ErrURINotAbsolute
	}

	return u, nil
}

// SplitTopic splits an exact-topic URN at its last colon into the protocol
// tag and the info hash, e.g. "urn:btih:ABC123" into "urn:btih" and
// "ABC123". Without a colon the protocol is empty, meaning no protocol tag
// is present, and the whole text is the hash.
func SplitTopic(topic string) (protocol ProtocolString, infoHash InfoHashString) {
	if idx := strings.LastIndexByte(topic, ':'); idx >= 0 {
		return topic[:idx], topic[idx+1:]
	}

	return "", topic
}
