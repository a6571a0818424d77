// Package magnetlink provides a scheme-specific view over the generic URI
// syntax for magnet links.
//
// A magnet link is a URI carrying file-sharing metadata in its query
// parameters: one or more "exact topic" URNs identifying the resource
// (protocol plus info hash), plus optional trackers, direct sources,
// manifest topics, keywords and a display name.
//
// ParseMagnetLink runs the generic absolute-URI grammar over the input and
// then applies the magnet-specific validation: the link must contain at
// least one well-formed exact-topic parameter ("xt" or "xt.<digits>") and
// every exact-topic value must itself parse as an absolute URI. On success
// it returns a MagnetLink, a borrowing view whose accessors project the
// scheme-specific fields out of the query-parameter sequence as lazy
// filterseq views.
//
// Key types:
//   - PctString: a lazily percent-decodable string view with decoded-content
//     equality
//   - QueryParam / Params: the ordered raw query-parameter sequence
//   - MagnetLink: the validated view with its typed accessors
//   - StorableLink: a DTO projected from a MagnetLink for persistence
//
// Common usage pattern:
//
//	m, err := magnetlink.ParseMagnetLink(input)
//	if err != nil {
//		// handle error
//	}
//
//	for hash := range m.InfoHashes().All() {
//		// ...
//	}
//
//	var buf bytes.Buffer
//	for tracker := range m.AddressTrackers(&buf).All() {
//		// ...
//	}
package magnetlink
