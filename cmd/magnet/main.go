// Command magnet parses a magnet link and prints its components to
// standard output, demonstrating how the scheme-specific view projects
// fields out of the generic URI syntax.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/AntonStoeckl/magnet-links-go/magnetlink"
)

const exampleLink = "magnet:?xt=urn:btih:d2474e86c95b19b8bcfdb92bc12c9d44667cfa36" +
	"&dn=Leaves+of+Grass+by+Walt+Whitman.epub" +
	"&tr=udp%3A%2F%2Ftracker.example4.com%3A80" +
	"&tr=udp%3A%2F%2Ftracker.example5.com%3A80" +
	"&tr=udp%3A%2F%2Ftracker.example3.com%3A6969" +
	"&tr=udp%3A%2F%2Ftracker.example2.com%3A80" +
	"&tr=udp%3A%2F%2Ftracker.example1.com%3A1337"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: magnet <link>\nexample: magnet %s", exampleLink)
	}

	m, err := magnetlink.ParseMagnetLink(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "link:", m)

	for topic := range m.ExactTopics().All() {
		fmt.Fprintln(out, "topic:", topic)
	}

	for hash := range m.InfoHashes().All() {
		fmt.Fprintln(out, "hash:", hash)
	}

	for protocol := range m.Protocols().All() {
		fmt.Fprintln(out, "protocol:", protocol)
	}

	var buf bytes.Buffer

	for tracker := range m.AddressTrackers(&buf).All() {
		fmt.Fprintln(out, "tracker:", tracker)
	}

	for source := range m.ExactSources(&buf).All() {
		fmt.Fprintln(out, "exact source:", source)
	}

	for source := range m.AcceptableSources(&buf).All() {
		fmt.Fprintln(out, "acceptable source:", source)
	}

	for topic := range m.ManifestTopics(&buf).All() {
		fmt.Fprintln(out, "manifest topic:", topic)
	}

	for seed := range m.WebSeed(&buf).All() {
		fmt.Fprintln(out, "web seed:", seed)
	}

	if kt, found := m.KeywordTopic(); found {
		fmt.Fprintln(out, "keyword topic:", kt)
	}

	if dn, found := m.DisplayName(); found {
		fmt.Fprintln(out, "display name:", dn)
	}

	return nil
}
