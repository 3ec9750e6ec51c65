// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// validate is a CLI tool to check M3U / M3U Plus playlists.
//
// Usage:
//
//	validate -f playlist.m3u
//	validate --file playlist.m3u --tolerant
//
// By default the playlist is parsed strictly: a URL line without a preceding
// #EXTINF makes it invalid. --tolerant accepts it and prints statistics
// instead.
//
// Exit codes:
//   - 0: Playlist is valid
//   - 1: Playlist is malformed or unreadable
//   - 2: Usage error (missing required flag)
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ManuGH/m3uplus/internal/channels"
	"github.com/ManuGH/m3uplus/internal/m3u"
	"github.com/ManuGH/m3uplus/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		file        string
		tolerant    bool
		showVersion bool
	)
	fs.StringVar(&file, "file", "", "path to the playlist")
	fs.StringVar(&file, "f", "", "path to the playlist (shorthand)")
	fs.BoolVar(&tolerant, "tolerant", false, "accept bare URL lines and print statistics")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if showVersion {
		fmt.Fprintln(stdout, version.Version)
		return 0
	}

	if file == "" {
		fmt.Fprintln(stderr, "Error: --file is required")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  validate -f playlist.m3u")
		fmt.Fprintln(stderr, "  validate --file playlist.m3u [--tolerant]")
		return 2
	}

	data, err := os.ReadFile(file) // #nosec G304 -- path is chosen by the operator
	if err != nil {
		fmt.Fprintf(stderr, "Cannot read %s:\n  %v\n", file, err)
		return 1
	}

	p, err := m3u.Parse(string(data), m3u.ParseOptions{Strict: !tolerant})
	if err != nil {
		var malformed *m3u.MalformedPlaylistError
		if errors.As(err, &malformed) {
			fmt.Fprintf(stderr, "Malformed playlist %s:\n  line %d: URL %q has no preceding #EXTINF\n", file, malformed.Line, malformed.URL)
			return 1
		}
		fmt.Fprintf(stderr, "Parse error in %s:\n  %v\n", file, err)
		return 1
	}

	if !tolerant {
		fmt.Fprintf(stdout, "✓ %s is valid (%d tracks)\n", file, p.Len())
		if p.Dropped > 0 {
			fmt.Fprintf(stdout, "  warning: %d #EXTINF directives without URL were ignored\n", p.Dropped)
		}
		return 0
	}

	np := channels.Normalize(p, channels.Options{})
	fmt.Fprintf(stdout, "%s:\n", file)
	fmt.Fprintf(stdout, "  tracks:             %d\n", p.Len())
	fmt.Fprintf(stdout, "  dropped entries:    %d\n", p.Dropped)
	fmt.Fprintf(stdout, "  channels:           %d\n", np.Len())
	fmt.Fprintf(stdout, "  duplicates removed: %d\n", np.DuplicatesRemoved)
	return 0
}
