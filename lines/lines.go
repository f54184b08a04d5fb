/*
Package lines splits text into lines the way a line log counts them.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package lines

import "strings"

// Split splits s after each newline. Every segment retains its trailing
// newline; a final segment without one is preserved as-is. The segments
// concatenate back to s. Empty input yields no segments.
func Split(s string) []string {
	if s == "" {
		return nil
	}
	segments := strings.SplitAfter(s, "\n")
	if segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}
	return segments
}

// Count returns the number of lines of s, counted as Split does.
func Count(s string) int {
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") && s != "" {
		n++
	}
	return n
}
