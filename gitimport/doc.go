/*
Package gitimport builds a line log from the history of one file in a git
repository.

The importer shells out to the git binary: it enumerates the commits touching
the file in chronological order and fetches commit objects and file contents
over a single `git cat-file --batch` subprocess. Every fetched revision is
recorded into a linelog.LineLog, with the author identity and the commit
message title attached as per-revision metadata and commit timestamps
converted to milliseconds.

Merge commits are followed along the first parent only, keeping the imported
history linear. A commit whose file content cannot be read is skipped, and
the import continues with the next commit.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package gitimport

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'linelog'
func tracer() tracing.Trace {
	return tracing.Select("linelog")
}
