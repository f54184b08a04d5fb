package gitimport

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.
*/

import (
	"bufio"
	"fmt"
	"os/exec"
	"strings"

	"github.com/guiguan/caster"
	"github.com/npillmayer/linelog"
)

// Options configures an import.
type Options struct {
	Repo string // repository directory
	Path string // file path, relative to the repository root
	Git  string // git binary to invoke; empty selects "git" from PATH
}

// Progress is broadcast to subscribers once per recorded revision.
type Progress struct {
	Rev       int    // assigned line log revision
	Commit    string // commit id the revision was read from
	Timestamp int64  // commit timestamp in milliseconds
}

// Importer imports the history of a single file. Create instances with New;
// an Importer is good for one Run.
type Importer struct {
	opts Options
	cast *caster.Caster // broadcaster for per-revision progress
}

// New creates an importer for the given repository and file.
func New(opts Options) *Importer {
	if opts.Git == "" {
		opts.Git = "git"
	}
	return &Importer{
		opts: opts,
		cast: caster.New(nil),
	}
}

// Subscribe returns a channel on which the importer broadcasts one Progress
// message per recorded revision. The channel is closed when the import
// finishes. Subscribe before calling Run, and drain promptly.
func (imp *Importer) Subscribe() <-chan interface{} {
	ch, _ := imp.cast.Sub(nil, 32)
	return ch
}

// Load reads the history of path within the git repository at repo and
// records it, oldest commit first, into a fresh line log.
func Load(repo, path string) (*linelog.LineLog, error) {
	return New(Options{Repo: repo, Path: path}).Run()
}

// Run performs the import and returns the populated line log, checked out at
// its newest revision.
func (imp *Importer) Run() (*linelog.LineLog, error) {
	defer imp.cast.Close()
	oids, err := imp.revList()
	if err != nil {
		return nil, err
	}
	tracer().Debugf("git import: %d commits touch %s", len(oids), imp.opts.Path)
	log := linelog.New()
	if len(oids) == 0 {
		return log, nil
	}

	cmd := exec.Command(imp.opts.Git, "-C", imp.opts.Repo, "cat-file", "--batch")
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("git import: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("git import: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("git import: cannot start %s: %w", imp.opts.Git, err)
	}
	batch := bufio.NewReader(stdout)

	for _, oid := range oids {
		fmt.Fprintf(stdin, "%s\n", oid)
		obj, err := readObject(batch)
		if err != nil {
			return nil, fmt.Errorf("git import: commit %s: %w", oid, err)
		}
		if obj.Missing || obj.Type != "commit" {
			tracer().Errorf("git import: %s is not a readable commit, skipped", oid)
			continue
		}
		commit, err := parseCommit(oid, obj.Data)
		if err != nil {
			return nil, fmt.Errorf("git import: %w", err)
		}
		fmt.Fprintf(stdin, "%s:%s\n", oid, imp.opts.Path)
		blob, err := readObject(batch)
		if err != nil {
			return nil, fmt.Errorf("git import: blob of %s: %w", oid, err)
		}
		if blob.Missing {
			// file not present in this commit; revision is simply omitted
			tracer().Infof("git import: %s has no readable %s, skipped", oid, imp.opts.Path)
			continue
		}
		before := log.MaxRev()
		rev, err := log.RecordText(string(blob.Data), commit.Time()*1000, linelog.Extra{
			"commit":  commit.Oid,
			"author":  commit.Author,
			"message": commit.Title(),
		})
		if err != nil {
			return nil, fmt.Errorf("git import: recording %s: %w", oid, err)
		}
		if rev > before {
			imp.cast.Pub(Progress{Rev: rev, Commit: oid, Timestamp: commit.Time() * 1000})
		}
	}
	stdin.Close()
	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("git import: %s cat-file: %w", imp.opts.Git, err)
	}
	return log, nil
}

// revList enumerates the commits touching the file, oldest first, following
// the first parent across merges.
func (imp *Importer) revList() ([]string, error) {
	cmd := exec.Command(imp.opts.Git, "-C", imp.opts.Repo,
		"rev-list", "--reverse", "--first-parent", "HEAD", "--", imp.opts.Path)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git import: rev-list: %w", err)
	}
	return strings.Fields(string(out)), nil
}
