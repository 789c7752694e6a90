package repo

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/odvcencio/gitlet/pkg/object"
)

// LogEntry pairs a commit with its digest.
type LogEntry struct {
	Hash   object.Hash
	Commit *object.CommitObj
}

// Log walks HEAD's primary-parent chain, newest first.
func (r *Repo) Log() ([]LogEntry, error) {
	st, err := r.loadState()
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	var out []LogEntry
	for h := st.Head; h != ""; {
		c, err := r.Store.ReadCommit(h)
		if err != nil {
			return nil, fmt.Errorf("log: read %s: %w", h.Short(7), err)
		}
		out = append(out, LogEntry{Hash: h, Commit: c})
		h = c.Parent
	}
	return out, nil
}

// GlobalLog returns every commit ever made, newest first.
func (r *Repo) GlobalLog() ([]LogEntry, error) {
	entries, err := r.Catalog.All()
	if err != nil {
		return nil, fmt.Errorf("global-log: %w", err)
	}
	out := make([]LogEntry, 0, len(entries))
	for _, e := range entries {
		c, err := r.Store.ReadCommit(e.Hash)
		if err != nil {
			return nil, fmt.Errorf("global-log: read %s: %w", e.Hash.Short(7), err)
		}
		out = append(out, LogEntry{Hash: e.Hash, Commit: c})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := parseTimestamp(out[i].Commit.Timestamp), parseTimestamp(out[j].Commit.Timestamp)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].Hash < out[j].Hash
	})
	return out, nil
}

// Find returns the digests of all commits whose message equals message,
// sorted. ErrNoMatchingLog if there are none.
func (r *Repo) Find(message string) ([]object.Hash, error) {
	found, err := r.Catalog.Find(message)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("find: %w", ErrNoMatchingLog)
	}
	sort.Slice(found, func(i, j int) bool { return found[i] < found[j] })
	return found, nil
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// WriteLog formats entries the way the log commands print them:
//
//	===
//	commit <digest>
//	Merge: <parent> <merge-parent>
//	Date: <timestamp>
//	<message>
func WriteLog(w io.Writer, entries []LogEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "===\ncommit %s\n", e.Hash); err != nil {
			return err
		}
		if e.Commit.IsMerge() {
			if _, err := fmt.Fprintf(w, "Merge: %s %s\n", e.Commit.Parent.Short(7), e.Commit.MergeParent.Short(7)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Date: %s\n%s\n\n", e.Commit.Timestamp, e.Commit.Message); err != nil {
			return err
		}
	}
	return nil
}
