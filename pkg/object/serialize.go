package object

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob:
//
//	path "P"
//
//	<content bytes>
func MarshalBlob(b *Blob) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "path %s\n", strconv.Quote(b.Path))
	buf.WriteByte('\n')
	buf.Write(b.Data)
	return buf.Bytes()
}

// UnmarshalBlob parses a Blob from its serialized form.
func UnmarshalBlob(data []byte) (*Blob, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal blob: missing header/content separator")
	}
	key, val, ok := strings.Cut(string(data[:idx]), " ")
	if !ok || key != "path" {
		return nil, fmt.Errorf("unmarshal blob: malformed header %q", data[:idx])
	}
	p, err := strconv.Unquote(val)
	if err != nil {
		return nil, fmt.Errorf("unmarshal blob: bad path %s: %w", val, err)
	}
	content := data[idx+2:]
	out := make([]byte, len(content))
	copy(out, content)
	return &Blob{Path: p, Data: out}, nil
}

// ---------------------------------------------------------------------------
// CommitObj
// ---------------------------------------------------------------------------

// MarshalCommit serializes a CommitObj:
//
//	timestamp T
//	parent H        (optional)
//	merge-parent H  (optional)
//	branch B
//	file H "P"      (zero or more, sorted by path)
//
//	message
func MarshalCommit(c *CommitObj) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "timestamp %s\n", c.Timestamp)
	if c.Parent != "" {
		fmt.Fprintf(&buf, "parent %s\n", string(c.Parent))
	}
	if c.MergeParent != "" {
		fmt.Fprintf(&buf, "merge-parent %s\n", string(c.MergeParent))
	}
	fmt.Fprintf(&buf, "branch %s\n", c.Branch)

	paths := make([]string, 0, len(c.Files))
	for p := range c.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Fprintf(&buf, "file %s %s\n", string(c.Files[p]), strconv.Quote(p))
	}

	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a CommitObj from its serialized form.
func UnmarshalCommit(data []byte) (*CommitObj, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal commit: missing header/message separator")
	}
	header := string(data[:idx])
	message := string(data[idx+2:])

	c := &CommitObj{Message: message, Files: make(map[string]Hash)}
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("unmarshal commit: malformed header line %q", line)
		}
		switch key {
		case "timestamp":
			c.Timestamp = val
		case "parent":
			c.Parent = Hash(val)
		case "merge-parent":
			c.MergeParent = Hash(val)
		case "branch":
			c.Branch = val
		case "file":
			h, quoted, ok := strings.Cut(val, " ")
			if !ok {
				return nil, fmt.Errorf("unmarshal commit: malformed file line %q", line)
			}
			p, err := strconv.Unquote(quoted)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: bad path %s: %w", quoted, err)
			}
			if _, dup := c.Files[p]; dup {
				return nil, fmt.Errorf("unmarshal commit: duplicate path %q", p)
			}
			c.Files[p] = Hash(h)
		default:
			return nil, fmt.Errorf("unmarshal commit: unknown header key %q", key)
		}
	}
	return c, nil
}
