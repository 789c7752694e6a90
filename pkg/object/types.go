package object

// Hash is a 64-character hex-encoded SHA-256 digest.
type Hash string

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeCommit ObjectType = "commit"
)

// Namespace names one of the physically separate object directories.
type Namespace string

const (
	// NamespaceBlobs holds snapshots owned by at least one commit.
	NamespaceBlobs Namespace = "blobs"
	// NamespaceCommits holds commit objects.
	NamespaceCommits Namespace = "commits"
	// NamespaceStaging holds snapshots staged for addition but not yet
	// committed. It is the only namespace objects are ever deleted from.
	NamespaceStaging Namespace = "staging"
)

// Blob is the immutable content of one file at one point in time, paired
// with the repository-relative path it was read from.
type Blob struct {
	Path string
	Data []byte
}

// Hash returns the digest of the blob.
func (b *Blob) Hash() Hash {
	return HashBlob(b.Path, b.Data)
}

// CommitObj is a snapshot of the whole tracked tree.
type CommitObj struct {
	Message     string
	Timestamp   string
	Parent      Hash // empty only for the root commit
	MergeParent Hash // set only for merge commits
	Branch      string
	Files       map[string]Hash // path -> blob digest
}

// Hash returns the digest of the commit.
func (c *CommitObj) Hash() Hash {
	return HashCommit(c.Message, c.Timestamp)
}

// IsRoot reports whether c has no parent.
func (c *CommitObj) IsRoot() bool {
	return c.Parent == ""
}

// IsMerge reports whether c was produced by a merge.
func (c *CommitObj) IsMerge() bool {
	return c.MergeParent != ""
}

// Parents returns the primary parent followed by the merge parent, skipping
// absent ones.
func (c *CommitObj) Parents() []Hash {
	var out []Hash
	if c.Parent != "" {
		out = append(out, c.Parent)
	}
	if c.MergeParent != "" {
		out = append(out, c.MergeParent)
	}
	return out
}

// Lookup returns the blob digest tracked for path.
func (c *CommitObj) Lookup(path string) (Hash, bool) {
	h, ok := c.Files[path]
	return h, ok
}
