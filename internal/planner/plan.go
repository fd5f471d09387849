package planner

// Operation kind constants
const (
	KindMove = "move"
	KindCopy = "copy"
)

// Sort mode constants
const (
	// ModeFlat organizes only direct children of the source root.
	ModeFlat = "flat"

	// ModeDeep recursively organizes all files regardless of nesting.
	ModeDeep = "deep"

	// ModeFreeze organizes loose files by bucket and relocates whole
	// subdirectories intact into the quarantine folder.
	ModeFreeze = "freeze"
)

// FoldersDir is the quarantine directory under the destination root that
// receives whole subtrees in freeze mode.
const FoldersDir = "_Folders"

// Skip reason constants
const (
	SkipSymlink     = "symbolic link"
	SkipDestination = "destination root inside source"
)

// FileEntry describes a regular file discovered during the walk.
// Entries are immutable once discovered.
type FileEntry struct {
	// Path is the absolute source path
	Path string

	// Size is the file size in bytes
	Size int64

	// RelPath is the path relative to the source root
	RelPath string
}

// Operation represents a single planned move or copy.
type Operation struct {
	// Source is the absolute source path
	Source string

	// Dest is the intended absolute destination path. The executor may
	// still rename it if the path is occupied at execution time.
	Dest string

	// Kind is KindMove or KindCopy
	Kind string

	// Bucket is the destination bucket name ("" for subtree operations)
	Bucket string

	// Subtree marks a freeze-mode whole-directory operation
	Subtree bool

	// Size is the operation's payload size in bytes (0 for subtrees)
	Size int64
}

// Skip records a source entry the walk deliberately left alone.
type Skip struct {
	// Path is the absolute path of the skipped entry
	Path string

	// Reason is a human-readable explanation
	Reason string
}

// Plan is the ordered sequence of operations for one run.
type Plan struct {
	// SourceRoot is the absolute source directory
	SourceRoot string

	// DestRoot is the absolute destination directory
	DestRoot string

	// Mode is the sort mode the plan was built with
	Mode string

	// Kind is the operation kind applied to every operation
	Kind string

	// Operations is the ordered list of planned operations
	Operations []Operation

	// Skipped lists entries excluded from the run
	Skipped []Skip

	// TotalBytes is the combined size of all file operations
	TotalBytes int64
}

// NewPlan creates a new empty Plan.
func NewPlan(sourceRoot, destRoot, mode, kind string) *Plan {
	return &Plan{
		SourceRoot: sourceRoot,
		DestRoot:   destRoot,
		Mode:       mode,
		Kind:       kind,
		Operations: []Operation{},
		Skipped:    []Skip{},
	}
}

// AddOperation appends an operation to the plan.
func (p *Plan) AddOperation(op Operation) {
	p.Operations = append(p.Operations, op)
	p.TotalBytes += op.Size
}

// AddSkip records a skipped entry.
func (p *Plan) AddSkip(path, reason string) {
	p.Skipped = append(p.Skipped, Skip{Path: path, Reason: reason})
}

// ValidMode reports whether mode is a recognized sort mode.
func ValidMode(mode string) bool {
	switch mode {
	case ModeFlat, ModeDeep, ModeFreeze:
		return true
	}
	return false
}

// ValidKind reports whether kind is a recognized operation kind.
func ValidKind(kind string) bool {
	return kind == KindMove || kind == KindCopy
}
