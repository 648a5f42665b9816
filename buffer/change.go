package buffer

// ChangeKind classifies an effective mutation by what it invalidates.
type ChangeKind uint8

const (
	// ChangeCursor moved the cursor only.
	ChangeCursor ChangeKind = iota
	// ChangeContent edited text within a line; the line count is unchanged.
	ChangeContent
	// ChangeLayout changed the number of logical lines.
	ChangeLayout
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCursor:
		return "cursor"
	case ChangeContent:
		return "content"
	case ChangeLayout:
		return "layout"
	default:
		return "unknown"
	}
}

// Change is a normalized, versioned mutation record.
type Change struct {
	Kind          ChangeKind
	VersionBefore uint64
	VersionAfter  uint64
	CursorBefore  Pos
	CursorAfter   Pos
	LinesBefore   int
	LinesAfter    int
}

type changeBuilder struct {
	kind          ChangeKind
	versionBefore uint64
	cursorBefore  Pos
	linesBefore   int
}

// LastChange returns the most recent effective change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return b.lastChange, true
}

func (b *Buffer) beginChange(kind ChangeKind) changeBuilder {
	return changeBuilder{
		kind:          kind,
		versionBefore: b.version,
		cursorBefore:  b.cursor,
		linesBefore:   len(b.lines),
	}
}

func (b *Buffer) commitChange(cb changeBuilder) {
	if b.version == cb.versionBefore {
		return
	}
	kind := cb.kind
	if len(b.lines) != cb.linesBefore {
		kind = ChangeLayout
	}
	b.lastChange = Change{
		Kind:          kind,
		VersionBefore: cb.versionBefore,
		VersionAfter:  b.version,
		CursorBefore:  cb.cursorBefore,
		CursorAfter:   b.cursor,
		LinesBefore:   cb.linesBefore,
		LinesAfter:    len(b.lines),
	}
	b.hasLastChange = true
}
