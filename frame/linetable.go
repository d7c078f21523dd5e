package frame

// LineRun is one run-length entry in a program's bytecode-offset-to-line
// table: Length bytes of bytecode map to AbsLine, an index into the
// program's flat absolute-line numbering (itself resolved to a file/line
// pair via the file map).
type LineRun struct {
	Length  int
	AbsLine int
}

// FileEntry names one source file (the main program or an include) and
// the range of absolute line numbers it owns.
type FileEntry struct {
	Name      string
	FirstLine int
	NumLines  int
}

// LineTable is a compiled program's run-length line table plus its file
// map, supporting included files the way the original's COPY_SHORT/
// translate_absolute_line pair does.
type LineTable struct {
	Runs  []LineRun
	Files []FileEntry
}

// Translate walks the run-length table until the cumulative length
// exceeds offset, then maps the resulting absolute line to a (file, line)
// pair via the file map. ok is false if offset runs past every known run,
// or if no file owns the resolved absolute line (too many include levels).
func (lt *LineTable) Translate(offset int) (file string, line int, ok bool) {
	file, line, status := lt.translate(offset)
	return file, line, status == lineOK
}

type lineStatus int

const (
	lineOK lineStatus = iota
	lineNoLineNumbers
	lineIncludesTooDeep
)

func (lt *LineTable) translate(offset int) (file string, line int, status lineStatus) {
	if lt == nil {
		return "", 0, lineNoLineNumbers
	}
	remaining := offset
	var abs int
	found := false
	for _, r := range lt.Runs {
		if remaining <= r.Length {
			abs = r.AbsLine
			found = true
			break
		}
		remaining -= r.Length
	}
	if !found {
		return "", 0, lineNoLineNumbers
	}

	for _, f := range lt.Files {
		if abs >= f.FirstLine && abs < f.FirstLine+f.NumLines {
			return f.Name, abs - f.FirstLine + 1, lineOK
		}
	}
	return "", 0, lineIncludesTooDeep
}
