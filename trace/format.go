package trace

import (
	"fmt"
	"strings"
)

// Dump renders entries the way dump_trace writes a trace to the log: one
// line per frame, oldest first. The second return value is the owning
// object's name if any frame's function was heart_beat, mirroring
// dump_trace's special-cased return used to identify a runaway heartbeat.
func Dump(entries []Entry) (string, string) {
	var b strings.Builder
	heartbeatObject := ""

	for _, e := range entries {
		object := e.Object
		if object == "" {
			object = "<none>"
		}
		fmt.Fprintf(&b, "\t%s at %s, in program /%s (object %s)\n",
			dumpLabel(e), e.Location, e.Program, object)

		if e.Function == "heart_beat" {
			heartbeatObject = e.Object
		}
		if len(e.Arguments) > 0 {
			fmt.Fprintf(&b, "\t  args: %v\n", e.Arguments)
		}
		if len(e.Locals) > 0 {
			fmt.Fprintf(&b, "\t  locals: %v\n", e.Locals)
		}
	}
	return b.String(), heartbeatObject
}

func dumpLabel(e Entry) string {
	switch e.Function {
	case "CATCH":
		return "(catch)"
	case "<function>":
		return "(function)"
	default:
		return e.Function + "()"
	}
}
