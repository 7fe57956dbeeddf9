package directive

import (
	"fmt"

	"mystdir/internal/diag"
)

// Warning is a recoverable problem found while parsing one invocation.
// Line is a document line number, 0 when unknown.
type Warning struct {
	Code    diag.Code
	Message string
	Line    int
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("%s (line %d)", w.Message, w.Line)
	}
	return w.Message
}

func newWarning(code diag.Code, line int, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...), Line: line}
}
