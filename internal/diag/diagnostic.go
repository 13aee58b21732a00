package diag

import (
	"fmt"

	"recast/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// New builds a diagnostic without notes.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Format renders the flat single-line form path:line:col: SEVERITY CODE: msg.
// A nil FileSet falls back to the raw span.
func (d Diagnostic) Format(fs *source.FileSet) string {
	where := d.Primary.String()
	if fs != nil {
		where = fs.Position(d.Primary)
	}
	return fmt.Sprintf("%s: %s %s: %s", where, d.Severity, d.Code.ID(), d.Message)
}

func (d Diagnostic) String() string {
	return d.Format(nil)
}
