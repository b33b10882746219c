// internal/message/message.go
//
// staffdesk – user-facing notices.
//
// Context
//   Forms surface their outcome in one of a few ways: a banner under the
//   form (signup, add-employee), a dismissible popup (login), a blocking
//   warning (unmapped role), or a plain success note.  Components describe
//   the notice; a Sink decides how to show it.  The CLI uses Console; tests
//   use Recorder.
//
//------------------------------------------------------------------------------

package message

import (
	"fmt"
	"io"
	"sync"
)

// Kind classifies a notice.
type Kind int

const (
	Info Kind = iota
	Banner
	Popup
	Warning
)

func (k Kind) String() string {
	switch k {
	case Info:
		return "info"
	case Banner:
		return "banner"
	case Popup:
		return "popup"
	case Warning:
		return "warning"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Notice is one thing to show the user.
type Notice struct {
	Kind  Kind
	Title string // optional, e.g. "Login Error"
	Text  string
}

// Sink displays notices.
type Sink interface {
	Show(n Notice)
}

// Console writes notices as single lines.  Failures go to Err, everything
// else to Out.
type Console struct {
	Out io.Writer
	Err io.Writer
}

// Show implements Sink.
func (c Console) Show(n Notice) {
	w := c.Out
	if n.Kind == Popup || n.Kind == Warning || n.Kind == Banner {
		w = c.Err
	}
	if n.Title != "" {
		fmt.Fprintf(w, "%s: %s\n", n.Title, n.Text)
		return
	}
	fmt.Fprintln(w, n.Text)
}

// Recorder keeps every notice.  Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Show implements Sink.
func (r *Recorder) Show(n Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
}

// Notices returns a copy of everything shown.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}
