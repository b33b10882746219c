package message

import (
	"bytes"
	"testing"
)

func TestConsole_RoutesByKind(t *testing.T) {
	var out, errOut bytes.Buffer
	c := Console{Out: &out, Err: &errOut}

	c.Show(Notice{Kind: Info, Text: "Logged in."})
	c.Show(Notice{Kind: Popup, Title: "Login Error", Text: "Login failed. Please try again."})

	if out.String() != "Logged in.\n" {
		t.Fatalf("out = %q", out.String())
	}
	if errOut.String() != "Login Error: Login failed. Please try again.\n" {
		t.Fatalf("err = %q", errOut.String())
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Show(Notice{Kind: Warning, Text: "Unauthorized access"})
	got := r.Notices()
	if len(got) != 1 || got[0].Kind != Warning || got[0].Kind.String() != "warning" {
		t.Fatalf("notices = %+v", got)
	}
}
