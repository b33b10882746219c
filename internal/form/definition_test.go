package form

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestRegisterFS_LoadsYAML(t *testing.T) {
	login, emp := testDefs(t)

	if login.Endpoint != "/api/login" || !login.Popup || !login.ClearOnSuccess {
		t.Fatalf("login def not parsed: %+v", login)
	}
	if got := strings.Join(emp.Required(), ","); got != "name,email,password,role" {
		t.Fatalf("required = %s", got)
	}
	f, ok := emp.Field("role")
	if !ok || len(f.Options) != 2 {
		t.Fatalf("role field = %+v, %v", f, ok)
	}
	if _, ok := emp.Field("missing"); ok {
		t.Fatalf("unexpected field")
	}

	ids := []string{}
	for _, fd := range All() {
		ids = append(ids, fd.ID)
	}
	if !strings.Contains(strings.Join(ids, " "), "test/employee test/login") {
		t.Fatalf("All() not sorted or incomplete: %v", ids)
	}
}

func TestLoadFormDef_StructuralErrors(t *testing.T) {
	cases := map[string]string{
		"no id":          "fields: [{name: a, label: A, type: text}]",
		"no fields":      "id: x",
		"bad type":       "id: x\nfields: [{name: a, label: A, type: checkbox}]",
		"no label":       "id: x\nfields: [{name: a, type: text}]",
		"dup":            "id: x\nfields: [{name: a, label: A, type: text}, {name: a, label: B, type: text}]",
		"empty select":   "id: x\nfields: [{name: r, label: R, type: select}]",
		"reserved name":  "id: x\nfields: [{name: form, label: F, type: text}]",
		"malformed yaml": "id: [",
	}
	for name, body := range cases {
		fsys := fstest.MapFS{"f.yaml": {Data: []byte(body)}}
		if _, err := LoadFormDef(fsys, "f.yaml"); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestMustFormDef_PanicsOnUnknown(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrUnknownForm) {
			t.Fatalf("recover() = %v", r)
		}
	}()
	MustFormDef("nope/nope")
}
