package form

import (
	"testing"
	"testing/fstest"
)

const loginYAML = `
id: test/login
title: Login
endpoint: /api/login
popup: true
clear_on_success: true
messages:
  failure: Login failed. Please try again.
  error: An error occurred while logging in. Please try again later.
fields:
  - name: email
    label: Email
    type: email
    required: true
    trim: true
  - name: password
    label: Password
    type: password
    required: true
    trim: true
`

const employeeYAML = `
id: test/employee
title: Add Employee
endpoint: /api/add
messages:
  failure: Error adding employee.
  error: An error occurred. Please try again.
fields:
  - name: name
    label: Name
    type: text
    required: true
  - name: email
    label: Email
    type: email
    required: true
  - name: password
    label: Password
    type: password
    required: true
  - name: role
    label: Role
    type: select
    required: true
    options: [employee, admin]
`

// testDefs registers the fixtures and returns them.
func testDefs(t *testing.T) (login, employee *FormDef) {
	t.Helper()
	fsys := fstest.MapFS{
		"forms/login.yaml":    {Data: []byte(loginYAML)},
		"forms/employee.yaml": {Data: []byte(employeeYAML)},
		"forms/README.md":     {Data: []byte("ignored")},
	}
	if err := RegisterFS(fsys); err != nil {
		t.Fatalf("RegisterFS: %v", err)
	}
	return MustFormDef("test/login"), MustFormDef("test/employee")
}
