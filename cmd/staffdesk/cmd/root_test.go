package cmd

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/staffdesk/internal/api"
	"github.com/yanizio/staffdesk/internal/apitest"
)

type run struct {
	out, err string
	code     error
}

// env points the CLI at b and keeps all state under a temp dir.
func env(t *testing.T, b *apitest.Backend) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STAFFDESK_ROOT", dir)
	t.Setenv("STAFFDESK_API__BASE_URL", b.URL)
	t.Setenv("STAFFDESK_SESSION__PATH", filepath.Join(dir, "session.json"))
	t.Setenv("STAFFDESK_LOG__DIR", filepath.Join(dir, "logs"))
	return dir
}

func execute(t *testing.T, stdin string, args ...string) run {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return run{out: out.String(), err: errOut.String(), code: err}
}

func TestLoginWhoamiLogout(t *testing.T) {
	b := apitest.New(t)
	env(t, b)

	r := execute(t, "", "login", "--email", " ann@corp.io ", "--password", "Abcdef1!")
	require.NoError(t, r.code, r.err)
	assert.Contains(t, r.out, "/admin-dashboard")
	assert.Equal(t, map[string]string{"email": "ann@corp.io", "password": "Abcdef1!"}, b.Requests()[0].Body)

	r = execute(t, "", "whoami")
	require.NoError(t, r.code)
	assert.Contains(t, r.out, "role: employee")
	assert.Contains(t, r.out, "id:   1")

	r = execute(t, "", "logout")
	require.NoError(t, r.code)

	r = execute(t, "", "whoami")
	assert.ErrorIs(t, r.code, errReported)
	assert.Contains(t, r.err, "Not logged in.")
}

func TestLogin_PasswordFromStdin(t *testing.T) {
	b := apitest.New(t)
	env(t, b)

	r := execute(t, "Abcdef1!\n", "login", "--email", "ann@corp.io")
	require.NoError(t, r.code, r.err)
	assert.Equal(t, "Abcdef1!", b.Requests()[0].Body["password"])
}

func TestLogin_FailureShowsPopup(t *testing.T) {
	b := apitest.New(t)
	env(t, b)
	b.Handle(api.PathLogin, apitest.JSON(http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"}))

	r := execute(t, "", "login", "--email", "ann@corp.io", "--password", "Abcdef1!")
	assert.ErrorIs(t, r.code, errReported)
	assert.Contains(t, r.err, "Login Error: Invalid credentials")
}

func TestAddEmployee_UsesStoredToken(t *testing.T) {
	b := apitest.New(t)
	env(t, b)

	require.NoError(t, execute(t, "", "login", "--email", "ann@corp.io", "--password", "Abcdef1!").code)

	r := execute(t, "", "add-employee", "--name", "Bob", "--email", "bob@corp.io", "--password", "Abcdef1!", "--role", "employee")
	require.NoError(t, r.code, r.err)
	assert.Contains(t, r.out, "Added employee e-1: Bob <bob@corp.io> (employee)")

	tok, ok := b.Requests()[1].Bearer()
	assert.True(t, ok)
	assert.Equal(t, "T", tok)
}

func TestAddEmployee_ValidationBlocksRequest(t *testing.T) {
	b := apitest.New(t)
	env(t, b)

	r := execute(t, "", "add-employee", "--name", "Bob", "--email", "bob@corp.io", "--password", "Abcdef1!")
	assert.ErrorIs(t, r.code, errReported)
	assert.Contains(t, r.err, "Role is required.")
	assert.Zero(t, b.Count(api.PathAdd))
}

func TestForms(t *testing.T) {
	b := apitest.New(t)
	env(t, b)

	r := execute(t, "", "forms")
	require.NoError(t, r.code)
	for _, id := range []string{"auth/login", "auth/signup", "employee/add"} {
		assert.Contains(t, r.out, id)
	}
}

func TestMetricsFile(t *testing.T) {
	b := apitest.New(t)
	dir := env(t, b)
	path := filepath.Join(dir, "staffdesk.prom")

	r := execute(t, "", "login", "--email", "ann@corp.io", "--password", "Abcdef1!", "--metrics-file", path)
	require.NoError(t, r.code, r.err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `staffdesk_form_submissions_total{form="auth/login",outcome="success"}`)
}
