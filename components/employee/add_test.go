package employee

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/staffdesk/internal/api"
	"github.com/yanizio/staffdesk/internal/apitest"
	"github.com/yanizio/staffdesk/internal/form"
	"github.com/yanizio/staffdesk/internal/session"
)

func valid() form.Values {
	return form.Values{"name": "Ann", "email": "ann@corp.io", "password": "Abcdef1!", "role": "employee"}
}

func fill(t *testing.T, c *form.Controller, v form.Values) {
	t.Helper()
	for k, s := range v {
		require.NoError(t, c.Set(k, s))
	}
}

func newStore(t *testing.T, token string) *session.Store {
	t.Helper()
	s := session.NewStore(afero.NewMemMapFs(), "/s/session.json")
	if token != "" {
		require.NoError(t, s.Set(session.Session{Token: token, Role: "admin", ID: "1"}))
	}
	return s
}

func TestAdd_SuccessHandsOffAndCloses(t *testing.T) {
	b := apitest.New(t)
	var added []*api.Employee
	var closed atomic.Int32

	c := NewAdd(Deps{
		API:     api.New(b.URL, 0),
		Session: newStore(t, "tok"),
		OnAdded: func(e *api.Employee) {
			assert.Zero(t, closed.Load(), "record delivered before the dialog closes")
			added = append(added, e)
		},
		Dialog: DialogFunc(func() { closed.Add(1) }),
	})
	fill(t, c, valid())

	res, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)

	require.Len(t, added, 1)
	assert.Equal(t, api.Identifier("e-1"), added[0].ID)
	assert.Equal(t, "Ann", added[0].Name)
	assert.EqualValues(t, 1, closed.Load())

	tok, ok := b.Requests()[0].Bearer()
	assert.True(t, ok)
	assert.Equal(t, "tok", tok)
	assert.Equal(t, map[string]string(valid()), b.Requests()[0].Body)
}

func TestAdd_TokenReadAtSubmitTime(t *testing.T) {
	b := apitest.New(t)
	store := newStore(t, "old")
	c := NewAdd(Deps{API: api.New(b.URL, 0), Session: store})

	require.NoError(t, store.Set(session.Session{Token: "new", Role: "admin"}))
	fill(t, c, valid())
	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	tok, _ := b.Requests()[0].Bearer()
	assert.Equal(t, "new", tok)
}

func TestAdd_NoSessionSendsNoBearer(t *testing.T) {
	b := apitest.New(t)
	c := NewAdd(Deps{API: api.New(b.URL, 0), Session: newStore(t, "")})
	fill(t, c, valid())

	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	_, ok := b.Requests()[0].Bearer()
	assert.False(t, ok)
}

func TestAdd_EmptyRoleBlocksRequest(t *testing.T) {
	b := apitest.New(t)
	c := NewAdd(Deps{API: api.New(b.URL, 0), Session: newStore(t, "tok")})
	v := valid()
	v["role"] = ""
	fill(t, c, v)

	_, err := c.Submit(context.Background())
	require.True(t, form.IsValidationError(err))
	assert.Equal(t, form.Errors{"role": "Role is required."}, c.Errors())
	assert.Zero(t, b.Count(api.PathAdd))
}

func TestAdd_FailureKeepsDialogOpen(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{"explicit", apitest.JSON(http.StatusOK, map[string]any{"success": false}), "Error adding employee."},
		{"server message", apitest.JSON(http.StatusForbidden, map[string]any{"message": "Forbidden"}), "Forbidden"},
		{"transport", apitest.Drop(), "An error occurred. Please try again."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := apitest.New(t)
			b.Handle(api.PathAdd, tc.handler)
			var closed bool
			c := NewAdd(Deps{
				API:     api.New(b.URL, 0),
				Session: newStore(t, "tok"),
				OnAdded: func(*api.Employee) { t.Fatal("OnAdded called on failure") },
				Dialog:  DialogFunc(func() { closed = true }),
			})
			fill(t, c, valid())

			res, err := c.Submit(context.Background())
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Equal(t, tc.want, c.FormError())
			assert.False(t, c.Popup())
			assert.False(t, closed)
			assert.Equal(t, "Ann", c.Value("name"))
		})
	}
}

func TestAdd_SuccessWithoutRecord(t *testing.T) {
	b := apitest.New(t)
	b.Handle(api.PathAdd, apitest.JSON(http.StatusOK, map[string]any{"success": true}))
	c := NewAdd(Deps{API: api.New(b.URL, 0), Session: newStore(t, "tok")})
	fill(t, c, valid())

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, errNoEmployee)
	assert.Equal(t, "An error occurred. Please try again.", c.FormError())
}
