package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoResolver(_ context.Context, args map[string]interface{}) (interface{}, error) {
	return map[string]interface{}{"echo": args["q"]}, nil
}

func TestRegistry_Register_Resolve(t *testing.T) {
	defer Unregister("testEcho")
	Register(Extension{Name: "testEcho", Description: "echoes q", Required: []string{"q"}, Resolve: echoResolver})

	got, err := Resolve(context.Background(), "testEcho", map[string]interface{}{"q": "áo"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"echo": "áo"}, got)

	_, err = Resolve(context.Background(), "testEcho", map[string]interface{}{"q": nil})
	assert.ErrorIs(t, err, ErrMissingArgument)
	assert.EqualError(t, err, "testEcho: q: missing argument")
}

func TestRegistry_Resolve_Unknown(t *testing.T) {
	defer Unregister("nonexistent")
	_, err := Resolve(context.Background(), "nonexistent", nil)
	assert.ErrorIs(t, err, ErrUnknownExtension)
}

func TestRegistry_LockedAfterResolve(t *testing.T) {
	defer Unregister("late")
	_, _ = Resolve(context.Background(), "nonexistent", nil)
	assert.Panics(t, func() {
		Register(Extension{Name: "late", Resolve: echoResolver})
	})
}

func TestRegistry_RejectsBadRegistrations(t *testing.T) {
	defer Unregister("dup")
	Register(Extension{Name: "dup", Resolve: echoResolver})
	assert.PanicsWithValue(t, "graphql/registry: duplicate dup", func() {
		Register(Extension{Name: "dup", Resolve: echoResolver})
	})
	assert.Panics(t, func() { Register(Extension{Name: "noResolver"}) })
}

func TestRegistry_ListSorted(t *testing.T) {
	defer Unregister("zeta")
	defer Unregister("alpha")
	Register(Extension{Name: "zeta", Resolve: echoResolver})
	Register(Extension{Name: "alpha", Description: "first", Resolve: echoResolver})

	var names []string
	for _, ext := range List() {
		names = append(names, ext.Name)
	}
	assert.Equal(t, []string{"alpha", "zeta"}, names)
}
