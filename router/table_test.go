package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gintechsystems/wellrested/dispatch"
)

func okHandler(body string) dispatch.HandlerFunc {
	return func(req *http.Request, res *dispatch.Response) (*dispatch.Response, error) {
		res.WriteString(body)
		return res, nil
	}
}

func TestTableMatchStatic(t *testing.T) {
	t.Parallel()

	table := NewRouteTable()
	registered, err := table.Add("/cats/", okHandler("cats"))
	require.NoError(t, err)

	rt, vars, ok := table.Match("/cats/")
	require.True(t, ok)
	assert.Same(t, registered, rt)
	assert.Nil(t, vars)

	_, _, ok = table.Match("/cats")
	assert.False(t, ok)
}

func TestTableMatchLongestPrefixWins(t *testing.T) {
	t.Parallel()

	table := NewRouteTable()
	short, err := table.Add("/a/*", okHandler("short"))
	require.NoError(t, err)
	long, err := table.Add("/a/b/*", okHandler("long"))
	require.NoError(t, err)

	rt, vars, ok := table.Match("/a/b/c")
	require.True(t, ok)
	assert.Same(t, long, rt)
	assert.Nil(t, vars, "prefix matches produce no path variables")

	rt, _, ok = table.Match("/a/x")
	require.True(t, ok)
	assert.Same(t, short, rt)
}

func TestTableMatchPrecedence(t *testing.T) {
	t.Parallel()

	table := NewRouteTable()
	static, err := table.Add("/cats/42", okHandler("static"))
	require.NoError(t, err)
	prefix, err := table.Add("/cats/*", okHandler("prefix"))
	require.NoError(t, err)
	template, err := table.Add("/dogs/{id}", okHandler("template"))
	require.NoError(t, err)

	// Exact beats prefix.
	rt, _, ok := table.Match("/cats/42")
	require.True(t, ok)
	assert.Same(t, static, rt)

	// Prefix beats nothing else here.
	rt, _, ok = table.Match("/cats/43")
	require.True(t, ok)
	assert.Same(t, prefix, rt)

	// Pattern routes are only reached when no prefix matches.
	rt, vars, ok := table.Match("/dogs/7")
	require.True(t, ok)
	assert.Same(t, template, rt)
	assert.Equal(t, map[string]string{"id": "7"}, vars)
}

func TestTablePatternRegistrationOrder(t *testing.T) {
	t.Parallel()

	table := NewRouteTable()
	first, err := table.Add("/cats/{id}", okHandler("first"))
	require.NoError(t, err)
	_, err = table.Add("~/cats/[0-9a-z]+~", okHandler("second"))
	require.NoError(t, err)

	// Both match; the earlier registration wins.
	rt, _, ok := table.Match("/cats/42")
	require.True(t, ok)
	assert.Same(t, first, rt)
}

func TestTableMatchStability(t *testing.T) {
	t.Parallel()

	table := NewRouteTable()
	registered, err := table.Add("/cats/{id}", okHandler("cats"))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		rt, vars, ok := table.Match("/cats/42")
		require.True(t, ok)
		assert.Same(t, registered, rt)
		assert.Equal(t, map[string]string{"id": "42"}, vars)
	}
}

func TestTableIdempotentTargetResolution(t *testing.T) {
	t.Parallel()

	table := NewRouteTable()
	first, err := table.Add("/cats/", okHandler("get"), WithMethods("GET"))
	require.NoError(t, err)
	second, err := table.Add("/cats/", okHandler("post"), WithMethods("POST"))
	require.NoError(t, err)
	assert.Same(t, first, second, "same target resolves to one route")
	assert.Equal(t, 1, table.Len())

	get := httptest.NewRequest(http.MethodGet, "/cats/", nil)
	res, err := first.Process(get, dispatch.NewResponse(), nil)
	require.NoError(t, err)
	assert.Equal(t, "get", string(res.Body()))

	post := httptest.NewRequest(http.MethodPost, "/cats/", nil)
	res, err = first.Process(post, dispatch.NewResponse(), nil)
	require.NoError(t, err)
	assert.Equal(t, "post", string(res.Body()))
}

func TestTableAddConflicts(t *testing.T) {
	t.Parallel()

	t.Run("same target twice without methods", func(t *testing.T) {
		t.Parallel()
		table := NewRouteTable()
		_, err := table.Add("/cats/", okHandler("a"))
		require.NoError(t, err)
		_, err = table.Add("/cats/", okHandler("b"))
		assert.Error(t, err)
	})

	t.Run("methods after plain registration", func(t *testing.T) {
		t.Parallel()
		table := NewRouteTable()
		_, err := table.Add("/cats/", okHandler("a"))
		require.NoError(t, err)
		_, err = table.Add("/cats/", okHandler("b"), WithMethods("GET"))
		assert.Error(t, err)
	})

	t.Run("duplicate verb on one target", func(t *testing.T) {
		t.Parallel()
		table := NewRouteTable()
		_, err := table.Add("/cats/", okHandler("a"), WithMethods("GET"))
		require.NoError(t, err)
		_, err = table.Add("/cats/", okHandler("b"), WithMethods("GET"))
		assert.Error(t, err)
	})

	t.Run("empty method list", func(t *testing.T) {
		t.Parallel()
		table := NewRouteTable()
		_, err := table.Add("/cats/", okHandler("a"), WithMethods())
		require.Error(t, err)
		assert.Zero(t, table.Len(), "must not degrade to an unrestricted registration")
	})

	t.Run("malformed target never registers", func(t *testing.T) {
		t.Parallel()
		table := NewRouteTable()
		_, err := table.Add("/cats/{a,b}", okHandler("a"))
		require.Error(t, err)
		assert.Zero(t, table.Len())
		_, _, ok := table.Match("/cats/x")
		assert.False(t, ok)
	})
}

func TestTableGet(t *testing.T) {
	t.Parallel()

	table := NewRouteTable()
	registered, err := table.Add("/cats/*", okHandler("cats"))
	require.NoError(t, err)

	rt, ok := table.Get("/cats/*")
	assert.True(t, ok)
	assert.Same(t, registered, rt)

	_, ok = table.Get("/dogs/*")
	assert.False(t, ok)
}

func TestTableNoMatch(t *testing.T) {
	t.Parallel()

	table := NewRouteTable()
	_, err := table.Add("/cats/", okHandler("cats"))
	require.NoError(t, err)

	rt, vars, ok := table.Match("/dogs/")
	assert.False(t, ok)
	assert.Nil(t, rt)
	assert.Nil(t, vars)
}
