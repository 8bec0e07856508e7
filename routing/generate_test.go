package routing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var itemDecls = []Declaration{
	{URL: "/show/$id", Module: "Item", Action: "show", With: map[string]string{"id": "[0-9]+"}},
	{URL: "/search/$tag/$tag", Module: "Search", Action: "tags"},
	{URL: "/news/$id", Module: "News", Action: "show", Add: Args{"type": Scalar("news")}},
	{URL: "/article/$id", Module: "News", Action: "show"},
	{URL: "/about", Module: "Page", Action: "about"},
	{URL: "/blog/$action", Module: "Blog"},
	{URL: "/post/$year-$month.html", Module: "Post", Action: "archive"},
}

func TestTable_Generate(t *testing.T) {
	table := mustCompile(t, itemDecls, Options{})

	tests := []struct {
		name   string
		module string
		action string
		args   Args
		want   string
	}{
		{
			name: "constrained variable", module: "Item", action: "show",
			args: Args{"id": Scalar("42")},
			want: "/show/42",
		},
		{
			name: "index is case insensitive", module: "item", action: "SHOW",
			args: Args{"id": Scalar("42")},
			want: "/show/42",
		},
		{
			name: "leftover arguments", module: "Item", action: "show",
			args: Args{"id": Scalar("42"), "page": Scalar("2"), "sort": List("a", "b")},
			want: "/show/42?page=2&sort=a&sort=b",
		},
		{
			name: "leftover arguments are encoded", module: "Item", action: "show",
			args: Args{"id": Scalar("42"), "q": Scalar("a b&c")},
			want: "/show/42?q=a+b%26c",
		},
		{
			name: "repeated variable", module: "Search", action: "tags",
			args: Args{"tag": List("cats", "dogs")},
			want: "/search/cats/dogs",
		},
		{
			name: "repeated variable with extra values", module: "Search", action: "tags",
			args: Args{"tag": List("cats", "dogs", "birds")},
			want: "/search/cats/dogs?tag=birds",
		},
		{
			name: "fixed argument consumed", module: "News", action: "show",
			args: Args{"id": Scalar("1"), "type": Scalar("news")},
			want: "/news/1",
		},
		{
			name: "fixed argument missing", module: "News", action: "show",
			args: Args{"id": Scalar("1")},
			want: "/article/1",
		},
		{
			name: "fixed argument mismatch", module: "News", action: "show",
			args: Args{"id": Scalar("1"), "type": Scalar("blog")},
			want: "/article/1?type=blog",
		},
		{
			name: "fixed argument consumed from a list", module: "News", action: "show",
			args: Args{"id": Scalar("1"), "type": List("news", "sport")},
			want: "/news/1?type=sport",
		},
		{
			name: "route without variables", module: "Page", action: "about",
			want: "/about",
		},
		{
			name: "route without variables keeps arguments", module: "Page", action: "about",
			args: Args{"ref": Scalar("home")},
			want: "/about?ref=home",
		},
		{
			name: "wildcard action", module: "Blog", action: "archive",
			want: "/blog/archive",
		},
		{
			name: "several variables in a segment", module: "Post", action: "archive",
			args: Args{"year": Scalar("2024"), "month": Scalar("05")},
			want: "/post/2024-05.html",
		},
		{
			name: "values are path escaped", module: "Search", action: "tags",
			args: Args{"tag": List("a b", "c/d")},
			want: "/search/a%20b/c%2Fd",
		},
		{
			name: "constraint violation falls back", module: "Item", action: "show",
			args: Args{"id": Scalar("abc")},
			want: "/Item/show?id=abc",
		},
		{
			name: "missing variable falls back", module: "Item", action: "show",
			want: "/Item/show",
		},
		{
			name: "null variable falls back", module: "Item", action: "show",
			args: Args{"id": Null()},
			want: "/Item/show?id",
		},
		{
			name: "too few values fall back", module: "Search", action: "tags",
			args: Args{"tag": Scalar("cats")},
			want: "/Search/tags?tag=cats",
		},
		{
			name: "unknown target falls back", module: "Shop", action: "cart",
			args: Args{"item": Scalar("3")},
			want: "/Shop/cart?item=3",
		},
		{
			name: "fallback escapes the target", module: "my shop", action: "cart",
			want: "/my%20shop/cart",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, table.Generate(test.module, test.action, test.args))
		})
	}
}

func TestTable_GenerateDoesNotMutateArgs(t *testing.T) {
	table := mustCompile(t, itemDecls, Options{})

	args := Args{"id": Scalar("1"), "type": List("news", "sport")}
	table.Generate("News", "show", args)

	assert.Equal(t, Args{"id": Scalar("1"), "type": List("news", "sport")}, args)
}

func TestTable_Reverse(t *testing.T) {
	table := mustCompile(t, itemDecls, Options{})

	link, err := table.Reverse("Item", "show", Args{"id": Scalar("42")})
	require.NoError(t, err)
	assert.Equal(t, "/show/42", link)

	_, err = table.Reverse("Item", "show", Args{"id": Scalar("abc")})
	assert.True(t, errors.Is(err, ErrNoReverseRoute))

	_, err = table.Reverse("Nope", "nope", nil)
	assert.True(t, errors.Is(err, ErrNoReverseRoute))
}

func TestTable_ReverseTargetConstraint(t *testing.T) {
	table := mustCompile(t, []Declaration{
		{URL: "/$module/$action", With: map[string]string{"module": "[a-z]+"}},
	}, Options{})

	_, err := table.Reverse("Admin", "edit", nil)
	assert.True(t, errors.Is(err, ErrNoReverseRoute))

	link, err := table.Reverse("admin", "edit", nil)
	require.NoError(t, err)
	assert.Equal(t, "/admin/edit", link)

	res, err := table.Match(link)
	require.NoError(t, err)
	assert.Equal(t, "admin", res.Module)
	assert.Equal(t, "edit", res.Action)

	// The next candidate is tried.
	table = mustCompile(t, []Declaration{
		{URL: "/lower/$module/$action", With: map[string]string{"module": "[a-z]+"}},
		{URL: "/any/$module/$action"},
	}, Options{})

	link, err = table.Reverse("Admin", "edit", nil)
	require.NoError(t, err)
	assert.Equal(t, "/any/Admin/edit", link)
}

func TestTable_ReverseEmptyValue(t *testing.T) {
	table := mustCompile(t, []Declaration{
		{URL: "/p/$slug", Module: "Page", Action: "view"},
		{URL: "/tags/$tag/$tag", Module: "Page", Action: "tags"},
	}, Options{})

	_, err := table.Reverse("Page", "view", Args{"slug": Scalar("")})
	assert.True(t, errors.Is(err, ErrNoReverseRoute))

	_, err = table.Reverse("Page", "tags", Args{"tag": List("go", "")})
	assert.True(t, errors.Is(err, ErrNoReverseRoute))

	assert.Equal(t, "/Page/view?slug=", table.Generate("Page", "view", Args{"slug": Scalar("")}))
}

func TestTable_QueryOptions(t *testing.T) {
	table := mustCompile(t, nil, Options{QuerySeparator: ";"})

	assert.Equal(t, QueryOptions{Encode: true, Separator: ";"}, table.QueryOptions())
}

func TestTable_ReverseDeclarationOrder(t *testing.T) {
	table := mustCompile(t, []Declaration{
		{URL: "/a/$id", Module: "Item", Action: "show"},
		{URL: "/b/$id", Module: "Item", Action: "show"},
	}, Options{})

	assert.Equal(t, "/a/1", table.Generate("Item", "show", Args{"id": Scalar("1")}))
}

func TestTable_ReverseLookupOrder(t *testing.T) {
	table := mustCompile(t, []Declaration{
		{URL: "/x/$module/$action"},
		{URL: "/blog/$action", Module: "Blog"},
		{URL: "/show/$id", Module: "Item", Action: "show", With: map[string]string{"id": "[0-9]+"}},
	}, Options{})

	// module-action
	assert.Equal(t, "/show/1", table.Generate("Item", "show", Args{"id": Scalar("1")}))

	// module-$
	assert.Equal(t, "/blog/list", table.Generate("Blog", "list", nil))

	// $-$
	assert.Equal(t, "/x/Shop/cart?id=1", table.Generate("Shop", "cart", Args{"id": Scalar("1")}))

	// Only the first non-empty candidate list is considered
	assert.Equal(t, "/Item/show?id=abc", table.Generate("Item", "show", Args{"id": Scalar("abc")}))
}

func TestTable_ReverseActionPrefix(t *testing.T) {
	table := mustCompile(t, []Declaration{
		{URL: "/show/$id", Module: "Item", Action: "executeShow"},
	}, Options{ActionPrefix: DefaultActionPrefix})

	assert.Equal(t, "/show/1", table.Generate("Item", "show", Args{"id": Scalar("1")}))
	assert.Equal(t, "/show/1", table.Generate("Item", "executeShow", Args{"id": Scalar("1")}))
}

func TestTable_ReverseQuerySeparator(t *testing.T) {
	table := mustCompile(t, []Declaration{
		{URL: "/about", Module: "Page", Action: "about"},
	}, Options{QuerySeparator: "&amp;"})

	assert.Equal(t, "/about?a=1&amp;b=2", table.Generate("Page", "about", Args{"a": Scalar("1"), "b": Scalar("2")}))
}

func TestTable_GenerateLogsFallback(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	table := mustCompile(t, itemDecls, Options{Logger: zap.New(core)})
	table.Generate("Shop", "cart", nil)

	entries := logs.FilterMessage("no route to generate link, using the generic path").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Shop", entries[0].ContextMap()["module"])
	assert.Equal(t, "cart", entries[0].ContextMap()["action"])
}

func TestTable_RoundTrip(t *testing.T) {
	table := mustCompile(t, itemDecls, Options{})

	tests := []struct {
		module string
		action string
		args   Args
	}{
		{module: "Item", action: "show", args: Args{"id": Scalar("42")}},
		{module: "Search", action: "tags", args: Args{"tag": List("cats", "dogs")}},
		{module: "Search", action: "tags", args: Args{"tag": List("a b", "c/d")}},
		{module: "Page", action: "about", args: Args{}},
		{module: "Blog", action: "archive", args: Args{}},
		{module: "Post", action: "archive", args: Args{"year": Scalar("2024"), "month": Scalar("05")}},
		{module: "News", action: "show", args: Args{"id": Scalar("9"), "type": Scalar("news")}},
	}

	for _, test := range tests {
		link, err := table.Reverse(test.module, test.action, test.args)
		require.NoError(t, err, link)

		res, err := table.Match(link)
		require.NoError(t, err, link)

		assert.Equal(t, test.module, res.Module, link)
		assert.Equal(t, test.action, res.Action, link)
		assert.Equal(t, test.args, res.Args, link)
	}
}
