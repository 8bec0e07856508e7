package routing

import (
	"reflect"
	"testing"
)

func Test_tokenize(t *testing.T) {
	tests := []struct {
		path string
		want []token
	}{
		{
			path: "",
			want: []token{},
		},
		{
			path: "show/$id",
			want: []token{
				{kind: literal, text: "show", offset: 0},
				{kind: separator, text: "/", offset: 4},
				{kind: variable, text: "$id", offset: 5},
			},
		},
		{
			path: "search/$tag-$tag.html",
			want: []token{
				{kind: literal, text: "search", offset: 0},
				{kind: separator, text: "/", offset: 6},
				{kind: variable, text: "$tag", offset: 7},
				{kind: separator, text: "-", offset: 11},
				{kind: variable, text: "$tag", offset: 12},
				{kind: separator, text: ".", offset: 16},
				{kind: literal, text: "html", offset: 17},
			},
		},
		{
			path: "a$",
			want: []token{
				{kind: literal, text: "a", offset: 0},
				{kind: separator, text: "$", offset: 1},
			},
		},
		{
			path: "$$x_1",
			want: []token{
				{kind: separator, text: "$", offset: 0},
				{kind: variable, text: "$x_1", offset: 1},
			},
		},
		{
			path: "foo%20bar/a+b,c;d",
			want: []token{
				{kind: literal, text: "foo%20bar", offset: 0},
				{kind: separator, text: "/", offset: 9},
				{kind: literal, text: "a", offset: 10},
				{kind: separator, text: "+", offset: 11},
				{kind: literal, text: "b", offset: 12},
				{kind: separator, text: ",", offset: 13},
				{kind: literal, text: "c", offset: 14},
				{kind: separator, text: ";", offset: 15},
				{kind: literal, text: "d", offset: 16},
			},
		},
		{
			path: "v$id/",
			want: []token{
				{kind: literal, text: "v", offset: 0},
				{kind: variable, text: "$id", offset: 1},
				{kind: separator, text: "/", offset: 4},
			},
		},
	}

	for _, test := range tests {
		got := tokenize(test.path)

		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("tokenize(%q) == %+v, want %+v", test.path, got, test.want)
		}
	}
}

func Test_tokenName(t *testing.T) {
	tok := tokenize("$module")[0]

	if tok.kind != variable {
		t.Fatalf("kind == %d, want %d", tok.kind, variable)
	}

	if name := tok.name(); name != "module" {
		t.Errorf("name == %q, want %q", name, "module")
	}
}
