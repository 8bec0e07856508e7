package routing

import (
	"sort"

	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

// EncodeQuery serializes args to "?name=value&name=value2", names sorted.
// A list repeats its name for every element, a null value is rendered as the
// bare name. It returns an empty string when args is empty.
func EncodeQuery(args Args, opts QueryOptions) string {
	if len(args) == 0 {
		return ""
	}

	sep := opts.Separator
	if sep == "" {
		sep = DefaultQuerySeparator
	}

	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteByte('?')

	first := true
	for _, name := range names {
		v := args[name]

		if v.IsNull() {
			if !first {
				buf.WriteString(sep)
			}
			first = false

			appendQueryPart(buf, name, opts.Encode)
			continue
		}

		for _, item := range v.Strings() {
			if !first {
				buf.WriteString(sep)
			}
			first = false

			appendQueryPart(buf, name, opts.Encode)
			buf.WriteByte('=')
			appendQueryPart(buf, item, opts.Encode)
		}
	}

	if buf.Len() == 1 {
		return ""
	}

	return buf.String()
}

func appendQueryPart(buf *bytebufferpool.ByteBuffer, s string, encode bool) {
	if !encode {
		buf.WriteString(s)
		return
	}

	buf.B = fasthttp.AppendQuotedArg(buf.B, []byte(s))
}

// ParseQuery decodes a raw query string, with or without its leading '?'.
// Repeated names are collected into a list, in order.
func ParseQuery(query string) Args {
	if len(query) > 0 && query[0] == '?' {
		query = query[1:]
	}

	var qa fasthttp.Args
	qa.Parse(query)

	items := make(map[string][]string, qa.Len())
	order := make([]string, 0, qa.Len())

	qa.VisitAll(func(key, value []byte) {
		k := string(key)
		if _, ok := items[k]; !ok {
			order = append(order, k)
		}
		items[k] = append(items[k], string(value))
	})

	args := make(Args, len(order))
	for _, k := range order {
		args[k] = valueOf(items[k])
	}

	return args
}
