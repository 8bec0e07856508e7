package router

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/valyala/fasthttp"
)

type staticMount struct {
	prefix  string
	root    string
	handler fasthttp.RequestHandler
}

// cleanPrefix removes the trailing '/' of a site prefix
func cleanPrefix(prefix string) string {
	return strings.TrimSuffix(prefix, "/")
}

// stripSitePrefix returns the path below the site prefix, and whether the
// path is below it at all
func stripSitePrefix(path, prefix string) (string, bool) {
	prefix = cleanPrefix(prefix)
	if prefix == "" {
		return path, true
	}

	if !strings.HasPrefix(path, prefix) {
		return "", false
	}

	path = path[len(prefix):]

	switch {
	case path == "":
		return "/", true
	case path[0] != '/':
		return "", false
	}

	return path, true
}

// splitTarget splits a "module/action" link target
func splitTarget(target, defaultAction string) (string, string) {
	module, action, found := strings.Cut(strings.Trim(target, "/"), "/")
	if !found || action == "" {
		action = defaultAction
	}

	return module, action
}

// ServeFiles serves files from the given file system root under the given
// path prefix, which bypasses routing. Links to existing files under the
// prefix are not generated by the routing table either.
// For example if prefix is "/static" and root is "./public", the request
// "/static/css/site.css" serves "./public/css/site.css".
// Internally a fasthttp.FS is used, therefore fasthttp's not found response
// is used instead of the Router's NotFound handler.
// Use:
//
//	router.ServeFiles("/static", "./public")
func (r *Router) ServeFiles(prefix string, rootPath string) {
	r.ServeFilesCustom(prefix, &fasthttp.FS{Root: rootPath})
}

// ServeFilesCustom serves files from the given file system settings under
// the given path prefix.
// If fs.PathRewrite is nil, the site prefix and the path prefix are
// stripped from the request path.
// Use:
//
//	router.ServeFilesCustom("/static", &fasthttp.FS{Root: "./public", Compress: true})
func (r *Router) ServeFilesCustom(prefix string, fs *fasthttp.FS) {
	validatePath(prefix)

	prefix = cleanPrefix(prefix)
	if prefix == "" {
		panic("static files can not be served from the site root")
	}

	if fs.PathRewrite == nil {
		fs.PathRewrite = func(ctx *fasthttp.RequestCtx) []byte {
			path, _ := stripSitePrefix(string(ctx.Path()), r.SitePrefix)
			return []byte(strings.TrimPrefix(path, prefix))
		}
	}

	r.statics = append(r.statics, &staticMount{
		prefix:  prefix,
		root:    fs.Root,
		handler: fs.NewRequestHandler(),
	})
}

// staticMount returns the mount serving the given path, if any
func (r *Router) staticMount(path string) *staticMount {
	for _, m := range r.statics {
		if path == m.prefix || strings.HasPrefix(path, m.prefix+"/") {
			return m
		}
	}

	return nil
}

// isStaticFile reports whether path names an existing file of a mount
func (r *Router) isStaticFile(path string) bool {
	m := r.staticMount(path)
	if m == nil {
		return false
	}

	rel := strings.TrimPrefix(strings.TrimPrefix(path, m.prefix), "/")
	if i := strings.IndexByte(rel, '?'); i >= 0 {
		rel = rel[:i]
	}

	rel = filepath.FromSlash(rel)
	if rel == "" || !filepath.IsLocal(rel) {
		return false
	}

	info, err := os.Stat(filepath.Join(m.root, rel))

	return err == nil && !info.IsDir()
}
