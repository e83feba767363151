package oas

import "strings"

// Document is a parsed OpenAPI document. It is kept as the raw map the
// store hands back: nothing beyond the top-level shape is assumed, and
// values pass through verbatim.
type Document map[string]any

// DataAtPath walks the document by raw key traversal and returns the
// value at the end of the key list, or nil if any key is absent.
func DataAtPath(obj map[string]any, keys []string) any {
	var current any = obj
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok {
			return nil
		}
	}
	return current
}

// Operation returns paths[path][method] as a map, or nil when the
// path/method pair is absent from the document.
func (slf Document) Operation(path string, method string) map[string]any {
	data := DataAtPath(slf, []string{"paths", path, strings.ToLower(method)})
	op, ok := data.(map[string]any)
	if !ok {
		return nil
	}
	return op
}

// ResolveRef resolves an internal "#/a/b/c" reference by raw path
// traversal against the document root. Returns nil for anything it
// cannot follow.
func (slf Document) ResolveRef(ref string) map[string]any {
	if !strings.HasPrefix(ref, "#/") {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	resolved := DataAtPath(slf, parts)
	m, ok := resolved.(map[string]any)
	if !ok {
		return nil
	}
	return m
}
