package submission

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/render"
)

var (
	// ErrMissingMapKey is returned when a map value row arrives without the
	// key input it belongs to.
	ErrMissingMapKey = errors.New("submission: map value without key")
	// ErrConflictingPath is returned when a dotted name addresses both a
	// scalar and a nested object.
	ErrConflictingPath = errors.New("submission: conflicting field path")
)

// Inflate turns flat form values into the nested payload the browser runtime
// would have produced. The steps run in the same order as the client script:
// drop empty values, move map values under their user keys, rename map key
// markers, split list inputs on commas and finally expand dotted names.
// The reserved form controls are removed first. When a name repeats, the last
// value wins.
func Inflate(form url.Values) (map[string]any, error) {
	flat := make(map[string]string, len(form))
	for name, values := range form {
		if render.IsReservedControl(name) || len(values) == 0 {
			continue
		}
		value := values[len(values)-1]
		if value == "" {
			continue
		}
		flat[name] = value
	}

	if err := mapValues(flat); err != nil {
		return nil, err
	}
	mapKeys(flat)
	return inflate(mapLists(flat))
}

// mapValues moves every scalar map value under the user key typed into its
// sibling key input. The key marker is the value's own segment with -key in
// place of -value, so nested maps resolve against their innermost row.
func mapValues(flat map[string]string) error {
	for _, name := range sortedNames(flat) {
		parent, segment := splitLast(name)
		if !model.IsValueSegment(segment) {
			continue
		}
		keyName := model.JoinPath(parent, strings.TrimSuffix(segment, "-value")+"-key")
		userKey, ok := flat[keyName]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingMapKey, name)
		}

		value := flat[name]
		delete(flat, name)
		delete(flat, keyName)
		flat[model.JoinPath(parent, userKey)] = value
	}
	return nil
}

// mapKeys replaces each remaining key marker with the user key, rewriting
// the names nested below it. Deeper keys go first so an outer rename carries
// the already resolved inner paths along.
func mapKeys(flat map[string]string) {
	var keyNames []string
	for name := range flat {
		if _, segment := splitLast(name); model.IsKeySegment(segment) {
			keyNames = append(keyNames, name)
		}
	}
	sort.Slice(keyNames, func(i, j int) bool {
		di, dj := strings.Count(keyNames[i], "."), strings.Count(keyNames[j], ".")
		if di != dj {
			return di > dj
		}
		return keyNames[i] < keyNames[j]
	})

	for _, keyName := range keyNames {
		userKey := flat[keyName]
		delete(flat, keyName)

		parent, _ := splitLast(keyName)
		target := model.JoinPath(parent, userKey)
		prefix := keyName + "."
		for _, name := range sortedNames(flat) {
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			value := flat[name]
			delete(flat, name)
			flat[target+"."+strings.TrimPrefix(name, prefix)] = value
		}
	}
}

func mapLists(flat map[string]string) map[string]any {
	out := make(map[string]any, len(flat))
	for _, name := range sortedNames(flat) {
		value := flat[name]
		if !hasSegment(name, model.IsListSegment) {
			out[name] = value
			continue
		}
		target := name
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			target = name[:idx]
		}
		items := strings.Split(value, ",")
		list := make([]any, len(items))
		for i, item := range items {
			list[i] = item
		}
		out[target] = list
	}
	return out
}

func inflate(flat map[string]any) (map[string]any, error) {
	names := make([]string, 0, len(flat))
	for name := range flat {
		names = append(names, name)
	}
	sort.Strings(names)

	root := make(map[string]any)
	for _, name := range names {
		parts := strings.Split(name, ".")
		node := root
		for i, part := range parts[:len(parts)-1] {
			switch existing := node[part].(type) {
			case nil:
				child := make(map[string]any)
				node[part] = child
				node = child
			case map[string]any:
				node = existing
			default:
				return nil, fmt.Errorf("%w: %s", ErrConflictingPath, strings.Join(parts[:i+1], "."))
			}
		}
		leaf := parts[len(parts)-1]
		if _, exists := node[leaf]; exists {
			return nil, fmt.Errorf("%w: %s", ErrConflictingPath, name)
		}
		node[leaf] = flat[name]
	}
	return root, nil
}

func sortedNames(flat map[string]string) []string {
	names := make([]string, 0, len(flat))
	for name := range flat {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func hasSegment(name string, match func(string) bool) bool {
	for _, segment := range strings.Split(name, ".") {
		if match(segment) {
			return true
		}
	}
	return false
}

// splitLast returns the dotted parent of name and its final segment.
func splitLast(name string) (string, string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", name
	}
	return name[:idx], name[idx+1:]
}
