package resource

import (
	"fmt"
	"net/url"
	"strings"
)

// Tree is the value of Jenkins' tree query parameter, which limits the
// fields a JSON API response carries, e.g. "name,builds[url,result]".
type Tree struct {
	Key      string
	Children []Tree
}

// Fields builds a keyless tree listing its children.
func Fields(children ...Tree) Tree {
	return Tree{Children: children}
}

// Field names a single leaf field.
func Field(name string) Tree {
	return Tree{Key: name}
}

// Object names a field and selects children of it.
func Object(name string, children ...Tree) Tree {
	return Tree{Key: name, Children: children}
}

// With returns a copy of t with more children.
func (t Tree) With(children ...Tree) Tree {
	out := Tree{Key: t.Key, Children: make([]Tree, 0, len(t.Children)+len(children))}
	out.Children = append(out.Children, t.Children...)
	out.Children = append(out.Children, children...)
	return out
}

// ParseTree reads the textual form back, so "a,b[c,d]" gives
// Fields(Field("a"), Object("b", Field("c"), Field("d"))).
func ParseTree(s string) (Tree, error) {
	children, rest, err := parseTreeList(s)
	if err != nil {
		return Tree{}, err
	}
	if rest != "" {
		return Tree{}, fmt.Errorf("tree %q: unexpected %q", s, rest)
	}
	return Tree{Children: children}, nil
}

func parseTreeList(s string) ([]Tree, string, error) {
	var out []Tree
	for s != "" && s[0] != ']' {
		end := strings.IndexAny(s, ",[]")
		if end < 0 {
			end = len(s)
		}
		key := strings.TrimSpace(s[:end])
		if key == "" {
			return nil, s, fmt.Errorf("empty field name before %q", s)
		}
		t := Tree{Key: key}
		s = s[end:]
		if strings.HasPrefix(s, "[") {
			children, rest, err := parseTreeList(s[1:])
			if err != nil {
				return nil, rest, err
			}
			if !strings.HasPrefix(rest, "]") {
				return nil, rest, fmt.Errorf("field %s: missing ]", key)
			}
			t.Children = children
			s = rest[1:]
		}
		out = append(out, t)
		if !strings.HasPrefix(s, ",") {
			break
		}
		s = s[1:]
	}
	return out, s, nil
}

func (t Tree) String() string {
	parts := make([]string, len(t.Children))
	for i, c := range t.Children {
		parts[i] = c.String()
	}
	inner := strings.Join(parts, ",")
	switch {
	case t.Key == "":
		return inner
	case len(t.Children) == 0:
		return t.Key
	}
	return t.Key + "[" + inner + "]"
}

// APIURL is the JSON API endpoint for p on the instance at base. An empty
// tree is omitted.
func APIURL(base string, p Path, tree Tree) string {
	path, query, _ := strings.Cut(Encode(p), "?")
	u := strings.TrimSuffix(base, "/") + path
	if !strings.HasSuffix(u, "/api/json") {
		u += "/api/json"
	}
	params := []string{}
	if query != "" {
		params = append(params, query)
	}
	if s := tree.String(); s != "" {
		params = append(params, "tree="+url.QueryEscape(s))
	}
	if len(params) > 0 {
		u += "?" + strings.Join(params, "&")
	}
	return u
}
