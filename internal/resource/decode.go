package resource

import (
	"strconv"
	"strings"
)

// A rule decodes the segments of a path whose first segment is keyword and
// which contains count slashes. Rules are tried in order; the first one
// whose keyword and count match decides, and a false result means Raw.
type rule struct {
	keyword string
	count   int
	decode  func(seg []string) (Path, bool)
}

// rules is the path grammar. seg[0] is the keyword and a path with n
// slashes has n-1 segments, so "/job/a/b/" is ["job", "a", "b"] with 4.
// Folder rules decode recursively, so the table is filled in init.
var rules []rule

func init() {
	rules = []rule{
		{"view", 3, func(seg []string) (Path, bool) {
			return View{Name: EncodedName(seg[1])}, true
		}},
		{"job", 3, func(seg []string) (Path, bool) {
			return Job{Name: EncodedName(seg[1])}, true
		}},
		{"job", 4, func(seg []string) (Path, bool) {
			if n, err := strconv.ParseUint(seg[2], 10, 32); err == nil {
				return Build{JobName: EncodedName(seg[1]), Number: Number(uint32(n))}, true
			}
			return Job{Name: EncodedName(seg[1]), Configuration: EncodedName(seg[2])}, true
		}},
		{"job", 5, func(seg []string) (Path, bool) {
			switch {
			case seg[3] == "mavenArtifacts":
				return MavenArtifactRecord{JobName: EncodedName(seg[1]), Number: ParseBuildNumber(seg[2])}, true
			case seg[2] == "job":
				return inFolder(seg), true
			}
			return Build{
				JobName:       EncodedName(seg[1]),
				Number:        ParseBuildNumber(seg[3]),
				Configuration: EncodedName(seg[2]),
			}, true
		}},
		{"job", 6, func(seg []string) (Path, bool) {
			if seg[2] == "job" {
				return inFolder(seg), true
			}
			// seg[4] is expected to be mavenArtifacts; it is not checked.
			return MavenArtifactRecord{
				JobName:       EncodedName(seg[1]),
				Number:        ParseBuildNumber(seg[3]),
				Configuration: EncodedName(seg[2]),
			}, true
		}},
		{"queue", 4, func(seg []string) (Path, bool) {
			id, err := strconv.ParseInt(seg[2], 10, 32)
			if err != nil {
				return nil, false
			}
			return QueueItem{ID: int(id)}, true
		}},
	}
}

func inFolder(seg []string) Path {
	return InFolder{
		Folder: EncodedName(seg[1]),
		Path:   decodePath("/" + strings.Join(seg[2:], "/") + "/"),
	}
}

// Decode interprets a URL returned by the server. base, the instance URL, is
// stripped when raw starts with it and the match ends at a path boundary.
// Decodable paths start and end with a slash; anything outside the grammar
// comes back as Raw holding the path with base removed. Decode never fails.
func Decode(raw, base string) Path {
	base = strings.TrimSuffix(base, "/")
	if base != "" && strings.HasPrefix(raw, base) {
		if rest := raw[len(base):]; rest == "" || rest[0] == '/' {
			raw = rest
		}
	}
	return decodePath(raw)
}

func decodePath(p string) Path {
	if len(p) < 2 || p[0] != '/' || p[len(p)-1] != '/' {
		return Raw{Path: p}
	}
	seg := strings.Split(p[1:len(p)-1], "/")
	for _, s := range seg {
		if s == "" {
			return Raw{Path: p}
		}
	}
	count := len(seg) + 1
	for _, r := range rules {
		if r.keyword != seg[0] || r.count != count {
			continue
		}
		if out, ok := r.decode(seg); ok {
			return out
		}
		break
	}
	return Raw{Path: p}
}
