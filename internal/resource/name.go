package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Name is a free-form path segment such as a job, view or computer name.
// Plain names are percent-encoded when rendered; encoded names, typically
// taken from a URL the server returned, are rendered as-is.
type Name struct {
	Value   string
	Encoded bool
}

// PlainName wraps a name as typed by a user.
func PlainName(s string) Name {
	return Name{Value: s}
}

// EncodedName wraps a name that is already percent-encoded.
func EncodedName(s string) Name {
	return Name{Value: s, Encoded: true}
}

// IsZero reports whether the name is empty, which marks an absent optional
// segment.
func (n Name) IsZero() bool {
	return n.Value == ""
}

func (n Name) String() string {
	if n.Encoded {
		return n.Value
	}
	return url.PathEscape(n.Value)
}

// BuildKind tells which case a BuildNumber holds.
type BuildKind int

const (
	NumberKind BuildKind = iota
	LastBuildKind
	LastSuccessfulBuildKind
	LastStableBuildKind
	LastCompletedBuildKind
	LastFailedBuildKind
	LastUnsuccessfulBuildKind
	UnknownAliasKind
)

var aliases = map[string]BuildKind{
	"lastBuild":             LastBuildKind,
	"lastSuccessfulBuild":   LastSuccessfulBuildKind,
	"lastStableBuild":       LastStableBuildKind,
	"lastCompletedBuild":    LastCompletedBuildKind,
	"lastFailedBuild":       LastFailedBuildKind,
	"lastUnsuccessfulBuild": LastUnsuccessfulBuildKind,
}

var aliasNames = func() map[BuildKind]string {
	m := make(map[BuildKind]string, len(aliases))
	for name, kind := range aliases {
		m[kind] = name
	}
	return m
}()

// BuildNumber addresses a build either by number or through one of the
// server's permalinks.
type BuildNumber struct {
	Kind   BuildKind
	Number uint32
	Alias  string // set for UnknownAliasKind only
}

// The fixed permalinks.
var (
	LastBuild             = BuildNumber{Kind: LastBuildKind}
	LastSuccessfulBuild   = BuildNumber{Kind: LastSuccessfulBuildKind}
	LastStableBuild       = BuildNumber{Kind: LastStableBuildKind}
	LastCompletedBuild    = BuildNumber{Kind: LastCompletedBuildKind}
	LastFailedBuild       = BuildNumber{Kind: LastFailedBuildKind}
	LastUnsuccessfulBuild = BuildNumber{Kind: LastUnsuccessfulBuildKind}
)

// Number returns the build number n.
func Number(n uint32) BuildNumber {
	return BuildNumber{Kind: NumberKind, Number: n}
}

// UnknownAlias returns a permalink this package does not know about.
func UnknownAlias(alias string) BuildNumber {
	return BuildNumber{Kind: UnknownAliasKind, Alias: alias}
}

// ParseBuildNumber never fails: integers become numbers, the six known
// permalinks map to their case, anything else is kept as an unknown alias.
func ParseBuildNumber(s string) BuildNumber {
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		return Number(uint32(n))
	}
	if kind, ok := aliases[s]; ok {
		return BuildNumber{Kind: kind}
	}
	return UnknownAlias(s)
}

func (b BuildNumber) String() string {
	switch b.Kind {
	case NumberKind:
		return strconv.FormatUint(uint64(b.Number), 10)
	case UnknownAliasKind:
		return b.Alias
	}
	return aliasNames[b.Kind]
}

func (b BuildNumber) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BuildNumber) UnmarshalText(text []byte) error {
	*b = ParseBuildNumber(string(text))
	return nil
}

// UnmarshalJSON accepts the text form as well as a bare JSON number.
func (b *BuildNumber) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return b.UnmarshalText([]byte(s))
	}
	n, err := strconv.ParseUint(string(data), 10, 32)
	if err != nil {
		return fmt.Errorf("build number %s: %w", data, err)
	}
	*b = Number(uint32(n))
	return nil
}
