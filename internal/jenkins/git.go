package jenkins

import (
	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

// The git plugin spells the commit id "SHA1". The key normalizer turns that
// into s_h_a1, so that is the name the fields below are declared under.

type Branch struct {
	SHA1 string `json:"sha1"`
	Name string `json:"name"`
}

func (b *Branch) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("s_h_a1", tagged.String(&b.SHA1)),
		tagged.Required("name", tagged.String(&b.Name)),
	}
}

type Revision struct {
	SHA1   string   `json:"sha1"`
	Branch []Branch `json:"branch"`
}

func (r *Revision) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("s_h_a1", tagged.String(&r.SHA1)),
		tagged.Optional("branch", tagged.List(&r.Branch, tagged.Record[Branch])),
	}
}

// BranchBuild is the last build of one branch, keyed by branch name in
// GitBuildData.
type BranchBuild interface {
	tagged.Shape
	isBranchBuild()
}

type UnknownBranchBuild struct {
	Class tagged.Discriminator `json:"_class"`
}

func (*UnknownBranchBuild) Fields() tagged.Fields { return nil }
func (*UnknownBranchBuild) isBranchBuild()        {}

type GitBuild struct {
	Revision    Revision     `json:"revision"`
	BuildNumber uint32       `json:"build_number"`
	BuildResult *BuildStatus `json:"build_result"`
	Marked      Revision     `json:"marked"`
}

func (b *GitBuild) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("revision", tagged.Record(&b.Revision)),
		tagged.Required("build_number", tagged.Uint(&b.BuildNumber)),
		tagged.Optional("build_result", tagged.Nullable(&b.BuildResult, buildStatus)),
		tagged.Required("marked", tagged.Record(&b.Marked)),
	}
}
func (*GitBuild) Class() string  { return "hudson.plugins.git.util.Build" }
func (*GitBuild) isBranchBuild() {}

// BranchBuilds is the BranchBuild catalog.
var BranchBuilds = newCatalog("BranchBuild",
	func(d tagged.Discriminator) BranchBuild { return &UnknownBranchBuild{Class: d} },
	func() BranchBuild { return new(GitBuild) },
)
