package jenkins

import (
	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

// SCM is the source control configuration of a job.
type SCM interface {
	tagged.Shape
	isSCM()
}

type UnknownSCM struct {
	Class tagged.Discriminator `json:"_class"`
}

func (*UnknownSCM) Fields() tagged.Fields { return nil }
func (*UnknownSCM) isSCM()                {}

type NullSCM struct {
	Browser Browser `json:"browser"`
}

func (s *NullSCM) Fields() tagged.Fields {
	return tagged.Fields{tagged.Optional("browser", Browsers.NullableDecoder(&s.Browser))}
}
func (*NullSCM) Class() string { return "hudson.scm.NullSCM" }
func (*NullSCM) isSCM()        {}

type GitSCM struct {
	Browser      Browser        `json:"browser"`
	MergeOptions map[string]any `json:"merge_options"`
}

func (s *GitSCM) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Optional("browser", Browsers.NullableDecoder(&s.Browser)),
		tagged.Optional("merge_options", tagged.Map(&s.MergeOptions, tagged.Raw)),
	}
}
func (*GitSCM) Class() string { return "hudson.plugins.git.GitSCM" }
func (*GitSCM) isSCM()        {}

// SCMs is the SCM catalog.
var SCMs = newCatalog("SCM",
	func(d tagged.Discriminator) SCM { return &UnknownSCM{Class: d} },
	func() SCM { return new(NullSCM) },
	func() SCM { return new(GitSCM) },
)

// CommonSCM carries no shared field beyond the class; everything else is
// in Other until the value is narrowed.
type CommonSCM struct {
	tagged.Envelope
}

func (*CommonSCM) Fields() tagged.Fields { return nil }

func DecodeCommonSCM(v any) (*CommonSCM, error) {
	s := new(CommonSCM)
	env, err := tagged.DecodeEnvelope(v, SCMs.Family(), s)
	if err != nil {
		return nil, err
	}
	s.Envelope = env
	return s, nil
}

// Browser is the repository browser configured for an SCM.
type Browser interface {
	tagged.Shape
	isBrowser()
}

type UnknownBrowser struct {
	Class tagged.Discriminator `json:"_class"`
}

func (*UnknownBrowser) Fields() tagged.Fields { return nil }
func (*UnknownBrowser) isBrowser()            {}

type GithubWeb struct {
	RepoURL string `json:"repo_url"`
}

func (b *GithubWeb) Fields() tagged.Fields {
	return tagged.Fields{tagged.Optional("repo_url", tagged.String(&b.RepoURL))}
}
func (*GithubWeb) Class() string { return "hudson.plugins.git.browser.GithubWeb" }
func (*GithubWeb) isBrowser()    {}

// Browsers is the Browser catalog.
var Browsers = newCatalog("Browser",
	func(d tagged.Discriminator) Browser { return &UnknownBrowser{Class: d} },
	func() Browser { return new(GithubWeb) },
)
