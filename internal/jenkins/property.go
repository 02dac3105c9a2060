package jenkins

import (
	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

// Property is a job or view property contributed by a plugin.
type Property interface {
	tagged.Shape
	isProperty()
}

type UnknownProperty struct {
	Class tagged.Discriminator `json:"_class"`
}

func (*UnknownProperty) Fields() tagged.Fields { return nil }
func (*UnknownProperty) isProperty()           {}

type (
	GithubProjectProperty   struct{}
	RateLimitBranchProperty struct{}
	BuildDiscarderProperty  struct{}
)

func (*GithubProjectProperty) Fields() tagged.Fields { return nil }
func (*GithubProjectProperty) Class() string {
	return "com.coravy.hudson.plugins.github.GithubProjectProperty"
}
func (*GithubProjectProperty) isProperty() {}

func (*RateLimitBranchProperty) Fields() tagged.Fields { return nil }
func (*RateLimitBranchProperty) Class() string {
	return "jenkins.branch.RateLimitBranchProperty$JobPropertyImpl"
}
func (*RateLimitBranchProperty) isProperty() {}

func (*BuildDiscarderProperty) Fields() tagged.Fields { return nil }
func (*BuildDiscarderProperty) Class() string         { return "jenkins.model.BuildDiscarderProperty" }
func (*BuildDiscarderProperty) isProperty()           {}

// Properties is the Property catalog.
var Properties = newCatalog("Property",
	func(d tagged.Discriminator) Property { return &UnknownProperty{Class: d} },
	func() Property { return new(GithubProjectProperty) },
	func() Property { return new(RateLimitBranchProperty) },
	func() Property { return new(BuildDiscarderProperty) },
)

type CommonProperty struct {
	tagged.Envelope
}

func (*CommonProperty) Fields() tagged.Fields { return nil }

func DecodeCommonProperty(v any) (*CommonProperty, error) {
	p := new(CommonProperty)
	env, err := tagged.DecodeEnvelope(v, Properties.Family(), p)
	if err != nil {
		return nil, err
	}
	p.Envelope = env
	return p, nil
}
