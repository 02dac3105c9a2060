package jenkins

import (
	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

// Action is attached to jobs, builds and queue items. Many actions come
// back as empty objects without a class; they decode to UnknownAction.
type Action interface {
	tagged.Shape
	isAction()
}

type UnknownAction struct {
	Class tagged.Discriminator `json:"_class"`
}

func (*UnknownAction) Fields() tagged.Fields { return nil }
func (*UnknownAction) isAction()             {}

type ParametersAction struct {
	Parameters []Parameter `json:"parameters"`
}

func (a *ParametersAction) Fields() tagged.Fields {
	return tagged.Fields{tagged.Required("parameters", tagged.List(&a.Parameters, Parameters.Decoder))}
}
func (*ParametersAction) Class() string { return "hudson.model.ParametersAction" }
func (*ParametersAction) isAction()     {}

type CauseAction struct {
	Causes []Cause `json:"causes"`
}

func (a *CauseAction) Fields() tagged.Fields {
	return tagged.Fields{tagged.Required("causes", tagged.List(&a.Causes, Causes.Decoder))}
}
func (*CauseAction) Class() string { return "hudson.model.CauseAction" }
func (*CauseAction) isAction()     {}

// GitBuildData records what the git plugin built.
type GitBuildData struct {
	SCMName            string                 `json:"scm_name"`
	LastBuiltRevision  Revision               `json:"last_built_revision"`
	RemoteURLs         []string               `json:"remote_urls"`
	BuildsByBranchName map[string]BranchBuild `json:"builds_by_branch_name"`
}

func (a *GitBuildData) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Optional("scm_name", tagged.String(&a.SCMName)),
		tagged.Required("last_built_revision", tagged.Record(&a.LastBuiltRevision)),
		tagged.Required("remote_urls", tagged.List(&a.RemoteURLs, tagged.String)),
		tagged.Required("builds_by_branch_name", tagged.Map(&a.BuildsByBranchName, BranchBuilds.Decoder)),
	}
}
func (*GitBuildData) Class() string { return "hudson.plugins.git.util.BuildData" }
func (*GitBuildData) isAction()     {}

// Actions without fields of interest.
type (
	GitTagAction      struct{}
	RepoTagAction     struct{}
	TimeInQueueAction struct{}
	EnvActionImpl     struct{}
	FlowGraphAction   struct{}
)

func (*GitTagAction) Fields() tagged.Fields      { return nil }
func (*GitTagAction) Class() string              { return "hudson.plugins.git.GitTagAction" }
func (*GitTagAction) isAction()                  {}
func (*RepoTagAction) Fields() tagged.Fields     { return nil }
func (*RepoTagAction) Class() string             { return "hudson.plugins.repo.TagAction" }
func (*RepoTagAction) isAction()                 {}
func (*TimeInQueueAction) Fields() tagged.Fields { return nil }
func (*TimeInQueueAction) Class() string         { return "jenkins.metrics.impl.TimeInQueueAction" }
func (*TimeInQueueAction) isAction()             {}
func (*EnvActionImpl) Fields() tagged.Fields     { return nil }
func (*EnvActionImpl) Class() string             { return "org.jenkinsci.plugins.workflow.cps.EnvActionImpl" }
func (*EnvActionImpl) isAction()                 {}
func (*FlowGraphAction) Fields() tagged.Fields   { return nil }
func (*FlowGraphAction) Class() string {
	return "org.jenkinsci.plugins.workflow.job.views.FlowGraphAction"
}
func (*FlowGraphAction) isAction() {}

// Actions is the Action catalog.
var Actions = newCatalog("Action",
	func(d tagged.Discriminator) Action { return &UnknownAction{Class: d} },
	func() Action { return new(ParametersAction) },
	func() Action { return new(CauseAction) },
	func() Action { return new(GitBuildData) },
	func() Action { return new(GitTagAction) },
	func() Action { return new(RepoTagAction) },
	func() Action { return new(TimeInQueueAction) },
	func() Action { return new(EnvActionImpl) },
	func() Action { return new(FlowGraphAction) },
)

// Cause explains why a build was started.
type Cause interface {
	tagged.Shape
	isCause()
}

type UnknownCause struct {
	Class tagged.Discriminator `json:"_class"`
}

func (*UnknownCause) Fields() tagged.Fields { return nil }
func (*UnknownCause) isCause()              {}

type UserIDCause struct {
	ShortDescription string `json:"short_description"`
	UserID           string `json:"user_id"`
	UserName         string `json:"user_name"`
}

func (c *UserIDCause) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("short_description", tagged.String(&c.ShortDescription)),
		tagged.Required("user_id", tagged.String(&c.UserID)),
		tagged.Required("user_name", tagged.String(&c.UserName)),
	}
}
func (*UserIDCause) Class() string { return "hudson.model.Cause$UserIdCause" }
func (*UserIDCause) isCause()      {}

type RemoteCause struct {
	ShortDescription string  `json:"short_description"`
	Addr             string  `json:"addr"`
	Note             *string `json:"note"`
}

func (c *RemoteCause) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("short_description", tagged.String(&c.ShortDescription)),
		tagged.Required("addr", tagged.String(&c.Addr)),
		tagged.Optional("note", tagged.Nullable(&c.Note, tagged.String)),
	}
}
func (*RemoteCause) Class() string { return "hudson.model.Cause$RemoteCause" }
func (*RemoteCause) isCause()      {}

type UpstreamCause struct {
	ShortDescription string `json:"short_description"`
	UpstreamBuild    uint32 `json:"upstream_build"`
	UpstreamProject  string `json:"upstream_project"`
	UpstreamURL      string `json:"upstream_url"`
}

func (c *UpstreamCause) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("short_description", tagged.String(&c.ShortDescription)),
		tagged.Required("upstream_build", tagged.Uint(&c.UpstreamBuild)),
		tagged.Required("upstream_project", tagged.String(&c.UpstreamProject)),
		tagged.Required("upstream_url", tagged.String(&c.UpstreamURL)),
	}
}
func (*UpstreamCause) Class() string { return "hudson.model.Cause$UpstreamCause" }
func (*UpstreamCause) isCause()      {}

type TimerTriggerCause struct {
	ShortDescription string `json:"short_description"`
}

func (c *TimerTriggerCause) Fields() tagged.Fields {
	return tagged.Fields{tagged.Required("short_description", tagged.String(&c.ShortDescription))}
}
func (*TimerTriggerCause) Class() string { return "hudson.triggers.TimerTrigger$TimerTriggerCause" }
func (*TimerTriggerCause) isCause()      {}

type SCMTriggerCause struct {
	ShortDescription string `json:"short_description"`
}

func (c *SCMTriggerCause) Fields() tagged.Fields {
	return tagged.Fields{tagged.Required("short_description", tagged.String(&c.ShortDescription))}
}
func (*SCMTriggerCause) Class() string { return "hudson.triggers.SCMTrigger$SCMTriggerCause" }
func (*SCMTriggerCause) isCause()      {}

// Causes is the Cause catalog.
var Causes = newCatalog("Cause",
	func(d tagged.Discriminator) Cause { return &UnknownCause{Class: d} },
	func() Cause { return new(UserIDCause) },
	func() Cause { return new(RemoteCause) },
	func() Cause { return new(UpstreamCause) },
	func() Cause { return new(TimerTriggerCause) },
	func() Cause { return new(SCMTriggerCause) },
)

// Parameter is the value of a build parameter.
type Parameter interface {
	tagged.Shape
	isParameter()
}

type UnknownParameter struct {
	Class tagged.Discriminator `json:"_class"`
}

func (*UnknownParameter) Fields() tagged.Fields { return nil }
func (*UnknownParameter) isParameter()          {}

type BooleanParameterValue struct {
	Name  string `json:"name"`
	Value bool   `json:"value"`
}

func (p *BooleanParameterValue) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("name", tagged.String(&p.Name)),
		tagged.Required("value", tagged.Bool(&p.Value)),
	}
}
func (*BooleanParameterValue) Class() string { return "hudson.model.BooleanParameterValue" }
func (*BooleanParameterValue) isParameter()  {}

// FileParameterValue and PasswordParameterValue never expose their value.
type FileParameterValue struct {
	Name string `json:"name"`
}

func (p *FileParameterValue) Fields() tagged.Fields {
	return tagged.Fields{tagged.Required("name", tagged.String(&p.Name))}
}
func (*FileParameterValue) Class() string { return "hudson.model.FileParameterValue" }
func (*FileParameterValue) isParameter()  {}

type PasswordParameterValue struct {
	Name string `json:"name"`
}

func (p *PasswordParameterValue) Fields() tagged.Fields {
	return tagged.Fields{tagged.Required("name", tagged.String(&p.Name))}
}
func (*PasswordParameterValue) Class() string { return "hudson.model.PasswordParameterValue" }
func (*PasswordParameterValue) isParameter()  {}

type RunParameterValue struct {
	Name    string `json:"name"`
	JobName string `json:"job_name"`
	Number  string `json:"number"`
}

func (p *RunParameterValue) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("name", tagged.String(&p.Name)),
		tagged.Required("job_name", tagged.String(&p.JobName)),
		tagged.Required("number", tagged.String(&p.Number)),
	}
}
func (*RunParameterValue) Class() string { return "hudson.model.RunParameterValue" }
func (*RunParameterValue) isParameter()  {}

type StringParameterValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (p *StringParameterValue) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("name", tagged.String(&p.Name)),
		tagged.Required("value", tagged.String(&p.Value)),
	}
}
func (*StringParameterValue) Class() string { return "hudson.model.StringParameterValue" }
func (*StringParameterValue) isParameter()  {}

type TextParameterValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (p *TextParameterValue) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("name", tagged.String(&p.Name)),
		tagged.Required("value", tagged.String(&p.Value)),
	}
}
func (*TextParameterValue) Class() string { return "hudson.model.TextParameterValue" }
func (*TextParameterValue) isParameter()  {}

// Parameters is the Parameter catalog.
var Parameters = newCatalog("Parameter",
	func(d tagged.Discriminator) Parameter { return &UnknownParameter{Class: d} },
	func() Parameter { return new(BooleanParameterValue) },
	func() Parameter { return new(FileParameterValue) },
	func() Parameter { return new(PasswordParameterValue) },
	func() Parameter { return new(RunParameterValue) },
	func() Parameter { return new(StringParameterValue) },
	func() Parameter { return new(TextParameterValue) },
)
