package jenkins

import (
	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

// Job is anything listed under /job/, folders included.
type Job interface {
	tagged.Shape
	isJob()
}

type UnknownJob struct {
	Class tagged.Discriminator `json:"_class"`
}

func (*UnknownJob) Fields() tagged.Fields { return nil }
func (*UnknownJob) isJob()                {}

// JobBase holds the fields every job and folder has.
type JobBase struct {
	Name              string         `json:"name"`
	DisplayName       string         `json:"display_name"`
	FullDisplayName   string         `json:"full_display_name"`
	FullName          string         `json:"full_name"`
	DisplayNameOrNull *string        `json:"display_name_or_null"`
	URL               string         `json:"url"`
	HealthReport      []HealthReport `json:"health_report"`
	Actions           []Action       `json:"actions"`
}

func (j *JobBase) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("name", tagged.String(&j.Name)),
		tagged.Optional("display_name", tagged.String(&j.DisplayName)),
		tagged.Optional("full_display_name", tagged.String(&j.FullDisplayName)),
		tagged.Optional("full_name", tagged.String(&j.FullName)),
		tagged.Optional("display_name_or_null", tagged.Nullable(&j.DisplayNameOrNull, tagged.String)),
		tagged.Required("url", tagged.String(&j.URL)),
		tagged.Optional("health_report", tagged.List(&j.HealthReport, tagged.Record[HealthReport])),
		tagged.Optional("actions", tagged.List(&j.Actions, Actions.NullableDecoder)),
	}
}

// JobFields holds the fields of buildable jobs.
type JobFields struct {
	JobBase
	Color                 BallColor       `json:"color"`
	Buildable             bool            `json:"buildable"`
	KeepDependencies      bool            `json:"keep_dependencies"`
	NextBuildNumber       uint32          `json:"next_build_number"`
	InQueue               bool            `json:"in_queue"`
	LastBuild             *ShortBuild     `json:"last_build"`
	FirstBuild            *ShortBuild     `json:"first_build"`
	LastStableBuild       *ShortBuild     `json:"last_stable_build"`
	LastUnstableBuild     *ShortBuild     `json:"last_unstable_build"`
	LastSuccessfulBuild   *ShortBuild     `json:"last_successful_build"`
	LastUnsuccessfulBuild *ShortBuild     `json:"last_unsuccessful_build"`
	LastCompletedBuild    *ShortBuild     `json:"last_completed_build"`
	LastFailedBuild       *ShortBuild     `json:"last_failed_build"`
	Builds                []ShortBuild    `json:"builds"`
	QueueItem             *ShortQueueItem `json:"queue_item"`
	Property              []Property      `json:"property"`
}

func (j *JobFields) Fields() tagged.Fields {
	build := func(dst **ShortBuild) tagged.Decoder {
		return tagged.Nullable(dst, tagged.Record[ShortBuild])
	}
	return append(j.JobBase.Fields(),
		tagged.Optional("color", ballColor(&j.Color)),
		tagged.Optional("buildable", tagged.Bool(&j.Buildable)),
		tagged.Optional("keep_dependencies", tagged.Bool(&j.KeepDependencies)),
		tagged.Optional("next_build_number", tagged.Uint(&j.NextBuildNumber)),
		tagged.Optional("in_queue", tagged.Bool(&j.InQueue)),
		tagged.Optional("last_build", build(&j.LastBuild)),
		tagged.Optional("first_build", build(&j.FirstBuild)),
		tagged.Optional("last_stable_build", build(&j.LastStableBuild)),
		tagged.Optional("last_unstable_build", build(&j.LastUnstableBuild)),
		tagged.Optional("last_successful_build", build(&j.LastSuccessfulBuild)),
		tagged.Optional("last_unsuccessful_build", build(&j.LastUnsuccessfulBuild)),
		tagged.Optional("last_completed_build", build(&j.LastCompletedBuild)),
		tagged.Optional("last_failed_build", build(&j.LastFailedBuild)),
		tagged.Optional("builds", tagged.List(&j.Builds, tagged.Record[ShortBuild])),
		tagged.Optional("queue_item", tagged.Nullable(&j.QueueItem, tagged.Record[ShortQueueItem])),
		tagged.Optional("property", tagged.List(&j.Property, Properties.Decoder)),
	)
}

// ProjectFields adds what most buildable job types have on top of
// JobFields.
type ProjectFields struct {
	JobFields
	Description        *string    `json:"description"`
	ConcurrentBuild    bool       `json:"concurrent_build"`
	SCM                SCM        `json:"scm"`
	UpstreamProjects   []ShortJob `json:"upstream_projects"`
	DownstreamProjects []ShortJob `json:"downstream_projects"`
	LabelExpression    *string    `json:"label_expression"`
}

func (p *ProjectFields) Fields() tagged.Fields {
	return append(p.JobFields.Fields(),
		tagged.Optional("description", tagged.Nullable(&p.Description, tagged.String)),
		tagged.Optional("concurrent_build", tagged.Bool(&p.ConcurrentBuild)),
		tagged.Optional("scm", SCMs.NullableDecoder(&p.SCM)),
		tagged.Optional("upstream_projects", tagged.List(&p.UpstreamProjects, tagged.Record[ShortJob])),
		tagged.Optional("downstream_projects", tagged.List(&p.DownstreamProjects, tagged.Record[ShortJob])),
		tagged.Optional("label_expression", tagged.Nullable(&p.LabelExpression, tagged.String)),
	)
}

type FreeStyleProject struct{ ProjectFields }

func (*FreeStyleProject) Class() string { return "hudson.model.FreeStyleProject" }
func (*FreeStyleProject) isJob()        {}

type MavenModule struct{ ProjectFields }

func (*MavenModule) Class() string { return "hudson.maven.MavenModule" }
func (*MavenModule) isJob()        {}

type MatrixConfiguration struct{ ProjectFields }

func (*MatrixConfiguration) Class() string { return "hudson.matrix.MatrixConfiguration" }
func (*MatrixConfiguration) isJob()        {}

type MultiJobProject struct{ ProjectFields }

func (*MultiJobProject) Class() string { return "com.tikal.jenkins.plugins.multijob.MultiJobProject" }
func (*MultiJobProject) isJob()        {}

type BuildFlowJob struct{ ProjectFields }

func (*BuildFlowJob) Class() string { return "com.cloudbees.plugins.flow.BuildFlow" }
func (*BuildFlowJob) isJob()        {}

type MatrixProject struct {
	ProjectFields
	ActiveConfigurations []ShortJob `json:"active_configurations"`
}

func (p *MatrixProject) Fields() tagged.Fields {
	return append(p.ProjectFields.Fields(),
		tagged.Optional("active_configurations", tagged.List(&p.ActiveConfigurations, tagged.Record[ShortJob])))
}
func (*MatrixProject) Class() string { return "hudson.matrix.MatrixProject" }
func (*MatrixProject) isJob()        {}

type MavenModuleSet struct {
	ProjectFields
	Modules []ShortJob `json:"modules"`
}

func (p *MavenModuleSet) Fields() tagged.Fields {
	return append(p.ProjectFields.Fields(),
		tagged.Optional("modules", tagged.List(&p.Modules, tagged.Record[ShortJob])))
}
func (*MavenModuleSet) Class() string { return "hudson.maven.MavenModuleSet" }
func (*MavenModuleSet) isJob()        {}

type WorkflowJob struct {
	JobFields
	Description     *string `json:"description"`
	ConcurrentBuild bool    `json:"concurrent_build"`
}

func (w *WorkflowJob) Fields() tagged.Fields {
	return append(w.JobFields.Fields(),
		tagged.Optional("description", tagged.Nullable(&w.Description, tagged.String)),
		tagged.Optional("concurrent_build", tagged.Bool(&w.ConcurrentBuild)),
	)
}
func (*WorkflowJob) Class() string { return "org.jenkinsci.plugins.workflow.job.WorkflowJob" }
func (*WorkflowJob) isJob()        {}

type ExternalJob struct{ JobFields }

func (*ExternalJob) Class() string { return "hudson.model.ExternalJob" }
func (*ExternalJob) isJob()        {}

// Folder groups jobs; its children are addressed through InFolder paths.
type Folder struct {
	JobBase
	Jobs []ShortJob `json:"jobs"`
}

func (f *Folder) Fields() tagged.Fields {
	return append(f.JobBase.Fields(), tagged.Optional("jobs", tagged.List(&f.Jobs, tagged.Record[ShortJob])))
}
func (*Folder) Class() string { return "com.cloudbees.hudson.plugins.folder.Folder" }
func (*Folder) isJob()        {}

type WorkflowMultiBranchProject struct {
	JobBase
	Jobs []ShortJob `json:"jobs"`
}

func (f *WorkflowMultiBranchProject) Fields() tagged.Fields {
	return append(f.JobBase.Fields(), tagged.Optional("jobs", tagged.List(&f.Jobs, tagged.Record[ShortJob])))
}
func (*WorkflowMultiBranchProject) Class() string {
	return "org.jenkinsci.plugins.workflow.multibranch.WorkflowMultiBranchProject"
}
func (*WorkflowMultiBranchProject) isJob() {}

// Jobs is the Job catalog.
var Jobs = newCatalog("Job",
	func(d tagged.Discriminator) Job { return &UnknownJob{Class: d} },
	func() Job { return new(FreeStyleProject) },
	func() Job { return new(WorkflowJob) },
	func() Job { return new(MatrixProject) },
	func() Job { return new(MatrixConfiguration) },
	func() Job { return new(MavenModuleSet) },
	func() Job { return new(MavenModule) },
	func() Job { return new(MultiJobProject) },
	func() Job { return new(BuildFlowJob) },
	func() Job { return new(ExternalJob) },
	func() Job { return new(Folder) },
	func() Job { return new(WorkflowMultiBranchProject) },
)

// CommonJob is the family-wide view of a job. Narrow it to reach the
// fields of a specific job type.
type CommonJob struct {
	tagged.Envelope
	JobFields
}

// DecodeCommonJob decodes any job, whatever its class.
func DecodeCommonJob(v any) (*CommonJob, error) {
	j := new(CommonJob)
	env, err := tagged.DecodeEnvelope(v, Jobs.Family(), &j.JobFields)
	if err != nil {
		return nil, err
	}
	j.Envelope = env
	return j, nil
}
