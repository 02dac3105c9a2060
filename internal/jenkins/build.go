package jenkins

import (
	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

// Build is one run of a job.
type Build interface {
	tagged.Shape
	isBuild()
}

type UnknownBuild struct {
	Class tagged.Discriminator `json:"_class"`
}

func (*UnknownBuild) Fields() tagged.Fields { return nil }
func (*UnknownBuild) isBuild()              {}

// BuildFields holds the fields every build has.
type BuildFields struct {
	URL               string       `json:"url"`
	Number            uint32       `json:"number"`
	Duration          int64        `json:"duration"`
	EstimatedDuration int64        `json:"estimated_duration"`
	Timestamp         uint64       `json:"timestamp"`
	KeepLog           bool         `json:"keep_log"`
	Result            *BuildStatus `json:"result"`
	DisplayName       string       `json:"display_name"`
	FullDisplayName   string       `json:"full_display_name"`
	Description       *string      `json:"description"`
	Building          bool         `json:"building"`
	ID                string       `json:"id"`
	QueueID           int64        `json:"queue_id"`
	Actions           []Action     `json:"actions"`
	Artifacts         []Artifact   `json:"artifacts"`
}

func (b *BuildFields) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("url", tagged.String(&b.URL)),
		tagged.Required("number", tagged.Uint(&b.Number)),
		tagged.Optional("duration", tagged.Int(&b.Duration)),
		tagged.Optional("estimated_duration", tagged.Int(&b.EstimatedDuration)),
		tagged.Optional("timestamp", tagged.Uint(&b.Timestamp)),
		tagged.Optional("keep_log", tagged.Bool(&b.KeepLog)),
		tagged.Optional("result", tagged.Nullable(&b.Result, buildStatus)),
		tagged.Optional("display_name", tagged.String(&b.DisplayName)),
		tagged.Optional("full_display_name", tagged.String(&b.FullDisplayName)),
		tagged.Optional("description", tagged.Nullable(&b.Description, tagged.String)),
		tagged.Optional("building", tagged.Bool(&b.Building)),
		tagged.Optional("id", tagged.String(&b.ID)),
		tagged.Optional("queue_id", tagged.Int(&b.QueueID)),
		tagged.Optional("actions", tagged.List(&b.Actions, Actions.NullableDecoder)),
		tagged.Optional("artifacts", tagged.List(&b.Artifacts, tagged.Record[Artifact])),
	}
}

// RunFields adds what builds of freestyle-like jobs carry.
type RunFields struct {
	BuildFields
	ChangeSet ChangeSetList `json:"change_set"`
	BuiltOn   string        `json:"built_on"`
	Culprits  []ShortUser   `json:"culprits"`
}

func (r *RunFields) Fields() tagged.Fields {
	return append(r.BuildFields.Fields(),
		tagged.Optional("change_set", ChangeSetLists.NullableDecoder(&r.ChangeSet)),
		tagged.Optional("built_on", tagged.String(&r.BuiltOn)),
		tagged.Optional("culprits", tagged.List(&r.Culprits, tagged.Record[ShortUser])),
	)
}

type FreeStyleBuild struct{ RunFields }

func (*FreeStyleBuild) Class() string { return "hudson.model.FreeStyleBuild" }
func (*FreeStyleBuild) isBuild()      {}

type MatrixRun struct{ RunFields }

func (*MatrixRun) Class() string { return "hudson.matrix.MatrixRun" }
func (*MatrixRun) isBuild()      {}

type BuildFlowRun struct{ RunFields }

func (*BuildFlowRun) Class() string { return "com.cloudbees.plugins.flow.FlowRun" }
func (*BuildFlowRun) isBuild()      {}

type MatrixBuild struct {
	RunFields
	Runs []ShortBuild `json:"runs"`
}

func (m *MatrixBuild) Fields() tagged.Fields {
	return append(m.RunFields.Fields(), tagged.Optional("runs", tagged.List(&m.Runs, tagged.Record[ShortBuild])))
}
func (*MatrixBuild) Class() string { return "hudson.matrix.MatrixBuild" }
func (*MatrixBuild) isBuild()      {}

// ShortMavenArtifactRecord links to the artifacts a maven build deployed.
type ShortMavenArtifactRecord struct {
	URL string `json:"url"`
}

func (r *ShortMavenArtifactRecord) Fields() tagged.Fields {
	return tagged.Fields{tagged.Required("url", tagged.String(&r.URL))}
}

type MavenModuleSetBuild struct {
	RunFields
	MavenVersionUsed string                                `json:"maven_version_used"`
	MavenArtifacts   map[string][]ShortMavenArtifactRecord `json:"maven_artifacts"`
}

func (m *MavenModuleSetBuild) Fields() tagged.Fields {
	records := func(dst *[]ShortMavenArtifactRecord) tagged.Decoder {
		return tagged.List(dst, tagged.Record[ShortMavenArtifactRecord])
	}
	return append(m.RunFields.Fields(),
		tagged.Optional("maven_version_used", tagged.String(&m.MavenVersionUsed)),
		tagged.Optional("maven_artifacts", tagged.Map(&m.MavenArtifacts, records)),
	)
}
func (*MavenModuleSetBuild) Class() string { return "hudson.maven.MavenModuleSetBuild" }
func (*MavenModuleSetBuild) isBuild()      {}

type MavenBuild struct {
	RunFields
	MavenArtifacts *ShortMavenArtifactRecord `json:"maven_artifacts"`
}

func (m *MavenBuild) Fields() tagged.Fields {
	return append(m.RunFields.Fields(),
		tagged.Optional("maven_artifacts", tagged.Nullable(&m.MavenArtifacts, tagged.Record[ShortMavenArtifactRecord])))
}
func (*MavenBuild) Class() string { return "hudson.maven.MavenBuild" }
func (*MavenBuild) isBuild()      {}

type MultiJobSubBuild struct {
	Abort             bool         `json:"abort"`
	BuildNumber       uint32       `json:"build_number"`
	Duration          string       `json:"duration"`
	Icon              string       `json:"icon"`
	JobName           string       `json:"job_name"`
	ParentBuildNumber uint32       `json:"parent_build_number"`
	ParentJobName     string       `json:"parent_job_name"`
	PhaseName         string       `json:"phase_name"`
	Result            *BuildStatus `json:"result"`
	Retry             bool         `json:"retry"`
	URL               string       `json:"url"`
}

func (s *MultiJobSubBuild) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Optional("abort", tagged.Bool(&s.Abort)),
		tagged.Required("build_number", tagged.Uint(&s.BuildNumber)),
		tagged.Optional("duration", tagged.String(&s.Duration)),
		tagged.Optional("icon", tagged.String(&s.Icon)),
		tagged.Required("job_name", tagged.String(&s.JobName)),
		tagged.Optional("parent_build_number", tagged.Uint(&s.ParentBuildNumber)),
		tagged.Optional("parent_job_name", tagged.String(&s.ParentJobName)),
		tagged.Optional("phase_name", tagged.String(&s.PhaseName)),
		tagged.Optional("result", tagged.Nullable(&s.Result, buildStatus)),
		tagged.Optional("retry", tagged.Bool(&s.Retry)),
		tagged.Required("url", tagged.String(&s.URL)),
	}
}

type MultiJobBuild struct {
	RunFields
	SubBuilds []MultiJobSubBuild `json:"sub_builds"`
}

func (m *MultiJobBuild) Fields() tagged.Fields {
	return append(m.RunFields.Fields(),
		tagged.Optional("sub_builds", tagged.List(&m.SubBuilds, tagged.Record[MultiJobSubBuild])))
}
func (*MultiJobBuild) Class() string { return "com.tikal.jenkins.plugins.multijob.MultiJobBuild" }
func (*MultiJobBuild) isBuild()      {}

type WorkflowRun struct {
	BuildFields
	ChangeSets    []ChangeSetList `json:"change_sets"`
	PreviousBuild *ShortBuild     `json:"previous_build"`
}

func (w *WorkflowRun) Fields() tagged.Fields {
	return append(w.BuildFields.Fields(),
		tagged.Optional("change_sets", tagged.List(&w.ChangeSets, ChangeSetLists.Decoder)),
		tagged.Optional("previous_build", tagged.Nullable(&w.PreviousBuild, tagged.Record[ShortBuild])),
	)
}
func (*WorkflowRun) Class() string { return "org.jenkinsci.plugins.workflow.job.WorkflowRun" }
func (*WorkflowRun) isBuild()      {}

// Builds is the Build catalog.
var Builds = newCatalog("Build",
	func(d tagged.Discriminator) Build { return &UnknownBuild{Class: d} },
	func() Build { return new(FreeStyleBuild) },
	func() Build { return new(WorkflowRun) },
	func() Build { return new(MatrixBuild) },
	func() Build { return new(MatrixRun) },
	func() Build { return new(MavenModuleSetBuild) },
	func() Build { return new(MavenBuild) },
	func() Build { return new(MultiJobBuild) },
	func() Build { return new(BuildFlowRun) },
)

// CommonBuild is the family-wide view of a build.
type CommonBuild struct {
	tagged.Envelope
	BuildFields
}

// DecodeCommonBuild decodes any build, whatever its class.
func DecodeCommonBuild(v any) (*CommonBuild, error) {
	b := new(CommonBuild)
	env, err := tagged.DecodeEnvelope(v, Builds.Family(), &b.BuildFields)
	if err != nil {
		return nil, err
	}
	b.Envelope = env
	return b, nil
}
