package resource

import (
	"errors"
	"fmt"
)

// Spec is the JSON form of a Path used by the workbench API and CLI. Encoded
// applies to every name in the spec.
type Spec struct {
	Kind          string       `json:"kind"`
	Name          string       `json:"name,omitempty"`
	Configuration string       `json:"configuration,omitempty"`
	Folder        string       `json:"folder,omitempty"`
	View          string       `json:"view,omitempty"`
	Number        *BuildNumber `json:"number,omitempty"`
	ID            *int         `json:"id,omitempty"`
	Raw           string       `json:"raw,omitempty"`
	Encoded       bool         `json:"encoded,omitempty"`
	Nested        *Spec        `json:"nested,omitempty"`
}

// Path kinds as they appear in Spec.Kind.
const (
	KindHome                   = "home"
	KindView                   = "view"
	KindJob                    = "job"
	KindBuild                  = "build"
	KindConsoleText            = "console_text"
	KindConfigXML              = "config_xml"
	KindQueue                  = "queue"
	KindQueueItem              = "queue_item"
	KindMavenArtifactRecord    = "maven_artifact_record"
	KindInFolder               = "in_folder"
	KindComputers              = "computers"
	KindComputer               = "computer"
	KindCrumbIssuer            = "crumb_issuer"
	KindRaw                    = "raw"
	KindAddJobToView           = "add_job_to_view"
	KindRemoveJobFromView      = "remove_job_from_view"
	KindBuildJob               = "build_job"
	KindBuildJobWithParameters = "build_job_with_parameters"
	KindPollSCMJob             = "poll_scm_job"
	KindJobEnable              = "job_enable"
	KindJobDisable             = "job_disable"
)

// Describe converts p to its Spec.
func Describe(p Path) Spec {
	switch p := p.(type) {
	case Home, nil:
		return Spec{Kind: KindHome}
	case View:
		return Spec{Kind: KindView, Name: p.Name.Value, Encoded: p.Name.Encoded}
	case Job:
		return Spec{Kind: KindJob, Name: p.Name.Value, Configuration: p.Configuration.Value, Encoded: p.Name.Encoded}
	case Build:
		return Spec{Kind: KindBuild, Name: p.JobName.Value, Number: numberPtr(p.Number),
			Configuration: p.Configuration.Value, Encoded: p.JobName.Encoded}
	case ConsoleText:
		return Spec{Kind: KindConsoleText, Name: p.JobName.Value, Number: numberPtr(p.Number),
			Configuration: p.Configuration.Value, Folder: p.Folder.Value, Encoded: p.JobName.Encoded}
	case ConfigXML:
		return Spec{Kind: KindConfigXML, Name: p.JobName.Value, Folder: p.Folder.Value, Encoded: p.JobName.Encoded}
	case Queue:
		return Spec{Kind: KindQueue}
	case QueueItem:
		id := p.ID
		return Spec{Kind: KindQueueItem, ID: &id}
	case MavenArtifactRecord:
		return Spec{Kind: KindMavenArtifactRecord, Name: p.JobName.Value, Number: numberPtr(p.Number),
			Configuration: p.Configuration.Value, Encoded: p.JobName.Encoded}
	case InFolder:
		nested := Describe(p.Path)
		return Spec{Kind: KindInFolder, Folder: p.Folder.Value, Encoded: p.Folder.Encoded, Nested: &nested}
	case Computers:
		return Spec{Kind: KindComputers}
	case Computer:
		return Spec{Kind: KindComputer, Name: p.Name.Value, Encoded: p.Name.Encoded}
	case CrumbIssuer:
		return Spec{Kind: KindCrumbIssuer}
	case Raw:
		return Spec{Kind: KindRaw, Raw: p.Path}
	case AddJobToView:
		return Spec{Kind: KindAddJobToView, Name: p.JobName.Value, View: p.ViewName.Value, Encoded: p.JobName.Encoded}
	case RemoveJobFromView:
		return Spec{Kind: KindRemoveJobFromView, Name: p.JobName.Value, View: p.ViewName.Value, Encoded: p.JobName.Encoded}
	case BuildJob:
		return Spec{Kind: KindBuildJob, Name: p.Name.Value, Encoded: p.Name.Encoded}
	case BuildJobWithParameters:
		return Spec{Kind: KindBuildJobWithParameters, Name: p.Name.Value, Encoded: p.Name.Encoded}
	case PollSCMJob:
		return Spec{Kind: KindPollSCMJob, Name: p.Name.Value, Encoded: p.Name.Encoded}
	case JobEnable:
		return Spec{Kind: KindJobEnable, Name: p.Name.Value, Encoded: p.Name.Encoded}
	case JobDisable:
		return Spec{Kind: KindJobDisable, Name: p.Name.Value, Encoded: p.Name.Encoded}
	}
	panic(fmt.Sprintf("resource: unhandled path %T", p))
}

func numberPtr(n BuildNumber) *BuildNumber {
	return &n
}

var errNoName = errors.New("name is required")

// Path builds the Path described by s.
func (s Spec) Path() (Path, error) {
	name := func(v string) Name {
		if v == "" {
			return Name{}
		}
		return Name{Value: v, Encoded: s.Encoded}
	}
	needName := func() error {
		if s.Name == "" {
			return fmt.Errorf("%s: %w", s.Kind, errNoName)
		}
		return nil
	}
	needNumber := func() (BuildNumber, error) {
		if err := needName(); err != nil {
			return BuildNumber{}, err
		}
		if s.Number == nil {
			return BuildNumber{}, fmt.Errorf("%s: number is required", s.Kind)
		}
		return *s.Number, nil
	}

	switch s.Kind {
	case KindHome, "":
		return Home{}, nil
	case KindView:
		return View{Name: name(s.Name)}, needName()
	case KindJob:
		return Job{Name: name(s.Name), Configuration: name(s.Configuration)}, needName()
	case KindBuild:
		n, err := needNumber()
		return Build{JobName: name(s.Name), Number: n, Configuration: name(s.Configuration)}, err
	case KindConsoleText:
		n, err := needNumber()
		return ConsoleText{JobName: name(s.Name), Number: n, Configuration: name(s.Configuration), Folder: name(s.Folder)}, err
	case KindConfigXML:
		return ConfigXML{JobName: name(s.Name), Folder: name(s.Folder)}, needName()
	case KindQueue:
		return Queue{}, nil
	case KindQueueItem:
		if s.ID == nil {
			return nil, fmt.Errorf("%s: id is required", s.Kind)
		}
		return QueueItem{ID: *s.ID}, nil
	case KindMavenArtifactRecord:
		n, err := needNumber()
		return MavenArtifactRecord{JobName: name(s.Name), Number: n, Configuration: name(s.Configuration)}, err
	case KindInFolder:
		if s.Folder == "" || s.Nested == nil {
			return nil, fmt.Errorf("%s: folder and nested are required", s.Kind)
		}
		nested, err := s.Nested.Path()
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", s.Kind, s.Folder, err)
		}
		return InFolder{Folder: name(s.Folder), Path: nested}, nil
	case KindComputers:
		return Computers{}, nil
	case KindComputer:
		return Computer{Name: name(s.Name)}, needName()
	case KindCrumbIssuer:
		return CrumbIssuer{}, nil
	case KindRaw:
		return Raw{Path: s.Raw}, nil
	case KindAddJobToView, KindRemoveJobFromView:
		if s.View == "" {
			return nil, fmt.Errorf("%s: view is required", s.Kind)
		}
		if s.Kind == KindAddJobToView {
			return AddJobToView{JobName: name(s.Name), ViewName: name(s.View)}, needName()
		}
		return RemoveJobFromView{JobName: name(s.Name), ViewName: name(s.View)}, needName()
	case KindBuildJob:
		return BuildJob{Name: name(s.Name)}, needName()
	case KindBuildJobWithParameters:
		return BuildJobWithParameters{Name: name(s.Name)}, needName()
	case KindPollSCMJob:
		return PollSCMJob{Name: name(s.Name)}, needName()
	case KindJobEnable:
		return JobEnable{Name: name(s.Name)}, needName()
	case KindJobDisable:
		return JobDisable{Name: name(s.Name)}, needName()
	}
	return nil, fmt.Errorf("unknown path kind %q", s.Kind)
}
