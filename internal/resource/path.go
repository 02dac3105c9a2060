// Package resource models the addressable resources of a Jenkins server and
// converts them to and from URL paths.
//
// Every case of Path is a comparable value. Encode renders the canonical
// path of a case; Decode recovers a case from a URL the server handed out,
// falling back to Raw whenever the URL does not match the grammar.
package resource

import (
	"fmt"
	"strconv"
)

// Path is one addressable resource. The set of cases is closed.
type Path interface {
	String() string
	path()
}

type (
	// Home is the instance root.
	Home struct{}

	View struct {
		Name Name
	}

	// Job is a job, or one configuration of a matrix job when Configuration
	// is set.
	Job struct {
		Name          Name
		Configuration Name
	}

	Build struct {
		JobName       Name
		Number        BuildNumber
		Configuration Name
	}

	ConsoleText struct {
		JobName       Name
		Number        BuildNumber
		Configuration Name
		Folder        Name
	}

	ConfigXML struct {
		JobName Name
		Folder  Name
	}

	Queue struct{}

	QueueItem struct {
		ID int
	}

	MavenArtifactRecord struct {
		JobName       Name
		Number        BuildNumber
		Configuration Name
	}

	// InFolder prefixes Path with a folder segment. Folders nest by nesting
	// InFolder values.
	InFolder struct {
		Folder Name
		Path   Path
	}

	Computers struct{}

	Computer struct {
		Name Name
	}

	CrumbIssuer struct{}

	// Raw is a path the decoder could not interpret, kept verbatim.
	Raw struct {
		Path string
	}
)

// Action endpoints. They are only ever produced, never decoded.
type (
	AddJobToView struct {
		JobName  Name
		ViewName Name
	}

	RemoveJobFromView struct {
		JobName  Name
		ViewName Name
	}

	BuildJob struct {
		Name Name
	}

	BuildJobWithParameters struct {
		Name Name
	}

	PollSCMJob struct {
		Name Name
	}

	JobEnable struct {
		Name Name
	}

	JobDisable struct {
		Name Name
	}
)

// Encode renders p. A nil path renders like Home.
func Encode(p Path) string {
	if p == nil {
		return ""
	}
	return p.String()
}

func (Home) String() string { return "" }

func (p View) String() string { return "/view/" + p.Name.String() }

func (p Job) String() string {
	if p.Configuration.IsZero() {
		return "/job/" + p.Name.String()
	}
	return fmt.Sprintf("/job/%s/%s", p.Name, p.Configuration)
}

func (p Build) String() string {
	if p.Configuration.IsZero() {
		return fmt.Sprintf("/job/%s/%s", p.JobName, p.Number)
	}
	return fmt.Sprintf("/job/%s/%s/%s", p.JobName, p.Configuration, p.Number)
}

func (p ConsoleText) String() string {
	build := Build{JobName: p.JobName, Number: p.Number, Configuration: p.Configuration}.String()
	return folderPrefix(p.Folder) + build + "/consoleText"
}

func (p ConfigXML) String() string {
	return folderPrefix(p.Folder) + "/job/" + p.JobName.String() + "/config.xml"
}

func folderPrefix(folder Name) string {
	if folder.IsZero() {
		return ""
	}
	return "/job/" + folder.String()
}

func (Queue) String() string { return "/queue" }

func (p QueueItem) String() string { return "/queue/item/" + strconv.Itoa(p.ID) }

func (p MavenArtifactRecord) String() string {
	return Build{JobName: p.JobName, Number: p.Number, Configuration: p.Configuration}.String() + "/mavenArtifacts"
}

func (p InFolder) String() string {
	return "/job/" + p.Folder.String() + Encode(p.Path)
}

func (Computers) String() string { return "/computer/api/json" }

func (p Computer) String() string { return "/computer/" + p.Name.String() + "/api/json" }

func (CrumbIssuer) String() string { return "/crumbIssuer" }

func (p Raw) String() string { return p.Path }

func (p AddJobToView) String() string {
	return fmt.Sprintf("/view/%s/addJobToView?name=%s", p.ViewName, p.JobName)
}

func (p RemoveJobFromView) String() string {
	return fmt.Sprintf("/view/%s/removeJobFromView?name=%s", p.ViewName, p.JobName)
}

func (p BuildJob) String() string { return "/job/" + p.Name.String() + "/build" }

func (p BuildJobWithParameters) String() string {
	return "/job/" + p.Name.String() + "/buildWithParameters"
}

func (p PollSCMJob) String() string { return "/job/" + p.Name.String() + "/polling" }

func (p JobEnable) String() string { return "/job/" + p.Name.String() + "/enable" }

func (p JobDisable) String() string { return "/job/" + p.Name.String() + "/disable" }

func (Home) path()                   {}
func (View) path()                   {}
func (Job) path()                    {}
func (Build) path()                  {}
func (ConsoleText) path()            {}
func (ConfigXML) path()              {}
func (Queue) path()                  {}
func (QueueItem) path()              {}
func (MavenArtifactRecord) path()    {}
func (InFolder) path()               {}
func (Computers) path()              {}
func (Computer) path()               {}
func (CrumbIssuer) path()            {}
func (Raw) path()                    {}
func (AddJobToView) path()           {}
func (RemoveJobFromView) path()      {}
func (BuildJob) path()               {}
func (BuildJobWithParameters) path() {}
func (PollSCMJob) path()             {}
func (JobEnable) path()              {}
func (JobDisable) path()             {}

// Innermost strips any InFolder wrappers from p.
func Innermost(p Path) Path {
	for {
		f, ok := p.(InFolder)
		if !ok {
			return p
		}
		p = f.Path
	}
}

// Folders returns the folder chain wrapping p, outermost first.
func Folders(p Path) []Name {
	var out []Name
	for {
		f, ok := p.(InFolder)
		if !ok {
			return out
		}
		out = append(out, f.Folder)
		p = f.Path
	}
}
