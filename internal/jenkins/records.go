package jenkins

import (
	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

// ShortJob is the link to a job found in lists.
type ShortJob struct {
	Name  string    `json:"name"`
	URL   string    `json:"url"`
	Color BallColor `json:"color,omitempty"`
}

func (j *ShortJob) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("name", tagged.String(&j.Name)),
		tagged.Required("url", tagged.String(&j.URL)),
		tagged.Optional("color", ballColor(&j.Color)),
	}
}

// ShortBuild is the link to a build. Anything beyond number and url, which
// a tree query may ask for, is kept in Extra.
type ShortBuild struct {
	URL    string         `json:"url"`
	Number uint32         `json:"number"`
	Extra  map[string]any `json:"extra,omitempty"`
}

func (b *ShortBuild) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("url", tagged.String(&b.URL)),
		tagged.Required("number", tagged.Uint(&b.Number)),
		tagged.Extra(&b.Extra),
	}
}

type ShortQueueItem struct {
	URL   string         `json:"url"`
	Extra map[string]any `json:"extra,omitempty"`
}

func (q *ShortQueueItem) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("url", tagged.String(&q.URL)),
		tagged.Extra(&q.Extra),
	}
}

type ShortView struct {
	Name  string         `json:"name"`
	URL   string         `json:"url"`
	Extra map[string]any `json:"extra,omitempty"`
}

func (v *ShortView) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("name", tagged.String(&v.Name)),
		tagged.Required("url", tagged.String(&v.URL)),
		tagged.Extra(&v.Extra),
	}
}

// ShortUser is an author or culprit. It is not necessarily a Jenkins user.
type ShortUser struct {
	FullName    string         `json:"full_name"`
	AbsoluteURL string         `json:"absolute_url"`
	Extra       map[string]any `json:"extra,omitempty"`
}

func (u *ShortUser) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("full_name", tagged.String(&u.FullName)),
		tagged.Required("absolute_url", tagged.String(&u.AbsoluteURL)),
		tagged.Extra(&u.Extra),
	}
}

type HealthReport struct {
	Description   string `json:"description"`
	IconClassName string `json:"icon_class_name"`
	IconURL       string `json:"icon_url"`
	Score         uint16 `json:"score"`
}

func (h *HealthReport) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("description", tagged.String(&h.Description)),
		tagged.Optional("icon_class_name", tagged.String(&h.IconClassName)),
		tagged.Optional("icon_url", tagged.String(&h.IconURL)),
		tagged.Required("score", tagged.Uint(&h.Score)),
	}
}

// Artifact is a file archived by a build.
type Artifact struct {
	DisplayPath  *string `json:"display_path"`
	FileName     string  `json:"file_name"`
	RelativePath string  `json:"relative_path"`
}

func (a *Artifact) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Optional("display_path", tagged.Nullable(&a.DisplayPath, tagged.String)),
		tagged.Required("file_name", tagged.String(&a.FileName)),
		tagged.Required("relative_path", tagged.String(&a.RelativePath)),
	}
}

// Home describes the controller itself.
type Home struct {
	Mode            string      `json:"mode"`
	NodeDescription string      `json:"node_description"`
	NodeName        string      `json:"node_name"`
	NumExecutors    uint32      `json:"num_executors"`
	Description     *string     `json:"description"`
	Jobs            []ShortJob  `json:"jobs"`
	QuietingDown    bool        `json:"quieting_down"`
	SlaveAgentPort  int32       `json:"slave_agent_port"`
	UseCrumbs       bool        `json:"use_crumbs"`
	UseSecurity     bool        `json:"use_security"`
	Views           []ShortView `json:"views"`
}

func (h *Home) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Optional("mode", tagged.String(&h.Mode)),
		tagged.Optional("node_description", tagged.String(&h.NodeDescription)),
		tagged.Optional("node_name", tagged.String(&h.NodeName)),
		tagged.Optional("num_executors", tagged.Uint(&h.NumExecutors)),
		tagged.Optional("description", tagged.Nullable(&h.Description, tagged.String)),
		tagged.Required("jobs", tagged.List(&h.Jobs, tagged.Record[ShortJob])),
		tagged.Optional("quieting_down", tagged.Bool(&h.QuietingDown)),
		tagged.Optional("slave_agent_port", tagged.Int(&h.SlaveAgentPort)),
		tagged.Optional("use_crumbs", tagged.Bool(&h.UseCrumbs)),
		tagged.Optional("use_security", tagged.Bool(&h.UseSecurity)),
		tagged.Optional("views", tagged.List(&h.Views, tagged.Record[ShortView])),
	}
}
