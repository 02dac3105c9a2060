package jenkins

import (
	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

// MavenArtifact is one file deployed by a maven build.
type MavenArtifact struct {
	ArtifactID    string  `json:"artifact_id"`
	CanonicalName string  `json:"canonical_name"`
	Classifier    *string `json:"classifier"`
	FileName      string  `json:"file_name"`
	GroupID       string  `json:"group_id"`
	Md5sum        string  `json:"md5sum"`
	Type          string  `json:"type"`
	Version       string  `json:"version"`
}

func (a *MavenArtifact) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("artifact_id", tagged.String(&a.ArtifactID)),
		tagged.Optional("canonical_name", tagged.String(&a.CanonicalName)),
		tagged.Optional("classifier", tagged.Nullable(&a.Classifier, tagged.String)),
		tagged.Optional("file_name", tagged.String(&a.FileName)),
		tagged.Required("group_id", tagged.String(&a.GroupID)),
		tagged.Optional("md5sum", tagged.String(&a.Md5sum)),
		tagged.Optional("type", tagged.String(&a.Type)),
		tagged.Required("version", tagged.String(&a.Version)),
	}
}

// MavenArtifactRecord lists what a maven build deployed.
type MavenArtifactRecord struct {
	URL               string          `json:"url"`
	AttachedArtifacts []MavenArtifact `json:"attached_artifacts"`
	MainArtifact      MavenArtifact   `json:"main_artifact"`
	Parent            ShortBuild      `json:"parent"`
	PomArtifact       MavenArtifact   `json:"pom_artifact"`
}

func (r *MavenArtifactRecord) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("url", tagged.String(&r.URL)),
		tagged.Optional("attached_artifacts", tagged.List(&r.AttachedArtifacts, tagged.Record[MavenArtifact])),
		tagged.Required("main_artifact", tagged.Record(&r.MainArtifact)),
		tagged.Required("parent", tagged.Record(&r.Parent)),
		tagged.Required("pom_artifact", tagged.Record(&r.PomArtifact)),
	}
}
