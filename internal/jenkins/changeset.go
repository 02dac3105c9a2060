package jenkins

import (
	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

// ChangeSetList is the set of changes between a build and the previous one.
type ChangeSetList interface {
	tagged.Shape
	isChangeSetList()
}

type UnknownChangeSetList struct {
	Class tagged.Discriminator `json:"_class"`
}

func (*UnknownChangeSetList) Fields() tagged.Fields { return nil }
func (*UnknownChangeSetList) isChangeSetList()      {}

type ChangeSetListFields struct {
	Kind  *string     `json:"kind"`
	Items []ChangeSet `json:"items"`
}

func (l *ChangeSetListFields) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Optional("kind", tagged.Nullable(&l.Kind, tagged.String)),
		tagged.Optional("items", tagged.List(&l.Items, ChangeSets.Decoder)),
	}
}

type EmptyChangeSet struct{ ChangeSetListFields }

func (*EmptyChangeSet) Class() string    { return "hudson.scm.EmptyChangeLogSet" }
func (*EmptyChangeSet) isChangeSetList() {}

type GitChangeSetList struct{ ChangeSetListFields }

func (*GitChangeSetList) Class() string    { return "hudson.plugins.git.GitChangeSetList" }
func (*GitChangeSetList) isChangeSetList() {}

type RepoChangeLogSet struct{ ChangeSetListFields }

func (*RepoChangeLogSet) Class() string    { return "hudson.plugins.repo.RepoChangeLogSet" }
func (*RepoChangeLogSet) isChangeSetList() {}

type FilteredChangeLogSet struct{ ChangeSetListFields }

func (*FilteredChangeLogSet) Class() string    { return "hudson.maven.FilteredChangeLogSet" }
func (*FilteredChangeLogSet) isChangeSetList() {}

// ChangeSetLists is the ChangeSetList catalog.
var ChangeSetLists = newCatalog("ChangeSetList",
	func(d tagged.Discriminator) ChangeSetList { return &UnknownChangeSetList{Class: d} },
	func() ChangeSetList { return new(EmptyChangeSet) },
	func() ChangeSetList { return new(GitChangeSetList) },
	func() ChangeSetList { return new(RepoChangeLogSet) },
	func() ChangeSetList { return new(FilteredChangeLogSet) },
)

type CommonChangeSetList struct {
	tagged.Envelope
	ChangeSetListFields
}

func DecodeCommonChangeSetList(v any) (*CommonChangeSetList, error) {
	l := new(CommonChangeSetList)
	env, err := tagged.DecodeEnvelope(v, ChangeSetLists.Family(), &l.ChangeSetListFields)
	if err != nil {
		return nil, err
	}
	l.Envelope = env
	return l, nil
}

// ChangeSet is a single change, usually a commit.
type ChangeSet interface {
	tagged.Shape
	isChangeSet()
}

type UnknownChangeSet struct {
	Class tagged.Discriminator `json:"_class"`
}

func (*UnknownChangeSet) Fields() tagged.Fields { return nil }
func (*UnknownChangeSet) isChangeSet()          {}

// EditType is add, edit or delete.
type EditType string

const (
	EditAdd    EditType = "add"
	EditEdit   EditType = "edit"
	EditDelete EditType = "delete"
)

type PathChange struct {
	File     string   `json:"file"`
	EditType EditType `json:"edit_type"`
}

func (p *PathChange) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("file", tagged.String(&p.File)),
		tagged.Required("edit_type", tagged.String((*string)(&p.EditType))),
	}
}

type GitChangeSet struct {
	Comment       string       `json:"comment"`
	AuthorEmail   string       `json:"author_email"`
	CommitID      string       `json:"commit_id"`
	Date          string       `json:"date"`
	Msg           string       `json:"msg"`
	Timestamp     uint64       `json:"timestamp"`
	ID            string       `json:"id"`
	AffectedPaths []string     `json:"affected_paths"`
	Author        ShortUser    `json:"author"`
	Paths         []PathChange `json:"paths"`
}

func (c *GitChangeSet) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Optional("comment", tagged.String(&c.Comment)),
		tagged.Optional("author_email", tagged.String(&c.AuthorEmail)),
		tagged.Required("commit_id", tagged.String(&c.CommitID)),
		tagged.Optional("date", tagged.String(&c.Date)),
		tagged.Optional("msg", tagged.String(&c.Msg)),
		tagged.Optional("timestamp", tagged.Uint(&c.Timestamp)),
		tagged.Optional("id", tagged.String(&c.ID)),
		tagged.Optional("affected_paths", tagged.List(&c.AffectedPaths, tagged.String)),
		tagged.Required("author", tagged.Record(&c.Author)),
		tagged.Optional("paths", tagged.List(&c.Paths, tagged.Record[PathChange])),
	}
}
func (*GitChangeSet) Class() string { return "hudson.plugins.git.GitChangeSet" }
func (*GitChangeSet) isChangeSet()  {}

type ChangeLogEntry struct {
	CommitID      *string   `json:"commit_id"`
	Msg           string    `json:"msg"`
	Timestamp     int64     `json:"timestamp"`
	AffectedPaths []string  `json:"affected_paths"`
	Author        ShortUser `json:"author"`
}

func (c *ChangeLogEntry) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Optional("commit_id", tagged.Nullable(&c.CommitID, tagged.String)),
		tagged.Optional("msg", tagged.String(&c.Msg)),
		tagged.Optional("timestamp", tagged.Int(&c.Timestamp)),
		tagged.Optional("affected_paths", tagged.List(&c.AffectedPaths, tagged.String)),
		tagged.Required("author", tagged.Record(&c.Author)),
	}
}
func (*ChangeLogEntry) Class() string { return "hudson.plugins.repo.ChangeLogEntry" }
func (*ChangeLogEntry) isChangeSet()  {}

// ChangeSets is the ChangeSet catalog.
var ChangeSets = newCatalog("ChangeSet",
	func(d tagged.Discriminator) ChangeSet { return &UnknownChangeSet{Class: d} },
	func() ChangeSet { return new(GitChangeSet) },
	func() ChangeSet { return new(ChangeLogEntry) },
)

type CommonChangeSet struct {
	tagged.Envelope
}

func (*CommonChangeSet) Fields() tagged.Fields { return nil }

func DecodeCommonChangeSet(v any) (*CommonChangeSet, error) {
	c := new(CommonChangeSet)
	env, err := tagged.DecodeEnvelope(v, ChangeSets.Family(), c)
	if err != nil {
		return nil, err
	}
	c.Envelope = env
	return c, nil
}
