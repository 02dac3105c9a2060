package jenkins

import (
	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

// View groups jobs on the dashboard.
type View interface {
	tagged.Shape
	isView()
}

type UnknownView struct {
	Class tagged.Discriminator `json:"_class"`
}

func (*UnknownView) Fields() tagged.Fields { return nil }
func (*UnknownView) isView()               {}

type ViewFields struct {
	Description *string    `json:"description"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Jobs        []ShortJob `json:"jobs"`
	Property    []Property `json:"property"`
}

func (v *ViewFields) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Optional("description", tagged.Nullable(&v.Description, tagged.String)),
		tagged.Required("name", tagged.String(&v.Name)),
		tagged.Required("url", tagged.String(&v.URL)),
		tagged.Optional("jobs", tagged.List(&v.Jobs, tagged.Record[ShortJob])),
		tagged.Optional("property", tagged.List(&v.Property, Properties.Decoder)),
	}
}

type ListView struct{ ViewFields }

func (*ListView) Class() string { return "hudson.model.ListView" }
func (*ListView) isView()       {}

type AllView struct{ ViewFields }

func (*AllView) Class() string { return "hudson.model.AllView" }
func (*AllView) isView()       {}

// Views is the View catalog.
var Views = newCatalog("View",
	func(d tagged.Discriminator) View { return &UnknownView{Class: d} },
	func() View { return new(ListView) },
	func() View { return new(AllView) },
)

type CommonView struct {
	tagged.Envelope
	ViewFields
}

func DecodeCommonView(v any) (*CommonView, error) {
	cv := new(CommonView)
	env, err := tagged.DecodeEnvelope(v, Views.Family(), &cv.ViewFields)
	if err != nil {
		return nil, err
	}
	cv.Envelope = env
	return cv, nil
}
