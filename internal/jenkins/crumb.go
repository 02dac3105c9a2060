package jenkins

import (
	"fmt"

	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

// CrumbHeader is the only request field the crumb issuer is expected to
// name.
const CrumbHeader = "Jenkins-Crumb"

// Crumb is the anti-forgery token returned by /crumbIssuer.
type Crumb struct {
	Crumb             string `json:"crumb"`
	CrumbRequestField string `json:"crumb_request_field"`
}

func (c *Crumb) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("crumb", tagged.String(&c.Crumb)),
		tagged.Required("crumb_request_field", tagged.String(&c.CrumbRequestField)),
	}
}

// InvalidCrumbFieldError is returned when the issuer asks for a header
// other than CrumbHeader.
type InvalidCrumbFieldError struct {
	FieldName string
}

func (e *InvalidCrumbFieldError) Error() string {
	return fmt.Sprintf("invalid crumb request field %q, expected %q", e.FieldName, CrumbHeader)
}

// Header returns the header to attach to state-changing requests.
func (c *Crumb) Header() (name, value string, err error) {
	if c.CrumbRequestField != CrumbHeader {
		return "", "", &InvalidCrumbFieldError{FieldName: c.CrumbRequestField}
	}
	return CrumbHeader, c.Crumb, nil
}
