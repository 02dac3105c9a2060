package jenkins

import (
	"fmt"
	"strings"

	"github.com/rflorenc/jenkins-workbench/internal/resource"
	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

// ExpectedKind names the resource a record URL should point at.
type ExpectedKind string

const (
	ExpectJob                 ExpectedKind = "job"
	ExpectBuild               ExpectedKind = "build"
	ExpectQueueItem           ExpectedKind = "queue item"
	ExpectView                ExpectedKind = "view"
	ExpectMavenArtifactRecord ExpectedKind = "maven artifact record"
)

// InvalidURLError is returned when a URL found in a record does not decode
// to the kind of resource the record links to.
type InvalidURLError struct {
	URL      string
	Expected ExpectedKind
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("url %q does not point to a %s", e.URL, e.Expected)
}

// resolve decodes rawURL against base and checks the innermost path kind.
// Folder wrappers are kept in the returned path. Queue items carry URLs
// relative to the instance ("queue/item/12/"); those are rooted first.
func resolve(rawURL, base string, want ExpectedKind) (resource.Path, error) {
	raw := rawURL
	if !strings.HasPrefix(raw, "/") && !strings.Contains(raw, "://") {
		raw = "/" + raw
	}
	p := resource.Decode(raw, base)
	var ok bool
	switch resource.Innermost(p).(type) {
	case resource.Job:
		ok = want == ExpectJob
	case resource.Build:
		ok = want == ExpectBuild
	case resource.QueueItem:
		ok = want == ExpectQueueItem
	case resource.View:
		ok = want == ExpectView
	case resource.MavenArtifactRecord:
		ok = want == ExpectMavenArtifactRecord
	}
	if !ok {
		return nil, &InvalidURLError{URL: rawURL, Expected: want}
	}
	return p, nil
}

// wrap puts inner back into the folders p was found in.
func wrap(p, inner resource.Path) resource.Path {
	folders := resource.Folders(p)
	for i := len(folders) - 1; i >= 0; i-- {
		inner = resource.InFolder{Folder: folders[i], Path: inner}
	}
	return inner
}

// Path returns the path of the job, relative to base.
func (j *ShortJob) Path(base string) (resource.Path, error) {
	return resolve(j.URL, base, ExpectJob)
}

// Path returns the path of the build, relative to base.
func (b *ShortBuild) Path(base string) (resource.Path, error) {
	return resolve(b.URL, base, ExpectBuild)
}

// Path returns the path of the queue item, relative to base.
func (q *ShortQueueItem) Path(base string) (resource.Path, error) {
	return resolve(q.URL, base, ExpectQueueItem)
}

// Path returns the path of the queue item, for refreshing it.
func (q *QueueItem) Path(base string) (resource.Path, error) {
	return resolve(q.URL, base, ExpectQueueItem)
}

// Path returns the path of the view, relative to base.
func (v *ShortView) Path(base string) (resource.Path, error) {
	return resolve(v.URL, base, ExpectView)
}

// Path returns the path of the artifact record, relative to base.
func (r *ShortMavenArtifactRecord) Path(base string) (resource.Path, error) {
	return resolve(r.URL, base, ExpectMavenArtifactRecord)
}

// JobPath returns the path of the job (or matrix configuration) that ran the
// build.
func (b *BuildFields) JobPath(base string) (resource.Path, error) {
	p, err := resolve(b.URL, base, ExpectBuild)
	if err != nil {
		return nil, err
	}
	build := resource.Innermost(p).(resource.Build)
	return wrap(p, resource.Job{Name: build.JobName, Configuration: build.Configuration}), nil
}

// ConsolePath returns the path of the build's console output.
func (b *BuildFields) ConsolePath(base string) (resource.Path, error) {
	p, err := resolve(b.URL, base, ExpectBuild)
	if err != nil {
		return nil, err
	}
	build := resource.Innermost(p).(resource.Build)
	return wrap(p, resource.ConsoleText{
		JobName:       build.JobName,
		Number:        build.Number,
		Configuration: build.Configuration,
	}), nil
}

// jobName resolves the URL of a job that can be acted upon: matrix
// configurations cannot.
func (j *JobBase) jobName(base string) (resource.Path, resource.Name, error) {
	p, err := resolve(j.URL, base, ExpectJob)
	if err != nil {
		return nil, resource.Name{}, err
	}
	job := resource.Innermost(p).(resource.Job)
	if !job.Configuration.IsZero() {
		return nil, resource.Name{}, &InvalidURLError{URL: j.URL, Expected: ExpectJob}
	}
	return p, job.Name, nil
}

// EnablePath returns the endpoint enabling the job.
func (j *JobBase) EnablePath(base string) (resource.Path, error) {
	p, name, err := j.jobName(base)
	if err != nil {
		return nil, err
	}
	return wrap(p, resource.JobEnable{Name: name}), nil
}

// DisablePath returns the endpoint disabling the job.
func (j *JobBase) DisablePath(base string) (resource.Path, error) {
	p, name, err := j.jobName(base)
	if err != nil {
		return nil, err
	}
	return wrap(p, resource.JobDisable{Name: name}), nil
}

// PollSCMPath returns the endpoint triggering an SCM poll.
func (j *JobBase) PollSCMPath(base string) (resource.Path, error) {
	p, name, err := j.jobName(base)
	if err != nil {
		return nil, err
	}
	return wrap(p, resource.PollSCMJob{Name: name}), nil
}

// BuildPath returns the endpoint queueing a build. Parameterized jobs need
// withParameters.
func (j *JobBase) BuildPath(base string, withParameters bool) (resource.Path, error) {
	p, name, err := j.jobName(base)
	if err != nil {
		return nil, err
	}
	if withParameters {
		return wrap(p, resource.BuildJobWithParameters{Name: name}), nil
	}
	return wrap(p, resource.BuildJob{Name: name}), nil
}

// AddToViewPath returns the endpoint adding the job to a top-level view.
// Jobs inside folders cannot be added this way.
func (j *JobBase) AddToViewPath(base, view string) (resource.Path, error) {
	p, name, err := j.jobName(base)
	if err != nil {
		return nil, err
	}
	if len(resource.Folders(p)) > 0 {
		return nil, &InvalidURLError{URL: j.URL, Expected: ExpectJob}
	}
	return resource.AddJobToView{JobName: name, ViewName: resource.PlainName(view)}, nil
}

// RemoveFromViewPath is the inverse of AddToViewPath.
func (j *JobBase) RemoveFromViewPath(base, view string) (resource.Path, error) {
	p, name, err := j.jobName(base)
	if err != nil {
		return nil, err
	}
	if len(resource.Folders(p)) > 0 {
		return nil, &InvalidURLError{URL: j.URL, Expected: ExpectJob}
	}
	return resource.RemoveJobFromView{JobName: name, ViewName: resource.PlainName(view)}, nil
}

// AddJobPath returns the endpoint adding job to the view.
func (v *ShortView) AddJobPath(base, job string) (resource.Path, error) {
	p, err := resolve(v.URL, base, ExpectView)
	if err != nil {
		return nil, err
	}
	return resource.AddJobToView{JobName: resource.PlainName(job), ViewName: resource.Innermost(p).(resource.View).Name}, nil
}

// RemoveJobPath returns the endpoint removing job from the view.
func (v *ShortView) RemoveJobPath(base, job string) (resource.Path, error) {
	p, err := resolve(v.URL, base, ExpectView)
	if err != nil {
		return nil, err
	}
	return resource.RemoveJobFromView{JobName: resource.PlainName(job), ViewName: resource.Innermost(p).(resource.View).Name}, nil
}

func (j *JobBase) jobBase() *JobBase             { return j }
func (j *JobFields) jobFields() *JobFields       { return j }
func (b *BuildFields) buildFields() *BuildFields { return b }
func (v *ViewFields) viewFields() *ViewFields    { return v }

// Link is a resource a decoded record points at. Err is set when the URL
// found in the record does not resolve to the expected kind.
type Link struct {
	Rel  string
	Path resource.Path
	Err  error
}

// Links lists the resources x points at, resolved against base. Jobs also
// get their action endpoints. Values without links yield nothing.
func Links(base string, x tagged.Shape) []Link {
	var links []Link
	add := func(rel string, p resource.Path, err error) {
		links = append(links, Link{Rel: rel, Path: p, Err: err})
	}
	short := func(rel string, b *ShortBuild) {
		if b != nil {
			p, err := b.Path(base)
			add(rel, p, err)
		}
	}
	jobs := func(list []ShortJob) {
		for i := range list {
			p, err := list[i].Path(base)
			add("jobs/"+list[i].Name, p, err)
		}
	}

	if j, ok := x.(interface{ jobBase() *JobBase }); ok {
		jb := j.jobBase()
		p, err := resolve(jb.URL, base, ExpectJob)
		add("self", p, err)
		if err == nil {
			p, err := jb.EnablePath(base)
			add("enable", p, err)
			p, err = jb.DisablePath(base)
			add("disable", p, err)
			p, err = jb.PollSCMPath(base)
			add("poll_scm", p, err)
			p, err = jb.BuildPath(base, false)
			add("build", p, err)
			p, err = jb.BuildPath(base, true)
			add("build_with_parameters", p, err)
		}
	}
	if j, ok := x.(interface{ jobFields() *JobFields }); ok {
		jf := j.jobFields()
		short("last_build", jf.LastBuild)
		short("last_successful_build", jf.LastSuccessfulBuild)
		short("last_failed_build", jf.LastFailedBuild)
		short("last_completed_build", jf.LastCompletedBuild)
		if jf.QueueItem != nil {
			p, err := jf.QueueItem.Path(base)
			add("queue_item", p, err)
		}
	}
	if b, ok := x.(interface{ buildFields() *BuildFields }); ok {
		bf := b.buildFields()
		p, err := resolve(bf.URL, base, ExpectBuild)
		add("self", p, err)
		p, err = bf.JobPath(base)
		add("job", p, err)
		p, err = bf.ConsolePath(base)
		add("console", p, err)
	}
	if v, ok := x.(interface{ viewFields() *ViewFields }); ok {
		vf := v.viewFields()
		p, err := resolve(vf.URL, base, ExpectView)
		add("self", p, err)
		jobs(vf.Jobs)
	}

	switch t := x.(type) {
	case *Folder:
		jobs(t.Jobs)
	case *WorkflowMultiBranchProject:
		jobs(t.Jobs)
	case *QueueItem:
		p, err := t.Path(base)
		add("self", p, err)
		p, err = t.Task.Path(base)
		add("task", p, err)
		short("executable", t.Executable)
	case *Home:
		for i := range t.Views {
			p, err := t.Views[i].Path(base)
			add("views/"+t.Views[i].Name, p, err)
		}
		jobs(t.Jobs)
	case *MavenArtifactRecord:
		p, err := resolve(t.URL, base, ExpectMavenArtifactRecord)
		add("self", p, err)
		short("parent", &t.Parent)
	}
	return links
}
