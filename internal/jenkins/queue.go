package jenkins

import (
	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

// QueueItem is a build waiting for an executor. Executable is set once the
// item left the queue.
type QueueItem struct {
	Blocked                    bool        `json:"blocked"`
	Buildable                  bool        `json:"buildable"`
	Cancelled                  *bool       `json:"cancelled"`
	ID                         uint32      `json:"id"`
	InQueueSince               uint64      `json:"in_queue_since"`
	Params                     string      `json:"params"`
	Stuck                      bool        `json:"stuck"`
	Task                       ShortJob    `json:"task"`
	URL                        string      `json:"url"`
	Why                        *string     `json:"why"`
	BuildableStartMilliseconds *uint64     `json:"buildable_start_milliseconds"`
	Executable                 *ShortBuild `json:"executable"`
	Actions                    []Action    `json:"actions"`
}

func (q *QueueItem) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Optional("blocked", tagged.Bool(&q.Blocked)),
		tagged.Optional("buildable", tagged.Bool(&q.Buildable)),
		tagged.Optional("cancelled", tagged.Nullable(&q.Cancelled, tagged.Bool)),
		tagged.Required("id", tagged.Uint(&q.ID)),
		tagged.Optional("in_queue_since", tagged.Uint(&q.InQueueSince)),
		tagged.Optional("params", tagged.String(&q.Params)),
		tagged.Optional("stuck", tagged.Bool(&q.Stuck)),
		tagged.Required("task", tagged.Record(&q.Task)),
		tagged.Required("url", tagged.String(&q.URL)),
		tagged.Optional("why", tagged.Nullable(&q.Why, tagged.String)),
		tagged.Optional("buildable_start_milliseconds", tagged.Nullable(&q.BuildableStartMilliseconds, tagged.Uint[uint64])),
		tagged.Optional("executable", tagged.Nullable(&q.Executable, tagged.Record[ShortBuild])),
		tagged.Optional("actions", tagged.List(&q.Actions, Actions.NullableDecoder)),
	}
}

// Queue is the response of /queue/api/json.
type Queue struct {
	Items []QueueItem `json:"items"`
}

func (q *Queue) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("items", tagged.List(&q.Items, tagged.Record[QueueItem])),
	}
}
