package jenkins

import (
	"github.com/rflorenc/jenkins-workbench/internal/tagged"
	"github.com/rflorenc/jenkins-workbench/internal/wire"
)

// Computer is the controller or an agent.
type Computer interface {
	tagged.Shape
	isComputer()
}

type UnknownComputer struct {
	Class tagged.Discriminator `json:"_class"`
}

func (*UnknownComputer) Fields() tagged.Fields { return nil }
func (*UnknownComputer) isComputer()           {}

type ComputerFields struct {
	DisplayName         string                  `json:"display_name"`
	Description         string                  `json:"description"`
	Icon                string                  `json:"icon"`
	IconClassName       string                  `json:"icon_class_name"`
	Idle                bool                    `json:"idle"`
	JnlpAgent           bool                    `json:"jnlp_agent"`
	LaunchSupported     bool                    `json:"launch_supported"`
	ManualLaunchAllowed bool                    `json:"manual_launch_allowed"`
	NumExecutors        uint32                  `json:"num_executors"`
	Offline             bool                    `json:"offline"`
	OfflineCause        MonitorData             `json:"offline_cause"`
	OfflineCauseReason  *string                 `json:"offline_cause_reason"`
	TemporarilyOffline  bool                    `json:"temporarily_offline"`
	MonitorData         map[string]MonitorValue `json:"monitor_data"`
	Executors           []Executor              `json:"executors"`
	OneOffExecutors     []Executor              `json:"one_off_executors"`
}

func (c *ComputerFields) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("display_name", tagged.String(&c.DisplayName)),
		tagged.Optional("description", tagged.String(&c.Description)),
		tagged.Optional("icon", tagged.String(&c.Icon)),
		tagged.Optional("icon_class_name", tagged.String(&c.IconClassName)),
		tagged.Optional("idle", tagged.Bool(&c.Idle)),
		tagged.Optional("jnlp_agent", tagged.Bool(&c.JnlpAgent)),
		tagged.Optional("launch_supported", tagged.Bool(&c.LaunchSupported)),
		tagged.Optional("manual_launch_allowed", tagged.Bool(&c.ManualLaunchAllowed)),
		tagged.Optional("num_executors", tagged.Uint(&c.NumExecutors)),
		tagged.Optional("offline", tagged.Bool(&c.Offline)),
		tagged.Optional("offline_cause", Monitors.NullableDecoder(&c.OfflineCause)),
		tagged.Optional("offline_cause_reason", tagged.Nullable(&c.OfflineCauseReason, tagged.String)),
		tagged.Optional("temporarily_offline", tagged.Bool(&c.TemporarilyOffline)),
		tagged.Optional("monitor_data", tagged.Map(&c.MonitorData, tagged.Into[MonitorValue])),
		tagged.Optional("executors", tagged.List(&c.Executors, tagged.Into[Executor])),
		tagged.Optional("one_off_executors", tagged.List(&c.OneOffExecutors, tagged.Into[Executor])),
	}
}

type MasterComputer struct{ ComputerFields }

func (*MasterComputer) Class() string { return "hudson.model.Hudson$MasterComputer" }
func (*MasterComputer) isComputer()   {}

type SlaveComputer struct{ ComputerFields }

func (*SlaveComputer) Class() string { return "hudson.slave.SlaveComputer" }
func (*SlaveComputer) isComputer()   {}

// Computers is the Computer catalog.
var Computers = newCatalog("Computer",
	func(d tagged.Discriminator) Computer { return &UnknownComputer{Class: d} },
	func() Computer { return new(MasterComputer) },
	func() Computer { return new(SlaveComputer) },
)

type CommonComputer struct {
	tagged.Envelope
	ComputerFields
}

func DecodeCommonComputer(v any) (*CommonComputer, error) {
	c := new(CommonComputer)
	env, err := tagged.DecodeEnvelope(v, Computers.Family(), &c.ComputerFields)
	if err != nil {
		return nil, err
	}
	c.Envelope = env
	return c, nil
}

// ComputerSet is the response of /computer/api/json.
type ComputerSet struct {
	DisplayName    string     `json:"display_name"`
	BusyExecutors  uint32     `json:"busy_executors"`
	TotalExecutors uint32     `json:"total_executors"`
	Computers      []Computer `json:"computers"`
}

func (s *ComputerSet) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Optional("display_name", tagged.String(&s.DisplayName)),
		tagged.Optional("busy_executors", tagged.Uint(&s.BusyExecutors)),
		tagged.Optional("total_executors", tagged.Uint(&s.TotalExecutors)),
		tagged.Required("computers", tagged.List(&s.Computers, Computers.Decoder)),
	}
}

// Executor is an executor slot. Slots the server reports without details
// decode with MissingData set.
type Executor struct {
	CurrentExecutable *ShortBuild `json:"current_executable"`
	LikelyStuck       bool        `json:"likely_stuck"`
	Number            uint32      `json:"number"`
	Progress          int32       `json:"progress"` // percent, -1 when idle
	MissingData       bool        `json:"missing_data,omitempty"`
}

func (e *Executor) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Optional("current_executable", tagged.Nullable(&e.CurrentExecutable, tagged.Record[ShortBuild])),
		tagged.Required("likely_stuck", tagged.Bool(&e.LikelyStuck)),
		tagged.Required("number", tagged.Uint(&e.Number)),
		tagged.Required("progress", tagged.Int(&e.Progress)),
	}
}

func (e *Executor) UnmarshalWire(v any) error {
	if _, ok := v.(*wire.Object); !ok {
		return &tagged.TypeMismatchError{Expected: "object", Actual: wire.Kind(v)}
	}
	var x Executor
	if err := tagged.DecodeShape(v, "record", "Executor", &x); err != nil {
		x = Executor{MissingData: true}
	}
	*e = x
	return nil
}

// MonitorData is a node monitor reading.
type MonitorData interface {
	tagged.Shape
	isMonitorData()
}

type UnknownMonitorData struct {
	Class tagged.Discriminator `json:"_class"`
}

func (*UnknownMonitorData) Fields() tagged.Fields { return nil }
func (*UnknownMonitorData) isMonitorData()        {}

type SwapSpaceMonitor struct {
	AvailablePhysicalMemory uint64 `json:"available_physical_memory"`
	AvailableSwapSpace      uint64 `json:"available_swap_space"`
	TotalPhysicalMemory     uint64 `json:"total_physical_memory"`
	TotalSwapSpace          uint64 `json:"total_swap_space"`
}

func (m *SwapSpaceMonitor) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Required("available_physical_memory", tagged.Uint(&m.AvailablePhysicalMemory)),
		tagged.Required("available_swap_space", tagged.Uint(&m.AvailableSwapSpace)),
		tagged.Required("total_physical_memory", tagged.Uint(&m.TotalPhysicalMemory)),
		tagged.Required("total_swap_space", tagged.Uint(&m.TotalSwapSpace)),
	}
}
func (*SwapSpaceMonitor) Class() string  { return "hudson.node_monitors.SwapSpaceMonitor$MemoryUsage2" }
func (*SwapSpaceMonitor) isMonitorData() {}

type DiskSpace struct {
	Timestamp uint64 `json:"timestamp"`
	Path      string `json:"path"`
	Size      uint64 `json:"size"`
}

func (m *DiskSpace) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Optional("timestamp", tagged.Uint(&m.Timestamp)),
		tagged.Required("path", tagged.String(&m.Path)),
		tagged.Required("size", tagged.Uint(&m.Size)),
	}
}
func (*DiskSpace) Class() string  { return "hudson.node_monitors.DiskSpaceMonitorDescriptor$DiskSpace" }
func (*DiskSpace) isMonitorData() {}

type ResponseTime struct {
	Timestamp uint64 `json:"timestamp"`
	Average   uint64 `json:"average"`
}

func (m *ResponseTime) Fields() tagged.Fields {
	return tagged.Fields{
		tagged.Optional("timestamp", tagged.Uint(&m.Timestamp)),
		tagged.Required("average", tagged.Uint(&m.Average)),
	}
}
func (*ResponseTime) Class() string  { return "hudson.node_monitors.ResponseTimeMonitor$Data" }
func (*ResponseTime) isMonitorData() {}

type ClockDifference struct {
	Diff int64 `json:"diff"`
}

func (m *ClockDifference) Fields() tagged.Fields {
	return tagged.Fields{tagged.Required("diff", tagged.Int(&m.Diff))}
}
func (*ClockDifference) Class() string  { return "hudson.util.ClockDifference" }
func (*ClockDifference) isMonitorData() {}

// Monitors is the MonitorData catalog.
var Monitors = newCatalog("MonitorData",
	func(d tagged.Discriminator) MonitorData { return &UnknownMonitorData{Class: d} },
	func() MonitorData { return new(SwapSpaceMonitor) },
	func() MonitorData { return new(DiskSpace) },
	func() MonitorData { return new(ResponseTime) },
	func() MonitorData { return new(ClockDifference) },
)

// MonitorValue is one entry of a computer's monitor data: a reading, a
// bare string (architecture monitor), or nothing.
type MonitorValue struct {
	Text string      `json:"text,omitempty"`
	Data MonitorData `json:"data,omitempty"`
}

func (m *MonitorValue) UnmarshalWire(v any) error {
	switch t := v.(type) {
	case nil:
		*m = MonitorValue{}
	case string:
		*m = MonitorValue{Text: t}
	default:
		d, err := Monitors.Decode(v)
		if err != nil {
			return err
		}
		*m = MonitorValue{Data: d}
	}
	return nil
}
