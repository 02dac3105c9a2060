package jenkins

import (
	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

// PipelineNode is a node of a pipeline flow graph. None of the known node
// types declare fields; their content stays in the envelope.
type PipelineNode interface {
	tagged.Shape
	isPipelineNode()
}

type UnknownPipelineNode struct {
	Class tagged.Discriminator `json:"_class"`
}

func (*UnknownPipelineNode) Fields() tagged.Fields { return nil }
func (*UnknownPipelineNode) isPipelineNode()       {}

type (
	FlowStartNode struct{}
	FlowEndNode   struct{}
	StepStartNode struct{}
	StepAtomNode  struct{}
	StepEndNode   struct{}
)

func (*FlowStartNode) Fields() tagged.Fields { return nil }
func (*FlowStartNode) Class() string         { return "org.jenkinsci.plugins.workflow.graph.FlowStartNode" }
func (*FlowStartNode) isPipelineNode()       {}
func (*FlowEndNode) Fields() tagged.Fields   { return nil }
func (*FlowEndNode) Class() string           { return "org.jenkinsci.plugins.workflow.graph.FlowEndNode" }
func (*FlowEndNode) isPipelineNode()         {}
func (*StepStartNode) Fields() tagged.Fields { return nil }
func (*StepStartNode) Class() string         { return "org.jenkinsci.plugins.workflow.cps.nodes.StepStartNode" }
func (*StepStartNode) isPipelineNode()       {}
func (*StepAtomNode) Fields() tagged.Fields  { return nil }
func (*StepAtomNode) Class() string          { return "org.jenkinsci.plugins.workflow.cps.nodes.StepAtomNode" }
func (*StepAtomNode) isPipelineNode()        {}
func (*StepEndNode) Fields() tagged.Fields   { return nil }
func (*StepEndNode) Class() string           { return "org.jenkinsci.plugins.workflow.cps.nodes.StepEndNode" }
func (*StepEndNode) isPipelineNode()         {}

// PipelineNodes is the PipelineNode catalog.
var PipelineNodes = newCatalog("PipelineNode",
	func(d tagged.Discriminator) PipelineNode { return &UnknownPipelineNode{Class: d} },
	func() PipelineNode { return new(FlowStartNode) },
	func() PipelineNode { return new(FlowEndNode) },
	func() PipelineNode { return new(StepStartNode) },
	func() PipelineNode { return new(StepAtomNode) },
	func() PipelineNode { return new(StepEndNode) },
)

type CommonPipelineNode struct {
	tagged.Envelope
}

func (*CommonPipelineNode) Fields() tagged.Fields { return nil }

func DecodeCommonPipelineNode(v any) (*CommonPipelineNode, error) {
	n := new(CommonPipelineNode)
	env, err := tagged.DecodeEnvelope(v, PipelineNodes.Family(), n)
	if err != nil {
		return nil, err
	}
	n.Envelope = env
	return n, nil
}
