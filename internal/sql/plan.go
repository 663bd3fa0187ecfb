package sql

import "fmt"

type NodeType int

const (
	NodeBegin NodeType = iota
	NodeCommit
	NodeRollback
	NodeSet
	NodeUnset
	NodePointGet
	NodeScan
)

type PlanNode interface {
	Type() NodeType
	String() string
}

type BeginNode struct{}

func (n *BeginNode) Type() NodeType { return NodeBegin }
func (n *BeginNode) String() string { return "Begin" }

type CommitNode struct{}

func (n *CommitNode) Type() NodeType { return NodeCommit }
func (n *CommitNode) String() string { return "Commit" }

type RollbackNode struct{}

func (n *RollbackNode) Type() NodeType { return NodeRollback }
func (n *RollbackNode) String() string { return "Rollback" }

// SetNode writes one or more rows.
type SetNode struct {
	Pairs []KeyValue
}

type KeyValue struct {
	Key   string
	Value uint32
}

func (n *SetNode) Type() NodeType { return NodeSet }
func (n *SetNode) String() string { return fmt.Sprintf("Set(%v)", n.Pairs) }

type UnsetNode struct {
	Key string
}

func (n *UnsetNode) Type() NodeType { return NodeUnset }
func (n *UnsetNode) String() string { return fmt.Sprintf("Unset(%s)", n.Key) }

type PointGetNode struct {
	Key string
}

func (n *PointGetNode) Type() NodeType { return NodePointGet }
func (n *PointGetNode) String() string { return fmt.Sprintf("PointGet(%s)", n.Key) }

// ScanNode lists committed state.
type ScanNode struct{}

func (n *ScanNode) Type() NodeType { return NodeScan }
func (n *ScanNode) String() string { return "Scan" }
