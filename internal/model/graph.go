package model

import "github.com/shopspring/decimal"

// NodeKind distinguishes account nodes from terminal withdrawal nodes.
type NodeKind string

const (
	NodeAccount    NodeKind = "account"
	NodeWithdrawal NodeKind = "withdrawal"
)

// EdgeKind distinguishes transfer edges from withdrawal edges.
type EdgeKind string

const (
	EdgeTransfer   EdgeKind = "transfer"
	EdgeWithdrawal EdgeKind = "withdrawal"
)

// GraphNode is an account at a layer, or a single withdrawal.
type GraphNode struct {
	ID                 string          `json:"id"`
	Account            string          `json:"account"` // most complete textual form seen
	Layer              int             `json:"layer"`
	Kind               NodeKind        `json:"kind"`
	WithdrawalCategory Category        `json:"withdrawalCategory,omitempty"`
	TotalInflow        decimal.Decimal `json:"totalInflow"`
	TotalOutflow       decimal.Decimal `json:"totalOutflow"`
	Transactions       []Transaction   `json:"transactions"`
	Bank               string          `json:"bank,omitempty"`
	IFSC               string          `json:"ifsc,omitempty"`
	ReferenceSent      string          `json:"referenceSent,omitempty"`
	ReferenceReceived  string          `json:"referenceReceived,omitempty"`
	LinkageVerified    bool            `json:"linkageVerified,omitempty"`
}

// GraphEdge connects two nodes. Source and Target are rewritten only when an
// endpoint is merged away.
type GraphEdge struct {
	ID               string          `json:"id"`
	Source           string          `json:"source"`
	Target           string          `json:"target"`
	Amount           decimal.Decimal `json:"amount"`
	Reference        string          `json:"reference"`
	Date             string          `json:"date"`
	Kind             EdgeKind        `json:"kind"`
	LinkageVerified  bool            `json:"linkageVerified,omitempty"`
	ReferenceMatched bool            `json:"referenceMatched,omitempty"` // withdrawal edges only
	Bank             string          `json:"bank,omitempty"`
	IFSC             string          `json:"ifsc,omitempty"`
}

// Graph is the output of a build.
type Graph struct {
	Nodes []*GraphNode `json:"nodes"`
	Edges []*GraphEdge `json:"edges"`
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *GraphNode {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// NodeIndex maps node ids to nodes.
func (g *Graph) NodeIndex() map[string]*GraphNode {
	idx := make(map[string]*GraphNode, len(g.Nodes))
	for _, n := range g.Nodes {
		idx[n.ID] = n
	}
	return idx
}
