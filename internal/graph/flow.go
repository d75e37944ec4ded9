package graph

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/moneytrail/internal/model"
)

// FlowSummary describes the money moving through one node.
type FlowSummary struct {
	Node            *model.GraphNode   `json:"node"`
	Incoming        []*model.GraphEdge `json:"incoming"`
	Outgoing        []*model.GraphEdge `json:"outgoing"`
	IncomingTotal   decimal.Decimal    `json:"incomingTotal"`
	OutgoingTotal   decimal.Decimal    `json:"outgoingTotal"`
	WithdrawalTotal decimal.Decimal    `json:"withdrawalTotal"`
	Predecessors    []*model.GraphNode `json:"predecessors"`
	Successors      []*model.GraphNode `json:"successors"`
}

// Flow summarizes the direct edges of nodeID.
func Flow(g *model.Graph, nodeID string) (FlowSummary, bool) {
	node := g.Node(nodeID)
	if node == nil {
		return FlowSummary{}, false
	}
	fs := FlowSummary{
		Node:            node,
		IncomingTotal:   decimal.Zero,
		OutgoingTotal:   decimal.Zero,
		WithdrawalTotal: decimal.Zero,
		Predecessors:    Predecessors(g, nodeID),
		Successors:      Successors(g, nodeID),
	}
	for _, e := range g.Edges {
		if e.Target == nodeID {
			fs.Incoming = append(fs.Incoming, e)
			fs.IncomingTotal = fs.IncomingTotal.Add(e.Amount)
		}
		if e.Source == nodeID {
			fs.Outgoing = append(fs.Outgoing, e)
			fs.OutgoingTotal = fs.OutgoingTotal.Add(e.Amount)
			if e.Kind == model.EdgeWithdrawal {
				fs.WithdrawalTotal = fs.WithdrawalTotal.Add(e.Amount)
			}
		}
	}
	return fs, true
}

// Predecessors returns the distinct sources of edges into nodeID, in edge order.
func Predecessors(g *model.Graph, nodeID string) []*model.GraphNode {
	return neighbours(g, nodeID, true)
}

// Successors returns the distinct targets of edges out of nodeID, in edge order.
func Successors(g *model.Graph, nodeID string) []*model.GraphNode {
	return neighbours(g, nodeID, false)
}

func neighbours(g *model.Graph, nodeID string, up bool) []*model.GraphNode {
	idx := g.NodeIndex()
	seen := make(map[string]bool)
	var out []*model.GraphNode
	for _, e := range g.Edges {
		from, to := e.Source, e.Target
		if up {
			from, to = e.Target, e.Source
		}
		if from != nodeID || seen[to] {
			continue
		}
		if n, ok := idx[to]; ok {
			seen[to] = true
			out = append(out, n)
		}
	}
	return out
}

// ChainUp returns every node from which money reaches nodeID, nearest first.
func ChainUp(g *model.Graph, nodeID string) []*model.GraphNode {
	return walk(g, nodeID, true)
}

// ChainDown returns every node reachable from nodeID, nearest first.
func ChainDown(g *model.Graph, nodeID string) []*model.GraphNode {
	return walk(g, nodeID, false)
}

// walk is a breadth-first traversal. The start node is never included, even
// when a cycle leads back to it.
func walk(g *model.Graph, nodeID string, up bool) []*model.GraphNode {
	visited := map[string]bool{nodeID: true}
	queue := []string{nodeID}
	var out []*model.GraphNode
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range neighbours(g, cur, up) {
			if visited[n.ID] {
				continue
			}
			visited[n.ID] = true
			out = append(out, n)
			queue = append(queue, n.ID)
		}
	}
	return out
}

// Layers returns the distinct layers present in nodes, ascending.
func Layers(nodes []*model.GraphNode) []int {
	seen := make(map[int]bool)
	var out []int
	for _, n := range nodes {
		if !seen[n.Layer] {
			seen[n.Layer] = true
			out = append(out, n.Layer)
		}
	}
	sort.Ints(out)
	return out
}
