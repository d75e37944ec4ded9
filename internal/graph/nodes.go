package graph

import "github.com/cleared-dev/moneytrail/internal/model"

// nodeSet holds nodes by id and remembers insertion order.
type nodeSet struct {
	byID  map[string]*model.GraphNode
	order []*model.GraphNode
}

func newNodeSet() *nodeSet {
	return &nodeSet{byID: make(map[string]*model.GraphNode)}
}

func (s *nodeSet) get(nodeID string) (*model.GraphNode, bool) {
	n, ok := s.byID[nodeID]
	return n, ok
}

func (s *nodeSet) add(n *model.GraphNode) {
	s.byID[n.ID] = n
	s.order = append(s.order, n)
}

func (s *nodeSet) remove(nodeID string) {
	delete(s.byID, nodeID)
}

// list returns the live nodes in insertion order.
func (s *nodeSet) list() []*model.GraphNode {
	out := make([]*model.GraphNode, 0, len(s.byID))
	for _, n := range s.order {
		if s.byID[n.ID] == n {
			out = append(out, n)
		}
	}
	return out
}
