package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/moneytrail/internal/model"
)

func ids(nodes []*model.GraphNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func chainGraph(t *testing.T) *model.Graph {
	t.Helper()
	transfers := []*model.MoneyTransfer{
		transfer("A", "B", 100, 1),
		transfer("B", "C", 60, 2),
		transfer("B", "D", 40, 2),
	}
	withdrawals := []*model.Withdrawal{withdrawal("w1", "C", 25, "")}
	g, _ := buildValid(t, transfers, withdrawals, nil, params(4, 0))
	return g
}

func TestPredecessorsSuccessors(t *testing.T) {
	g := chainGraph(t)

	assert.Equal(t, []string{"A_1"}, ids(Predecessors(g, "B_2")))
	assert.Equal(t, []string{"C_3", "D_3"}, ids(Successors(g, "B_2")))
	assert.Empty(t, Predecessors(g, "A_1"))
	assert.Empty(t, Successors(g, "missing"))
}

func TestChainUpDown(t *testing.T) {
	g := chainGraph(t)

	assert.Equal(t, []string{"B_2", "A_1"}, ids(ChainUp(g, "C_3")))
	assert.Equal(t, []string{"B_2", "C_3", "D_3", "ATM_C_w1"}, ids(ChainDown(g, "A_1")))
}

func TestChain_Cycle(t *testing.T) {
	g := &model.Graph{
		Nodes: []*model.GraphNode{{ID: "x"}, {ID: "y"}},
		Edges: []*model.GraphEdge{
			{ID: "e1", Source: "x", Target: "y"},
			{ID: "e2", Source: "y", Target: "x"},
		},
	}

	assert.Equal(t, []string{"y"}, ids(ChainDown(g, "x")))
	assert.Equal(t, []string{"y"}, ids(ChainUp(g, "x")))
}

func TestFlow(t *testing.T) {
	g := chainGraph(t)

	fs, ok := Flow(g, "C_3")
	require.True(t, ok)
	assert.Equal(t, "C_3", fs.Node.ID)
	assert.Len(t, fs.Incoming, 1)
	assert.Len(t, fs.Outgoing, 1)
	assert.True(t, dec(60).Equal(fs.IncomingTotal))
	assert.True(t, dec(25).Equal(fs.OutgoingTotal))
	assert.True(t, dec(25).Equal(fs.WithdrawalTotal))
	assert.Equal(t, []string{"B_2"}, ids(fs.Predecessors))

	_, ok = Flow(g, "nope")
	assert.False(t, ok)
}

func TestLayers(t *testing.T) {
	nodes := []*model.GraphNode{{Layer: 3}, {Layer: 1}, {Layer: 1}, {Layer: 2}}
	assert.Equal(t, []int{1, 2, 3}, Layers(nodes))
	assert.Empty(t, Layers(nil))
}
