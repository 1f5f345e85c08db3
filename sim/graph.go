// Builds the NavigationGraph: an immutable grid graph over every facility
// cell, with a Dijkstra shortest-path query used for routing distance.

package sim

import (
	"container/heap"
	"math"
)

// NavigationGraph is the routable grid for one facility. Nodes are all cells
// (floor, x, y) in the bounding box, including aisles, entrances and exits;
// edges are 4-directional within a floor plus bidirectional links between
// vertically aligned entrance cells on adjacent floors. All edge weights are
// 1. The graph never models occupancy: routing cost reflects geometry only.
//
// Nodes are addressed by dense integer IDs so the adjacency lists index into
// flat slices instead of hashing string keys.
type NavigationGraph struct {
	floors int
	width  int
	height int
	adj    [][]int32
}

// NewNavigationGraph builds the grid graph for the given layout.
func NewNavigationGraph(layout *LayoutConfig) *NavigationGraph {
	g := &NavigationGraph{
		floors: layout.Floors,
		width:  layout.Width,
		height: layout.Height,
	}
	g.adj = make([][]int32, g.floors*g.width*g.height)

	// In-floor 4-adjacency.
	dirs := [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	for floor := 0; floor < g.floors; floor++ {
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				id := g.NodeID(Position{Floor: floor, X: x, Y: y})
				for _, d := range dirs {
					nx, ny := x+d[0], y+d[1]
					if nx < 0 || nx >= g.width || ny < 0 || ny >= g.height {
						continue
					}
					g.adj[id] = append(g.adj[id], int32(g.NodeID(Position{Floor: floor, X: nx, Y: ny})))
				}
			}
		}
	}

	// Entrance cells double as inter-floor connectors (elevators/ramps).
	for floor := 0; floor < g.floors-1; floor++ {
		for _, e := range layout.Entrances {
			lo := g.NodeID(Position{Floor: floor, X: e.X, Y: e.Y})
			hi := g.NodeID(Position{Floor: floor + 1, X: e.X, Y: e.Y})
			g.adj[lo] = append(g.adj[lo], int32(hi))
			g.adj[hi] = append(g.adj[hi], int32(lo))
		}
	}
	return g
}

// NodeID maps a position to its dense node ID. The caller must pass an
// in-bounds position.
func (g *NavigationGraph) NodeID(p Position) int {
	return (p.Floor*g.height+p.Y)*g.width + p.X
}

// PositionOf is the inverse of NodeID.
func (g *NavigationGraph) PositionOf(id int) Position {
	x := id % g.width
	rest := id / g.width
	return Position{Floor: rest / g.height, X: x, Y: rest % g.height}
}

// Contains reports whether the position lies inside the facility bounding box.
func (g *NavigationGraph) Contains(p Position) bool {
	return p.Floor >= 0 && p.Floor < g.floors &&
		p.X >= 0 && p.X < g.width &&
		p.Y >= 0 && p.Y < g.height
}

// NumNodes returns the node count (all cells on all floors).
func (g *NavigationGraph) NumNodes() int {
	return len(g.adj)
}

// pathItem is a tentative-distance entry in the Dijkstra priority queue.
type pathItem struct {
	node int
	dist float64
}

// pathQueue implements heap.Interface ordered by tentative distance.
// See the canonical Golang example: https://pkg.go.dev/container/heap
type pathQueue []pathItem

func (pq pathQueue) Len() int            { return len(pq) }
func (pq pathQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq pathQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *pathQueue) Push(x any)         { *pq = append(*pq, x.(pathItem)) }
func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra from start to target over unit-weight edges and
// returns the distance and the node-by-node path, start first.
//
// An unreachable or out-of-bounds target is not an error: the distance is
// +Inf and the path is empty, and callers must handle that result. The search
// exits early once the target is popped; stale queue entries (popped with a
// distance worse than the recorded best) are skipped. No memoization happens
// across calls.
func (g *NavigationGraph) ShortestPath(start, target Position) (float64, []Position) {
	if !g.Contains(start) || !g.Contains(target) {
		return math.Inf(1), nil
	}
	startID := g.NodeID(start)
	targetID := g.NodeID(target)

	dist := make([]float64, g.NumNodes())
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	prev := make([]int32, g.NumNodes())
	for i := range prev {
		prev[i] = -1
	}
	dist[startID] = 0

	pq := pathQueue{{node: startID, dist: 0}}
	for pq.Len() > 0 {
		cur := heap.Pop(&pq).(pathItem)
		if cur.node == targetID {
			break
		}
		if cur.dist > dist[cur.node] {
			continue
		}
		for _, nb := range g.adj[cur.node] {
			d := cur.dist + 1
			if d < dist[nb] {
				dist[nb] = d
				prev[nb] = int32(cur.node)
				heap.Push(&pq, pathItem{node: int(nb), dist: d})
			}
		}
	}

	if math.IsInf(dist[targetID], 1) {
		return math.Inf(1), nil
	}

	// Walk the predecessor chain backward from target, then reverse.
	var path []Position
	for at := int32(targetID); at != -1; at = prev[at] {
		path = append(path, g.PositionOf(int(at)))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return dist[targetID], path
}

// ManhattanDistance is the in-floor grid distance between two cell
// coordinates, ignoring floors. Used as a routing fallback and for
// entrance-proximity scoring.
func ManhattanDistance(a, b Location) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
