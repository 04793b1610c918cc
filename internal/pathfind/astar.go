// Package pathfind implements the deterministic, terrain-cost, mask-aware A*
// search from spec §4.11 / C11, adapted directly from
// chunk-server/internal/pathfinding/navigator.go's heap-based A* (container/
// heap priority queue, closed set keyed by coordinate; the search loop is
// bounded by a node budget and takes no context) generalized from block-navigation-for-units to
// village-entrance-to-entrance route planning with OBSTACLE_COST semantics.
package pathfind

import (
	"container/heap"
	"fmt"
	"hash/fnv"
	"math"

	"villageforge/internal/model"
	"villageforge/internal/worldapi"
)

const (
	// ObstacleCost marks a step as impassable (spec §4.11).
	ObstacleCost = 20.0
	flatCost     = 1.0
)

// Planner runs bounded A* searches over the terrain surface for one village.
type Planner struct {
	world     worldapi.Provider
	materials *worldapi.Registry
	masks     []model.VolumeMask

	MaxNodes      int
	MaxDistance   int
	MinDistance   int
	MaxSlope      int
	SlopeMul      float64
	WaterCost     float64
}

// New returns a Planner bound to world and the given village's masks.
func New(world worldapi.Provider, materials *worldapi.Registry, masks []model.VolumeMask) *Planner {
	if materials == nil {
		materials = worldapi.Default
	}
	return &Planner{
		world:       world,
		materials:   materials,
		masks:       masks,
		MaxNodes:    5000,
		MaxDistance: 200,
		MinDistance: 3,
		MaxSlope:    3,
		SlopeMul:    1.0,
		WaterCost:   10,
	}
}

// node is one lattice position being explored.
type node struct {
	x, y, z int
}

// Result is the outcome of one FindPath call.
type Result struct {
	Found bool
	Path  []worldapi.BlockCoord
	Hash  string
}

// FindPath searches from start to goal, returning Found=false if the range
// precheck fails, the goal is unreachable, or the node budget is exhausted
// (spec §4.11 / P9).
func (p *Planner) FindPath(start, goal worldapi.BlockCoord) Result {
	dist := euclidean(start, goal)
	if dist > float64(p.MaxDistance) || dist < float64(p.MinDistance) {
		return Result{Found: false}
	}

	open := &priorityQueue{}
	heap.Init(open)
	heap.Push(open, &queueItem{n: node{start.X, start.Y, start.Z}, f: 0})

	cameFrom := map[node]node{}
	gScore := map[node]float64{{start.X, start.Y, start.Z}: 0}
	closed := map[node]bool{}

	expanded := 0
	for open.Len() > 0 {
		if expanded >= p.MaxNodes {
			return Result{Found: false}
		}
		current := heap.Pop(open).(*queueItem).n
		if closed[current] {
			continue
		}
		closed[current] = true
		expanded++

		if withinGoalBand(current, goal) {
			path := reconstruct(cameFrom, current)
			return Result{Found: true, Path: path, Hash: pathHash(path)}
		}

		for _, nb := range p.neighbors(current) {
			if closed[nb.n] {
				continue
			}
			stepCost := p.stepCost(current, nb.n)
			if stepCost >= ObstacleCost {
				continue
			}
			tentative := gScore[current] + stepCost
			if existing, ok := gScore[nb.n]; ok && tentative >= existing {
				continue
			}
			cameFrom[nb.n] = current
			gScore[nb.n] = tentative
			f := tentative + heuristic(nb.n, goal)
			heap.Push(open, &queueItem{n: nb.n, f: f})
		}
	}

	return Result{Found: false}
}

// withinGoalBand reports whether current is within +/-2 on both X and Z of
// goal (spec §4.11 termination condition).
func withinGoalBand(current node, goal worldapi.BlockCoord) bool {
	dx := current.x - goal.X
	dz := current.z - goal.Z
	return abs(dx) <= 2 && abs(dz) <= 2
}

// neighborOffset fixes the deterministic generation order required for P5:
// dx in {-1,0,1} x dz in {-1,0,1} x dy in {-1,0,1}, skipping (0,0,0).
type neighborOffset struct{ dx, dy, dz int }

var fixedNeighborOrder = buildNeighborOrder()

func buildNeighborOrder() []neighborOffset {
	offsets := make([]neighborOffset, 0, 26)
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				offsets = append(offsets, neighborOffset{dx: dx, dy: dy, dz: dz})
			}
		}
	}
	return offsets
}

type neighborCandidate struct {
	n node
}

func (p *Planner) neighbors(n node) []neighborCandidate {
	out := make([]neighborCandidate, 0, len(fixedNeighborOrder))
	for _, o := range fixedNeighborOrder {
		out = append(out, neighborCandidate{n: node{x: n.x + o.dx, y: n.y + o.dy, z: n.z + o.dz}})
	}
	return out
}

// stepCost implements the cost function from spec §4.11.
func (p *Planner) stepCost(from, to node) float64 {
	if model.AnyContains(p.masks, to.x, to.y, to.z) {
		return ObstacleCost
	}
	if model.AnyContains(p.masks, to.x, to.y-1, to.z) {
		return ObstacleCost // no walking on roofs
	}

	below := p.world.BlockAt(to.x, to.y-1, to.z)
	if !p.materials.IsNaturalGround(below.Material) && !p.materials.IsPathMaterial(below.Material) {
		return ObstacleCost
	}

	cost := flatCost
	dy := to.y - from.y
	if dy > 0 {
		cost += float64(dy) * p.SlopeMul
		maxSlope := p.MaxSlope
		if maxSlope <= 0 {
			maxSlope = 3
		}
		if dy > maxSlope {
			return ObstacleCost
		}
	}

	if p.materials.IsFluid(below.Material) {
		cost += p.WaterCost
	}
	here := p.world.BlockAt(to.x, to.y, to.z)
	if p.materials.IsFluid(here.Material) {
		cost += p.WaterCost
	}

	if here.IsSolid {
		switch {
		case p.materials.IsNaturalGround(here.Material), p.materials.IsPathMaterial(here.Material):
			// stays at baseline cost
		case p.materials.IsObstruction(here.Material):
			return ObstacleCost
		default:
			cost += 2
		}
	}

	return cost
}

func heuristic(n node, goal worldapi.BlockCoord) float64 {
	return float64(abs(n.x-goal.X) + abs(n.z-goal.Z))
}

func euclidean(a, b worldapi.BlockCoord) float64 {
	dx := float64(a.X - b.X)
	dz := float64(a.Z - b.Z)
	return math.Sqrt(dx*dx + dz*dz)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func reconstruct(cameFrom map[node]node, end node) []worldapi.BlockCoord {
	path := []worldapi.BlockCoord{{X: end.x, Y: end.y, Z: end.z}}
	current := end
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, worldapi.BlockCoord{X: prev.x, Y: prev.y, Z: prev.z})
		current = prev
	}
	// reverse into start->end order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// pathHash returns a content-addressed digest of the ordered node list, for
// the regression-testing "path determinism hash" from spec §6.
func pathHash(path []worldapi.BlockCoord) string {
	h := fnv.New64a()
	for _, p := range path {
		_, _ = fmt.Fprintf(h, "%d,%d,%d;", p.X, p.Y, p.Z)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
