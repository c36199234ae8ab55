package domain

import "sort"

// Graph is the arena form of the internal import graph: modules as indices,
// edges as index lists. Cycles carry no ownership hazard here, and analyses
// over the arena are read-only.
type Graph struct {
	nodes []string
	index map[string]int
	out   [][]int
	in    [][]int
}

// NewGraph builds the arena from an index, keeping only internal resolved
// edges; external targets never participate in layer or cycle analysis.
func NewGraph(idx *ProjectIndex) *Graph {
	nodes := idx.SortedPaths()
	g := &Graph{
		nodes: nodes,
		index: make(map[string]int, len(nodes)),
		out:   make([][]int, len(nodes)),
		in:    make([][]int, len(nodes)),
	}
	for i, n := range nodes {
		g.index[n] = i
	}
	seen := make(map[[2]int]bool)
	for _, e := range idx.Edges {
		if e.External {
			continue
		}
		from, ok := g.index[e.From]
		if !ok {
			continue
		}
		to, ok := g.index[e.To]
		if !ok || from == to {
			continue
		}
		key := [2]int{from, to}
		if seen[key] {
			continue
		}
		seen[key] = true
		g.out[from] = append(g.out[from], to)
		g.in[to] = append(g.in[to], from)
	}
	for i := range g.out {
		sort.Ints(g.out[i])
		sort.Ints(g.in[i])
	}
	return g
}

// Cycles returns every strongly connected component with more than one
// module, using Tarjan's algorithm. Members of each cycle are sorted and
// cycles are returned in deterministic order.
func (g *Graph) Cycles() [][]string {
	n := len(g.nodes)
	const unvisited = -1

	ids := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	for i := range ids {
		ids[i] = unvisited
	}

	var (
		stack  []int
		nextID int
		sccs   [][]int
	)

	// Iterative Tarjan: frames hold (node, child cursor) to survive deep
	// import chains without blowing the goroutine stack.
	type frame struct {
		v, ci int
	}

	for start := 0; start < n; start++ {
		if ids[start] != unvisited {
			continue
		}
		frames := []frame{{v: start}}
		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			v := f.v
			if f.ci == 0 {
				ids[v] = nextID
				low[v] = nextID
				nextID++
				stack = append(stack, v)
				onStack[v] = true
			}
			advanced := false
			for f.ci < len(g.out[v]) {
				w := g.out[v][f.ci]
				f.ci++
				if ids[w] == unvisited {
					frames = append(frames, frame{v: w})
					advanced = true
					break
				}
				if onStack[w] && ids[w] < low[v] {
					low[v] = ids[w]
				}
			}
			if advanced {
				continue
			}
			if low[v] == ids[v] {
				var scc []int
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					scc = append(scc, w)
					if w == v {
						break
					}
				}
				if len(scc) > 1 {
					sccs = append(sccs, scc)
				}
			}
			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].v
				if low[v] < low[parent] {
					low[parent] = low[v]
				}
			}
		}
	}

	cycles := make([][]string, 0, len(sccs))
	for _, scc := range sccs {
		names := make([]string, len(scc))
		for i, v := range scc {
			names[i] = g.nodes[v]
		}
		cycles = append(cycles, normalizeCycle(names))
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

// normalizeCycle orders the component's members lexicographically so the
// same cycle always renders the same way.
func normalizeCycle(cycle []string) []string {
	sort.Strings(cycle)
	return cycle
}

// reverseReachable expands the seed set over reverse edges up to depth hops.
// depth < 0 means the full transitive reverse closure. Each module is
// enqueued at most once, so cycles terminate naturally.
func (g *Graph) reverseReachable(seeds []string, depth int) []string {
	visited := make(map[int]bool)
	var queue []int
	for _, s := range seeds {
		if i, ok := g.index[s]; ok && !visited[i] {
			visited[i] = true
			queue = append(queue, i)
		}
	}

	for hop := 0; len(queue) > 0 && (depth < 0 || hop < depth); hop++ {
		var next []int
		for _, v := range queue {
			for _, w := range g.in[v] {
				if !visited[w] {
					visited[w] = true
					next = append(next, w)
				}
			}
		}
		queue = next
	}

	out := make([]string, 0, len(visited))
	for i := range visited {
		out = append(out, g.nodes[i])
	}
	sort.Strings(out)
	return out
}
