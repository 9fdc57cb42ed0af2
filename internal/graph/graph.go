// Package graph holds the workspace's projects and the directed task graph
// built from them. Nodes are (project, task) pairs addressed by small integer
// indices; edges point from a task to the tasks it depends on. The graph
// provides a deterministic batched execution order and cascades failure into
// cancellation of all transitive dependents.
package graph

import (
	"sort"
	"sync"

	"github.com/lunarepo/lunar/internal/errors"
	"github.com/lunarepo/lunar/internal/project"
)

// Target identifies one (project, task) pair.
type Target struct {
	ProjectID string
	TaskName  string
}

// String returns the target in project:task form.
func (t Target) String() string {
	return t.ProjectID + ":" + t.TaskName
}

// Graph is the directed task graph. Topology is built once, by the
// coordinating goroutine, before any execution starts; results are recorded
// concurrently by executing nodes, guarded by an internal mutex.
type Graph struct {
	projects map[string]*project.Project

	targets    []Target       // node arena: index -> target
	index      map[Target]int // target -> node index
	deps       [][]int        // node -> nodes it depends on
	dependents [][]int        // node -> nodes that depend on it

	mu      sync.Mutex
	results map[int]*TaskResult
}

// New creates an empty graph over the given projects.
func New(projects map[string]*project.Project) *Graph {
	return &Graph{
		projects: projects,
		index:    make(map[Target]int),
		results:  make(map[int]*TaskResult),
	}
}

// Project returns the named project, or an unknown-project error.
func (g *Graph) Project(id string) (*project.Project, error) {
	p, ok := g.projects[id]
	if !ok {
		return nil, errors.NewProjectError(id, errors.ErrUnknownProject)
	}
	return p, nil
}

// AddTarget inserts the node for a (project, task) pair and, recursively,
// the nodes and edges for everything it depends on: the equivalently-named
// task of each dependency project, and the task's own same-project
// predecessors. Returns the node's index. Unknown project or task references
// fail; re-adding an existing target is a cheap no-op.
func (g *Graph) AddTarget(projectID, taskName string) (int, error) {
	target := Target{ProjectID: projectID, TaskName: taskName}
	if node, ok := g.index[target]; ok {
		return node, nil
	}

	p, err := g.Project(projectID)
	if err != nil {
		return 0, err
	}
	task, err := p.Task(taskName)
	if err != nil {
		return 0, err
	}

	// Register the node before recursing so cycles terminate here and get
	// reported by TopoOrder instead of recursing forever.
	node := len(g.targets)
	g.targets = append(g.targets, target)
	g.index[target] = node
	g.deps = append(g.deps, nil)
	g.dependents = append(g.dependents, nil)

	// Dependency projects contribute their equivalently-named task, when
	// they define one.
	for _, depID := range p.DependsOn {
		dep, err := g.Project(depID)
		if err != nil {
			return 0, err
		}
		if _, ok := dep.Tasks[taskName]; !ok {
			continue
		}
		depNode, err := g.AddTarget(depID, taskName)
		if err != nil {
			return 0, err
		}
		g.addEdge(node, depNode)
	}

	// Same-project predecessor tasks.
	for _, predName := range task.DependsOn {
		if _, err := p.Task(predName); err != nil {
			return 0, err
		}
		predNode, err := g.AddTarget(projectID, predName)
		if err != nil {
			return 0, err
		}
		g.addEdge(node, predNode)
	}

	return node, nil
}

func (g *Graph) addEdge(node, depNode int) {
	if node == depNode {
		return
	}
	for _, existing := range g.deps[node] {
		if existing == depNode {
			return
		}
	}
	g.deps[node] = append(g.deps[node], depNode)
	g.dependents[depNode] = append(g.dependents[depNode], node)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.targets)
}

// Target returns the (project, task) pair for a node index.
func (g *Graph) Target(node int) Target {
	return g.targets[node]
}

// Deps returns the node indices a node depends on.
func (g *Graph) Deps(node int) []int {
	return g.deps[node]
}

// TopoOrder returns the execution plan as batches of node indices: every
// node's dependencies live in strictly earlier batches, and nodes within a
// batch are independent of each other. Node order within a batch is
// ascending by index, so the plan is deterministic. Fails with a cyclic
// dependency error if any cycle exists; nothing is scheduled in that case.
func (g *Graph) TopoOrder() ([][]int, error) {
	inDegree := make([]int, len(g.targets))
	for node := range g.targets {
		inDegree[node] = len(g.deps[node])
	}

	var current []int
	for node := range g.targets {
		if inDegree[node] == 0 {
			current = append(current, node)
		}
	}

	var batches [][]int
	processed := 0
	for len(current) > 0 {
		sort.Ints(current)
		batches = append(batches, current)
		processed += len(current)

		var next []int
		for _, node := range current {
			for _, dependent := range g.dependents[node] {
				inDegree[dependent]--
				if inDegree[dependent] == 0 {
					next = append(next, dependent)
				}
			}
		}
		current = next
	}

	if processed < len(g.targets) {
		return nil, errors.ErrCyclicDependency
	}
	return batches, nil
}

// MarkResult records a result against its node. A failed, invalid or
// cancelled result deterministically cancels every transitive dependent that
// is not already terminal; completed sibling results are untouched.
func (g *Graph) MarkResult(result *TaskResult) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.results[result.Node] = result

	if result.Status == StatusFailed || result.Status == StatusInvalid || result.Status == StatusCancelled {
		g.cancelDependents(result.Node)
	}
}

// cancelDependents walks dependency edges away from node, cancelling
// everything reachable. Callers must hold g.mu.
func (g *Graph) cancelDependents(node int) {
	for _, dependent := range g.dependents[node] {
		if existing, ok := g.results[dependent]; ok {
			if existing.Status.IsTerminal() {
				continue
			}
			existing.Cancel()
		} else {
			g.results[dependent] = NewCancelledResult(dependent)
		}
		g.cancelDependents(dependent)
	}
}

// Result returns the recorded result for a node, or nil.
func (g *Graph) Result(node int) *TaskResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.results[node]
}

// Results returns all recorded results keyed by node index.
func (g *Graph) Results() map[int]*TaskResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make(map[int]*TaskResult, len(g.results))
	for node, result := range g.results {
		out[node] = result
	}
	return out
}
