package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/coffeemachine"
)

// Graph is the exportable form of the machine's chart.
type Graph struct {
	States  []coffeemachine.StateID `json:"states" yaml:"states"`
	Initial coffeemachine.StateID   `json:"initial" yaml:"initial"`
	Current coffeemachine.StateID   `json:"current" yaml:"current"`
	Edges   []coffeemachine.Edge    `json:"edges" yaml:"edges"`
}

// NewGraph builds the chart with current marked as the active state.
func NewGraph(current coffeemachine.StateID) Graph {
	return Graph{
		States:  coffeemachine.StateIDs(),
		Initial: coffeemachine.Ready,
		Current: current,
		Edges:   coffeemachine.Chart(),
	}
}

// DefaultVisualizer renders a Graph.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source. Parallel edges between the same
// two states are merged into one edge with a combined label.
func (v *DefaultVisualizer) ExportDOT(g Graph) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph CoffeeMachine {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	for _, id := range g.States {
		attrs := ""
		switch {
		case id == g.Current:
			attrs = ` style="rounded,filled" fillcolor=lightgreen`
		case id == coffeemachine.Terminated:
			attrs = ` shape=doublecircle`
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", id.String(), id.String(), attrs)
	}
	fmt.Fprintf(&buf, "  __start [shape=point];\n  __start -> %q;\n", g.Initial.String())

	for _, e := range mergeEdges(g.Edges) {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From.String(), e.To.String(), e.Input)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the graph to indented JSON.
func (v *DefaultVisualizer) ExportJSON(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// ExportYAML serializes the graph to YAML.
func (v *DefaultVisualizer) ExportYAML(g Graph) ([]byte, error) {
	return yaml.Marshal(g)
}

// mergeEdges joins labels of edges sharing From and To, keeping first-seen
// order.
func mergeEdges(edges []coffeemachine.Edge) []coffeemachine.Edge {
	type key struct{ from, to coffeemachine.StateID }
	var order []key
	labels := map[key][]string{}
	for _, e := range edges {
		k := key{e.From, e.To}
		if _, ok := labels[k]; !ok {
			order = append(order, k)
		}
		labels[k] = append(labels[k], e.Input)
	}

	out := make([]coffeemachine.Edge, 0, len(order))
	for _, k := range order {
		out = append(out, coffeemachine.Edge{From: k.from, To: k.to, Input: strings.Join(labels[k], " | ")})
	}
	return out
}
