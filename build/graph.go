package build

import (
	"bytes"
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"gopkg.in/yaml.v3"
)

// Node is a file in the dependency graph
type Node struct {
	ID         string                 `yaml:"id"`
	Type       string                 `yaml:"type"`
	Properties map[string]interface{} `yaml:"properties,omitempty"`
}

// Edge points from an importing file to its dependency
type Edge struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	Type   string `yaml:"type"`
}

// Graph holds the nodes and edges of one build
type Graph struct {
	Nodes []Node `yaml:"nodes"`
	Edges []Edge `yaml:"edges,omitempty"`
}

// Dependents returns files importing target, in node order
func (g *Graph) Dependents(target string) []string {
	var result []string
	for _, edge := range g.Edges {
		if edge.Target == target {
			result = append(result, edge.Source)
		}
	}
	return result
}

// GraphExporter receives the dependency graph after a build
type GraphExporter interface {
	Export(ctx context.Context, graph *Graph) error
}

// GraphWriter exports the graph as a YAML document
type GraphWriter struct {
	fs  afs.Service
	URL string
}

func NewGraphWriter(fs afs.Service, URL string) *GraphWriter {
	if fs == nil {
		fs = afs.New()
	}
	return &GraphWriter{fs: fs, URL: URL}
}

func (w *GraphWriter) Export(ctx context.Context, graph *Graph) error {
	data, err := yaml.Marshal(graph)
	if err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	if err = w.fs.Upload(ctx, w.URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write graph %v: %w", w.URL, err)
	}
	return nil
}

func buildGraph(sources []*source, marked map[string]bool, deps Dependencies) *Graph {
	graph := &Graph{}
	for _, src := range sources {
		graph.Nodes = append(graph.Nodes, Node{
			ID:   src.resolvePath,
			Type: "file",
			Properties: map[string]interface{}{
				"input":      src.inputURL,
				"output":     src.outputURL,
				"modified":   src.modified,
				"recompiled": marked[src.resolvePath],
			},
		})
		for _, dep := range deps[src.resolvePath] {
			graph.Edges = append(graph.Edges, Edge{Source: src.resolvePath, Target: dep, Type: "import"})
		}
	}
	return graph
}
