package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Default artifact names.
const (
	DefaultNodesFile = "nodes.csv"
	DefaultEdgesFile = "edges.csv"
)

// WriteVertices writes the header "node" and one original ID per row.
func WriteVertices(w io.Writer, sg *Subgraph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"node"}); err != nil {
		return fmt.Errorf("export: write vertices: %w", err)
	}
	for _, id := range sg.Vertices {
		if err := cw.Write([]string{strconv.FormatInt(id, 10)}); err != nil {
			return fmt.Errorf("export: write vertices: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: write vertices: %w", err)
	}
	return nil
}

// WriteEdges writes the header "source,target" and one relabeled pair per row.
func WriteEdges(w io.Writer, sg *Subgraph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"source", "target"}); err != nil {
		return fmt.Errorf("export: write edges: %w", err)
	}
	for _, p := range sg.Edges {
		if err := cw.Write([]string{strconv.Itoa(p.Source), strconv.Itoa(p.Target)}); err != nil {
			return fmt.Errorf("export: write edges: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: write edges: %w", err)
	}
	return nil
}

// WriteFiles creates dir if needed and writes both artifacts into it.
// Empty names fall back to DefaultNodesFile and DefaultEdgesFile.
// It returns the paths written.
func WriteFiles(dir, nodesName, edgesName string, sg *Subgraph) (nodesPath, edgesPath string, err error) {
	if nodesName == "" {
		nodesName = DefaultNodesFile
	}
	if edgesName == "" {
		edgesName = DefaultEdgesFile
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("export: %w", err)
	}
	nodesPath = filepath.Join(dir, nodesName)
	edgesPath = filepath.Join(dir, edgesName)
	if err := writeFile(nodesPath, func(w io.Writer) error { return WriteVertices(w, sg) }); err != nil {
		return "", "", err
	}
	if err := writeFile(edgesPath, func(w io.Writer) error { return WriteEdges(w, sg) }); err != nil {
		return "", "", err
	}
	return nodesPath, edgesPath, nil
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("export: close %s: %w", path, cerr))
		}
	}()
	return fn(f)
}
