package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/friendgraph/centrality"
)

// Summary is the complete report of one analysis run.
type Summary struct {
	RunID    string `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Vertices int    `json:"vertices" yaml:"vertices"`
	Edges    int    `json:"edges" yaml:"edges"`

	Clusters     int           `json:"clusters" yaml:"clusters"`
	TopK         int           `json:"top_k" yaml:"top_k"`
	TopClusters  []ClusterSize `json:"top_clusters" yaml:"top_clusters"`
	TopTotal     int           `json:"top_total" yaml:"top_total"`
	ExactSize    int           `json:"exact_size" yaml:"exact_size"`
	ExactIDs     []int64       `json:"exact_ids" yaml:"exact_ids"`
	ExactMembers []int64       `json:"exact_members" yaml:"exact_members"`

	Rankings []Ranking `json:"rankings,omitempty" yaml:"rankings,omitempty"`
}

// Ranking is the outcome of one PageRank configuration.
type Ranking struct {
	Name       string   `json:"name" yaml:"name"`
	Damping    float64  `json:"damping" yaml:"damping"`
	StopRule   string   `json:"stop_rule" yaml:"stop_rule"`
	Iterations int      `json:"iterations" yaml:"iterations"`
	Delta      float64  `json:"delta" yaml:"delta"`
	Converged  bool     `json:"converged" yaml:"converged"`
	Warning    string   `json:"warning,omitempty" yaml:"warning,omitempty"`
	Top        []Ranked `json:"top" yaml:"top"`
}

// Highest returns the top scored vertex, if any.
func (r Ranking) Highest() (int64, bool) {
	if len(r.Top) == 0 {
		return 0, false
	}
	return r.Top[0].ID, true
}

// NewSummary fills the cluster part of a Summary: the topK largest clusters
// and the members of clusters with exactly exactSize members.
func NewSummary(c *Clusters, topK, exactSize int) *Summary {
	g := c.a.Graph()

	return &Summary{
		Vertices:     g.VertexCount(),
		Edges:        g.EdgeCount(),
		Clusters:     c.Total(),
		TopK:         topK,
		TopClusters:  c.TopBySize(topK),
		TopTotal:     c.SumOfTop(topK),
		ExactSize:    exactSize,
		ExactIDs:     c.IDsOfExactSize(exactSize),
		ExactMembers: c.OfExactSize(exactSize),
	}
}

// AddRanking appends the top k vertices of res under the given name.
func (s *Summary) AddRanking(name string, res *centrality.Result, k int) Ranking {
	r := Ranking{
		Name:       name,
		Damping:    res.Options.Damping,
		StopRule:   res.Options.StopRule.String(),
		Iterations: res.Iterations,
		Delta:      res.Delta,
		Converged:  res.Converged,
		Top:        TopByScore(res.Scores(), k),
	}
	if w := res.Warning(); w != nil {
		r.Warning = w.Error()
	}
	s.Rankings = append(s.Rankings, r)

	return r
}

// WriteText renders s in the line layout of the historical friendship report.
func (s *Summary) WriteText(w io.Writer) error {
	tw := &textWriter{w: w}
	tw.printf("connected components\n")
	tw.printf("clusters amount: %d\n\n", s.Clusters)

	tw.printf("number of users in top %d cluster\n", s.TopK)
	for _, cs := range s.TopClusters {
		tw.printf("cluster id:\t%d\tnumber of users:\t%d\n", cs.ID, cs.Size)
	}
	tw.printf("Total number of users in top %d cluster:\t%d\n\n", s.TopK, s.TopTotal)

	tw.printf("user ids for the cluster which has %d users\n", s.ExactSize)
	tw.printf("%s\n", formatIDs(s.ExactMembers))

	for _, r := range s.Rankings {
		tw.printf("\nPageRank (%s):\n", r.Name)
		tw.printf("a list of %d important users (User ID) in this network:\n", len(r.Top))
		tw.printf("%s\n", formatIDs(IDs(r.Top)))
		if id, ok := r.Highest(); ok {
			tw.printf("The most important one is %d\n", id)
		}
		if r.Warning != "" {
			tw.printf("warning: %s\n", r.Warning)
		}
	}

	return tw.err
}

// WriteJSON renders s as indented JSON.
func (s *Summary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}

// WriteYAML renders s as YAML.
func (s *Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("report: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("report: encode yaml: %w", err)
	}
	return nil
}

// textWriter keeps the first write error so rendering code stays linear.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	if _, err := fmt.Fprintf(t.w, format, args...); err != nil {
		t.err = fmt.Errorf("report: write text: %w", err)
	}
}

// formatIDs renders ids as "[1, 2, 3]".
func formatIDs(ids []int64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatInt(id, 10))
	}
	b.WriteByte(']')

	return b.String()
}
