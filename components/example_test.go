package components_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/friendgraph/components"
	"github.com/katalvlaran/friendgraph/core"
)

// ExampleAnalyze labels two clusters by their minimum member.
func ExampleAnalyze() {
	g, _ := core.New([]int64{1, 2, 3, 4}, []core.Edge{{Src: 1, Dst: 2}, {Src: 1, Dst: 3}, {Src: 2, Dst: 1}, {Src: 3, Dst: 1}})

	a, err := components.Analyze(context.Background(), g)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("clusters:", a.Count())
	for _, label := range a.Labels() {
		fmt.Printf("cluster %d: %v\n", label, a.Members(label))
	}
	// Output:
	// clusters: 2
	// cluster 1: [1 2 3]
	// cluster 4: [4]
}
