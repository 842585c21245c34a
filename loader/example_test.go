package loader_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/friendgraph/loader"
)

// ExampleLoad parses a tiny friendship file.
func ExampleLoad() {
	input := "1\t2,3\n2\t1\n3\t1\n4\t\n"
	g, err := loader.Load(strings.NewReader(input))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("vertices:", g.Vertices())
	fmt.Println("edges:", g.Edges())
	// Output:
	// vertices: [1 2 3 4]
	// edges: [(1,2) (1,3) (2,1) (3,1)]
}

// ExampleParseRecord shows the error for a line without a tab.
func ExampleParseRecord() {
	_, err := loader.ParseRecord(3, "5 6,7")
	fmt.Println(err)
	// Output: loader: line 3: missing tab separator: "5 6,7"
}
