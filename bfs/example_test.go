package bfs_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/friendgraph/bfs"
	"github.com/katalvlaran/friendgraph/core"
)

// ExampleBFS shows friend-of-friend reachability ignoring edge direction.
func ExampleBFS() {
	g, _ := core.New([]int64{1, 2, 3, 4}, []core.Edge{{Src: 1, Dst: 2}, {Src: 3, Dst: 2}})

	res, _ := bfs.BFS(context.Background(), g, 1, bfs.WithUndirected())
	fmt.Println("order:", res.Order)
	fmt.Println("path to 3:", res.PathTo(3))
	// Output:
	// order: [1 2 3]
	// path to 3: [1 2 3]
}
