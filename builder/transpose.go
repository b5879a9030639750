package builder

import "github.com/katalvlaran/swhgraph/graph"

// transposeBatched builds the arc-reversed twin of fwd, accumulating
// reverse-adjacency in chunks of batchSize source nodes at a time rather
// than scanning the whole graph in one pass, standing in for the external-
// memory transpose's configurable batch size in this in-process pipeline.
func transposeBatched(fwd *graph.Graph, batchSize int) (*graph.Graph, error) {
	n := fwd.NumNodes()
	rev := make([][]int64, n)

	if batchSize <= 0 {
		batchSize = int(n)
		if batchSize == 0 {
			batchSize = 1
		}
	}

	for start := int64(0); start < n; start += int64(batchSize) {
		end := start + int64(batchSize)
		if end > n {
			end = n
		}

		for v := start; v < end; v++ {
			succ, err := fwd.Successors(v)
			if err != nil {
				return nil, err
			}
			for {
				nb, ok := succ.Next()
				if !ok {
					break
				}
				rev[nb] = append(rev[nb], v)
			}
		}
	}

	return graph.BuildFromAdjacency(n, func(v int64) []int64 { return rev[v] })
}
