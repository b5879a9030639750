package builder

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/swhgraph/graph"
	"github.com/katalvlaran/swhgraph/idindex"
	"github.com/katalvlaran/swhgraph/internal/mph"
	"github.com/katalvlaran/swhgraph/nodetype"
	"github.com/katalvlaran/swhgraph/pid"
)

// Build runs the full offline compression pipeline over nodesPath
// (nodes.csv.gz) and edgesPath (edges.csv.gz), returning the assembled
// Artifacts. Each phase of spec.md §4.1's data flow (MPH, scattered-arcs
// graph, BFS permutation, permuted forward+transposed graphs, PID<->id maps,
// type table) runs as one Stage in a Pipeline; the first stage to fail
// aborts the build and its error is returned.
func Build(ctx context.Context, nodesPath, edgesPath string, opts ...BuildOption) (*Artifacts, error) {
	o := defaultBuildOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var (
		nodes        []string
		edges        []edge
		h            *mph.MPH
		nodeAtOrd    []string
		pidToOrdinal map[string]int64
		sc           *scattered
		order        []int64
		art          Artifacts
	)

	loadInputs := NewFuncStage("load-inputs", func(context.Context) error {
		var err error
		nodes, err = readNodesGz(nodesPath)
		if err != nil {
			return err
		}
		edges, err = readEdgesGz(edgesPath)
		return err
	})

	buildMPH := NewFuncStage("build-mph", func(context.Context) error {
		keys := make([][]byte, len(nodes))
		for i, p := range nodes {
			keys[i] = []byte(p)
		}

		var err error
		h, err = mph.Build(keys)
		if err != nil {
			return fmt.Errorf("builder: mph: %w", err)
		}

		nodeAtOrd = make([]string, h.N())
		pidToOrdinal = make(map[string]int64, len(nodes))
		for _, p := range nodes {
			ord := h.Lookup([]byte(p))
			nodeAtOrd[ord] = p
			pidToOrdinal[p] = int64(ord)
		}

		art.MPHBytes = h.Marshal()

		return nil
	})

	scatteredArcs := NewFuncStage("scattered-arcs", func(context.Context) error {
		var err error
		sc, err = buildScattered(len(nodes), pidToOrdinal, edges)
		return err
	})

	bfsPermutation := NewFuncStage("bfs-permutation", func(context.Context) error {
		order = bfsOrder(sc)
		art.OrderBytes = encodeOrder(order)
		return nil
	})

	permuteGraph := NewFuncStage("permute-graph", func(context.Context) error {
		inv := invert(order)
		n := int64(len(nodes))

		fwd, err := graph.BuildFromAdjacency(n, func(v int64) []int64 {
			ord := inv[v]
			dsts := sc.fwd[ord]
			out := make([]int64, len(dsts))
			for i, d := range dsts {
				out[i] = order[d]
			}
			return out
		})
		if err != nil {
			return fmt.Errorf("builder: permute-graph: %w", err)
		}

		art.Forward = fwd
		art.NumNodes = n
		art.NumArcs = fwd.NumArcs()
		art.GraphBytes = fwd.GraphBytes()
		art.OffsetsBytes = fwd.OffsetsBytes()

		return nil
	})

	transpose := NewFuncStage("transpose", func(context.Context) error {
		tg, err := transposeBatched(art.Forward, o.transposeBatchSize)
		if err != nil {
			return fmt.Errorf("builder: transpose: %w", err)
		}

		art.Transposed = tg
		art.TransposedGraphBytes = tg.GraphBytes()
		art.TransposedOffsBytes = tg.OffsetsBytes()

		return nil
	})

	sideFiles := NewFuncStage("side-files", func(ctx context.Context) error {
		inv := invert(order)
		n := int64(len(nodes))

		pidAtInternal := make([]string, n)
		for id := int64(0); id < n; id++ {
			pidAtInternal[id] = nodeAtOrd[inv[id]]
		}

		var g errgroup.Group

		g.Go(func() error {
			buf, err := idindex.EncodeNode2Pid(pidAtInternal)
			if err != nil {
				return fmt.Errorf("builder: node2pid.csv: %w", err)
			}
			art.Node2PidCSV = buf

			idx, err := idindex.New(h, order, idindex.NewSliceSource(pidAtInternal))
			if err != nil {
				return fmt.Errorf("builder: assembling index: %w", err)
			}
			art.Index = idx

			return nil
		})

		g.Go(func() error {
			art.Pid2NodeCSV = encodePid2Node(nodeAtOrd, order)
			return nil
		})

		g.Go(func() error {
			table := nodetype.NewTable(int(n))
			for id := int64(0); id < n; id++ {
				parsed, err := pid.Parse(pidAtInternal[id])
				if err != nil {
					return fmt.Errorf("builder: node2type: %w", err)
				}
				if err := table.Set(int(id), parsed.Type); err != nil {
					return fmt.Errorf("builder: node2type: %w", err)
				}
			}
			art.Types = table
			art.Node2TypeMap = encodeTypeWords(table)

			return nil
		})

		return g.Wait()
	})

	pipeline := NewPipeline(o.log, loadInputs, buildMPH, scatteredArcs, bfsPermutation, permuteGraph, transpose, sideFiles)
	if err := pipeline.Run(ctx); err != nil {
		return nil, err
	}

	return &art, nil
}

// encodePid2Node serializes the G.pid2node.csv artifact: one fixed-width
// line per MPH ordinal, "<pid> <20-digit decimal internal id>\n" (71
// content bytes plus the trailing newline), used to bootstrap the
// identifier index before G.order is available.
func encodePid2Node(nodeAtOrd []string, order []int64) []byte {
	buf := make([]byte, 0, len(nodeAtOrd)*72)
	for ord, p := range nodeAtOrd {
		buf = append(buf, p...)
		buf = append(buf, ' ')
		buf = appendDecimal20(buf, order[ord])
		buf = append(buf, '\n')
	}

	return buf
}

// appendDecimal20 appends v as a zero-padded 20-digit decimal, the fixed
// width spec.md §6 requires for pid2node.csv's node-id column.
func appendDecimal20(buf []byte, v int64) []byte {
	var digits [20]byte
	for i := 19; i >= 0; i-- {
		digits[i] = byte('0' + v%10)
		v /= 10
	}

	return append(buf, digits[:]...)
}
