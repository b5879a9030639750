// Command swhgraph-compress runs the offline compression pipeline over a
// pair of gzip-compressed CSV streams and writes the resulting artifacts
// under a chosen basename.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/swhgraph/builder"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor surfaces an ExecStage child's own exit code when the failure
// came from a stage shelled out to an external binary, falling back to a
// generic failure status for everything else.
func exitCodeFor(err error) int {
	var ec *builder.ExitCodeError
	if errors.As(err, &ec) {
		return ec.Code
	}

	return 1
}

func newRootCmd() *cobra.Command {
	var (
		nodesPath   string
		edgesPath   string
		basename    string
		batchSize   int
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "swhgraph-compress",
		Short: "Compress a Merkle-DAG CSV export into a queryable graph store",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(logLevel)
			if err != nil {
				return err
			}

			art, err := builder.Build(
				context.Background(),
				nodesPath,
				edgesPath,
				builder.WithLogger(log),
				builder.WithTransposeBatchSize(batchSize),
			)
			if err != nil {
				return fmt.Errorf("swhgraph-compress: %w", err)
			}

			if err := writeArtifacts(basename, art); err != nil {
				return fmt.Errorf("swhgraph-compress: writing artifacts: %w", err)
			}

			log.WithFields(logrus.Fields{
				"nodes": art.NumNodes,
				"arcs":  art.NumArcs,
			}).Info("compression complete")

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&nodesPath, "nodes", "", "path to nodes.csv.gz (required)")
	flags.StringVar(&edgesPath, "edges", "", "path to edges.csv.gz (required)")
	flags.StringVar(&basename, "basename", "G", "basename artifacts are written under")
	flags.IntVar(&batchSize, "transpose-batch-size", 0, "nodes processed per transpose batch (0 = default)")
	flags.StringVar(&logLevel, "log-level", "info", "logrus level: debug, info, warn, error")
	_ = cmd.MarkFlagRequired("nodes")
	_ = cmd.MarkFlagRequired("edges")

	return cmd
}

func newLogger(level string) (*logrus.Entry, error) {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("swhgraph-compress: bad --log-level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return logrus.NewEntry(log), nil
}

// writeArtifacts writes each artifact to a temporary name beside its final
// path and renames it into place only after the write succeeds, so a crash
// mid-write never leaves a partial file at the path the store will open.
func writeArtifacts(basename string, art *builder.Artifacts) error {
	files := map[string][]byte{
		basename + ".graph":              art.GraphBytes,
		basename + ".offsets":            art.OffsetsBytes,
		basename + "-transposed.graph":   art.TransposedGraphBytes,
		basename + "-transposed.offsets": art.TransposedOffsBytes,
		basename + ".mph":                art.MPHBytes,
		basename + ".order":              art.OrderBytes,
		basename + ".node2pid.csv":       art.Node2PidCSV,
		basename + ".pid2node.csv":       art.Pid2NodeCSV,
		basename + ".node2type.map":      art.Node2TypeMap,
	}

	for path, data := range files {
		if err := writeAtomic(path, data); err != nil {
			return err
		}
	}

	return nil
}

// writeAtomic writes data to path+".tmp" and renames it over path, so
// readers never observe a partially-written artifact.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", tmp, path, err)
	}

	return nil
}
