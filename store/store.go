package store

import (
	"encoding/binary"
	"fmt"

	"github.com/katalvlaran/swhgraph/graph"
	"github.com/katalvlaran/swhgraph/idindex"
	"github.com/katalvlaran/swhgraph/internal/mph"
	"github.com/katalvlaran/swhgraph/nodetype"
	"github.com/sirupsen/logrus"
)

// Store is an opened, read-only view over one basename's compressed
// archive: the forward and transposed graphs, the identifier index, the
// node-type table, and whichever property columns were present.
//
// A Store owns its memory mappings; obtain per-thread handles via Duplicate
// rather than sharing one Store across goroutines that each need their own
// traversal cursors.
type Store struct {
	basename string
	log      *logrus.Entry

	forward    *graph.Mapped
	transposed *graph.Mapped
	index      *idindex.Index
	types      *nodetype.Table

	mphFile   *mappedFile
	orderFile *mappedFile
	n2pFile   *mappedFile
	n2tFile   *mappedFile

	props *propertySet
}

// NewStore opens every required artifact under basename (G.graph,
// G.offsets, G-transposed.graph, G-transposed.offsets, G.mph, G.order,
// G.node2pid.csv, G.node2type.map) and whichever optional G.property.*
// artifacts exist on disk.
func NewStore(basename string, opts ...StoreOption) (*Store, error) {
	o := defaultStoreOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	s := &Store{basename: basename, log: log}

	fwd, err := graph.Open(basename+".graph", basename+".offsets")
	if err != nil {
		return nil, err
	}
	s.forward = fwd

	tg, err := graph.Open(basename+"-transposed.graph", basename+"-transposed.offsets")
	if err != nil {
		s.forward.Close()
		return nil, err
	}
	s.transposed = tg

	if err := s.loadIndex(basename); err != nil {
		s.closeQuietly()
		return nil, err
	}

	if err := s.loadTypes(basename); err != nil {
		s.closeQuietly()
		return nil, err
	}

	props, err := openPropertySet(basename, o.decodeMessageBase64)
	if err != nil {
		s.closeQuietly()
		return nil, err
	}
	s.props = props

	log.WithField("basename", basename).Info("store opened")

	return s, nil
}

func (s *Store) loadIndex(basename string) error {
	mf, err := openMapped(basename + ".mph")
	if err != nil {
		return err
	}
	s.mphFile = mf

	h, err := mph.Unmarshal(mf.m)
	if err != nil {
		return fmt.Errorf("store: parsing %s.mph: %w", basename, err)
	}

	of, err := openMapped(basename + ".order")
	if err != nil {
		return err
	}
	s.orderFile = of

	order, err := decodeOrder(of.m)
	if err != nil {
		return fmt.Errorf("store: parsing %s.order: %w", basename, err)
	}

	nf, err := openMapped(basename + ".node2pid.csv")
	if err != nil {
		return err
	}
	s.n2pFile = nf

	n2p, err := idindex.WrapMmapSource(nf.m)
	if err != nil {
		return err
	}

	idx, err := idindex.New(h, order, n2p)
	if err != nil {
		return err
	}
	s.index = idx

	return nil
}

func (s *Store) loadTypes(basename string) error {
	tf, err := openMapped(basename + ".node2type.map")
	if err != nil {
		return err
	}
	s.n2tFile = tf

	n := s.index.N()
	words := decodeTypeWords(tf.m)
	s.types = nodetype.WrapTable(words, int(n))

	return nil
}

func decodeOrder(buf []byte) ([]int64, error) {
	if len(buf)%8 != 0 {
		return nil, fmt.Errorf("%w: order length %d not a multiple of 8", ErrArtifactCorrupt, len(buf))
	}
	order := make([]int64, len(buf)/8)
	for i := range order {
		order[i] = int64(binary.BigEndian.Uint64(buf[8*i:]))
	}

	return order, nil
}

func decodeTypeWords(buf []byte) []uint64 {
	words := make([]uint64, len(buf)/8)
	for i := range words {
		var w uint64
		for b := 0; b < 8; b++ {
			w |= uint64(buf[8*i+b]) << (8 * b)
		}
		words[i] = w
	}

	return words
}

// NumNodes returns N, the number of nodes this store covers.
func (s *Store) NumNodes() int64 { return s.index.N() }

// IDOf resolves a textual PID to its internal node id.
func (s *Store) IDOf(pidText string) (int64, error) { return s.index.IDOf(pidText) }

// PIDOf resolves an internal node id to its textual PID.
func (s *Store) PIDOf(id int64) (string, error) { return s.index.PIDOf(id) }

// NodeType returns the NodeType stored for id.
func (s *Store) NodeType(id int64) (nodetype.NodeType, error) {
	return s.types.TypeOf(int(id))
}

// ForwardView exposes the forward compressed graph as a graph.View, for
// constructing a traversal.Kernel or a subgraph.View over it.
func (s *Store) ForwardView() graph.View { return s.forward }

// TransposedView exposes the transposed compressed graph as a graph.View.
func (s *Store) TransposedView() graph.View { return s.transposed }

func (s *Store) closeQuietly() {
	if s.forward != nil {
		s.forward.Close()
	}
	if s.transposed != nil {
		s.transposed.Close()
	}
	if s.mphFile != nil {
		s.mphFile.Close()
	}
	if s.orderFile != nil {
		s.orderFile.Close()
	}
	if s.n2pFile != nil {
		s.n2pFile.Close()
	}
	if s.n2tFile != nil {
		s.n2tFile.Close()
	}
}

// Close releases every memory mapping this Store holds. Idempotent: a
// second call returns ErrAlreadyClosed instead of double-unmapping.
func (s *Store) Close() error {
	if s.forward == nil {
		return ErrAlreadyClosed
	}

	s.closeQuietly()
	if s.props != nil {
		s.props.close()
	}
	s.forward = nil
	s.log.WithField("basename", s.basename).Info("store closed")

	return nil
}
