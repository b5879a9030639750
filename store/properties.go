package store

import (
	"github.com/katalvlaran/swhgraph/properties"
)

// propertySet holds whichever optional property-column artifacts were found
// next to basename, each opened as its own memory mapping. A nil field
// means that column was absent from disk; its Store getter then returns
// ErrPropertyNotLoaded.
type propertySet struct {
	files []*mappedFile // every mapping opened here, for close()

	contentLength *properties.Int64Column
	skip          *properties.SkipColumn
	authorID      *properties.Int32Column
	committerID   *properties.Int32Column
	authorTS      *properties.Int64Column
	committerTS   *properties.Int64Column
	authorTZ      *properties.Int16Column
	committerTZ   *properties.Int16Column
	message       *properties.BlobColumn
	tagName       *properties.BlobColumn
}

func (p *propertySet) close() {
	for _, f := range p.files {
		f.Close()
	}
}

// openPropertySet probes basename for each known optional artifact and
// mmaps the ones present. n is the node count every fixed-width column must
// match.
func openPropertySet(basename string, decodeMessageBase64 bool) (*propertySet, error) {
	p := &propertySet{}

	n, err := probeN(basename)
	if err != nil {
		return nil, err
	}

	if err := p.loadInt64(basename+".property.content_length.bin", n, &p.contentLength); err != nil {
		return nil, err
	}
	if err := p.loadSkip(basename+".property.skip.bin", n); err != nil {
		return nil, err
	}
	if err := p.loadInt32(basename+".property.author_id.bin", n, &p.authorID); err != nil {
		return nil, err
	}
	if err := p.loadInt32(basename+".property.committer_id.bin", n, &p.committerID); err != nil {
		return nil, err
	}
	if err := p.loadInt64(basename+".property.author_timestamp.bin", n, &p.authorTS); err != nil {
		return nil, err
	}
	if err := p.loadInt64(basename+".property.committer_timestamp.bin", n, &p.committerTS); err != nil {
		return nil, err
	}
	if err := p.loadInt16(basename+".property.author_tz.bin", n, &p.authorTZ); err != nil {
		return nil, err
	}
	if err := p.loadInt16(basename+".property.committer_tz.bin", n, &p.committerTZ); err != nil {
		return nil, err
	}
	if err := p.loadBlob(basename+".property.message", n, decodeMessageBase64, &p.message); err != nil {
		return nil, err
	}
	if err := p.loadBlob(basename+".property.tag_name", n, false, &p.tagName); err != nil {
		return nil, err
	}

	return p, nil
}

// probeN determines the node count from node2pid.csv's length, the one
// artifact every archive has, so optional property columns can validate
// their own length without a separate argument threading N through.
func probeN(basename string) (int64, error) {
	mf, err := openMapped(basename + ".node2pid.csv")
	if err != nil {
		return 0, err
	}
	defer mf.Close()

	const pidTextWidth = 51

	return int64(len(mf.m)) / pidTextWidth, nil
}

func (p *propertySet) loadInt64(path string, n int64, dst **properties.Int64Column) error {
	if !fileExists(path) {
		return nil
	}
	mf, err := openMapped(path)
	if err != nil {
		return err
	}
	p.files = append(p.files, mf)

	col, err := properties.DecodeInt64Column(mf.m, int(n))
	if err != nil {
		return err
	}
	*dst = col

	return nil
}

func (p *propertySet) loadInt32(path string, n int64, dst **properties.Int32Column) error {
	if !fileExists(path) {
		return nil
	}
	mf, err := openMapped(path)
	if err != nil {
		return err
	}
	p.files = append(p.files, mf)

	col, err := properties.DecodeInt32Column(mf.m, int(n))
	if err != nil {
		return err
	}
	*dst = col

	return nil
}

func (p *propertySet) loadInt16(path string, n int64, dst **properties.Int16Column) error {
	if !fileExists(path) {
		return nil
	}
	mf, err := openMapped(path)
	if err != nil {
		return err
	}
	p.files = append(p.files, mf)

	col, err := properties.DecodeInt16Column(mf.m, int(n))
	if err != nil {
		return err
	}
	*dst = col

	return nil
}

func (p *propertySet) loadSkip(path string, n int64) error {
	if !fileExists(path) {
		return nil
	}
	mf, err := openMapped(path)
	if err != nil {
		return err
	}
	p.files = append(p.files, mf)

	col, err := properties.DecodeSkipColumn(mf.m, n)
	if err != nil {
		return err
	}
	p.skip = col

	return nil
}

// loadBlob opens "<prefix>.bin" (the concatenated payload) and
// "<prefix>.offset.bin" (the N+1 int64 offsets) as one BlobColumn, if both
// are present.
func (p *propertySet) loadBlob(prefix string, n int64, base64Encoded bool, dst **properties.BlobColumn) error {
	blobPath := prefix + ".bin"
	offsetPath := prefix + ".offset.bin"
	if !fileExists(blobPath) || !fileExists(offsetPath) {
		return nil
	}

	blobFile, err := openMapped(blobPath)
	if err != nil {
		return err
	}
	p.files = append(p.files, blobFile)

	offsetFile, err := openMapped(offsetPath)
	if err != nil {
		return err
	}
	p.files = append(p.files, offsetFile)

	offsets, err := decodeOffsetsColumn(offsetFile.m, n)
	if err != nil {
		return err
	}

	col, err := properties.NewBlobColumn(blobFile.m, offsets, base64Encoded)
	if err != nil {
		return err
	}
	*dst = col

	return nil
}

func decodeOffsetsColumn(buf []byte, n int64) ([]int64, error) {
	want := n + 1
	if int64(len(buf)) != 8*want {
		return nil, ErrArtifactCorrupt
	}

	offsets := make([]int64, want)
	for i := range offsets {
		offsets[i] = int64(beUint64(buf[8*i:]))
	}

	return offsets, nil
}

func beUint64(b []byte) uint64 {
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
}

// PropertyContentLength returns the stored content length for id.
func (s *Store) PropertyContentLength(id int64) (int64, error) {
	if s.props == nil || s.props.contentLength == nil {
		return 0, ErrPropertyNotLoaded
	}
	return s.props.contentLength.At(id)
}

// PropertySkip reports whether id's content bytes were skipped at ingest.
func (s *Store) PropertySkip(id int64) (bool, error) {
	if s.props == nil || s.props.skip == nil {
		return false, ErrPropertyNotLoaded
	}
	return s.props.skip.At(id)
}

// PropertyAuthorID returns the stored author id for id.
func (s *Store) PropertyAuthorID(id int64) (int32, error) {
	if s.props == nil || s.props.authorID == nil {
		return 0, ErrPropertyNotLoaded
	}
	return s.props.authorID.At(id)
}

// PropertyCommitterID returns the stored committer id for id.
func (s *Store) PropertyCommitterID(id int64) (int32, error) {
	if s.props == nil || s.props.committerID == nil {
		return 0, ErrPropertyNotLoaded
	}
	return s.props.committerID.At(id)
}

// PropertyAuthorTimestamp returns the stored author timestamp for id.
func (s *Store) PropertyAuthorTimestamp(id int64) (int64, error) {
	if s.props == nil || s.props.authorTS == nil {
		return 0, ErrPropertyNotLoaded
	}
	return s.props.authorTS.At(id)
}

// PropertyCommitterTimestamp returns the stored committer timestamp for id.
func (s *Store) PropertyCommitterTimestamp(id int64) (int64, error) {
	if s.props == nil || s.props.committerTS == nil {
		return 0, ErrPropertyNotLoaded
	}
	return s.props.committerTS.At(id)
}

// PropertyAuthorTZ returns the stored author UTC offset for id.
func (s *Store) PropertyAuthorTZ(id int64) (int16, error) {
	if s.props == nil || s.props.authorTZ == nil {
		return 0, ErrPropertyNotLoaded
	}
	return s.props.authorTZ.At(id)
}

// PropertyCommitterTZ returns the stored committer UTC offset for id.
func (s *Store) PropertyCommitterTZ(id int64) (int16, error) {
	if s.props == nil || s.props.committerTZ == nil {
		return 0, ErrPropertyNotLoaded
	}
	return s.props.committerTZ.At(id)
}

// PropertyMessage returns the (optionally base64-decoded) release/revision
// message for id, ok=false if id has none.
func (s *Store) PropertyMessage(id int64) (value string, ok bool, err error) {
	if s.props == nil || s.props.message == nil {
		return "", false, ErrPropertyNotLoaded
	}
	return s.props.message.At(id)
}

// PropertyTagName returns the release tag name for id, ok=false if id has
// none.
func (s *Store) PropertyTagName(id int64) (value string, ok bool, err error) {
	if s.props == nil || s.props.tagName == nil {
		return "", false, ErrPropertyNotLoaded
	}
	return s.props.tagName.At(id)
}
