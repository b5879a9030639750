package pid

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/katalvlaran/swhgraph/nodetype"
)

// ErrBadPid indicates a textual PID failed to parse: wrong length, wrong
// prefix, unsupported version, unknown type token, or non-hex digest.
var ErrBadPid = errors.New("pid: malformed persistent identifier")

const (
	version    = "1"
	prefix     = "swh"
	digestLen  = 20 // bytes (SHA-1)
	textLen    = 50 // "swh:1:cnt:" (10) + 40 hex digits
	digestHex  = digestLen * 2
	prefixPart = prefix + ":" + version + ":"
)

// PID is a parsed Software Heritage persistent identifier: a NodeType plus
// the 20-byte SHA-1 digest of the underlying object.
type PID struct {
	Type   nodetype.NodeType
	Digest [digestLen]byte
}

// Parse decodes a textual PID of the form "swh:1:<type>:<40-hex>". Any
// deviation in length, prefix, version, type token, or hex alphabet returns
// ErrBadPid.
func Parse(s string) (PID, error) {
	var out PID

	if len(s) != textLen {
		return out, fmt.Errorf("%w: length %d, want %d", ErrBadPid, len(s), textLen)
	}
	if s[:len(prefixPart)] != prefixPart {
		return out, fmt.Errorf("%w: bad prefix/version", ErrBadPid)
	}

	rest := s[len(prefixPart):] // "<type>:<hex>"
	colon := 3
	if len(rest) < colon+1 || rest[colon] != ':' {
		return out, fmt.Errorf("%w: missing type separator", ErrBadPid)
	}

	typ, err := nodetype.ParseToken(rest[:colon])
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBadPid, err)
	}

	hexDigest := rest[colon+1:]
	if len(hexDigest) != digestHex {
		return out, fmt.Errorf("%w: digest length %d, want %d", ErrBadPid, len(hexDigest), digestHex)
	}

	n, err := hex.Decode(out.Digest[:], []byte(hexDigest))
	if err != nil || n != digestLen {
		return out, fmt.Errorf("%w: non-hex digest", ErrBadPid)
	}
	// hex.Decode accepts uppercase too; the wire format requires lowercase.
	for _, c := range hexDigest {
		if c >= 'A' && c <= 'F' {
			return out, fmt.Errorf("%w: uppercase hex not allowed", ErrBadPid)
		}
	}

	out.Type = typ

	return out, nil
}

// String formats p back into its 50-byte textual form. Parse(p.String())
// always succeeds and reproduces p, for every p obtained from Parse.
func (p PID) String() string {
	return prefixPart + p.Type.String() + ":" + hex.EncodeToString(p.Digest[:])
}
