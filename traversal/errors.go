package traversal

import "errors"

// ErrNilKernel guards against calling Run on a nil *Kernel.
var ErrNilKernel = errors.New("traversal: nil kernel")
