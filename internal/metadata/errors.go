package metadata

import "errors"

// ErrUnsupportedFormat is returned for metadata files whose extension is
// neither .json, .yaml nor .yml.
var ErrUnsupportedFormat = errors.New("unsupported metadata file format (use .json, .yaml or .yml)")
