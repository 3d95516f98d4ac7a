package search

import "errors"

// ErrInvalidArgument is returned for malformed top_k or weight inputs,
// rejected before any retrieval work begins.
var ErrInvalidArgument = errors.New("invalid search argument")
