package gateway

import "errors"

// ErrUnsupportedModel marks a request for a model with no provider route or
// no pricing entry. These fail before any tokens are spent.
var ErrUnsupportedModel = errors.New("unsupported model")
