package keymat

import "errors"

// ErrInvalidKey is returned when a key source yields no complete word.
var ErrInvalidKey = errors.New("invalid key")
