package translate

import "errors"

// ErrInvalidDecimal marks a staking record whose decimal-valued wire string
// (the provider commission) does not parse.
var ErrInvalidDecimal = errors.New("translate: invalid decimal")
