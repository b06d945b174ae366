package models

import "errors"

// ErrConfiguration marks invalid generation settings: bad counts, empty time
// ranges, probabilities outside [0,1]. Every validation failure wraps it so
// callers can match with errors.Is. IO failures are not wrapped here; they
// surface as wrapped os errors from the output layer.
var ErrConfiguration = errors.New("invalid configuration")
