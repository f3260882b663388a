package game

import "errors"

// ErrInvalidConfiguration is returned when the requested board size and
// bomb count cannot produce a playable game, either at Reset time
// (bombs must satisfy 0 < bombs < rows*cols) or at placement time (the
// safe zone around the first reveal leaves too few cells for the bombs).
var ErrInvalidConfiguration = errors.New("invalid board configuration")
