package rtree

import "errors"

// ErrInvalidEnvelope is returned by Insert, InsertEntry, Load, Remove and
// Search when given an envelope with MinX > MaxX or MinY > MaxY. The tree is
// left unmodified.
var ErrInvalidEnvelope = errors.New("rtree: invalid envelope")
