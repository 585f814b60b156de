package shapes

import "errors"

// ErrInvalidGeometry indicates a draw call received non-finite (NaN or Inf)
// shape parameters. The call is rejected and nothing is enqueued.
var ErrInvalidGeometry = errors.New("shapes: non-finite shape geometry")

// ErrFrameSealed indicates a draw call arrived after the frame's batches
// were handed to submission. Draw calls must all happen before the render
// pass consumes the frame.
var ErrFrameSealed = errors.New("shapes: frame already sealed for submission")
