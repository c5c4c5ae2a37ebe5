package render

import (
	"errors"
	"fmt"
)

// RejectCode identifies why an image was declined.
type RejectCode int

// Reject codes. These are expected, frequent outcomes: callers skip the
// image and move on to the next candidate.
const (
	// RejectIntentSkip means the upstream classifier asked to skip.
	RejectIntentSkip RejectCode = iota
	// RejectCropLimit means the required crop fraction exceeds the threshold.
	RejectCropLimit
	// RejectStretchLimit means the aspect distortion exceeds the threshold.
	RejectStretchLimit
	// RejectPadLimit means the padding fraction exceeds the threshold.
	RejectPadLimit
	// RejectTooSmall means the source is under half the target size.
	RejectTooSmall
	// RejectAspectLimit means the source aspect ratio is beyond anything
	// the thresholds could accept.
	RejectAspectLimit

	rejectCodeCount // sentinel for validation
)

var rejectCodeNames = [rejectCodeCount]string{
	"IntentSkip", "CropLimit", "StretchLimit", "PadLimit", "TooSmall", "AspectLimit",
}

// String returns the name of the reject code.
func (c RejectCode) String() string {
	if c >= 0 && c < rejectCodeCount {
		return rejectCodeNames[c]
	}
	return fmt.Sprintf("RejectCode(%d)", int(c))
}

// Reject reports that an image cannot be rendered under the current
// thresholds and intent. It is an ordinary return value, not an error:
// batch callers loop over many candidates and branch on it.
type Reject struct {
	Code   RejectCode
	Reason string
}

// String returns a loggable description of the rejection.
func (r *Reject) String() string {
	return fmt.Sprintf("[%s] %s", r.Code, r.Reason)
}

func rejectf(code RejectCode, format string, args ...interface{}) *Reject {
	return &Reject{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// ErrInvalidInput is the hard failure channel: a nil source image, a
// degenerate target geometry, or an unusable bit depth. Unlike a Reject
// this indicates a caller bug and aborts the render call.
var ErrInvalidInput = errors.New("render: invalid input")
