// Package build exposes the handful of build-time switches the rest of the
// module reads instead of hard-coding environment-specific values: which
// release this binary was compiled as, and a DEBUG flag that gates the
// verbose logging calls sprinkled through optimizer.
package build

import "os"

// Release identifies which variant of the binary is running. The Testing
// variant selects time-budget defaults short enough to exercise the
// TIMEOUT_WARNING path without actually waiting around for it.
type Release string

// The three release variants recognized by Select.
const (
	Standard Release = "standard"
	Dev      Release = "dev"
	Testing  Release = "testing"
)

// CurrentRelease is set at init time from the CUTSTOCK_RELEASE environment
// variable, defaulting to Standard.
var CurrentRelease = detectRelease()

// DEBUG gates debug-level log statements that would otherwise be on the hot
// path of the packer and MWCD loops. It is cheap to check and expensive to
// always format, so call sites guard the log call with it rather than
// relying on the logger to drop the line internally.
var DEBUG = CurrentRelease != Standard

func detectRelease() Release {
	switch Release(os.Getenv("CUTSTOCK_RELEASE")) {
	case Dev:
		return Dev
	case Testing:
		return Testing
	default:
		return Standard
	}
}

// Var holds one value per release variant for use with Select.
type Var struct {
	Standard interface{}
	Dev      interface{}
	Testing  interface{}
}

// Select returns the member of v matching CurrentRelease. Panics if the
// matching field was left as nil, since that indicates a caller forgot to
// specify a value for a release variant that is actually reachable.
func Select(v Var) interface{} {
	var val interface{}
	switch CurrentRelease {
	case Dev:
		val = v.Dev
	case Testing:
		val = v.Testing
	default:
		val = v.Standard
	}
	if val == nil {
		panic("build.Select: no value provided for release " + string(CurrentRelease))
	}
	return val
}
