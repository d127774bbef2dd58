//go:build !windows

package input

import "errors"

var errNativeActivation = errors.New("native window activation not supported on this platform")

// activateNative is the non-Windows stub; process-name activation through
// robotgo is the only path here.
func activateNative(string) error {
	return errNativeActivation
}
