package meshio

import "fmt"

// WalkError reports which phase of a WriteTo walk a Sink rejected.
type WalkError struct {
	Phase string // "vertex", "edge" or "face"
	Err   error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("meshio: %s: %v", e.Phase, e.Err)
}

func (e *WalkError) Unwrap() error { return e.Err }
