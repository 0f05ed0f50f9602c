package domain

import (
	"errors"
	"fmt"
)

// Backend identifiers used in errors, logs and metrics
const (
	BackendAir      = "air"
	BackendTraffic  = "traffic"
	BackendMobility = "mobility"
	BackendEnergy   = "energy"
	BackendEngine   = "engine"
)

// ErrorKind classifies a backend fault
type ErrorKind int

const (
	// KindUnreachable covers connection failures and timeouts
	KindUnreachable ErrorKind = iota
	// KindProtocolFault means the backend answered with something we could not use
	KindProtocolFault
	// KindNotFound means the backend explicitly reported a missing resource
	KindNotFound
)

var kindNames = map[ErrorKind]string{
	KindUnreachable:   "unreachable",
	KindProtocolFault: "protocol_fault",
	KindNotFound:      "not_found",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// BackendError is the uniform fault carrier produced by the protocol adapters
type BackendError struct {
	Backend string
	Kind    ErrorKind
	Err     error
}

// NewBackendError wraps err with a backend and a classification
func NewBackendError(backend string, kind ErrorKind, err error) *BackendError {
	return &BackendError{Backend: backend, Kind: kind, Err: err}
}

func (e *BackendError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Backend, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Backend, e.Kind, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err and whether it is a BackendError at all
func KindOf(err error) (ErrorKind, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

// IsUnreachable reports whether err is a BackendError of kind KindUnreachable
func IsUnreachable(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindUnreachable
}

// IsNotFound reports whether err is a BackendError of kind KindNotFound
func IsNotFound(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNotFound
}
