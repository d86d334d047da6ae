package policy

import (
	"errors"

	"github.com/jitsi/jitsi-meet-load-test/pkg/policy/types"
)

var (
	ErrTransport      = errors.New("receiver constraints rejected by session")
	ErrMissingSession = errors.New("conference session is required")
)

// TransportError is returned when the session rejects a publish. The
// constraints stay recorded as last published.
type TransportError struct {
	Constraints types.ReceiverConstraints
	err         error
}

func (e *TransportError) Error() string {
	return ErrTransport.Error() + ": " + e.err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
