package lookup

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// ClassifyTransportError maps an error from http.Client.Do, where no response
// object exists, onto TIMEOUT or NETWORK.
func ClassifyTransportError(err error) ErrorKind {
	if err == nil {
		return ErrUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return ErrNetwork
}

// ClassifyStatus maps a non-2xx HTTP status onto an ErrorKind
func ClassifyStatus(status int) ErrorKind {
	switch {
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		return ErrInvalidInput
	case status >= http.StatusInternalServerError:
		return ErrRemote
	default:
		return ErrUnknown
	}
}

// TransportCode is the Error.Code recorded for a transport failure of kind k
func TransportCode(k ErrorKind) string {
	switch k {
	case ErrTimeout:
		return CodeTimeout
	case ErrNetwork:
		return CodeNetwork
	default:
		return CodeUnknown
	}
}
