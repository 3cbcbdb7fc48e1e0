package syncer

import (
	"errors"
	"net"
	"os"
	"strings"
	"syscall"

	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// offlineMarkers are error substrings that indicate the backing store is
// unreachable rather than rejecting the write.
var offlineMarkers = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"network is unreachable",
	"broken pipe",
	"i/o timeout",
	"database is locked",
}

// IsOffline reports whether the error looks like a connectivity or
// availability failure worth queueing the write for. Constraint and
// validation errors are never offline: replaying them would fail again.
func IsOffline(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, types.ErrConstraint) ||
		errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, types.ErrStoreClosed) {
		return false
	}
	if errors.Is(err, types.ErrBackendUnavailable) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range offlineMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
