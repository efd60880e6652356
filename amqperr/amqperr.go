// Package amqperr implements the AMQP 1.0 error condition taxonomy (OASIS
// AMQP 1.0 section 2.8.14): a fixed set of condition symbols grouped into
// four families (amqp, connection, session, link), each carrying a static
// description and optional structured info.
//
// Every fixed condition is a package-level sentinel, following the
// sentinel-error convention used throughout this module's ambient stack
// (compare the teacher's format/section packages, which expose bare
// package-level errors.New sentinels rather than error constructor
// functions). Callers compare with errors.Is.
//
// This package intentionally has no dependency on primitive, compound, or
// composite: it is the base of the dependency graph so that those packages
// can report decode failures with these same sentinels without an import
// cycle. The conversion between an *Error and its AMQP wire composite
// (descriptor 0x1D) lives in the performative package, which sits above
// all of them.
package amqperr

import "fmt"

// Error is both a Go error and the in-memory shape of an AMQP error
// composite: condition symbol, optional human description, optional
// structured info.
type Error struct {
	Condition   string
	Description string
	Info        map[string]any
}

func (e *Error) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s", e.Condition, e.Description)
	}
	return e.Condition
}

func newSentinel(condition, description string) *Error {
	return &Error{Condition: condition, Description: description}
}

// AMQP error family (OASIS AMQP 1.0 section 2.8.14, symbol prefix "amqp:").
var (
	ErrInternalError         = newSentinel("amqp:internal-error", "An internal error occurred. Operator intervention may be required to resume normal operation.")
	ErrNotFound              = newSentinel("amqp:not-found", "A peer attempted to work with a remote entity that does not exist.")
	ErrUnauthorizedAccess    = newSentinel("amqp:unauthorized-access", "A peer attempted to work with a remote entity to which it has no access due to security settings.")
	ErrDecodeError           = newSentinel("amqp:decode-error", "Data could not be decoded.")
	ErrResourceLimitExceeded = newSentinel("amqp:resource-limit-exceeded", "A peer exceeded its resource allocation.")
	ErrNotAllowed            = newSentinel("amqp:not-allowed", "The peer tried to use a frame in a manner that is inconsistent with the semantics defined in the specification.")
	ErrInvalidField          = newSentinel("amqp:invalid-field", "An invalid field was passed in a frame body, and the operation could not proceed.")
	ErrNotImplemented        = newSentinel("amqp:not-implemented", "The peer tried to use functionality that is not implemented in its partner.")
	ErrResourceLocked        = newSentinel("amqp:resource-locked", "The client attempted to work with a server entity to which it has no access because another client is working with it.")
	ErrPreconditionFailed    = newSentinel("amqp:precondition-failed", "The client made a request that was not allowed because some precondition failed.")
	ErrResourceDeleted       = newSentinel("amqp:resource-deleted", "A server entity the client is working with has been deleted.")
	ErrIllegalState          = newSentinel("amqp:illegal-state", "The peer sent a frame that is not permitted in the current state of the Session.")
	ErrFrameSizeTooSmall     = newSentinel("amqp:frame-size-too-small", "The peer cannot send a frame because the smallest encoding of the performative with the currently valid values would be too large to fit within a frame of the agreed maximum frame size.")

	// ErrSpecificationNonCompliant covers malformed input that cannot be
	// mapped to any of the above conditions (§7 of the design spec).
	ErrSpecificationNonCompliant = newSentinel("amqp:specification-non-compliant", "Input did not conform to the AMQP 1.0 specification and could not be classified further.")
)

// Connection error family (symbol prefix "amqp:connection:").
var (
	ErrConnectionForced = newSentinel("amqp:connection:forced", "An operator intervened to close the Connection for some reason. The client may retry at some later date.")
	ErrFramingError     = newSentinel("amqp:connection:framing-error", "A valid frame header cannot be formed from the incoming byte stream.")
	// ErrConnectionRedirect is the bare sentinel with no info; use
	// NewConnectionRedirect for an instance carrying hostname/network-host/port.
	ErrConnectionRedirect = newSentinel("amqp:connection:redirect", "The container is no longer available on the current connection. The peer should attempt reconnection to the container using the details provided in the info map.")
)

// Session error family (symbol prefix "amqp:session:").
var (
	ErrWindowViolation  = newSentinel("amqp:session:window-violation", "The peer violated incoming window for the session.")
	ErrErrantLink       = newSentinel("amqp:session:errant-link", "Input was received for a link that was detached with an error.")
	ErrHandleInUse      = newSentinel("amqp:session:handle-in-use", "An attach was received using a handle that is already in use for an attached Link.")
	ErrUnattachedHandle = newSentinel("amqp:session:unattached-handle", "A frame (other than attach) was received referencing a handle which is not currently in use of an attached Link.")
)

// Link error family (symbol prefix "amqp:link:").
var (
	ErrDetachForced          = newSentinel("amqp:link:detach-forced", "An operator intervened to detach for some reason.")
	ErrTransferLimitExceeded = newSentinel("amqp:link:transfer-limit-exceeded", "The peer sent more Message transfers than currently allowed on the link.")
	ErrMessageSizeExceeded   = newSentinel("amqp:link:message-size-exceeded", "The peer sent a larger message than is supported on the link.")
	// ErrLinkRedirect is the bare sentinel with no info; use NewLinkRedirect
	// for an instance carrying hostname/network-host/port/address.
	ErrLinkRedirect = newSentinel("amqp:link:redirect", "The address provided cannot be resolved to a terminus at the current container.")
	ErrStolen       = newSentinel("amqp:link:stolen", "The link has been attached elsewhere, causing the existing attachment to be forcibly closed.")
)

// byCondition indexes every fixed sentinel by its condition symbol, used by
// Lookup to dispatch a decoded condition string back to its sentinel.
var byCondition = map[string]*Error{
	ErrInternalError.Condition:             ErrInternalError,
	ErrNotFound.Condition:                  ErrNotFound,
	ErrUnauthorizedAccess.Condition:        ErrUnauthorizedAccess,
	ErrDecodeError.Condition:               ErrDecodeError,
	ErrResourceLimitExceeded.Condition:     ErrResourceLimitExceeded,
	ErrNotAllowed.Condition:                ErrNotAllowed,
	ErrInvalidField.Condition:              ErrInvalidField,
	ErrNotImplemented.Condition:            ErrNotImplemented,
	ErrResourceLocked.Condition:            ErrResourceLocked,
	ErrPreconditionFailed.Condition:        ErrPreconditionFailed,
	ErrResourceDeleted.Condition:           ErrResourceDeleted,
	ErrIllegalState.Condition:              ErrIllegalState,
	ErrFrameSizeTooSmall.Condition:         ErrFrameSizeTooSmall,
	ErrConnectionForced.Condition:          ErrConnectionForced,
	ErrFramingError.Condition:              ErrFramingError,
	ErrConnectionRedirect.Condition:        ErrConnectionRedirect,
	ErrWindowViolation.Condition:           ErrWindowViolation,
	ErrErrantLink.Condition:                ErrErrantLink,
	ErrHandleInUse.Condition:               ErrHandleInUse,
	ErrUnattachedHandle.Condition:          ErrUnattachedHandle,
	ErrDetachForced.Condition:              ErrDetachForced,
	ErrTransferLimitExceeded.Condition:     ErrTransferLimitExceeded,
	ErrMessageSizeExceeded.Condition:       ErrMessageSizeExceeded,
	ErrLinkRedirect.Condition:              ErrLinkRedirect,
	ErrStolen.Condition:                    ErrStolen,
	ErrSpecificationNonCompliant.Condition: ErrSpecificationNonCompliant,
}

// Lookup returns the fixed sentinel for condition, or nil if condition is
// not one of the 25 AMQP conditions or specification-non-compliant.
func Lookup(condition string) *Error {
	return byCondition[condition]
}
