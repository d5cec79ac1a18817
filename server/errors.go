package server

import "fmt"

// ErrorKind is the closed set of error categories the request handler and
// its collaborators may return. Every fallible path in the request-handling
// pipeline resolves to exactly one of these.
type ErrorKind string

const (
	ErrorKindInvalidRequest                   ErrorKind = "invalid_request"
	ErrorKindInvalidParams                    ErrorKind = "invalid_params"
	ErrorKindMethodNotFound                    ErrorKind = "method_not_found"
	ErrorKindUnsupportedOperation              ErrorKind = "unsupported_operation"
	ErrorKindTaskNotFound                      ErrorKind = "task_not_found"
	ErrorKindTaskNotCancelable                 ErrorKind = "task_not_cancelable"
	ErrorKindPushNotificationNotSupported      ErrorKind = "push_notification_not_supported"
	ErrorKindContentTypeNotSupported           ErrorKind = "content_type_not_supported"
	ErrorKindInvalidAgentResponse              ErrorKind = "invalid_agent_response"
	ErrorKindAuthRequired                      ErrorKind = "auth_required"
	ErrorKindInternal                          ErrorKind = "internal"
)

// jrpcCodeFor maps an ErrorKind to its JSON-RPC wire code. Standard JSON-RPC
// kinds use the reserved negative range; protocol-specific kinds use the
// positive application range starting at 1.
var jrpcCodeFor = map[ErrorKind]JRPCErrorCode{
	ErrorKindInvalidRequest:              ErrInvalidRequest,
	ErrorKindInvalidParams:               ErrInvalidParams,
	ErrorKindMethodNotFound:              ErrMethodNotFound,
	ErrorKindInternal:                    ErrInternalError,
	ErrorKindUnsupportedOperation:        1,
	ErrorKindTaskNotFound:                2,
	ErrorKindTaskNotCancelable:           3,
	ErrorKindPushNotificationNotSupported: 4,
	ErrorKindContentTypeNotSupported:     5,
	ErrorKindInvalidAgentResponse:        6,
	ErrorKindAuthRequired:                7,
}

// ProtocolError is the typed error returned from every fallible operation in
// the request-handling pipeline. It carries enough information for a JSON-RPC
// or gRPC adapter to produce a protocol-correct error response without
// re-deriving the error kind from string matching.
type ProtocolError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ProtocolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ProtocolError) Unwrap() error {
	return e.Cause
}

// JRPCCode returns the JSON-RPC error code this error should be reported as.
func (e *ProtocolError) JRPCCode() JRPCErrorCode {
	if code, ok := jrpcCodeFor[e.Kind]; ok {
		return code
	}
	return ErrInternalError
}

func newProtocolError(kind ErrorKind, message string) *ProtocolError {
	return &ProtocolError{Kind: kind, Message: message}
}

func wrapInternal(message string, cause error) *ProtocolError {
	return &ProtocolError{Kind: ErrorKindInternal, Message: message, Cause: cause}
}

// NewUnsupportedOperationError reports a method the advertised Agent Card
// does not support.
func NewUnsupportedOperationError(message string) *ProtocolError {
	return newProtocolError(ErrorKindUnsupportedOperation, message)
}

// NewPushNotificationNotSupportedError reports that push-notification
// configuration was attempted against an agent that does not advertise the
// capability.
func NewPushNotificationNotSupportedError() *ProtocolError {
	return newProtocolError(ErrorKindPushNotificationNotSupported, "push notifications are not supported by the agent")
}

// NewTaskNotFoundError reports a missing task, as mapped by a transport
// adapter from a handler's nil result.
func NewTaskNotFoundError(taskID string) *ProtocolError {
	return newProtocolError(ErrorKindTaskNotFound, fmt.Sprintf("task not found: %s", taskID))
}

// NewTaskNotCancelableError reports an attempt to cancel a task already in a
// terminal state.
func NewTaskNotCancelableError(taskID string) *ProtocolError {
	return newProtocolError(ErrorKindTaskNotCancelable, fmt.Sprintf("task is already in a terminal state: %s", taskID))
}

// ErrorKindOf returns the ErrorKind of err if it is (or wraps) a
// *ProtocolError, or ErrorKindInternal otherwise.
func ErrorKindOf(err error) ErrorKind {
	var pe *ProtocolError
	if asProtocolError(err, &pe) {
		return pe.Kind
	}
	return ErrorKindInternal
}

func asProtocolError(err error, target **ProtocolError) bool {
	for err != nil {
		if pe, ok := err.(*ProtocolError); ok {
			*target = pe
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
