package apperr

import "errors"

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalidData
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidData:
		return "invalid_data"
	default:
		return "unknown"
	}
}

// Error is a terminal failure carrying a message already resolved for the client.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func InvalidData(message string) error {
	return &Error{Kind: KindInvalidData, Message: message}
}

func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}

func IsNotFound(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNotFound
}

func IsInvalidData(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindInvalidData
}
