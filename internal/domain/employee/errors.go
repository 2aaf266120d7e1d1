package employee

import "errors"

var (
	ErrNotFound         = errors.New("employee not found")
	ErrEmailTaken       = errors.New("employee email already exists")
	ErrPhoneNumberTaken = errors.New("employee phone number already exists")
)
