package market

import "errors"

// ErrCompanyNotFound is returned when no company matches the requested id or ticker
var ErrCompanyNotFound = errors.New("company not found")
