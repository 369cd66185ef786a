package engine

import "errors"

// Fatal error kinds. Enrichment-layer failures never surface here: the
// secondary source degrading to empty attributes is not an error, and the
// out-of-band flag setter only ever produces warnings.
var (
	ErrAccessDenied     = errors.New("access to the reminders store was denied")
	ErrListNotFound     = errors.New("no reminders list matches that name")
	ErrReminderNotFound = errors.New("no reminder matches that index or identifier")
	ErrPersistFailure   = errors.New("the reminders store rejected the change")
)
