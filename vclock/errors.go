package vclock

import "errors"

var (
	errAttemptToResetExistingActor = errors.New("actor already initialised in clock")
	errClosedSyncClock             = errors.New("attempt to interact with closed clock")
	errSyncClockMustNotBeNil       = errors.New("attempt to merge a nil clock")
	errUnknownRequestType          = errors.New("received unknown request type")
)
