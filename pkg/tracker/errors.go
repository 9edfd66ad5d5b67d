package tracker

import "errors"

var (
	// ErrAlreadyRunning is returned by Start when the tracker is running.
	ErrAlreadyRunning = errors.New("sunset: tracker already running")

	// ErrNotRunning is returned by Stop when the tracker is not running.
	ErrNotRunning = errors.New("sunset: tracker not running")

	// ErrNoPolicySource is returned by Reload when the tracker was built
	// from an in-code registry rather than a policy file.
	ErrNoPolicySource = errors.New("sunset: no policy file to reload")
)
