package clean

import "errors"

var (
	// ErrAlreadyRunning is returned when a run is requested while another
	// is still in progress.
	ErrAlreadyRunning = errors.New("a cleanup run is already in progress")

	// ErrPathMissing marks a category root that does not exist.
	ErrPathMissing = errors.New("path does not exist")

	// ErrNothingToClean marks a root or trash store with no items.
	ErrNothingToClean = errors.New("nothing to clean")

	// ErrDeleteFailed marks a single item that is still present after
	// every deletion strategy was tried.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrTrashServiceFailed marks a failed Recycle Bin query or empty call.
	ErrTrashServiceFailed = errors.New("recycle bin service failed")

	// ErrTrashUnsupported is returned by the Recycle Bin shell API on
	// platforms that have none.
	ErrTrashUnsupported = errors.New("recycle bin is not supported on this platform")

	// ErrElevationUnavailable is returned when no elevated helper can be
	// launched.
	ErrElevationUnavailable = errors.New("elevated delete unavailable")

	// ErrUnexpectedRunFailure wraps any error that aborts a run.
	ErrUnexpectedRunFailure = errors.New("cleanup run failed")
)
