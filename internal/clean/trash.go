package clean

import (
	"fmt"

	"github.com/lakshaymaurya-felt/wclean/internal/logger"
	"github.com/rs/zerolog"
)

// HResult is a failed Windows shell status code.
type HResult uint32

func (h HResult) Error() string {
	return fmt.Sprintf("HRESULT 0x%08x", uint32(h))
}

// RecycleBinInfo is what the shell reports for all drives' Recycle Bins.
type RecycleBinInfo struct {
	Size  int64
	Items int64
}

// RecycleBin is the OS shell service behind the Recycle Bin.
type RecycleBin interface {
	Query() (RecycleBinInfo, error)
	// Empty clears every drive's bin without confirmation, progress UI or
	// sound.
	Empty() error
}

// TrashController counts and empties the Recycle Bin.
type TrashController struct {
	bin RecycleBin
	log zerolog.Logger
}

// NewTrashController wraps bin. A nil bin uses the platform's shell API.
func NewTrashController(bin RecycleBin) *TrashController {
	if bin == nil {
		bin = NewRecycleBin()
	}
	return &TrashController{bin: bin, log: logger.WithComponent("trash")}
}

// Stat returns the item count and byte size from a single query.
func (t *TrashController) Stat() (RecycleBinInfo, error) {
	info, err := t.bin.Query()
	if err != nil {
		return RecycleBinInfo{}, fmt.Errorf("%w: query: %w", ErrTrashServiceFailed, err)
	}
	return info, nil
}

// ItemCount returns the number of items across all drives' Recycle Bins.
func (t *TrashController) ItemCount() (int64, error) {
	info, err := t.Stat()
	return info.Items, err
}

// Empty clears the Recycle Bin and reports success. Failures are logged.
func (t *TrashController) Empty() bool {
	if err := t.empty(); err != nil {
		t.log.Warn().Err(err).Msg("emptying recycle bin failed")
		return false
	}
	return true
}

func (t *TrashController) empty() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: empty panicked: %v", ErrTrashServiceFailed, r)
		}
	}()
	if err := t.bin.Empty(); err != nil {
		return fmt.Errorf("%w: empty: %w", ErrTrashServiceFailed, err)
	}
	return nil
}
