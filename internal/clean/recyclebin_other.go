//go:build !windows

package clean

type unsupportedRecycleBin struct{}

// NewRecycleBin returns a Recycle Bin whose calls all fail with
// ErrTrashUnsupported.
func NewRecycleBin() RecycleBin { return unsupportedRecycleBin{} }

func (unsupportedRecycleBin) Query() (RecycleBinInfo, error) {
	return RecycleBinInfo{}, ErrTrashUnsupported
}

func (unsupportedRecycleBin) Empty() error { return ErrTrashUnsupported }
