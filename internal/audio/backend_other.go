//go:build !windows

package audio

// NewBackend returns a backend that fails to open: Core Audio endpoints
// only exist on Windows.
func NewBackend() Backend {
	return unsupportedBackend{}
}

type unsupportedBackend struct{}

func (unsupportedBackend) Open() error                    { return ErrUnsupported }
func (unsupportedBackend) Close()                         {}
func (unsupportedBackend) Endpoints() ([]Endpoint, error) { return nil, ErrUnsupported }
func (unsupportedBackend) WatchDevices(func()) error      { return ErrUnsupported }
