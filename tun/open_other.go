//go:build unix && !linux && !darwin

package tun

type unsupportedOpener struct{}

func newOpener(Config) Opener {
	return unsupportedOpener{}
}

func (unsupportedOpener) Open() (*Handle, error) {
	return nil, ErrUnsupported
}
