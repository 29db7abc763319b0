//go:build windows

package audio

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"
)

// sFalse is returned by CoInitializeEx when the thread already joined the
// same apartment.
const sFalse = 0x00000001

// wcaBackend talks to Core Audio through go-wca. It must be used from the
// OS thread that called Open.
type wcaBackend struct {
	opened bool

	// Held while device notifications are registered.
	notifier *wca.IMMDeviceEnumerator
	client   *wca.IMMNotificationClient
}

// NewBackend returns the Core Audio backend.
func NewBackend() Backend {
	return &wcaBackend{}
}

func (b *wcaBackend) Open() error {
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			return fmt.Errorf("%w: %v", ErrInit, err)
		}
	}
	b.opened = true
	return nil
}

func (b *wcaBackend) Close() {
	if b.notifier != nil {
		if err := b.notifier.UnregisterEndpointNotificationCallback(b.client); err != nil {
			log.Printf("[audio] unregistering device notifications: %v", err)
		}
		b.notifier.Release()
		b.notifier = nil
		b.client = nil
	}
	if b.opened {
		ole.CoUninitialize()
		b.opened = false
	}
}

func newEnumerator() (*wca.IMMDeviceEnumerator, error) {
	var mmde *wca.IMMDeviceEnumerator
	if err := wca.CoCreateInstance(wca.CLSID_MMDeviceEnumerator, 0, wca.CLSCTX_ALL, wca.IID_IMMDeviceEnumerator, &mmde); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnumerator, err)
	}
	return mmde, nil
}

func (b *wcaBackend) WatchDevices(fn func()) error {
	if b.notifier != nil {
		return nil
	}

	mmde, err := newEnumerator()
	if err != nil {
		return err
	}

	client := wca.NewIMMNotificationClient(wca.IMMNotificationClientCallback{
		OnDeviceStateChanged: func(string, uint64) error {
			fn()
			return nil
		},
		OnDeviceAdded: func(string) error {
			fn()
			return nil
		},
		OnDeviceRemoved: func(string) error {
			fn()
			return nil
		},
	})
	if err := mmde.RegisterEndpointNotificationCallback(client); err != nil {
		mmde.Release()
		return err
	}

	b.notifier = mmde
	b.client = client
	return nil
}

func (b *wcaBackend) Endpoints() ([]Endpoint, error) {
	mmde, err := newEnumerator()
	if err != nil {
		return nil, err
	}
	defer mmde.Release()

	var coll *wca.IMMDeviceCollection
	if err := mmde.EnumAudioEndpoints(wca.ECapture, wca.DEVICE_STATE_ACTIVE, &coll); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnumerate, err)
	}
	defer coll.Release()

	var count uint32
	if err := coll.GetCount(&count); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCount, err)
	}

	endpoints := make([]Endpoint, 0, count)
	for i := uint32(0); i < count; i++ {
		ep, err := activate(coll, i)
		if err != nil {
			for _, e := range endpoints {
				_ = e.Close()
			}
			return nil, err
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints, nil
}

func activate(coll *wca.IMMDeviceCollection, index uint32) (*wcaEndpoint, error) {
	var dev *wca.IMMDevice
	if err := coll.Item(index, &dev); err != nil {
		return nil, fmt.Errorf("%w %d: %v", ErrDevice, index, err)
	}
	defer dev.Release()

	var id string
	if err := dev.GetId(&id); err != nil {
		log.Printf("[audio] device %d has no id: %v", index, err)
	}

	var aev *wca.IAudioEndpointVolume
	if err := dev.Activate(wca.IID_IAudioEndpointVolume, wca.CLSCTX_ALL, nil, &aev); err != nil {
		return nil, fmt.Errorf("%w for device %d: %v", ErrActivate, index, err)
	}

	return &wcaEndpoint{
		id:   id,
		name: friendlyName(dev, index),
		aev:  aev,
	}, nil
}

func friendlyName(dev *wca.IMMDevice, index uint32) string {
	fallback := fmt.Sprintf("Microphone %d", index+1)

	var ps *wca.IPropertyStore
	if err := dev.OpenPropertyStore(wca.STGM_READ, &ps); err != nil {
		return fallback
	}
	defer ps.Release()

	var pv wca.PROPVARIANT
	if err := ps.GetValue(&wca.PKEY_Device_FriendlyName, &pv); err != nil {
		return fallback
	}
	if name := pv.String(); name != "" {
		return name
	}
	return fallback
}

type wcaEndpoint struct {
	id       string
	name     string
	aev      *wca.IAudioEndpointVolume
	callback *volumeCallback
}

func (e *wcaEndpoint) ID() string   { return e.id }
func (e *wcaEndpoint) Name() string { return e.name }

func (e *wcaEndpoint) Mute() (bool, error) {
	return getMute(e.aev)
}

func (e *wcaEndpoint) SetMute(muted bool) error {
	return e.aev.SetMute(muted, nil)
}

func (e *wcaEndpoint) Watch(fn func()) error {
	if e.callback != nil {
		return nil
	}

	cb := newVolumeCallback(fn)
	if err := registerControlChangeNotify(e.aev, cb); err != nil {
		return err
	}
	e.callback = cb
	return nil
}

func (e *wcaEndpoint) Close() error {
	if e.aev == nil {
		return nil
	}

	var err error
	if e.callback != nil {
		err = unregisterControlChangeNotify(e.aev, e.callback)
		e.callback = nil
	}
	e.aev.Release()
	e.aev = nil
	return err
}
