//go:build windows

package audio

import (
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"
)

// volumeCallbackVtbl mirrors IAudioEndpointVolumeCallback.
type volumeCallbackVtbl struct {
	ole.IUnknownVtbl
	OnNotify uintptr
}

// volumeCallback is a COM object implementing IAudioEndpointVolumeCallback.
// The vtable pointer must stay the first field. Core Audio holds a raw
// pointer to it, so the owning endpoint keeps it reachable until it has
// been unregistered.
type volumeCallback struct {
	vtbl     *volumeCallbackVtbl
	refCount int32
	notify   func()
}

var (
	volumeVtblOnce sync.Once
	volumeVtbl     *volumeCallbackVtbl
)

// sharedVolumeVtbl builds the vtable once. syscall.NewCallback slots are a
// limited process-wide resource and every rescan creates new callbacks.
func sharedVolumeVtbl() *volumeCallbackVtbl {
	volumeVtblOnce.Do(func() {
		volumeVtbl = &volumeCallbackVtbl{}
		volumeVtbl.QueryInterface = syscall.NewCallback(vcQueryInterface)
		volumeVtbl.AddRef = syscall.NewCallback(vcAddRef)
		volumeVtbl.Release = syscall.NewCallback(vcRelease)
		volumeVtbl.OnNotify = syscall.NewCallback(vcOnNotify)
	})
	return volumeVtbl
}

func newVolumeCallback(fn func()) *volumeCallback {
	return &volumeCallback{
		vtbl:     sharedVolumeVtbl(),
		refCount: 1,
		notify:   fn,
	}
}

func vcQueryInterface(this uintptr, riid *ole.GUID, ppv *uintptr) uintptr {
	*ppv = 0
	if ole.IsEqualGUID(riid, ole.IID_IUnknown) ||
		ole.IsEqualGUID(riid, wca.IID_IAudioEndpointVolumeCallback) {
		vcAddRef(this)
		*ppv = this
		return ole.S_OK
	}
	return ole.E_NOINTERFACE
}

func vcAddRef(this uintptr) uintptr {
	cb := (*volumeCallback)(unsafe.Pointer(this))
	return uintptr(atomic.AddInt32(&cb.refCount, 1))
}

func vcRelease(this uintptr) uintptr {
	cb := (*volumeCallback)(unsafe.Pointer(this))
	return uintptr(atomic.AddInt32(&cb.refCount, -1))
}

// vcOnNotify runs on a Core Audio worker thread. The notification data is
// not needed: the loop re-reads every device anyway.
func vcOnNotify(this uintptr, _ uintptr) uintptr {
	cb := (*volumeCallback)(unsafe.Pointer(this))
	if cb.notify != nil {
		cb.notify()
	}
	return ole.S_OK
}

// registerControlChangeNotify calls the interface slot directly. go-wca
// exposes the method but does not implement it.
func registerControlChangeNotify(aev *wca.IAudioEndpointVolume, cb *volumeCallback) error {
	hr, _, _ := syscall.SyscallN(
		aev.VTable().RegisterControlChangeNotify,
		uintptr(unsafe.Pointer(aev)),
		uintptr(unsafe.Pointer(cb)))
	if hr != 0 {
		return ole.NewError(hr)
	}
	return nil
}

func unregisterControlChangeNotify(aev *wca.IAudioEndpointVolume, cb *volumeCallback) error {
	hr, _, _ := syscall.SyscallN(
		aev.VTable().UnregisterControlChangeNotify,
		uintptr(unsafe.Pointer(aev)),
		uintptr(unsafe.Pointer(cb)))
	if hr != 0 {
		return ole.NewError(hr)
	}
	return nil
}

// getMute reads the flag into a 32-bit BOOL. go-wca's GetMute writes the
// BOOL through a *bool, which is one byte wide.
func getMute(aev *wca.IAudioEndpointVolume) (bool, error) {
	var muted int32
	hr, _, _ := syscall.SyscallN(
		aev.VTable().GetMute,
		uintptr(unsafe.Pointer(aev)),
		uintptr(unsafe.Pointer(&muted)))
	if hr != 0 {
		return false, ole.NewError(hr)
	}
	return muted != 0, nil
}
