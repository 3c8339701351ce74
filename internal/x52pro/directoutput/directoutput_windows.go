//go:build windows

package directoutput

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

const dllPath = `C:\Program Files\Logitech\DirectOutput\DirectOutput.dll`

const flagSetAsActive = 1

// dll binds the DirectOutput library. It holds the handle of the first
// enumerated device; only one physical device is supported.
type dll struct {
	library    *windows.LazyDLL
	initialize *windows.LazyProc
	enumerate  *windows.LazyProc
	addPage    *windows.LazyProc
	setLED     *windows.LazyProc
	deinit     *windows.LazyProc
	device     uintptr
	logger     *zap.Logger
}

// Open loads the DirectOutput library, initializes it, enumerates the
// attached device and registers the LED page. It fails when the library is
// missing or no device is attached.
func Open(logger *zap.Logger) (Driver, error) {
	library := windows.NewLazySystemDLL(dllPath)
	if err := library.Load(); err != nil {
		return nil, fmt.Errorf("failed to load DirectOutput library: %w", err)
	}

	d := &dll{
		library:    library,
		initialize: library.NewProc("DirectOutput_Initialize"),
		enumerate:  library.NewProc("DirectOutput_Enumerate"),
		addPage:    library.NewProc("DirectOutput_AddPage"),
		setLED:     library.NewProc("DirectOutput_SetLed"),
		deinit:     library.NewProc("DirectOutput_Deinitialize"),
		logger:     logger,
	}

	name, err := windows.UTF16PtrFromString(pluginName)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plugin name: %w", err)
	}

	if hr, _, _ := d.initialize.Call(uintptr(unsafe.Pointer(name))); hr != 0 {
		return nil, fmt.Errorf("DirectOutput_Initialize failed: HRESULT 0x%08X", hr)
	}

	callback := windows.NewCallback(func(device uintptr, ctx uintptr) uintptr {
		// Last enumerated device wins; only one is expected.
		d.device = device
		return 0
	})

	if hr, _, _ := d.enumerate.Call(callback, 0); hr != 0 {
		return nil, fmt.Errorf("DirectOutput_Enumerate failed: HRESULT 0x%08X", hr)
	}
	if d.device == 0 {
		return nil, fmt.Errorf("no DirectOutput device found")
	}

	logger.Info("DirectOutput device found")

	// The SDK requires a non-null debug name or later calls report the page
	// as inactive.
	if hr, _, _ := d.addPage.Call(d.device, pageID, uintptr(unsafe.Pointer(name)), flagSetAsActive); hr != 0 {
		return nil, fmt.Errorf("DirectOutput_AddPage failed: HRESULT 0x%08X", hr)
	}

	return d, nil
}

// SetLED sets the given LED id on the registered page.
func (d *dll) SetLED(id uint32, on bool) error {
	var value uintptr
	if on {
		value = 1
	}

	if hr, _, _ := d.setLED.Call(d.device, pageID, uintptr(id), value); hr != 0 {
		return fmt.Errorf("DirectOutput_SetLed failed for LED %d: HRESULT 0x%08X", id, hr)
	}
	return nil
}

// Close deinitializes the library.
func (d *dll) Close() error {
	if hr, _, _ := d.deinit.Call(); hr != 0 {
		return fmt.Errorf("DirectOutput_Deinitialize failed: HRESULT 0x%08X", hr)
	}
	return nil
}
