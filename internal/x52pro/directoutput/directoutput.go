// Package directoutput wraps the vendor DirectOutput library that exposes
// the LEDs of Saitek flight controllers. The real implementation binds the
// DLL on Windows; other platforms get a logging no-op so the rest of the
// application can be developed and tested anywhere.
package directoutput

// Driver is the single primitive the rendering layer needs: set one LED to
// an on/off state. Failures are fatal to the application; a display with a
// stuck or unknown state is worse than a crashed one.
type Driver interface {
	SetLED(id uint32, on bool) error
	Close() error
}

const (
	// pluginName identifies this application to the DirectOutput runtime.
	pluginName = "X52LC"

	// pageID is the single LED page the application registers.
	pageID = 1
)
