package models

// MobileBreakpoint is the viewport width, in CSS pixels, under which a
// client is treated as a touch device.
const MobileBreakpoint = 768

// DeviceClass is the single source of truth for desktop-vs-touch
// routing. It is computed once per session and passed down instead of
// being re-derived ad hoc.
type DeviceClass int

const (
	DeviceDesktop DeviceClass = iota
	DeviceTouch
)

// String returns the string representation of a DeviceClass.
func (d DeviceClass) String() string {
	switch d {
	case DeviceDesktop:
		return "desktop"
	case DeviceTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// DeviceClassFor derives the device class from the client viewport
// width and pointer capability.
func DeviceClassFor(widthPx int, hasTouch bool) DeviceClass {
	if hasTouch || widthPx < MobileBreakpoint {
		return DeviceTouch
	}
	return DeviceDesktop
}
