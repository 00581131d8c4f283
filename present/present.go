// Package present shows rendered frames outside the process: in a terminal
// or as PNG files. The desktop window lives in the window subpackage.
package present

// WheelNotch is the zoom delta of one mouse wheel notch
const WheelNotch = 120
