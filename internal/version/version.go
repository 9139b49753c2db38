// ABOUTME: Version constants for the application
// ABOUTME: Shown in the TUI header and log preamble
package version

const (
	// Version is the application version.
	Version = "0.1.0"

	// Product is the application name.
	Product = "Audio9 Looper"

	// Manufacturer identifies the project.
	Manufacturer = "Audio9"
)
