package options

// Options holds the demo's command-line configuration. Fields are
// pointers into flag-registered values, filled in by the cmd package.
type Options struct {
	Width   *int
	Height  *int
	Image   *string // Path to an image to use as the quad texture. Empty uses a checkerboard.
	Filter  *string // Texture filter: "linear" or "nearest".
	Blend   *bool   // Draw with blending enabled.
	Verbose *bool   // Enable debug logging of resource lifecycle events.
}
