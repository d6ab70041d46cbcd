package layout

import "time"

// DefaultLogoWidth applies when the template has no `logo width`.
const DefaultLogoWidth = 30.0 // mm

// BuildOptions configures one Build call.
type BuildOptions struct {
	// LogoPath is the optional logo; empty omits the image block.
	LogoPath string
	// Now stamps DocumentMeta.Created; nil means time.Now.
	Now func() time.Time
}
