package generator

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ByLCY/staffdoc/dsl"
	"github.com/ByLCY/staffdoc/renderer"
)

// DefaultOutputDir is used when Config.OutputDir is empty.
const DefaultOutputDir = "output"

// CollisionPolicy decides what happens when two records of one run map to
// the same output file name.
type CollisionPolicy string

const (
	// CollisionSuffix appends _2, _3, ... to later duplicates.
	CollisionSuffix CollisionPolicy = "suffix"
	// CollisionOverwrite lets the later record replace the earlier file.
	CollisionOverwrite CollisionPolicy = "overwrite"
	// CollisionError rejects the duplicate with record.ErrFilenameCollision.
	CollisionError CollisionPolicy = "error"
)

// ParseCollisionPolicy accepts suffix, overwrite or error; empty means suffix.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch p := CollisionPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return CollisionSuffix, nil
	case CollisionSuffix, CollisionOverwrite, CollisionError:
		return p, nil
	}
	return "", fmt.Errorf("unknown collision policy %q (want suffix, overwrite or error)", s)
}

// Config is the explicit configuration of a Generator. The zero value is
// usable: every empty field takes its default in New.
type Config struct {
	// OutputDir receives the generated files; created when absent.
	OutputDir string
	// Template describes the document; nil means dsl.Default().
	Template *dsl.Template
	// Collision defaults to CollisionSuffix.
	Collision CollisionPolicy
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// DebugDir, when set, receives one layout JSON per record.
	DebugDir string
	// Renderers overrides the built-in PDF and Word renderers.
	Renderers []renderer.Renderer
	// Now is the clock used for run timestamps and document metadata.
	Now func() time.Time
}
