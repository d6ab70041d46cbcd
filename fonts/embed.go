package fonts

import (
	"fmt"
	"strings"

	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10regular"
)

// Built-in font names.
const (
	Sans     = "sans"
	SansBold = "sans-bold"
)

// Load 返回内置字体的字节数据，name 可写为 "embed:sans" 或直接 "sans"。
func Load(name string) ([]byte, error) {
	switch strings.TrimPrefix(name, "embed:") {
	case Sans:
		return lmsans10regular.TTF, nil
	case SansBold:
		return lmsans10bold.TTF, nil
	}
	return nil, fmt.Errorf("unknown built-in font %q", name)
}
