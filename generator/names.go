package generator

import (
	"fmt"

	"github.com/ByLCY/staffdoc/record"
)

// nameSet tracks the file names claimed during one run.
type nameSet struct {
	policy CollisionPolicy
	used   map[string]bool
}

func newNameSet(policy CollisionPolicy) *nameSet {
	return &nameSet{policy: policy, used: map[string]bool{}}
}

// claim returns the file name to write for base.ext under the policy.
func (s *nameSet) claim(base, ext string) (string, error) {
	name := base + "." + ext
	if s.used[name] {
		switch s.policy {
		case CollisionError:
			return "", fmt.Errorf("%s: %w", name, record.ErrFilenameCollision)
		case CollisionSuffix:
			for i := 2; ; i++ {
				candidate := fmt.Sprintf("%s_%d.%s", base, i, ext)
				if !s.used[candidate] {
					name = candidate
					break
				}
			}
		}
	}
	s.used[name] = true
	return name, nil
}
