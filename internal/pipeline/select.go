package pipeline

import (
	"fmt"
	"strings"

	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/figma"
)

// suggestThreshold is the similarity a name needs to be offered as a
// correction.
const suggestThreshold = 0.6

// SelectByName keeps the components whose name matches one of names,
// ignoring case, in document order. Every name must match at least one
// component; the error for an unknown name suggests the closest one.
func SelectByName(refs []figma.ComponentRef, names []string) ([]figma.ComponentRef, error) {
	all := make([]string, len(refs))
	for i, r := range refs {
		all[i] = r.Name
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		found := false
		for _, r := range refs {
			if strings.ToLower(r.Name) == key {
				found = true
				break
			}
		}
		if !found {
			err := errors.Newf("no component named %q", n)
			if best := errors.ClosestName(n, all, suggestThreshold); best != "" {
				err = errors.WithHint(err, fmt.Sprintf("did you mean %q?", best))
			}
			return nil, err
		}
		want[key] = true
	}

	out := []figma.ComponentRef{}
	for _, r := range refs {
		if want[strings.ToLower(r.Name)] {
			out = append(out, r)
		}
	}
	return out, nil
}
