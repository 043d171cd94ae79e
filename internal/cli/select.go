package cli

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/figma"
)

// SelectComponents asks the user to pick components and returns them in
// their original order.
func SelectComponents(refs []figma.ComponentRef) ([]figma.ComponentRef, error) {
	options := OptionLabels(refs)
	chosen, err := pterm.DefaultInteractiveMultiselect.
		WithOptions(options).
		WithDefaultText("Select components to convert").
		WithMaxHeight(15).
		Show()
	if err != nil {
		return nil, errors.Wrap(err, "reading selection")
	}
	return PickByLabel(refs, chosen), nil
}

// OptionLabels returns one unique label per component: "Name (KIND) id".
func OptionLabels(refs []figma.ComponentRef) []string {
	labels := make([]string, len(refs))
	for i, r := range refs {
		labels[i] = fmt.Sprintf("%s (%s) %s", r.Name, r.Kind, r.ID)
	}
	return labels
}

// PickByLabel keeps the components whose label was chosen, preserving the
// order of refs. A label chosen once selects every component carrying it.
func PickByLabel(refs []figma.ComponentRef, chosen []string) []figma.ComponentRef {
	want := make(map[string]bool, len(chosen))
	for _, c := range chosen {
		want[c] = true
	}
	out := []figma.ComponentRef{}
	for i, label := range OptionLabels(refs) {
		if want[label] {
			out = append(out, refs[i])
		}
	}
	return out
}
