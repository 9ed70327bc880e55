package analysis

import (
	"fmt"
	"strings"

	"github.com/sumsori/sumsori-api/internal/models"
)

// ComposeImagePrompt linearizes a structured image directive into a single
// instruction string: "field: value" pairs joined by ". ", in the fixed
// declaration order of ImagePrompt. The ordering is load-bearing — the image
// model reads format/character/angle as composition before style/scene/mood
// refine it.
//
// A missing field is rejected here so a paid generation call is never spent
// on a malformed directive.
func ComposeImagePrompt(p models.ImagePrompt) (string, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"format", p.Format},
		{"character", p.Character},
		{"angle", p.Angle},
		{"style", p.Style},
		{"scene", p.Scene},
		{"catPose", p.CatPose},
		{"colorPalette", p.ColorPalette},
		{"lighting", p.Lighting},
		{"forbidden", p.Forbidden},
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.value == "" {
			return "", fmt.Errorf("image prompt missing field %q", f.name)
		}
		parts = append(parts, f.name+": "+f.value)
	}

	return strings.Join(parts, ". "), nil
}
