package evd

import "strings"

// bareLabels maps field labels that some documents emit without their key
// code to the code they belong under. A bare label line would otherwise
// classify as a value and shift the whole reconciliation by one.
var bareLabels = map[string]string{
	"Mengeneinheit": "17w",
}

// PrefixBareLabels rewrites known bare label lines into proper key lines
// before parsing. All other lines pass through untouched.
func PrefixBareLabels(raw string) string {
	lines := strings.Split(raw, "\n")
	changed := false
	for i, l := range lines {
		if code, ok := bareLabels[Normalize(l)]; ok {
			lines[i] = code + " " + Normalize(l)
			changed = true
		}
	}
	if !changed {
		return raw
	}
	return strings.Join(lines, "\n")
}
