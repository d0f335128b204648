package pipeline

import (
	"fmt"
	"strings"
)

// DefaultTransformations are applied to every CSV record unless the loader
// is given WithTransformations.
var DefaultTransformations = []string{"trimStrings", "removeNulls"}

// applyTransformations applies all named transformations to a raw CSV record.
// The input slice is left untouched.
func applyTransformations(record []string, transformations []string) ([]string, error) {
	result := append([]string(nil), record...)

	for _, transform := range transformations {
		switch transform {
		case "trimStrings":
			result = trimStrings(result)
		case "removeNulls":
			result = removeNulls(result)
		case "removeQuotes":
			result = removeQuotes(result)
		case "collapseSpaces":
			result = collapseSpaces(result)
		default:
			return nil, fmt.Errorf("unknown transformation: %s", transform)
		}
	}

	return result, nil
}

// cleanHeader trims whitespace and removes ALL quotes from a header name
func cleanHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.TrimSpace(h)
	return strings.ReplaceAll(h, `"`, "")
}

// trimStrings trims whitespace from every cell
func trimStrings(cells []string) []string {
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// removeNulls blanks out cells spelling a null marker
func removeNulls(cells []string) []string {
	for i, c := range cells {
		switch strings.ToLower(c) {
		case "null", "nan", "n/a", "na", "none":
			cells[i] = ""
		}
	}
	return cells
}

// removeQuotes strips stray double quotes left by lazy quoting
func removeQuotes(cells []string) []string {
	for i, c := range cells {
		cells[i] = strings.ReplaceAll(c, `"`, "")
	}
	return cells
}

// collapseSpaces turns runs of whitespace into one space
func collapseSpaces(cells []string) []string {
	for i, c := range cells {
		cells[i] = strings.Join(strings.Fields(c), " ")
	}
	return cells
}
