package validators

import "strings"

// Field is a named request value checked for presence
type Field struct {
	Name  string
	Value string
}

// MissingFields returns the names of every field with an empty value, in
// the order given. Whitespace counts as a value.
func MissingFields(fields ...Field) []string {
	var missing []string
	for _, f := range fields {
		if f.Value == "" {
			missing = append(missing, f.Name)
		}
	}

	return missing
}

// MissingMessage formats names the way the API reports them
func MissingMessage(names []string) string {
	return "Missing fields: " + strings.Join(names, ", ")
}
