package domain

import (
	"sort"
	"strings"

	"flight_favorites/internal/apperror"
)

// requireFields fails with a Validation error naming every blank field
func requireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return apperror.New(apperror.Validation, "missing required fields: "+strings.Join(missing, ", "))
}
