// Package calculator implements the bill-splitting engine: who owes, how
// shared items are divided, and how discount, service charge and GST are
// layered on top. Every function here is pure.
package calculator

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mmynk/billsplit/internal/models"
)

// ResolveParticipants returns the distinct names assigned to at least one
// item, sorted alphabetically. Roster members without items are not
// included: the breakdown only lists people who owe money.
func ResolveParticipants(items []models.LineItem) []string {
	seen := make(map[string]struct{})
	names := []string{}
	for _, item := range items {
		for _, name := range item.AssignedTo {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	SortNames(names)
	return names
}

// SortNames sorts names in place using English collation, falling back to
// byte order so that the result is a total order.
func SortNames(names []string) {
	// Collators keep internal buffers and must not be shared between goroutines.
	c := collate.New(language.English)
	sort.SliceStable(names, func(i, j int) bool {
		if r := c.CompareString(names[i], names[j]); r != 0 {
			return r < 0
		}
		return names[i] < names[j]
	})
}
