package calculator

import (
	"github.com/mmynk/billsplit/internal/models"
)

// Allocate splits every item evenly among its assignees and aggregates the
// shares per participant.
//
// The result holds one PersonTotal per entry of participants, in the same
// order, with Subtotal and Items filled in. Items keep ledger order. An item
// with no assignees contributes to nobody. Names assigned to an item but
// missing from participants are ignored.
//
// No rounding is applied: person_share = item.Amount / len(item.AssignedTo).
func Allocate(items []models.LineItem, participants []string) []models.PersonTotal {
	index := make(map[string]int, len(participants))
	totals := make([]models.PersonTotal, len(participants))
	for i, p := range participants {
		index[p] = i
		totals[i] = models.PersonTotal{Name: p}
	}

	for _, item := range items {
		if len(item.AssignedTo) == 0 {
			continue
		}

		// Split item among assigned people
		perPersonAmount := item.Amount / float64(len(item.AssignedTo))
		for _, person := range item.AssignedTo {
			i, exists := index[person]
			if !exists {
				continue
			}
			totals[i].Subtotal += perPersonAmount
			totals[i].Items = append(totals[i].Items, models.PersonItem{
				Name:   item.Name,
				Amount: perPersonAmount,
			})
		}
	}

	return totals
}
