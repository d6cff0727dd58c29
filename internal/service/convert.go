package service

import (
	"github.com/mmynk/billsplit/internal/format"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/pkg/api"
)

func toAPISession(s *models.Session) api.Session {
	items := make([]api.LineItem, len(s.Items))
	for i, item := range s.Items {
		items[i] = toAPIItem(item)
	}
	participants := s.Participants
	if participants == nil {
		participants = []string{}
	}
	return api.Session{
		ID:           s.ID,
		Title:        s.Title,
		Participants: participants,
		Items:        items,
		Tax: api.TaxSettings{
			GST:                s.Tax.GST,
			ServiceCharge:      s.Tax.ServiceCharge,
			ApplyGST:           s.Tax.ApplyGST,
			ApplyServiceCharge: s.Tax.ApplyServiceCharge,
		},
		Discount: api.DiscountSettings{
			Type:           string(s.Discount.Type),
			Value:          s.Discount.Value,
			ApplyBeforeTax: s.Discount.ApplyBeforeTax,
			Enabled:        s.Discount.Enabled,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toAPIItem(item models.LineItem) api.LineItem {
	assigned := item.AssignedTo
	if assigned == nil {
		assigned = []string{}
	}
	return api.LineItem{
		ID:         item.ID,
		Name:       item.Name,
		Amount:     item.Amount,
		AssignedTo: assigned,
	}
}

func toAPIItems(items []models.LineItem) []api.LineItem {
	out := make([]api.LineItem, len(items))
	for i, item := range items {
		out[i] = toAPIItem(item)
	}
	return out
}

func fromAPIItems(items []api.LineItem) []models.LineItem {
	out := make([]models.LineItem, len(items))
	for i, item := range items {
		out[i] = models.LineItem{
			ID:         item.ID,
			Name:       item.Name,
			Amount:     item.Amount,
			AssignedTo: item.AssignedTo,
		}
	}
	return out
}

func fromAPITax(t api.TaxSettings) models.TaxSettings {
	return models.TaxSettings{
		GST:                t.GST,
		ServiceCharge:      t.ServiceCharge,
		ApplyGST:           t.ApplyGST,
		ApplyServiceCharge: t.ApplyServiceCharge,
	}
}

func fromAPIDiscount(d api.DiscountSettings) models.DiscountSettings {
	return models.DiscountSettings{
		Type:           models.DiscountType(d.Type),
		Value:          d.Value,
		ApplyBeforeTax: d.ApplyBeforeTax,
		Enabled:        d.Enabled,
	}
}

// toAPISummary formats every figure to cents.
func toAPISummary(s models.Summary) api.Summary {
	view := format.Render(s)
	people := make([]api.PersonSummary, len(view.People))
	for i, p := range view.People {
		items := make([]api.ItemShare, len(p.Items))
		for j, item := range p.Items {
			items[j] = api.ItemShare{Name: item.Name, Amount: item.Amount}
		}
		people[i] = api.PersonSummary{
			Name:          p.Name,
			Subtotal:      p.Subtotal,
			Discount:      p.Discount,
			ServiceCharge: p.ServiceCharge,
			GST:           p.GST,
			Total:         p.Total,
			Items:         items,
		}
	}
	return api.Summary{
		People:             people,
		Subtotal:           view.Subtotal,
		DiscountTotal:      view.DiscountTotal,
		ServiceChargeTotal: view.ServiceChargeTotal,
		GSTTotal:           view.GSTTotal,
		GrandTotal:         view.GrandTotal,
	}
}
