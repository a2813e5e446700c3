package services

import (
	"time"

	"github.com/yeremiapane/qrmenu-app/models"
)

// DeriveCategories reconciles category records from the menu itself, used
// as a fallback when no curated MenuCategory rows exist. Labels keep the
// order in which they first appear; blanks and inactive items are skipped.
func DeriveCategories(items []models.Menu) []models.MenuCategory {
	seen := make(map[string]bool)
	var categories []models.MenuCategory

	now := time.Now()
	for _, item := range items {
		if !item.IsActive || item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, models.MenuCategory{
			Name:      item.Category,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return categories
}
