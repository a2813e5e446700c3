package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/qrmenu-app/models"
)

func TestDeriveCategories(t *testing.T) {
	items := []models.Menu{
		{Name: "Margherita", Category: "Pizza", IsActive: true},
		{Name: "Diavola", Category: "Pizza", IsActive: true},
		{Name: "Tiramisu", Category: "Dessert", IsActive: true},
		{Name: "Old Special", Category: "Seasonal", IsActive: false},
		{Name: "Uncategorized", Category: "", IsActive: true},
	}

	categories := DeriveCategories(items)

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Pizza", "Dessert"}, names)
}

func TestDeriveCategoriesEmpty(t *testing.T) {
	assert.Empty(t, DeriveCategories(nil))
	assert.Empty(t, DeriveCategories([]models.Menu{}))
}
