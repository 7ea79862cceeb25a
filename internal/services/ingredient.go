package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beanpeso/costing-app/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IngredientInput carries validated primitive inputs for create/update.
type IngredientInput struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	BaseUnit  string          `json:"base_unit"`
	PackSize  decimal.Decimal `json:"pack_size"`
	PackPrice decimal.Decimal `json:"pack_price"`
	Notes     string          `json:"notes"`
}

type IngredientService struct{ DB *gorm.DB }

func NewIngredientService(db *gorm.DB) *IngredientService { return &IngredientService{DB: db} }

func (s *IngredientService) List() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.DB.Order("category asc, name asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *IngredientService) Get(id uint) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := s.DB.First(&ing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ingredient %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &ing, nil
}

// Create inserts a new ingredient. The per-unit cost is derived in the model's
// BeforeSave hook; a name that already exists (case-insensitive) is rejected.
func (s *IngredientService) Create(in IngredientInput) (*models.Ingredient, error) {
	taken, err := s.nameTaken(in.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("ingredient name %q: %w", in.Name, ErrConflict)
	}
	ing := models.Ingredient{
		Name:      strings.TrimSpace(in.Name),
		Category:  strings.ToLower(strings.TrimSpace(in.Category)),
		BaseUnit:  strings.ToLower(strings.TrimSpace(in.BaseUnit)),
		PackSize:  in.PackSize,
		PackPrice: in.PackPrice,
		Notes:     in.Notes,
	}
	if err := s.DB.Create(&ing).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

// Update replaces the pack data and identity fields, then the hook re-derives
// the per-unit cost. Renaming onto an existing name is rejected.
func (s *IngredientService) Update(id uint, in IngredientInput) (*models.Ingredient, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(existing.Name, in.Name) {
		taken, err := s.nameTaken(in.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("ingredient name %q: %w", in.Name, ErrConflict)
		}
	}
	existing.Name = strings.TrimSpace(in.Name)
	existing.Category = strings.ToLower(strings.TrimSpace(in.Category))
	existing.BaseUnit = strings.ToLower(strings.TrimSpace(in.BaseUnit))
	existing.PackSize = in.PackSize
	existing.PackPrice = in.PackPrice
	existing.Notes = in.Notes
	// Changed pack data changes the per-unit cost, which invalidates every
	// recipe using this ingredient; recompute them in the same transaction.
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		return recalculateRecipesUsing(tx, existing.ID)
	})
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes the ingredient. Recipe lines that referenced it stay, but
// their ingredient reference is now missing, so they cost zero; affected
// recipes are recomputed accordingly.
func (s *IngredientService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Ingredient{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("ingredient %d: %w", id, ErrNotFound)
		}
		return recalculateRecipesUsing(tx, id)
	})
}

// Search matches names case-insensitively by substring.
func (s *IngredientService) Search(term string) ([]models.Ingredient, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var ingredients []models.Ingredient
	if err := s.DB.Where("lower(name) LIKE ?", like).Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *IngredientService) ByCategory(category string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.DB.Where("lower(category) = ?", strings.ToLower(category)).Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Categories returns the distinct categories in use, filtered to the closed set.
func (s *IngredientService) Categories() ([]string, error) {
	var raw []string
	if err := s.DB.Model(&models.Ingredient{}).Distinct("category").Order("category").Pluck("category", &raw).Error; err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(raw))
	for _, c := range raw {
		if models.ValidIngredientCategory(c) {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

func (s *IngredientService) nameTaken(name string, excludeID uint) (bool, error) {
	q := s.DB.Model(&models.Ingredient{}).Where("lower(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
