package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beanpeso/costing-app/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecipeLineInput references an existing ingredient with a quantity in that
// ingredient's base unit.
type RecipeLineInput struct {
	IngredientID uint            `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

type RecipeInput struct {
	DrinkName           string            `json:"drink_name"`
	TargetMarginPercent decimal.Decimal   `json:"target_margin_percent"`
	Ingredients         []RecipeLineInput `json:"ingredients"`
	Notes               string            `json:"notes"`
}

// RecipeView is a recipe plus its classification labels, which are derived on
// read rather than stored.
type RecipeView struct {
	models.Recipe
	ComplexityLevel     string `json:"complexity_level"`
	PricingCategory     string `json:"pricing_category"`
	ProfitabilityStatus string `json:"profitability_status"`
}

// RecipeStatistics aggregates pricing across all recipes.
type RecipeStatistics struct {
	TotalRecipes        int             `json:"total_recipes"`
	AverageSellingPrice decimal.Decimal `json:"average_selling_price"`
	AverageCost         decimal.Decimal `json:"average_cost"`
	AverageMargin       decimal.Decimal `json:"average_margin"`
	SimpleRecipes       int             `json:"simple_recipes"`
	ModerateRecipes     int             `json:"moderate_recipes"`
	ComplexRecipes      int             `json:"complex_recipes"`
	VeryComplexRecipes  int             `json:"very_complex_recipes"`
}

type RecipeService struct{ DB *gorm.DB }

func NewRecipeService(db *gorm.DB) *RecipeService { return &RecipeService{DB: db} }

func viewOf(r models.Recipe) RecipeView {
	return RecipeView{
		Recipe:              r,
		ComplexityLevel:     r.ComplexityLevel(),
		PricingCategory:     r.PricingCategory(),
		ProfitabilityStatus: r.ProfitabilityStatus(),
	}
}

func (s *RecipeService) List() ([]RecipeView, error) {
	var recipes []models.Recipe
	if err := s.DB.Preload("Ingredients.Ingredient").Order("drink_name asc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	views := make([]RecipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, viewOf(r))
	}
	return views, nil
}

func (s *RecipeService) Get(id uint) (*RecipeView, error) {
	r, err := s.load(s.DB, id)
	if err != nil {
		return nil, err
	}
	v := viewOf(*r)
	return &v, nil
}

// Create builds the recipe with its lines, runs the full cost and margin
// chain, and persists everything in one transaction so a partially computed
// recipe is never observable.
func (s *RecipeService) Create(in RecipeInput) (*RecipeView, error) {
	if err := validateMargin(in.TargetMarginPercent); err != nil {
		return nil, err
	}
	taken, err := s.nameTaken(in.DrinkName, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("recipe name %q: %w", in.DrinkName, ErrConflict)
	}

	lines, err := s.buildLines(in.Ingredients)
	if err != nil {
		return nil, err
	}
	recipe := models.Recipe{
		DrinkName:           strings.TrimSpace(in.DrinkName),
		TargetMarginPercent: in.TargetMarginPercent,
		Ingredients:         lines,
		Notes:               in.Notes,
	}
	recipe.CalculateCosts()

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Ingredients").Create(&recipe).Error; err != nil {
			return err
		}
		for i := range recipe.Ingredients {
			recipe.Ingredients[i].RecipeID = recipe.ID
		}
		if len(recipe.Ingredients) > 0 {
			if err := tx.Create(&recipe.Ingredients).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(recipe.ID)
}

// Update replaces the recipe's fields and its whole line collection, then
// recomputes the chain. Lines are owned: the old set is deleted and the new
// one created inside the same transaction.
func (s *RecipeService) Update(id uint, in RecipeInput) (*RecipeView, error) {
	if err := validateMargin(in.TargetMarginPercent); err != nil {
		return nil, err
	}
	existing, err := s.load(s.DB, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(existing.DrinkName, in.DrinkName) {
		taken, err := s.nameTaken(in.DrinkName, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("recipe name %q: %w", in.DrinkName, ErrConflict)
		}
	}
	lines, err := s.buildLines(in.Ingredients)
	if err != nil {
		return nil, err
	}

	existing.DrinkName = strings.TrimSpace(in.DrinkName)
	existing.TargetMarginPercent = in.TargetMarginPercent
	existing.Notes = in.Notes
	existing.Ingredients = lines
	existing.CalculateCosts()

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", existing.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range existing.Ingredients {
			existing.Ingredients[i].RecipeID = existing.ID
		}
		if len(existing.Ingredients) > 0 {
			if err := tx.Create(&existing.Ingredients).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Ingredients").Save(existing).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(existing.ID)
}

func (s *RecipeService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Recipe{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("recipe %d: %w", id, ErrNotFound)
		}
		// Lines are owned by the recipe and die with it.
		return tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error
	})
}

func (s *RecipeService) Search(term string) ([]RecipeView, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var recipes []models.Recipe
	if err := s.DB.Preload("Ingredients.Ingredient").Where("lower(drink_name) LIKE ?", like).Order("drink_name asc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	views := make([]RecipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, viewOf(r))
	}
	return views, nil
}

// PriceRange lists recipes whose suggested price falls in [min, max].
func (s *RecipeService) PriceRange(minPrice, maxPrice decimal.Decimal) ([]RecipeView, error) {
	if minPrice.GreaterThan(maxPrice) {
		return nil, fmt.Errorf("min price above max price: %w", ErrInvalidRange)
	}
	var recipes []models.Recipe
	if err := s.DB.Preload("Ingredients.Ingredient").
		Where("suggested_selling_price BETWEEN ? AND ?", minPrice, maxPrice).
		Order("suggested_selling_price asc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	views := make([]RecipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, viewOf(r))
	}
	return views, nil
}

// MinimumMargin lists recipes achieving at least the given actual margin.
func (s *RecipeService) MinimumMargin(minMargin decimal.Decimal) ([]RecipeView, error) {
	var recipes []models.Recipe
	if err := s.DB.Preload("Ingredients.Ingredient").
		Where("actual_margin_percent >= ?", minMargin).
		Order("actual_margin_percent desc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	views := make([]RecipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, viewOf(r))
	}
	return views, nil
}

// WhatIf reprices a stored recipe under a candidate margin without persisting
// anything. Margins outside (0, 100) leave the stored pricing untouched in
// the returned view.
func (s *RecipeService) WhatIf(id uint, margin decimal.Decimal) (*RecipeView, error) {
	r, err := s.load(s.DB, id)
	if err != nil {
		return nil, err
	}
	scenario := *r
	if margin.IsPositive() && margin.LessThan(oneHundred) {
		scenario.TargetMarginPercent = margin
		scenario.CalculateSuggestedSellingPrice()
	}
	v := viewOf(scenario)
	return &v, nil
}

// Statistics computes cross-recipe averages and complexity bucket counts.
// An empty table yields zero counts and zero averages.
func (s *RecipeService) Statistics() (*RecipeStatistics, error) {
	var recipes []models.Recipe
	if err := s.DB.Preload("Ingredients").Find(&recipes).Error; err != nil {
		return nil, err
	}
	stats := &RecipeStatistics{TotalRecipes: len(recipes)}
	if len(recipes) == 0 {
		return stats, nil
	}
	totalPrice, totalCost, totalMargin := decimal.Zero, decimal.Zero, decimal.Zero
	for i := range recipes {
		r := &recipes[i]
		totalPrice = totalPrice.Add(r.SuggestedSellingPrice)
		totalCost = totalCost.Add(r.TotalCost)
		totalMargin = totalMargin.Add(r.ActualMarginPercent)
		switch r.ComplexityLevel() {
		case "Simple":
			stats.SimpleRecipes++
		case "Moderate":
			stats.ModerateRecipes++
		case "Complex":
			stats.ComplexRecipes++
		default:
			stats.VeryComplexRecipes++
		}
	}
	count := decimal.NewFromInt(int64(len(recipes)))
	stats.AverageSellingPrice = totalPrice.DivRound(count, 2)
	stats.AverageCost = totalCost.DivRound(count, 2)
	stats.AverageMargin = totalMargin.DivRound(count, 2)
	return stats, nil
}

func (s *RecipeService) load(tx *gorm.DB, id uint) (*models.Recipe, error) {
	var r models.Recipe
	if err := tx.Preload("Ingredients.Ingredient").First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &r, nil
}

// buildLines resolves ingredient references and computes each line cost.
// A missing ingredient is a NotFound for the whole request.
func (s *RecipeService) buildLines(inputs []RecipeLineInput) ([]models.RecipeIngredient, error) {
	lines := make([]models.RecipeIngredient, 0, len(inputs))
	for _, in := range inputs {
		var ing models.Ingredient
		if err := s.DB.First(&ing, in.IngredientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("ingredient %d: %w", in.IngredientID, ErrNotFound)
			}
			return nil, err
		}
		line := models.RecipeIngredient{IngredientID: ing.ID, Ingredient: ing, Quantity: in.Quantity}
		line.CalculateLineCost()
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *RecipeService) nameTaken(name string, excludeID uint) (bool, error) {
	q := s.DB.Model(&models.Recipe{}).Where("lower(drink_name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var oneHundred = decimal.NewFromInt(100)

func validateMargin(margin decimal.Decimal) error {
	if !margin.IsPositive() || margin.GreaterThanOrEqual(oneHundred) {
		return fmt.Errorf("target margin must be between 0%% and 100%% exclusive: %w", ErrInvalidRange)
	}
	return nil
}

// recalculateRecipesUsing re-runs the full derived chain for every recipe
// that references the given ingredient. Ingredient mutations must never leave
// stale line costs or totals behind.
func recalculateRecipesUsing(tx *gorm.DB, ingredientID uint) error {
	var ids []uint
	if err := tx.Model(&models.RecipeIngredient{}).
		Where("ingredient_id = ?", ingredientID).
		Distinct("recipe_id").Pluck("recipe_id", &ids).Error; err != nil {
		return err
	}
	for _, id := range ids {
		var r models.Recipe
		if err := tx.Preload("Ingredients.Ingredient").First(&r, id).Error; err != nil {
			return err
		}
		r.CalculateCosts()
		for i := range r.Ingredients {
			line := &r.Ingredients[i]
			if err := tx.Model(&models.RecipeIngredient{}).Where("id = ?", line.ID).
				Update("line_cost", line.LineCost).Error; err != nil {
				return err
			}
		}
		if err := tx.Omit("Ingredients").Save(&r).Error; err != nil {
			return err
		}
	}
	return nil
}
