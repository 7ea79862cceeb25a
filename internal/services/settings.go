package services

import (
	"errors"
	"fmt"

	"github.com/beanpeso/costing-app/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SettingsInput carries validated primitive inputs for the business settings.
type SettingsInput struct {
	ExpectedMonthlySales int `json:"expected_monthly_sales"`
	WorkingDaysPerMonth  int `json:"working_days_per_month"`
}

// SettingsSummary is the latest settings record plus its derived numbers.
type SettingsSummary struct {
	models.BusinessSettings
	DailyExpense       decimal.Decimal `json:"daily_expense"`
	ExpectedDailySales int             `json:"expected_daily_sales"`
	BreakEvenUnits     int             `json:"break_even_units"`
}

// AllocationResult reports an explicit overhead allocation run.
type AllocationResult struct {
	ExpensePerItem  decimal.Decimal `json:"expense_per_item"`
	RecipesAffected int             `json:"recipes_affected"`
}

// SettingsService manages the business settings history and the overhead
// allocation across recipes. The newest settings row always wins.
type SettingsService struct{ DB *gorm.DB }

func NewSettingsService(db *gorm.DB) *SettingsService { return &SettingsService{DB: db} }

// Latest returns the most recently created settings record, or NotFound when
// the business has never been configured.
func (s *SettingsService) Latest() (*models.BusinessSettings, error) {
	var bs models.BusinessSettings
	if err := s.DB.Order("id DESC").First(&bs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("business settings: %w", ErrNotFound)
		}
		return nil, err
	}
	return &bs, nil
}

// Save creates a new settings record (most recent wins) with the expense
// total refreshed from the operating expenses; the per-item share derives in
// the model hook.
func (s *SettingsService) Save(in SettingsInput) (*models.BusinessSettings, error) {
	workingDays := in.WorkingDaysPerMonth
	if workingDays == 0 {
		workingDays = 26
	}
	total, err := totalMonthlyExpenses(s.DB)
	if err != nil {
		return nil, err
	}
	bs := models.BusinessSettings{
		ExpectedMonthlySales: in.ExpectedMonthlySales,
		WorkingDaysPerMonth:  workingDays,
		TotalMonthlyExpenses: total,
	}
	if err := s.DB.Create(&bs).Error; err != nil {
		return nil, err
	}
	return &bs, nil
}

// Refresh re-reads the expense total into the latest settings record, for use
// after expense mutations without changing the sales expectations.
func (s *SettingsService) Refresh() (*models.BusinessSettings, error) {
	bs, err := s.Latest()
	if err != nil {
		return nil, err
	}
	total, err := totalMonthlyExpenses(s.DB)
	if err != nil {
		return nil, err
	}
	bs.TotalMonthlyExpenses = total
	if err := s.DB.Save(bs).Error; err != nil {
		return nil, err
	}
	return bs, nil
}

// Summary returns the latest settings with daily expense, daily sales target
// and break-even units (from the average net profit across recipes).
func (s *SettingsService) Summary() (*SettingsSummary, error) {
	bs, err := s.Latest()
	if err != nil {
		return nil, err
	}
	avgNetProfit, err := s.averageNetProfit()
	if err != nil {
		return nil, err
	}
	return &SettingsSummary{
		BusinessSettings:   *bs,
		DailyExpense:       bs.DailyExpense(),
		ExpectedDailySales: bs.ExpectedDailySales(),
		BreakEvenUnits:     bs.BreakEvenUnits(avgNetProfit),
	}, nil
}

// Allocate runs the overhead allocation across every recipe using the latest
// settings. This is an explicit operation: recipe saves do not trigger it.
func (s *SettingsService) Allocate() (*AllocationResult, error) {
	bs, err := s.Refresh()
	if err != nil {
		return nil, err
	}
	result := &AllocationResult{ExpensePerItem: bs.ExpensePerItem}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var recipes []models.Recipe
		if err := tx.Find(&recipes).Error; err != nil {
			return err
		}
		for i := range recipes {
			r := &recipes[i]
			r.ApplyExpenseAllocation(bs.ExpensePerItem)
			if err := tx.Omit("Ingredients").Save(r).Error; err != nil {
				return err
			}
		}
		result.RecipesAffected = len(recipes)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *SettingsService) averageNetProfit() (decimal.Decimal, error) {
	var count int64
	if err := s.DB.Model(&models.Recipe{}).Count(&count).Error; err != nil {
		return decimal.Zero, err
	}
	if count == 0 {
		return decimal.Zero, nil
	}
	var avg decimal.Decimal
	err := s.DB.Model(&models.Recipe{}).
		Select("COALESCE(AVG(net_profit), 0)").Scan(&avg).Error
	if err != nil {
		return decimal.Zero, err
	}
	return avg, nil
}
