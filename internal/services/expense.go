package services

import (
	"fmt"
	"strings"

	"github.com/beanpeso/costing-app/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseInput carries validated primitive inputs for create/update.
type ExpenseInput struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	IsFixed       bool            `json:"is_fixed"`
	Notes         string          `json:"notes"`
}

type ExpenseService struct{ DB *gorm.DB }

func NewExpenseService(db *gorm.DB) *ExpenseService { return &ExpenseService{DB: db} }

func (s *ExpenseService) List() ([]models.OperatingExpense, error) {
	var expenses []models.OperatingExpense
	if err := s.DB.Order("category asc, name asc").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (s *ExpenseService) Get(id uint) (*models.OperatingExpense, error) {
	var e models.OperatingExpense
	if err := s.DB.First(&e, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("expense %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &e, nil
}

func (s *ExpenseService) Create(in ExpenseInput) (*models.OperatingExpense, error) {
	e := models.OperatingExpense{
		Name:          strings.TrimSpace(in.Name),
		Category:      strings.ToLower(strings.TrimSpace(in.Category)),
		MonthlyAmount: in.MonthlyAmount,
		IsFixed:       in.IsFixed,
		Notes:         in.Notes,
	}
	if err := s.DB.Create(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *ExpenseService) Update(id uint, in ExpenseInput) (*models.OperatingExpense, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	existing.Name = strings.TrimSpace(in.Name)
	existing.Category = strings.ToLower(strings.TrimSpace(in.Category))
	existing.MonthlyAmount = in.MonthlyAmount
	existing.IsFixed = in.IsFixed
	existing.Notes = in.Notes
	if err := s.DB.Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *ExpenseService) Delete(id uint) error {
	res := s.DB.Delete(&models.OperatingExpense{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("expense %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *ExpenseService) ByCategory(category string) ([]models.OperatingExpense, error) {
	var expenses []models.OperatingExpense
	if err := s.DB.Where("lower(category) = ?", strings.ToLower(category)).Order("name asc").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (s *ExpenseService) ByFixed(fixed bool) ([]models.OperatingExpense, error) {
	var expenses []models.OperatingExpense
	if err := s.DB.Where("is_fixed = ?", fixed).Order("name asc").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Total sums every expense's monthly amount. This is the
// TotalMonthlyExpenses input to the allocation engine.
func (s *ExpenseService) Total() (decimal.Decimal, error) {
	return totalMonthlyExpenses(s.DB)
}

func (s *ExpenseService) Categories() ([]string, error) {
	var raw []string
	if err := s.DB.Model(&models.OperatingExpense{}).Distinct("category").Order("category").Pluck("category", &raw).Error; err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(raw))
	for _, c := range raw {
		if models.ValidExpenseCategory(c) {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

func totalMonthlyExpenses(tx *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.Model(&models.OperatingExpense{}).
		Select("COALESCE(SUM(monthly_amount), 0)").Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
