package db

import (
	"testing"

	"github.com/beanpeso/costing-app/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSeedIdempotent(t *testing.T) {
	d, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.AutoMigrate(&models.BusinessSettings{}); err != nil {
		t.Fatal(err)
	}
	seed(d)
	seed(d)
	var count int64
	d.Model(&models.BusinessSettings{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 baseline settings row got %d", count)
	}
	var bs models.BusinessSettings
	if err := d.First(&bs).Error; err != nil {
		t.Fatal(err)
	}
	if bs.ExpectedMonthlySales != 1000 || bs.WorkingDaysPerMonth != 26 {
		t.Fatalf("unexpected baseline settings: %+v", bs)
	}
}

func TestSeedPreservesExistingSettings(t *testing.T) {
	d, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.AutoMigrate(&models.BusinessSettings{}); err != nil {
		t.Fatal(err)
	}
	if err := d.Create(&models.BusinessSettings{ExpectedMonthlySales: 5000, WorkingDaysPerMonth: 30}).Error; err != nil {
		t.Fatal(err)
	}
	seed(d)
	var count int64
	d.Model(&models.BusinessSettings{}).Count(&count)
	if count != 1 {
		t.Fatalf("seed must not add rows when settings exist, got %d", count)
	}
}
