package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "8.00", s.TaxRate)
	assert.NotEmpty(t, s.RestaurantName)
	assert.Equal(t, "8080", s.Port)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := `restaurant_name: "Testaurant"
tax_rate: "16.00"
hours:
  monday:
    open: "09:00"
    close: "22:00"
  sunday:
    closed: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Testaurant", s.RestaurantName)
	assert.Equal(t, "16.00", s.TaxRate)
	assert.Equal(t, "16", s.TaxRateDecimal().String())
	assert.True(t, s.Hours["sunday"].Closed)
}

func TestValidateRejectsBadTaxRate(t *testing.T) {
	s := defaults()
	s.TaxRate = "abc"
	assert.Error(t, s.Validate())

	s.TaxRate = "-1"
	assert.Error(t, s.Validate())

	s.TaxRate = "101"
	assert.Error(t, s.Validate())
}

func TestValidateRejectsCloseBeforeOpen(t *testing.T) {
	s := defaults()
	s.Hours["friday"] = DayHours{Open: "20:00", Close: "10:00"}
	assert.Error(t, s.Validate())

	s.Hours["friday"] = DayHours{Open: "10:00", Close: "20:00"}
	assert.NoError(t, s.Validate())
}

func TestIsOpenAt(t *testing.T) {
	s := defaults()

	// No hours configured means always open
	assert.True(t, s.IsOpenAt(time.Now()))

	// Monday 10:00-14:00
	monday := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)
	s.Hours["monday"] = DayHours{Open: "10:00", Close: "14:00"}
	assert.True(t, s.IsOpenAt(monday))
	assert.False(t, s.IsOpenAt(monday.Add(3*time.Hour)), "after close")
	assert.True(t, s.IsOpenAt(monday.Add(2*time.Hour)), "closing minute is inclusive")

	s.Hours["monday"] = DayHours{Closed: true}
	assert.False(t, s.IsOpenAt(monday))
}
