package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/shopspring/decimal"
)

// DayHours is the opening window for one weekday
type DayHours struct {
	Open   string `yaml:"open" json:"open"`   // HH:MM
	Close  string `yaml:"close" json:"close"` // HH:MM
	Closed bool   `yaml:"closed" json:"closed"`
}

// Settings holds the restaurant configuration, loaded once at startup from an
// optional YAML file plus environment overrides. There is deliberately no
// settings row in the database.
type Settings struct {
	RestaurantName string `yaml:"restaurant_name" json:"restaurant_name"`
	Slogan         string `yaml:"slogan" json:"slogan,omitempty"`
	Address        string `yaml:"address" json:"address"`
	Phone          string `yaml:"phone" json:"phone"`
	Email          string `yaml:"email" json:"email"`
	Currency       string `yaml:"currency" json:"currency"`

	// Percentage applied to order subtotals, e.g. "8.00"
	TaxRate string `yaml:"tax_rate" json:"tax_rate"`

	// Used to estimate table turnover for reservations
	AverageTableTurnMinutes int `yaml:"average_table_turn_minutes" json:"average_table_turn_minutes"`

	DatabasePath string `yaml:"database_path" json:"-"`
	Port         string `yaml:"port" json:"-"`

	// Keyed by lowercase weekday name: monday..sunday
	Hours map[string]DayHours `yaml:"hours" json:"hours"`
}

// Current is set by Load at startup
var Current *Settings

func defaults() *Settings {
	return &Settings{
		RestaurantName:          "El Gran Sazón",
		Address:                 "Av. Principal 123",
		Phone:                   "+1 555 0100",
		Email:                   "contact@gransazon.example",
		Currency:                "USD",
		TaxRate:                 "8.00",
		AverageTableTurnMinutes: 120,
		DatabasePath:            "restaurant_pos.db",
		Port:                    "8080",
		Hours:                   map[string]DayHours{},
	}
}

// Load reads the settings file if present, applies env overrides and validates
func Load(path string) (*Settings, error) {
	s := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, s); err != nil {
				return nil, fmt.Errorf("parsing settings file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading settings file %s: %w", path, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		s.Port = v
	}
	if v := os.Getenv("POS_DB_PATH"); v != "" {
		s.DatabasePath = v
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	Current = s
	return s, nil
}

// Validate checks rate bounds and opening-hour consistency
func (s *Settings) Validate() error {
	rate, err := decimal.NewFromString(s.TaxRate)
	if err != nil {
		return fmt.Errorf("invalid tax rate %q: %w", s.TaxRate, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("tax rate must be between 0 and 100, got %s", s.TaxRate)
	}
	for day, h := range s.Hours {
		if h.Closed {
			continue
		}
		open, err := time.Parse("15:04", h.Open)
		if err != nil {
			return fmt.Errorf("invalid open time for %s: %w", day, err)
		}
		close, err := time.Parse("15:04", h.Close)
		if err != nil {
			return fmt.Errorf("invalid close time for %s: %w", day, err)
		}
		if !close.After(open) {
			return fmt.Errorf("close time must be after open time for %s", day)
		}
	}
	return nil
}

// TaxRateDecimal returns the configured tax rate as a decimal percentage
func (s *Settings) TaxRateDecimal() decimal.Decimal {
	rate, err := decimal.NewFromString(s.TaxRate)
	if err != nil {
		return decimal.Zero
	}
	return rate
}

// IsOpenAt reports whether the restaurant is open at the given moment
func (s *Settings) IsOpenAt(t time.Time) bool {
	h, ok := s.Hours[strings.ToLower(t.Weekday().String())]
	if !ok {
		// No hours configured for the day means always open
		return true
	}
	if h.Closed {
		return false
	}
	open, err1 := time.Parse("15:04", h.Open)
	close, err2 := time.Parse("15:04", h.Close)
	if err1 != nil || err2 != nil {
		return true
	}
	minutes := t.Hour()*60 + t.Minute()
	openMin := open.Hour()*60 + open.Minute()
	closeMin := close.Hour()*60 + close.Minute()
	return minutes >= openMin && minutes <= closeMin
}
