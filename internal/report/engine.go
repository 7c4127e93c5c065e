// Package report computes catalog income snapshots and stock alerts.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "fims/internal/errors"
	"fims/internal/model"
)

// Thresholds bound the stock level considered healthy.
type Thresholds struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// DefaultThresholds returns the stock bounds used when none are configured.
func DefaultThresholds() Thresholds {
	return Thresholds{Min: 100, Max: 2000}
}

// ItemLister reads the live catalog.
type ItemLister interface {
	List(ctx context.Context) ([]model.Item, error)
}

// Store appends and reads report snapshots.
type Store interface {
	Create(ctx context.Context, report *model.Report) error
	FindByID(ctx context.Context, reportID uint) (*model.Report, error)
	List(ctx context.Context) ([]model.Report, error)
}

// Engine generates reports against the catalog.
type Engine struct {
	items      ItemLister
	reports    Store
	thresholds Thresholds
	now        func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock used to name the report month.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a report engine.
func NewEngine(items ItemLister, reports Store, thresholds Thresholds, opts ...Option) *Engine {
	e := &Engine{
		items:      items,
		reports:    reports,
		thresholds: thresholds,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ComputeIncome sums quantity times price over the catalog.
func (e *Engine) ComputeIncome(ctx context.Context) (float64, error) {
	items, err := e.items.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list items: %w", err)
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	income, _ := total.Float64()
	return income, nil
}

// Generate stores a new report for the current month.
func (e *Engine) Generate(ctx context.Context) (*model.Report, error) {
	income, err := e.ComputeIncome(ctx)
	if err != nil {
		return nil, err
	}
	report := &model.Report{
		Month:        e.now().Month().String(),
		Income:       income,
		MinThreshold: e.thresholds.Min,
		MaxThreshold: e.thresholds.Max,
	}
	if err := e.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("store report: %w", err)
	}
	return report, nil
}

// CheckStockAlert classifies every item of the live catalog against the
// report's thresholds. An item is either low, over or neither.
func (e *Engine) CheckStockAlert(ctx context.Context, report *model.Report) ([]string, error) {
	items, err := e.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	alerts := make([]string, 0)
	for _, item := range items {
		switch {
		case item.Quantity < report.MinThreshold:
			alerts = append(alerts, fmt.Sprintf("LOW STOCK: %s (%d)", item.Name, item.Quantity))
		case item.Quantity > report.MaxThreshold:
			alerts = append(alerts, fmt.Sprintf("OVERSTOCK: %s (%d)", item.Name, item.Quantity))
		}
	}
	return alerts, nil
}

// Get loads one stored report.
func (e *Engine) Get(ctx context.Context, reportID uint) (*model.Report, error) {
	report, err := e.reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}
	if report == nil {
		return nil, apperrors.ErrReportNotFound
	}
	return report, nil
}

// List returns the stored reports, newest first.
func (e *Engine) List(ctx context.Context) ([]model.Report, error) {
	reports, err := e.reports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}
