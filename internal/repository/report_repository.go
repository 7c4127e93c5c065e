package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "fims/internal/errors"
	"fims/internal/model"
)

// ReportRepository defines report persistence operations. Reports are append-only.
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	FindByID(ctx context.Context, reportID uint) (*model.Report, error)
	List(ctx context.Context) ([]model.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create appends a report and assigns its id.
func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	report.ReportID = 0
	return apperrors.Storage("create report", r.db.WithContext(ctx).Create(report).Error)
}

// FindByID finds a report by id, or nil when absent.
func (r *reportRepository) FindByID(ctx context.Context, reportID uint) (*model.Report, error) {
	var report model.Report
	err := r.db.WithContext(ctx).Where("report_id = ?", reportID).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage("find report", err)
	}
	return &report, nil
}

// List returns every report, newest first.
func (r *reportRepository) List(ctx context.Context) ([]model.Report, error) {
	var reports []model.Report
	if err := r.db.WithContext(ctx).Order("report_id desc").Find(&reports).Error; err != nil {
		return nil, apperrors.Storage("list reports", err)
	}
	return reports, nil
}
