package scan

import (
	"context"

	"gorm.io/gorm"

	"riceguard/entities"
)

type (
	ScanRepository interface {
		CreateScanRecord(ctx context.Context, record *entities.ScanRecord) error
		GetScanRecordByID(ctx context.Context, id string) (*entities.ScanRecord, error)
		GetScanRecords(ctx context.Context, userID string, page, limit int) ([]*entities.ScanRecord, int64, error)
		UpdateScanRecord(ctx context.Context, record *entities.ScanRecord) error
		DeleteScanRecord(ctx context.Context, id string) error
	}

	scanRepository struct {
		db *gorm.DB
	}
)

func NewScanRepository(db *gorm.DB) ScanRepository {
	return &scanRepository{db: db}
}

func (r *scanRepository) CreateScanRecord(ctx context.Context, record *entities.ScanRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *scanRepository) GetScanRecordByID(ctx context.Context, id string) (*entities.ScanRecord, error) {
	var record entities.ScanRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *scanRepository) GetScanRecords(ctx context.Context, userID string, page, limit int) ([]*entities.ScanRecord, int64, error) {
	var records []*entities.ScanRecord
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if err := query.Model(&entities.ScanRecord{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, count, nil
}

func (r *scanRepository) UpdateScanRecord(ctx context.Context, record *entities.ScanRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *scanRepository) DeleteScanRecord(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ScanRecord{}).Error
}
