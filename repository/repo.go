package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"speech-translate/entities"
)

type repo struct {
	db *gorm.DB
}

// NewRepo wraps an open postgres connection.
func NewRepo(db *sql.DB) (HistoryRepository, error) {
	r, err := newGormRepo(db, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func newGormRepo(db *sql.DB, cfg *gorm.Config) (*repo, error) {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db}),
		cfg,
	)
	if err != nil {
		return nil, err
	}
	return &repo{
		db: gormDB,
	}, nil
}

func (r *repo) GetDB() *gorm.DB {
	return r.db
}

func (r *repo) Migrate(ctx context.Context) error {
	return r.GetDB().WithContext(ctx).AutoMigrate(&entities.TranscriptionRecord{})
}

func (r *repo) Insert(ctx context.Context, record *entities.TranscriptionRecord) error {
	prepareInsert(record)
	return r.GetDB().WithContext(ctx).Create(record).Error
}

func (r *repo) FindByOwner(ctx context.Context, ownerID string) ([]entities.TranscriptionRecord, error) {
	records := make([]entities.TranscriptionRecord, 0)
	err := ownerHistoryQuery(r.GetDB().WithContext(ctx), ownerID).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func ownerHistoryQuery(db *gorm.DB, ownerID string) *gorm.DB {
	return db.Model(&entities.TranscriptionRecord{}).Where("owner_id = ?", ownerID).Order("created_at DESC")
}

func prepareInsert(record *entities.TranscriptionRecord) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
}
