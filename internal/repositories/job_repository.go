package repositories

import (
	"github.com/hirebridge/backend/internal/models"
	"gorm.io/gorm"
)

// JobRepository defines the read-only job lookups this service needs. Jobs
// are owned by the posting subsystem.
type JobRepository interface {
	GetJobsByIDs(ids []uint) ([]models.Job, error)
}

// PostgresJobRepository implements JobRepository for PostgreSQL
type PostgresJobRepository struct {
	db *gorm.DB
}

// NewPostgresJobRepository creates a new PostgresJobRepository
func NewPostgresJobRepository(db *gorm.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

// GetJobsByIDs retrieves jobs with their business for a batch of IDs in one
// query. Used to label conversation summaries without per-row lookups.
func (r *PostgresJobRepository) GetJobsByIDs(ids []uint) ([]models.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var jobs []models.Job
	if err := r.db.Preload("Business").Where("id IN ?", ids).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
