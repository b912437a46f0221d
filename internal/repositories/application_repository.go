package repositories

import (
	"time"

	"github.com/hirebridge/backend/internal/models"
	"gorm.io/gorm"
)

// ApplicationRepository defines the job-application lookups the messaging
// subsystem needs. Applications are created and deleted by the job
// subsystem; here they are read as conversations, and only their
// updated_at is ever written (touched on message send).
type ApplicationRepository interface {
	GetAccessContext(id uint) (*models.ApplicationContext, error)
	ListForRequester(requesterID uint, kind models.PartyKind) ([]models.JobApplication, error)
	Touch(id uint) error
}

// PostgresApplicationRepository implements ApplicationRepository for PostgreSQL
type PostgresApplicationRepository struct {
	db *gorm.DB
}

// NewPostgresApplicationRepository creates a new PostgresApplicationRepository
func NewPostgresApplicationRepository(db *gorm.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// GetAccessContext loads the application joined with its job in one query.
// That is everything an access check needs: the applicant id, and the
// business id one hop away through the job.
func (r *PostgresApplicationRepository) GetAccessContext(id uint) (*models.ApplicationContext, error) {
	var ctx models.ApplicationContext
	err := r.db.Table("job_applications").
		Select("job_applications.id, job_applications.user_id, job_applications.job_id, jobs.business_id, jobs.title AS job_title").
		Joins("JOIN jobs ON jobs.id = job_applications.job_id").
		Where("job_applications.id = ?", id).
		Take(&ctx).Error
	if err != nil {
		return nil, err
	}
	return &ctx, nil
}

// ListForRequester returns the requester's candidate conversations: the
// applications they filed, or for a business every application against one
// of its jobs.
func (r *PostgresApplicationRepository) ListForRequester(requesterID uint, kind models.PartyKind) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	query := r.db.Model(&models.JobApplication{})
	if kind == models.PartyUser {
		query = query.Where("job_applications.user_id = ?", requesterID)
	} else {
		query = query.Joins("JOIN jobs ON jobs.id = job_applications.job_id").
			Where("jobs.business_id = ?", requesterID)
	}
	if err := query.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Touch bumps the application's updated_at so conversation lists sort it to
// the top. Status and the rest of the row belong to the job subsystem.
func (r *PostgresApplicationRepository) Touch(id uint) error {
	return r.db.Model(&models.JobApplication{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", time.Now()).Error
}
