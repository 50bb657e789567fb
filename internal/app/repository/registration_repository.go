package repository

import (
	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/model"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/logger"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(registration *model.Registration) error
	BulkCreate(registrations []model.Registration, batchSize int) error
	FindByGSTIN(gstin string) (*model.Registration, error)
	ExistsByGSTIN(gstin string) (bool, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(registration *model.Registration) error {
	logger.Debug("Creating registration in database", map[string]interface{}{
		"gstin": registration.GSTIN,
		"state": registration.State,
	})

	if err := r.db.Create(registration).Error; err != nil {
		logger.Error("Failed to create registration in database", err, map[string]interface{}{
			"gstin": registration.GSTIN,
		})
		return err
	}

	logger.Debug("Registration created in database", map[string]interface{}{
		"registration_id": registration.ID,
		"gstin":           registration.GSTIN,
	})
	return nil
}

// BulkCreate inserts registrations in batches. Used by the seed importer.
func (r *registrationRepository) BulkCreate(registrations []model.Registration, batchSize int) error {
	if len(registrations) == 0 {
		return nil
	}
	if err := r.db.CreateInBatches(registrations, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create registrations in database", err, map[string]interface{}{
			"count": len(registrations),
		})
		return err
	}
	return nil
}

func (r *registrationRepository) FindByGSTIN(gstin string) (*model.Registration, error) {
	var registration model.Registration
	if err := r.db.Where("gstin = ?", gstin).First(&registration).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find registration by GSTIN in database", err, map[string]interface{}{
				"gstin": gstin,
			})
		}
		return nil, err
	}
	return &registration, nil
}

func (r *registrationRepository) ExistsByGSTIN(gstin string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Registration{}).Where("gstin = ?", gstin).Count(&count).Error; err != nil {
		logger.Error("Failed to count registrations by GSTIN in database", err, map[string]interface{}{
			"gstin": gstin,
		})
		return false, err
	}
	return count > 0, nil
}
