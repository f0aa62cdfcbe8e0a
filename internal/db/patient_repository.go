package db

import (
	"github.com/terraincognita07/medboard/internal/models"
	"gorm.io/gorm"
)

type PatientRepository struct {
	database *gorm.DB
}

func NewPatientRepository(database *gorm.DB) *PatientRepository {
	return &PatientRepository{database: database}
}

func (repo *PatientRepository) ListAll() ([]models.Patient, error) {
	patients := make([]models.Patient, 0)
	if err := repo.database.Order("id ASC").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (repo *PatientRepository) FindByID(patientID uint) (models.Patient, error) {
	patient := models.Patient{}
	if err := repo.database.First(&patient, patientID).Error; err != nil {
		return models.Patient{}, err
	}
	return patient, nil
}

func (repo *PatientRepository) Count() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Patient{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a patient with a zero ID. The id column is an INTEGER PRIMARY
// KEY without AUTOINCREMENT, so SQLite assigns max(id)+1.
func (repo *PatientRepository) Create(patient *models.Patient) error {
	patient.ID = 0
	return repo.database.Create(patient).Error
}

// CreateBatch inserts all patients in one transaction. Non-zero IDs are kept.
func (repo *PatientRepository) CreateBatch(patients []models.Patient) error {
	if len(patients) == 0 {
		return nil
	}
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for index := range patients {
			if err := tx.Create(&patients[index]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
