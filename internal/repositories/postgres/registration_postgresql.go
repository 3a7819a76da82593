package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
)

type RegistrationPostgreSQL struct {
	db *gorm.DB
}

func NewRegistrationPostgreSQL(db *gorm.DB) repositories.RegistrationRepository {
	return &RegistrationPostgreSQL{db: db}
}

func (r *RegistrationPostgreSQL) Create(ctx context.Context, registration *models.Registration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

func (r *RegistrationPostgreSQL) Update(ctx context.Context, registration *models.Registration) error {
	return r.db.WithContext(ctx).Save(registration).Error
}

func (r *RegistrationPostgreSQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Registration{}, id).Error
}

func (r *RegistrationPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Registration, error) {
	var registration models.Registration
	if err := r.db.WithContext(ctx).First(&registration, id).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

func (r *RegistrationPostgreSQL) GetByUserAndEvent(ctx context.Context, userID, eventID uint) (*models.Registration, error) {
	var registration models.Registration
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&registration).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

func (r *RegistrationPostgreSQL) GetByUser(ctx context.Context, userID uint) ([]*models.Registration, error) {
	var registrations []*models.Registration
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Event").
		Order("registration_date DESC").
		Find(&registrations).Error; err != nil {
		return nil, fmt.Errorf("failed to get registrations by user: %w", err)
	}
	return registrations, nil
}

func (r *RegistrationPostgreSQL) GetByEvent(ctx context.Context, eventID uint) ([]*models.Registration, error) {
	var registrations []*models.Registration
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Preload("User").
		Order("registration_date ASC").
		Find(&registrations).Error; err != nil {
		return nil, fmt.Errorf("failed to get registrations by event: %w", err)
	}
	return registrations, nil
}

func (r *RegistrationPostgreSQL) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
