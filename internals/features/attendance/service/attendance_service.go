// Package service implements check-in/check-out bookkeeping. Records are
// append-only: a row is created on check-in, closed once on check-out
// and never mutated afterwards.
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"medstaff_backend/internals/features/attendance/model"
	"medstaff_backend/internals/helpers/errs"
)

// CheckIn opens a record. The partial unique index rejects a second
// open record, so the error path needs no prior existence check.
func CheckIn(db *gorm.DB, userID uuid.UUID, at time.Time) (*model.AttendanceModel, error) {
	record := model.AttendanceModel{
		UserID:      userID,
		CheckInTime: at,
	}
	if err := db.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("You are already checked in")
		}
		return nil, err
	}
	return &record, nil
}

// CheckOut closes the user's open record.
func CheckOut(db *gorm.DB, userID uuid.UUID, at time.Time) (*model.AttendanceModel, error) {
	res := db.Model(&model.AttendanceModel{}).
		Where("user_id = ? AND check_out_time IS NULL", userID).
		Update("check_out_time", at)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.NotFound("No open check-in found")
	}

	var record model.AttendanceModel
	if err := db.
		Where("user_id = ? AND check_out_time = ?", userID, at).
		Order("check_in_time desc").
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListForUser returns the user's records for one calendar month.
func ListForUser(db *gorm.DB, userID uuid.UUID, month time.Time) ([]model.AttendanceModel, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var records []model.AttendanceModel
	err := db.
		Where("user_id = ? AND check_in_time >= ? AND check_in_time < ?", userID, start, end).
		Order("check_in_time asc").
		Find(&records).Error
	return records, err
}

// ListAll returns records in [from,to); each filter narrows only when set.
func ListAll(db *gorm.DB, userID *uuid.UUID, from, to *time.Time) ([]model.AttendanceModel, error) {
	q := db.Model(&model.AttendanceModel{})
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if from != nil {
		q = q.Where("check_in_time >= ?", *from)
	}
	if to != nil {
		q = q.Where("check_in_time < ?", *to)
	}

	var records []model.AttendanceModel
	err := q.Order("check_in_time desc").Limit(1000).Find(&records).Error
	return records, err
}
