package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"medstaff_backend/internals/features/vacations/model"
)

// VacationView is a request row decorated with the display names the
// dashboard and mobile lists need.
type VacationView struct {
	model.VacationRequestModel
	UserName        string `json:"user_name"`
	UserRegion      string `json:"user_region"`
	ReplacementName string `json:"replacement_name"`
}

func viewQuery(db *gorm.DB) *gorm.DB {
	return db.Table("vacation_requests").
		Select("vacation_requests.*, u.name AS user_name, u.region AS user_region, r.name AS replacement_name").
		Joins("JOIN users u ON u.id = vacation_requests.user_id").
		Joins("JOIN users r ON r.id = vacation_requests.replacement_user_id")
}

// ListMine returns the requester's own requests plus the count of
// finalized ones they have not seen yet.
func ListMine(db *gorm.DB, userID uuid.UUID) ([]VacationView, int64, error) {
	var requests []VacationView
	err := viewQuery(db).
		Where("vacation_requests.user_id = ?", userID).
		Order("vacation_requests.requested_at desc").
		Scan(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	var unseen int64
	err = db.Model(&model.VacationRequestModel{}).
		Where("user_id = ? AND is_seen = ? AND status IN ?", userID, false,
			[]string{model.StatusApproved, model.StatusRejected}).
		Count(&unseen).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, unseen, nil
}

// ListForReplacement returns requests waiting on the caller's decision.
func ListForReplacement(db *gorm.DB, userID uuid.UUID) ([]VacationView, error) {
	var requests []VacationView
	err := viewQuery(db).
		Where("vacation_requests.replacement_user_id = ?", userID).
		Where("vacation_requests.replacement_status = ?", model.ReplacementPending).
		Order("vacation_requests.requested_at asc").
		Scan(&requests).Error
	return requests, err
}

// ListForManager returns the manager's region-scoped requests.
// An empty statusFilter defaults to the manager's work queue.
func ListForManager(db *gorm.DB, region, statusFilter string) ([]VacationView, error) {
	q := viewQuery(db).Where("u.region = ?", region)
	if statusFilter != "" {
		q = q.Where("vacation_requests.status = ?", statusFilter)
	} else {
		q = q.Where("vacation_requests.status = ?", model.StatusPendingManager)
	}

	var requests []VacationView
	err := q.Order("vacation_requests.requested_at asc").Scan(&requests).Error
	return requests, err
}

// ListAll returns every request; each filter narrows only when provided.
func ListAll(db *gorm.DB, statusFilter, regionFilter string) ([]VacationView, error) {
	q := viewQuery(db)
	if statusFilter != "" {
		q = q.Where("vacation_requests.status = ?", statusFilter)
	}
	if regionFilter != "" {
		q = q.Where("u.region = ?", regionFilter)
	}

	var requests []VacationView
	err := q.Order("vacation_requests.requested_at desc").Scan(&requests).Error
	return requests, err
}
