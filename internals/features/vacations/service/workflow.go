// Package service implements the vacation approval workflow. The database
// row is the state machine's state: every transition is a single
// conditional UPDATE keyed on the expected prior status, so concurrent
// duplicate approvals resolve to one winner and the rest see
// "already processed". No workflow state is ever cached in memory.
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sender "medstaff_backend/internals/features/notifications/sender"
	userModel "medstaff_backend/internals/features/users/user/model"
	"medstaff_backend/internals/features/vacations/model"
	"medstaff_backend/internals/helpers/errs"
)

// nonTerminalStatuses for the requester-side overlap check.
var nonTerminalStatuses = []string{
	model.StatusPendingReplacement,
	model.StatusPendingManager,
	model.StatusPendingAdmin,
	model.StatusApproved,
}

/* =======================================================
   Overlap predicate
   ======================================================= */

// Overlaps reports whether [aStart,aEnd] and [bStart,bEnd] intersect.
// Bounds are inclusive: touching ranges overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}

// overlapWhere narrows vacation_requests to rows intersecting [d1,d2]:
// row covers d1, covers d2, or is fully contained in [d1,d2].
func overlapWhere(q *gorm.DB, d1, d2 time.Time) *gorm.DB {
	return q.Where(
		"(start_date <= ? AND end_date >= ?) OR (start_date <= ? AND end_date >= ?) OR (start_date >= ? AND end_date <= ?)",
		d1, d1, d2, d2, d1, d2,
	)
}

/* =======================================================
   Eligible replacements
   ======================================================= */

// ListEligibleReplacements returns the active, approved users in the
// requester's region who are free for [startDate,endDate]: not the
// requester, not on overlapping leave themselves, and not already an
// accepted replacement for an overlapping request.
func ListEligibleReplacements(db *gorm.DB, requesterID uuid.UUID, startDate, endDate time.Time) ([]userModel.UserModel, error) {
	if endDate.Before(startDate) {
		return nil, errs.Validation("endDate must not be before startDate")
	}

	var requester userModel.UserModel
	if err := db.First(&requester, "id = ?", requesterID).Error; err != nil {
		return nil, errs.NotFound("Requester not found")
	}
	if requester.Region == nil {
		return nil, errs.Validation("You have no region assigned yet")
	}

	busyOwners := overlapWhere(db.Table("vacation_requests").
		Select("user_id").
		Where("status IN ?", []string{
			model.StatusApproved,
			model.StatusPendingManager,
			model.StatusPendingReplacement,
		}), startDate, endDate)

	busyReplacements := overlapWhere(db.Table("vacation_requests").
		Select("replacement_user_id").
		Where("replacement_status = ?", model.ReplacementAccepted).
		Where("status IN ?", []string{
			model.StatusApproved,
			model.StatusPendingManager,
			model.StatusPendingAdmin,
		}), startDate, endDate)

	var candidates []userModel.UserModel
	err := db.
		Where("active = ? AND status = ?", true, true).
		Where("region = ?", *requester.Region).
		Where("id <> ?", requesterID).
		Where("id NOT IN (?)", busyOwners).
		Where("id NOT IN (?)", busyReplacements).
		Order("name asc").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

/* =======================================================
   Create
   ======================================================= */

func Create(db *gorm.DB, requesterID uuid.UUID, startDate, endDate time.Time, replacementUserID uuid.UUID) (*model.VacationRequestModel, error) {
	if replacementUserID == uuid.Nil {
		return nil, errs.Validation("replacementUserId is required")
	}
	if replacementUserID == requesterID {
		return nil, errs.Validation("You cannot choose yourself as replacement")
	}
	if endDate.Before(startDate) {
		return nil, errs.Validation("endDate must not be before startDate")
	}

	// requester must not already have a live request over these dates
	var overlapping int64
	err := overlapWhere(db.Model(&model.VacationRequestModel{}).
		Where("user_id = ?", requesterID).
		Where("status IN ?", nonTerminalStatuses), startDate, endDate).
		Count(&overlapping).Error
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, errs.Conflict("You already have a vacation request for these dates")
	}

	request := model.VacationRequestModel{
		UserID:            requesterID,
		StartDate:         startDate,
		EndDate:           endDate,
		ReplacementUserID: replacementUserID,
		Status:            model.StatusPendingReplacement,
		ReplacementStatus: model.ReplacementPending,
	}
	if err := db.Create(&request).Error; err != nil {
		return nil, err
	}
	// No notification here: the replacement sees the request in
	// their pending list on next refresh.
	return &request, nil
}

/* =======================================================
   Replacement decision
   ======================================================= */

func RespondReplacement(db *gorm.DB, vacationID, responderID uuid.UUID, accept bool) (*model.VacationRequestModel, error) {
	newStatus := model.StatusRejected
	newReplacementStatus := model.ReplacementDeclined
	if accept {
		newStatus = model.StatusPendingManager
		newReplacementStatus = model.ReplacementAccepted
	}

	res := db.Model(&model.VacationRequestModel{}).
		Where("id = ? AND replacement_user_id = ? AND replacement_status = ?",
			vacationID, responderID, model.ReplacementPending).
		Updates(map[string]interface{}{
			"status":             newStatus,
			"replacement_status": newReplacementStatus,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.NotFound("Request not found or already answered")
	}

	request, err := reload(db, vacationID)
	if err != nil {
		return nil, err
	}

	if accept {
		sender.Send(db, request.UserID, "Replacement accepted",
			"Your replacement accepted. The request is now with your manager.",
			map[string]string{"vacation_id": request.ID.String()})
	} else {
		sender.Send(db, request.UserID, "Replacement declined",
			"Your replacement declined your vacation request.",
			map[string]string{"vacation_id": request.ID.String()})
	}
	return request, nil
}

/* =======================================================
   Manager decision
   ======================================================= */

// ManagerRespond moves a region-scoped request past the manager stage.
// Region match is enforced inside the UPDATE itself, not only on the
// listing query, so a manager cannot act on a foreign request by id.
func ManagerRespond(db *gorm.DB, vacationID, managerID uuid.UUID, managerRegion string, approve bool, comment string) (*model.VacationRequestModel, error) {
	if managerRegion == "" {
		return nil, errs.Forbidden("You have no region assigned")
	}

	newStatus := model.StatusRejected
	if approve {
		newStatus = model.StatusPendingAdmin
	}

	updates := map[string]interface{}{
		"status":              newStatus,
		"manager_approver_id": managerID,
	}
	if comment != "" {
		updates["admin_comment"] = comment
	}

	res := db.Model(&model.VacationRequestModel{}).
		Where("id = ? AND status = ?", vacationID, model.StatusPendingManager).
		Where("user_id IN (?)", db.Table("users").Select("id").Where("region = ?", managerRegion)).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, classifyManagerFailure(db, vacationID, managerRegion)
	}

	request, err := reload(db, vacationID)
	if err != nil {
		return nil, err
	}

	if approve {
		sender.Send(db, request.UserID, "Manager approved",
			"Your manager approved. The request awaits final HR sign-off.",
			map[string]string{"vacation_id": request.ID.String()})
	} else {
		sender.Send(db, request.UserID, "Vacation rejected",
			"Your manager rejected your vacation request.",
			map[string]string{"vacation_id": request.ID.String()})
	}
	return request, nil
}

// classifyManagerFailure turns a zero-row conditional UPDATE into the
// precise error: wrong region, lost race, or missing row.
func classifyManagerFailure(db *gorm.DB, vacationID uuid.UUID, managerRegion string) error {
	var request model.VacationRequestModel
	if err := db.First(&request, "id = ?", vacationID).Error; err != nil {
		return errs.NotFound("Vacation request not found")
	}
	if request.Status != model.StatusPendingManager {
		return errs.AlreadyProcessed("Request already processed")
	}

	var requester userModel.UserModel
	if err := db.First(&requester, "id = ?", request.UserID).Error; err == nil {
		if requester.Region == nil || *requester.Region != managerRegion {
			return errs.Forbidden("Request belongs to another region")
		}
	}
	return errs.AlreadyProcessed("Request already processed")
}

/* =======================================================
   Admin decision
   ======================================================= */

func AdminRespond(db *gorm.DB, vacationID, adminID uuid.UUID, status, comment string) (*model.VacationRequestModel, error) {
	if status != model.StatusApproved && status != model.StatusRejected {
		return nil, errs.Validation("status must be approved or rejected")
	}
	if status == model.StatusRejected && comment == "" {
		return nil, errs.Validation("A comment is required when rejecting")
	}

	updates := map[string]interface{}{
		"status":            status,
		"admin_approver_id": adminID,
	}
	if comment != "" {
		updates["admin_comment"] = comment
	}

	res := db.Model(&model.VacationRequestModel{}).
		Where("id = ? AND status = ?", vacationID, model.StatusPendingAdmin).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var request model.VacationRequestModel
		if err := db.First(&request, "id = ?", vacationID).Error; err != nil {
			return nil, errs.NotFound("Vacation request not found")
		}
		return nil, errs.AlreadyProcessed("Request already processed")
	}

	request, err := reload(db, vacationID)
	if err != nil {
		return nil, err
	}

	title := "Vacation approved"
	body := "HR approved your vacation request. Enjoy your time off!"
	if status == model.StatusRejected {
		title = "Vacation rejected"
		body = "HR rejected your vacation request: " + comment
	}
	sender.Send(db, request.UserID, title, body,
		map[string]string{"vacation_id": request.ID.String()})

	var requester userModel.UserModel
	if err := db.First(&requester, "id = ?", request.UserID).Error; err == nil {
		sender.SendMail(requester.Email, title, body)
	}
	return request, nil
}

/* =======================================================
   Seen flags
   ======================================================= */

// MarkSeen is idempotent and has no state-machine implication.
func MarkSeen(db *gorm.DB, vacationID, userID uuid.UUID) error {
	res := db.Model(&model.VacationRequestModel{}).
		Where("id = ? AND user_id = ?", vacationID, userID).
		Update("is_seen", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("Vacation request not found")
	}
	return nil
}

// MarkAllSeen flips is_seen on every finalized request of the user.
func MarkAllSeen(db *gorm.DB, userID uuid.UUID) error {
	return db.Model(&model.VacationRequestModel{}).
		Where("user_id = ? AND status IN ?", userID,
			[]string{model.StatusApproved, model.StatusRejected}).
		Update("is_seen", true).Error
}

/* =======================================================
   Internal
   ======================================================= */

func reload(db *gorm.DB, id uuid.UUID) (*model.VacationRequestModel, error) {
	var request model.VacationRequestModel
	if err := db.First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}
