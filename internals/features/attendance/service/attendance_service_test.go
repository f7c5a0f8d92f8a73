package service

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"medstaff_backend/internals/features/attendance/model"
	userModel "medstaff_backend/internals/features/users/user/model"
	"medstaff_backend/internals/helpers/errs"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&userModel.UserModel{}, &model.AttendanceModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) userModel.UserModel {
	t.Helper()
	user := userModel.UserModel{
		Name:     name,
		Email:    name + "@medstaff.test",
		Password: "x",
		Role:     "user",
		Active:   true,
		Status:   true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestDoubleCheckInBlocked(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "ana")

	if _, err := CheckIn(db, user.ID, at(2025, 6, 2, 8)); err != nil {
		t.Fatalf("check in: %v", err)
	}
	if _, err := CheckIn(db, user.ID, at(2025, 6, 2, 9)); !errs.IsConflict(err) {
		t.Fatalf("second check-in: got %v, want conflict error", err)
	}
}

func TestCheckOutClosesAndReopens(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "ana")

	if _, err := CheckIn(db, user.ID, at(2025, 6, 2, 8)); err != nil {
		t.Fatalf("check in: %v", err)
	}
	record, err := CheckOut(db, user.ID, at(2025, 6, 2, 16))
	if err != nil {
		t.Fatalf("check out: %v", err)
	}
	if record.CheckOutTime == nil || !record.CheckOutTime.Equal(at(2025, 6, 2, 16)) {
		t.Fatalf("check_out_time = %v", record.CheckOutTime)
	}

	// Closed record frees the slot for the next day.
	if _, err := CheckIn(db, user.ID, at(2025, 6, 3, 8)); err != nil {
		t.Fatalf("next check-in: %v", err)
	}
}

func TestCheckOutWithoutOpenRecord(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "ana")

	if _, err := CheckOut(db, user.ID, at(2025, 6, 2, 16)); !errs.IsNotFound(err) {
		t.Fatalf("checkout with nothing open: got %v, want not-found", err)
	}
}

func TestListForUserLimitsToMonth(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "ana")
	other := seedUser(t, db, "blerta")

	days := []time.Time{at(2025, 5, 31, 8), at(2025, 6, 2, 8), at(2025, 6, 30, 8), at(2025, 7, 1, 8)}
	for _, d := range days {
		if _, err := CheckIn(db, user.ID, d); err != nil {
			t.Fatalf("check in %v: %v", d, err)
		}
		if _, err := CheckOut(db, user.ID, d.Add(8*time.Hour)); err != nil {
			t.Fatalf("check out %v: %v", d, err)
		}
	}
	if _, err := CheckIn(db, other.ID, at(2025, 6, 5, 8)); err != nil {
		t.Fatalf("other check in: %v", err)
	}

	records, err := ListForUser(db, user.ID, at(2025, 6, 1, 0))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records for June, want 2", len(records))
	}
	for _, r := range records {
		if r.CheckInTime.Month() != time.June || r.UserID != user.ID {
			t.Fatalf("unexpected record %v", r)
		}
	}
}
