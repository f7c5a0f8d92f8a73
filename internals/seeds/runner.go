// Package seeds bootstraps the accounts a fresh deployment needs before
// anyone can log in. Seeding is idempotent and opt-in via SEED_ADMIN.
package seeds

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"medstaff_backend/internals/constants"
	userModel "medstaff_backend/internals/features/users/user/model"
)

// RunAllSeeds creates the initial admin account when SEED_ADMIN=true.
// The account is active and pre-approved so it can accept everyone else.
func RunAllSeeds(db *gorm.DB) {
	if os.Getenv("SEED_ADMIN") != "true" {
		return
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("[ERROR] SEED_ADMIN set but SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD missing")
		return
	}

	var existing int64
	db.Model(&userModel.UserModel{}).Where("email = ?", email).Count(&existing)
	if existing > 0 {
		log.Println("[INFO] admin seed skipped, account already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("[ERROR] admin seed hash:", err)
		return
	}

	admin := userModel.UserModel{
		Name:     "HR Admin",
		Email:    email,
		Password: string(hash),
		Role:     constants.RoleAdmin,
		Active:   true,
		Status:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Println("[ERROR] admin seed:", err)
		return
	}
	log.Println("[SUCCESS] admin account seeded:", email)
}
