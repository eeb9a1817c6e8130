package client

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wastelink-checkout-gateway/internal/model"
)

func InitSqliteClient(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to open database:", err)
	}

	if err := db.AutoMigrate(
		&model.CheckoutRecord{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}
