package models

import (
	"log"

	"github.com/mmdatafocus/autoservice_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Business{}, &User{},
		&UploadedFile{},
		&ROBilling{}, &WarrantyClaim{}, &Booking{}, &OperationsPart{}, &RepairOrder{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
