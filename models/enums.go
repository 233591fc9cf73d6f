package models

import (
	"errors"
)

type FileType string

const (
	FileTypeROBilling       FileType = "ro_billing"
	FileTypeWarranty        FileType = "warranty"
	FileTypeBookingList     FileType = "booking_list"
	FileTypeOperationsPart  FileType = "operations_part"
	FileTypeRepairOrderList FileType = "repair_order_list"
)

var fileTypes = map[string]FileType{
	"ro_billing":        FileTypeROBilling,
	"warranty":          FileTypeWarranty,
	"booking_list":      FileTypeBookingList,
	"operations_part":   FileTypeOperationsPart,
	"repair_order_list": FileTypeRepairOrderList,
}

func ParseFileType(s string) (FileType, error) {
	t, ok := fileTypes[s]
	if !ok {
		return "", errors.New("invalid file type")
	}
	return t, nil
}

func (t FileType) Valid() bool {
	_, ok := fileTypes[string(t)]
	return ok
}

type UploadStatus string

const (
	UploadStatusPending    UploadStatus = "pending"
	UploadStatusProcessing UploadStatus = "processing"
	UploadStatusCompleted  UploadStatus = "completed"
	UploadStatusFailed     UploadStatus = "failed"
)

type ReconcileCase string

const (
	// ReconcileCaseNewFile: novel fingerprint, no existing business keys.
	ReconcileCaseNewFile ReconcileCase = "new_file"
	// ReconcileCaseDuplicateFile: a prior completed upload has the same fingerprint.
	ReconcileCaseDuplicateFile ReconcileCase = "duplicate_file"
	// ReconcileCaseMixedFile: novel fingerprint, some keys already stored.
	ReconcileCaseMixedFile ReconcileCase = "mixed_file"
)

type BookingStatus string

const (
	BookingStatusConverted        BookingStatus = "Converted"
	BookingStatusProcessing       BookingStatus = "Booking Processing"
	BookingStatusTomorrowDelivery BookingStatus = "Tomorrow Delivery"
	BookingStatusFutureDelivery   BookingStatus = "Future Delivery"
)

type UserRole string

const (
	UserRoleAdmin  UserRole = "A"
	UserRoleOwner  UserRole = "O"
	UserRoleCommon UserRole = "C"
)
