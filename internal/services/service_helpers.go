package services

import (
	"os"
	"time"

	"gorm.io/datatypes"
)

func removeFile(path string) error {
	return os.Remove(path)
}

func parseBookingDate(value string) (datatypes.Date, time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return datatypes.Date{}, time.Time{}, err
	}
	return datatypes.Date(t), t, nil
}

// remarksOrDefault applies the standing default for admin rejections.
func remarksOrDefault(remarks *string, fallback string) string {
	if remarks != nil && *remarks != "" {
		return *remarks
	}
	return fallback
}

func strPtr(s string) *string {
	return &s
}
