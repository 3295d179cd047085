package services

import (
	"time"

	"visitor-registration/pkg/models"
)

const visitTimeLayout = "2006-01-02 15:04"

// FormatVisitTime renders now at a fixed UTC offset as YYYY-MM-DD HH:MM.
func FormatVisitTime(now time.Time, offset time.Duration) string {
	zone := time.FixedZone("", int(offset/time.Second))
	return now.In(zone).Format(visitTimeLayout)
}

// ToExternalRecord renames the submission fields to the bitable schema and stamps
// the server-side visit time. A client-supplied visit date is passed through as is.
func ToExternalRecord(sub models.VisitorSubmission, now time.Time, offset time.Duration) models.ExternalRecord {
	return models.ExternalRecord{
		VisitorName:  sub.VisitorName,
		Phone:        sub.Phone,
		VisitTime:    FormatVisitTime(now, offset),
		VisitDate:    sub.VisitDate,
		VisitPurpose: sub.VisitPurpose,
		HostName:     sub.HostName,
		HostPhone:    sub.HostPhone,
		IDNumber:     sub.IDNumber,
		CarNumber:    sub.CarNumber,
	}
}
