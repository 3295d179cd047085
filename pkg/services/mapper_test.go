package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitor-registration/pkg/models"
)

func TestFormatVisitTime(t *testing.T) {
	now := time.Date(2024, 12, 31, 17, 5, 59, 0, time.UTC)

	assert.Equal(t, "2025-01-01 01:05", FormatVisitTime(now, 8*time.Hour))
	assert.Equal(t, "2024-12-31 17:05", FormatVisitTime(now, 0))
}

func TestFormatVisitTime_IgnoresInputZone(t *testing.T) {
	ny := time.FixedZone("EST", -5*3600)
	now := time.Date(2024, 6, 1, 20, 30, 0, 0, ny) // 2024-06-02 01:30 UTC

	assert.Equal(t, "2024-06-02 09:30", FormatVisitTime(now, 8*time.Hour))
}

func TestToExternalRecord(t *testing.T) {
	sub := models.VisitorSubmission{
		VisitorName:  "张三",
		Phone:        "13812345678",
		VisitDate:    "2024-06-03",
		VisitPurpose: "面试",
		HostName:     "李四",
		HostPhone:    "13987654321",
		IDNumber:     "110105199001011234",
		CarNumber:    "京A12345",
	}
	now := time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC)

	rec := ToExternalRecord(sub, now, 8*time.Hour)

	raw, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"VisitorName": "张三",
		"Phone": "13812345678",
		"VisitTime": "2024-06-01 10:00",
		"VisitDate": "2024-06-03",
		"VisitPurpose": "面试",
		"HostName": "李四",
		"HostPhone": "13987654321",
		"IdNumber": "110105199001011234",
		"CarNumber": "京A12345"
	}`, string(raw))
}

func TestToExternalRecord_OmitsMissingFields(t *testing.T) {
	now := time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC)

	raw, err := json.Marshal(ToExternalRecord(models.VisitorSubmission{VisitorName: "王五"}, now, 8*time.Hour))
	require.NoError(t, err)
	assert.JSONEq(t, `{"VisitorName":"王五","VisitTime":"2024-06-01 10:00"}`, string(raw))
}
