package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnpulse/riskwatch-api/internal/models"
)

func exportFixture() *ExportService {
	store := &fakeRosterStore{students: []models.Student{
		{
			ID:                   "1",
			Name:                 "Aisha Kumar",
			Grade:                "10th",
			RiskLevel:            models.RiskLevelHigh,
			RiskScore:            85,
			Attendance:           65,
			AssignmentCompletion: 45,
			RiskFactors:          []string{"Low attendance (65%)"},
			LastActivity:         "2 days ago",
		},
		{ID: "2", Name: "Arjun Mehta", Grade: "8th", RiskLevel: models.RiskLevelLow, RiskScore: 15},
	}}
	return NewExportService(NewRosterService(store, nil), nil)
}

func TestExportRosterCSV(t *testing.T) {
	svc := exportFixture()

	data, err := svc.RosterCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Name", "Grade", "Risk", "Score", "Attendance %", "Completion %", "Top Reasons", "Next Activity", "Suggested"}, records[0])
	assert.Equal(t, "Aisha Kumar", records[1][0])
	assert.Equal(t, "HIGH", records[1][2])
	assert.Equal(t, "85", records[1][3])
	assert.Equal(t, "Low attendance (65%)", records[1][6])
	assert.Equal(t, "—", records[2][6], "absent reasons render as the placeholder")
	assert.Equal(t, "Reminder (Free)", records[2][8])
}

func TestExportRosterPDF(t *testing.T) {
	svc := exportFixture()

	data, err := svc.RosterPDF(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportRosterCSVEmptyRoster(t *testing.T) {
	svc := NewExportService(NewRosterService(&fakeRosterStore{}, nil), nil)

	data, err := svc.RosterCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header row only")
}
