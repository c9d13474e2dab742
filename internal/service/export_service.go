package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/learnpulse/riskwatch-api/internal/models"
	appErrors "github.com/learnpulse/riskwatch-api/pkg/errors"
	"github.com/learnpulse/riskwatch-api/pkg/export"
)

type exportRoster interface {
	ListStudents(ctx context.Context) []models.Student
}

// ExportService renders the presented roster as downloadable documents.
type ExportService struct {
	roster exportRoster
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(roster exportRoster, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		roster: roster,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// RosterCSV renders the roster as CSV.
func (s *ExportService) RosterCSV(ctx context.Context) ([]byte, error) {
	data, err := s.csv.Render(s.rosterTable(ctx))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}
	return data, nil
}

// RosterPDF renders the roster as a tabular PDF.
func (s *ExportService) RosterPDF(ctx context.Context) ([]byte, error) {
	data, err := s.pdf.Render(s.rosterTable(ctx), "Student Risk Roster")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
	}
	return data, nil
}

func (s *ExportService) rosterTable(ctx context.Context) export.Table {
	students := s.roster.ListStudents(ctx)
	table := export.Table{
		Headers: []string{"Name", "Grade", "Risk", "Score", "Attendance %", "Completion %", "Top Reasons", "Next Activity", "Suggested"},
		Rows:    make([][]string, 0, len(students)),
	}
	for _, student := range students {
		table.Rows = append(table.Rows, []string{
			student.Name,
			student.Grade,
			RiskBadge(student.RiskLevel).Label,
			strconv.FormatFloat(student.RiskScore, 'f', -1, 64),
			strconv.FormatFloat(student.Attendance, 'f', -1, 64),
			strconv.FormatFloat(student.AssignmentCompletion, 'f', -1, 64),
			DisplayReasons(student),
			DisplayNextActivity(student),
			DisplaySuggestion(student),
		})
	}
	return table
}
