package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/helpers"
	"github.com/xuri/excelize/v2"
)

const studentSheet = "Students"

// studentColumns is the spreadsheet header, in column order
var studentColumns = []string{
	"studentID", "name", "dateOfBirth", "gender",
	"fatherName", "fatherOccupation", "motherName", "motherOccupation",
	"guardianName", "guardianOccupation", "grade", "school", "className", "educationSystem",
}

func studentRow(s *models.Student) []interface{} {
	return []interface{}{
		s.StudentID, s.Name, s.DateOfBirth, s.Gender,
		s.FatherName, s.FatherOccupation, s.MotherName, s.MotherOccupation,
		s.GuardianName, s.GuardianOccupation, s.Grade, s.School, s.ClassName, s.EducationSystem,
	}
}

// ExportService converts students to and from xlsx workbooks
type ExportService interface {
	ExportStudents(ctx context.Context, w io.Writer) error
	// ImportStudents creates one student per data row. Rows that fail are reported and skipped.
	ImportStudents(ctx context.Context, r io.Reader) (*dto.StudentImportResult, error)
}

type exportService struct {
	students StudentService
	logger   zerolog.Logger
}

// NewExportService creates an ExportService
func NewExportService(students StudentService, logger zerolog.Logger) ExportService {
	return &exportService{
		students: students,
		logger:   logger.With().Str("service", "export").Logger(),
	}
}

func (s *exportService) ExportStudents(ctx context.Context, w io.Writer) error {
	students, err := s.students.List(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), studentSheet); err != nil {
		return apperrors.NewInternalError("create workbook", err)
	}

	header := make([]interface{}, len(studentColumns))
	for i, c := range studentColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(studentSheet, "A1", &header); err != nil {
		return apperrors.NewInternalError("write workbook", err)
	}

	for i, st := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewInternalError("write workbook", err)
		}
		row := studentRow(st)
		if err := f.SetSheetRow(studentSheet, cell, &row); err != nil {
			return apperrors.NewInternalError("write workbook", err)
		}
	}

	if err := f.Write(w); err != nil {
		return apperrors.NewInternalError("write workbook", err)
	}

	s.logger.Info().Int("students", len(students)).Msg("Students exported")
	return nil
}

func headerIndexes(header []string) map[string]int {
	m := map[string]int{}
	for i, h := range header {
		m[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return m
}

func (s *exportService) ImportStudents(ctx context.Context, r io.Reader) (*dto.StudentImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewValidationError("file is not a valid xlsx workbook")
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, apperrors.NewValidationError("workbook has no readable sheet")
	}
	if len(rows) == 0 {
		return nil, apperrors.NewValidationError("workbook is empty")
	}

	idx := headerIndexes(rows[0])
	for _, required := range []string{"studentid", "name", "dateofbirth"} {
		if _, ok := idx[required]; !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("missing column %q", required))
		}
	}

	cell := func(row []string, column string) string {
		i, ok := idx[strings.ToLower(column)]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := &dto.StudentImportResult{Errors: []dto.ImportRowError{}}
	for n, row := range rows[1:] {
		rowNumber := n + 2
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}

		dob, err := helpers.NormalizeDate(cell(row, "dateOfBirth"))
		if err != nil {
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNumber, Message: "dateOfBirth must use the DD-MM-YYYY format"})
			continue
		}

		req := &dto.CreateStudentRequest{
			StudentID:          cell(row, "studentID"),
			Name:               cell(row, "name"),
			DateOfBirth:        dob,
			Gender:             strings.ToLower(cell(row, "gender")),
			FatherName:         cell(row, "fatherName"),
			FatherOccupation:   cell(row, "fatherOccupation"),
			MotherName:         cell(row, "motherName"),
			MotherOccupation:   cell(row, "motherOccupation"),
			GuardianName:       cell(row, "guardianName"),
			GuardianOccupation: cell(row, "guardianOccupation"),
			Grade:              cell(row, "grade"),
			School:             cell(row, "school"),
			ClassName:          cell(row, "className"),
			EducationSystem:    cell(row, "educationSystem"),
		}
		if _, err := s.students.Create(ctx, req); err != nil {
			if apperrors.Is(err, apperrors.ErrInternal) {
				return nil, err
			}
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNumber, Message: apperrors.Message(err, err.Error())})
			continue
		}
		result.Created++
	}

	s.logger.Info().Int("created", result.Created).Int("failed", len(result.Errors)).Msg("Students imported")
	return result, nil
}
