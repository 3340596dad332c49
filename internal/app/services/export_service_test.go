package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportThenImportStudents(t *testing.T) {
	f := newFixture(t)
	f.student("S1", "An")
	f.student("S2", "Binh")
	source := NewExportService(newStudentService(f, newFakeStorage()), testLogger)

	var buf bytes.Buffer
	require.NoError(t, source.ExportStudents(f.ctx, &buf))

	target := newFixture(t)
	importer := NewExportService(newStudentService(target, newFakeStorage()), testLogger)

	result, err := importer.ImportStudents(f.ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Empty(t, result.Errors)

	imported, err := target.repos.Students.FindByStudentID(f.ctx, "S2")
	require.NoError(t, err)
	assert.Equal(t, "Binh", imported.Name)
	assert.Equal(t, "15-03-2020", imported.DateOfBirth)
}

func TestImportReportsRowErrors(t *testing.T) {
	f := newFixture(t)
	f.student("S1", "An")
	svc := NewExportService(newStudentService(f, newFakeStorage()), testLogger)

	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	rows := [][]interface{}{
		{"Name", "StudentID", "DateOfBirth", "Gender"},
		{"Chi", "S3", "2020-07-09", "Female"},
		{"Duplicate", "S1", "01-01-2020", ""},
		{"No date", "S4", "someday", ""},
		{"", "", "", ""},
		{"", "S5", "01-01-2020", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, wb.SetSheetRow(sheet, cell, &r))
	}
	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))

	result, err := svc.ImportStudents(f.ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Equal(t, 6, result.Errors[2].Row)

	chi, err := f.repos.Students.FindByStudentID(f.ctx, "S3")
	require.NoError(t, err)
	assert.Equal(t, "09-07-2020", chi.DateOfBirth)
	assert.Equal(t, "female", chi.Gender)
}

func TestImportRejectsBadWorkbook(t *testing.T) {
	f := newFixture(t)
	svc := NewExportService(newStudentService(f, newFakeStorage()), testLogger)

	_, err := svc.ImportStudents(f.ctx, bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)

	wb := excelize.NewFile()
	require.NoError(t, wb.SetSheetRow(wb.GetSheetName(0), "A1", &[]interface{}{"name"}))
	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	_, err = svc.ImportStudents(f.ctx, &buf)
	assert.Error(t, err)
}
