// Package services holds the business rules. Services defined here:
// - RosterService: student membership of classes (add, remove, transfer) and class teacher/semester changes
// - ClassService, StudentService, TeacherService, SemesterService, NewsService, AccountService: entity CRUD
// - AuthService: admin login and JWT issuance
// - PasswordResetService: SMS verification codes and password reset
// - MediaService: uploads to the media host and student/teacher document slots
// - ChatService: assistant replies from the inference API
// - ExportService: student spreadsheet export and import
package services

import (
	"strings"

	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
)

// dedupe drops blank and repeated IDs, keeping first occurrences in order
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// without returns roster minus the IDs in remove, preserving order
func without(roster, remove []string) []string {
	drop := make(map[string]bool, len(remove))
	for _, id := range remove {
		drop[id] = true
	}
	out := make([]string, 0, len(roster))
	for _, id := range roster {
		if !drop[id] {
			out = append(out, id)
		}
	}
	return out
}

// studentNames maps IDs to display names, falling back to the ID for unknown students
func studentNames(ids []string, students []*models.Student) string {
	byID := make(map[string]string, len(students))
	for _, s := range students {
		byID[s.ID] = s.Name
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok && name != "" {
			names = append(names, name)
		} else {
			names = append(names, id)
		}
	}
	return strings.Join(names, ", ")
}
