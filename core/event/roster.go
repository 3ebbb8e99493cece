package event

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/MSTC-DAU/mstc/core"
)

// A roster is an uploaded spreadsheet of participant emails used for bulk
// domain assignment. Only the `email` column of the first sheet is read;
// every other column is ignored.

var (
	ErrEmptyRoster   = errors.New("roster has no rows")
	ErrNoEmailColumn = errors.New("roster has no 'email' column")
	errNoSheets      = errors.New("workbook has no sheets")
)

// RosterRow is one parsed roster line matched against the event's registrations.
type RosterRow struct {
	Email          string `json:"email"`
	Found          bool   `json:"found"`
	RegistrationID string `json:"registration_id,omitempty"`
	Name           string `json:"name,omitempty"`
	CurrentDomain  string `json:"current_domain,omitempty"`
}

// RosterPreview reports match results before anything is committed.
type RosterPreview struct {
	Rows      []RosterRow `json:"rows"`
	Matched   int         `json:"matched"`
	Unmatched int         `json:"unmatched"`
}

// MatchedRegistrationIDs returns the registration ids of all matched rows.
func (p RosterPreview) MatchedRegistrationIDs() []string {
	ids := make([]string, 0, p.Matched)
	for _, row := range p.Rows {
		if row.Found {
			ids = append(ids, row.RegistrationID)
		}
	}
	return ids
}

// ParseRosterEmails extracts the email column from an uploaded CSV or XLSX
// file. Blank rows are discarded; emails are trimmed and lowered.
func ParseRosterEmails(filename string, data []byte) ([]string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return parseCSVEmails(data)
	}
	return parseXLSXEmails(data)
}

func parseXLSXEmails(data []byte) ([]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "opening workbook")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %q", sheets[0])
	}
	return extractEmailColumn(rows)
}

func parseCSVEmails(data []byte) ([]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading csv")
		}
		rows = append(rows, record)
	}
	return extractEmailColumn(rows)
}

func extractEmailColumn(rows [][]string) ([]string, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyRoster
	}

	emailCol := -1
	for i, name := range rows[0] {
		if core.CleanString(name, true /* lower */) == "email" {
			emailCol = i
			break
		}
	}
	if emailCol < 0 {
		return nil, ErrNoEmailColumn
	}

	emails := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if emailCol >= len(row) {
			continue
		}
		if email := core.CleanString(row[emailCol], true /* lower */); email != "" {
			emails = append(emails, email)
		}
	}
	return emails, nil
}

// MatchRoster matches parsed emails against the event's registrations,
// case-insensitively. Unmatched emails are kept and flagged so the caller
// can report them before committing.
func MatchRoster(emails []string, regs []Registrant) RosterPreview {
	byEmail := make(map[string]Registrant, len(regs))
	for _, reg := range regs {
		byEmail[core.CleanString(reg.UserEmail, true /* lower */)] = reg
	}

	preview := RosterPreview{Rows: make([]RosterRow, 0, len(emails))}
	for _, email := range emails {
		row := RosterRow{Email: email}
		if reg, ok := byEmail[email]; ok {
			row.Found = true
			row.RegistrationID = reg.ID
			row.Name = reg.UserName
			row.CurrentDomain = reg.AssignedDomain
			preview.Matched++
		} else {
			preview.Unmatched++
		}
		preview.Rows = append(preview.Rows, row)
	}
	return preview
}
