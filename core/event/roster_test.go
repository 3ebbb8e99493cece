package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseRosterEmailsCSV(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []string
		wantErr error
	}{
		{name: "empty file", data: "", wantErr: ErrEmptyRoster},
		{name: "no email column", data: "name,domain\nAlice,Web", wantErr: ErrNoEmailColumn},
		{
			name: "header case and spacing ignored",
			data: "Name, EMAIL \nAlice, Alice@Example.Com \nBob,bob@example.com",
			want: []string{"alice@example.com", "bob@example.com"},
		},
		{
			name: "blank rows dropped",
			data: "email\nalice@example.com\n\n  \nbob@example.com",
			want: []string{"alice@example.com", "bob@example.com"},
		},
		{
			name: "ragged rows tolerated",
			data: "name,email\nAlice,alice@example.com\nonly-name",
			want: []string{"alice@example.com"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emails, err := ParseRosterEmails("roster.csv", []byte(tt.data))
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, emails)
		})
	}
}

func TestParseRosterEmailsXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Name", "Email"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Alice", " Alice@Example.Com "}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Bob", "bob@example.com"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	emails, err := ParseRosterEmails("roster.xlsx", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, emails)
}

func TestMatchRoster(t *testing.T) {
	regs := []Registrant{
		{Registration: Registration{ID: "reg-1", AssignedDomain: "Web"}, UserName: "Alice", UserEmail: "Alice@Example.Com"},
		{Registration: Registration{ID: "reg-2"}, UserName: "Bob", UserEmail: "bob@example.com"},
	}

	preview := MatchRoster([]string{"alice@example.com", "ghost@example.com"}, regs)

	assert.Equal(t, 1, preview.Matched)
	assert.Equal(t, 1, preview.Unmatched)
	require.Len(t, preview.Rows, 2)

	assert.True(t, preview.Rows[0].Found)
	assert.Equal(t, "reg-1", preview.Rows[0].RegistrationID)
	assert.Equal(t, "Alice", preview.Rows[0].Name)
	assert.Equal(t, "Web", preview.Rows[0].CurrentDomain)

	assert.False(t, preview.Rows[1].Found)
	assert.Equal(t, "ghost@example.com", preview.Rows[1].Email)

	assert.Equal(t, []string{"reg-1"}, preview.MatchedRegistrationIDs())
}
