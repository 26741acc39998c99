package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"marketdoctors.com/admin-gateway/internal/normalize"
)

func sampleRoster() []normalize.Person {
	return []normalize.Person{
		{
			ID:                42,
			FullName:          "Ada Obi",
			Email:             "ada@marketdoctors.com",
			Phone:             "+2348012345678",
			Gender:            "female",
			Specialisation:    []string{"Cardiology", "General Practice"},
			YearsOfExperience: 7,
			Languages:         []string{"English", "Igbo"},
			Facility:          "Lagos General",
			Confirmed:         true,
			CreatedAt:         "2023-05-01T10:00:00.000Z",
		},
		{
			ID:       43,
			FullName: "Unknown",
		},
	}
}

func TestRosterCSV(t *testing.T) {
	out, err := RosterCSV(sampleRoster())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, rosterHeader, rows[0])
	assert.Equal(t, "42", rows[1][0])
	assert.Equal(t, "Ada Obi", rows[1][1])
	assert.Equal(t, "Cardiology; General Practice", rows[1][5])
	assert.Equal(t, "yes", rows[1][9])
	assert.Equal(t, "Unknown", rows[2][1])
	assert.Equal(t, "no", rows[2][9])
}

func TestRosterCSVEmptyStillHasHeader(t *testing.T) {
	out, err := RosterCSV(nil)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, rosterHeader, rows[0])
}

func TestRosterXLSX(t *testing.T) {
	out, err := RosterXLSX("Doctors", sampleRoster())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Doctors")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Full Name", rows[0][1])
	assert.Equal(t, "Ada Obi", rows[1][1])
	assert.Equal(t, "7", rows[1][6])
}
