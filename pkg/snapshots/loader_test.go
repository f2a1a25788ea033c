package snapshots

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSnapshot(t *testing.T) {
	snapshot, err := DecodeSnapshot([]byte(`{
		"result": [
			{
				"VehicleNumber": "1000",
				"Lat": 52.23,
				"Lon": 21.01,
				"Time": "2024-01-01 08:00:00",
				"Lines": "523",
				"Brigade": "3"
			},
			{
				"Lat": 52.24,
				"Lon": 21.02,
				"Time": "2024-01-01 08:00:00"
			},
			{
				"VehicleNumber": "2000",
				"Time": "2024-01-01 08:00:00"
			}
		]
	}`))
	require.NoError(t, err)

	require.Len(t, snapshot.Positions, 2, "records without coordinates are dropped")

	first := snapshot.Positions[0]
	assert.Equal(t, "1000", first.VehicleNumber)
	assert.Equal(t, 52.23, first.Lat)
	assert.Equal(t, []string{"523"}, first.Lines)
	assert.Equal(t, "3", first.Brigade)

	second := snapshot.Positions[1]
	assert.Empty(t, second.VehicleNumber, "records without a vehicle number survive decoding")
	assert.False(t, second.HasVehicleNumber())
}

func TestDecodeSnapshotFeedError(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`{"result": "Błędna metoda lub parametry wywołania"}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed error in capture")
}

func TestDecodeSnapshotInvalidJSON(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`not json`))
	assert.Error(t, err)
}

func TestLoadDirectory(t *testing.T) {
	directory := t.TempDir()

	capture := func(name string, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(directory, name), []byte(body), 0644))
	}

	capture("08-01-00.json", `{"result": [
		{"VehicleNumber": "1000", "Lat": 52.24, "Lon": 21.02, "Time": "2024-01-01 08:01:00"}
	]}`)
	capture("08-00-00.json", `{"result": [
		{"VehicleNumber": "1000", "Lat": 52.23, "Lon": 21.01, "Time": "2024-01-01 08:00:00"}
	]}`)
	capture("08-02-00.json", `{"result": "feed down"}`)

	sequence, err := LoadDirectory(directory)
	require.NoError(t, err)
	require.Len(t, sequence, 3)

	// Lexical file order is the collection order.
	assert.Equal(t, "08-00-00", sequence[0].TimestampHint)
	assert.Equal(t, "08-01-00", sequence[1].TimestampHint)

	assert.Equal(t, "2024-01-01 08:00:00", sequence[0].Positions[0].Timestamp)
	assert.Equal(t, "2024-01-01 08:01:00", sequence[1].Positions[0].Timestamp)

	// The undecodable tick keeps its slot so pairing stays aligned.
	assert.Equal(t, "08-02-00", sequence[2].TimestampHint)
	assert.Empty(t, sequence[2].Positions)
}

func TestLoadDirectoryMissing(t *testing.T) {
	_, err := LoadDirectory(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
