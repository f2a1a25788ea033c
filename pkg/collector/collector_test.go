package collector

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterCapture(t *testing.T) {
	body := []byte(`{"result": [
		{"VehicleNumber": "1000", "Time": "2024-01-01 07:59:00"},
		{"VehicleNumber": "2000", "Time": "2024-01-01 08:00:30"},
		{"VehicleNumber": "3000", "Time": "2024-01-01 08:01:00"}
	]}`)

	filtered, err := filterCapture(body, "2024-01-01 08:00:00")
	require.NoError(t, err)

	var envelope struct {
		Result []struct {
			VehicleNumber string
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(filtered, &envelope))

	require.Len(t, envelope.Result, 2, "stale records from before the run start are dropped")
	assert.Equal(t, "2000", envelope.Result[0].VehicleNumber)
	assert.Equal(t, "3000", envelope.Result[1].VehicleNumber)
}

func TestFilterCaptureFeedError(t *testing.T) {
	_, err := filterCapture([]byte(`{"result": "Błędna metoda lub parametry wywołania"}`), "2024-01-01 08:00:00")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed error")
}

func TestFilterCaptureInvalidBody(t *testing.T) {
	_, err := filterCapture([]byte(`<html>gateway timeout</html>`), "2024-01-01 08:00:00")
	assert.Error(t, err)
}

func TestFilterCaptureAllStale(t *testing.T) {
	filtered, err := filterCapture([]byte(`{"result": [
		{"VehicleNumber": "1000", "Time": "2024-01-01 07:00:00"}
	]}`), "2024-01-01 08:00:00")
	require.NoError(t, err)

	assert.JSONEq(t, `{"result": []}`, string(filtered))
}
