package referencedata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const busStopsFixture = `{
	"result": [
		{
			"values": [
				{"value": "1001", "key": "zespol"},
				{"value": "01", "key": "slupek"},
				{"value": "Kijowska", "key": "nazwa_zespolu"},
				{"value": "2201", "key": "id_ulicy"},
				{"value": "52.248455", "key": "szer_geo"},
				{"value": "21.044827", "key": "dlug_geo"},
				{"value": "al.Zieleniecka", "key": "kierunek"},
				{"value": "2023-10-07 00:00:00.0", "key": "obowiazuje_od"}
			]
		},
		{
			"values": [
				{"value": "1001", "key": "zespol"},
				{"value": "02", "key": "slupek"},
				{"value": "Kijowska", "key": "nazwa_zespolu"},
				{"value": "2201", "key": "id_ulicy"},
				{"value": "null", "key": "szer_geo"},
				{"value": "21.044443", "key": "dlug_geo"}
			]
		}
	]
}`

func TestLoadReferencePoints(t *testing.T) {
	points, err := LoadReferencePoints(strings.NewReader(busStopsFixture))
	require.NoError(t, err)

	require.Len(t, points, 1, "rows with unparseable coordinates are excluded")

	point := points[0]
	assert.Equal(t, "1001-01", point.PrimaryIdentifier)
	assert.Equal(t, "Kijowska", point.Name)
	assert.Equal(t, 52.248455, point.Lat)
	assert.Equal(t, 21.044827, point.Lon)
	assert.Equal(t, "2201", point.StreetID)
	assert.Equal(t, "al.Zieleniecka", point.Direction)
	assert.Equal(t, "2023-10-07 00:00:00.0", point.ValidFrom)
}

func TestLoadReferencePointsEmptyResult(t *testing.T) {
	points, err := LoadReferencePoints(strings.NewReader(`{"result": []}`))
	require.NoError(t, err)

	assert.Empty(t, points)
}

func TestLoadReferencePointsInvalidJSON(t *testing.T) {
	_, err := LoadReferencePoints(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestLoadStreetTable(t *testing.T) {
	table, err := LoadStreetTable(strings.NewReader(`{
		"result": {
			"ulice": {
				"2201": "KIJOWSKA",
				"1004": "MARSZAŁKOWSKA"
			}
		}
	}`))
	require.NoError(t, err)

	assert.Len(t, table, 2)
	assert.Equal(t, "KIJOWSKA", table["2201"])
	assert.Equal(t, "MARSZAŁKOWSKA", table["1004"])
}

func TestLoadStreetTableInvalidJSON(t *testing.T) {
	_, err := LoadStreetTable(strings.NewReader(`[]`))
	assert.Error(t, err)
}
