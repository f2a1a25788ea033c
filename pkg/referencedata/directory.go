package referencedata

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/velotrace/velotrace/pkg/btd"
)

// LoadFromDirectory reads the previously fetched static datasets from the
// data directory: reference points from bus_stops.json (or bus_stops.csv)
// and the street table from dictionary.json.
func LoadFromDirectory(dataDirectory string) ([]btd.ReferencePoint, btd.StreetTable, error) {
	points, err := loadPoints(dataDirectory)
	if err != nil {
		return nil, nil, err
	}

	dictionaryFile, err := os.Open(filepath.Join(dataDirectory, "dictionary.json"))
	if err != nil {
		return nil, nil, err
	}
	defer dictionaryFile.Close()

	streets, err := LoadStreetTable(dictionaryFile)
	if err != nil {
		return nil, nil, err
	}

	return points, streets, nil
}

func loadPoints(dataDirectory string) ([]btd.ReferencePoint, error) {
	for _, name := range []string{"bus_stops.json", "bus_stops.csv"} {
		path := filepath.Join(dataDirectory, name)

		file, err := os.Open(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		defer file.Close()

		if strings.HasSuffix(name, ".csv") {
			return LoadReferencePointsCSV(file)
		}
		return LoadReferencePoints(file)
	}

	return nil, os.ErrNotExist
}
