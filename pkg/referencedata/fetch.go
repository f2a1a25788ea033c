package referencedata

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/velotrace/velotrace/pkg/util"
)

const fetchTimeout = 30 * time.Second

// FetchAll downloads every registered static dataset into the data
// directory, one JSON file per dataset.
func FetchAll(dataDirectory string) error {
	apiKey := util.GetEnvironmentVariables()["VELOTRACE_ZTM_API_KEY"]
	if apiKey == "" {
		return fmt.Errorf("VELOTRACE_ZTM_API_KEY is not set")
	}

	if err := os.MkdirAll(dataDirectory, 0755); err != nil {
		return err
	}

	for _, dataset := range GetRegisteredDataSets() {
		// The live feed is polled by the collector, not fetched once.
		if dataset.Format == DataSetFormatLivePositions {
			continue
		}

		filename := filepath.Join(dataDirectory, fileNameForDataSet(dataset))

		if err := fetchDataSet(dataset, apiKey, filename); err != nil {
			return fmt.Errorf("failed to fetch %s: %w", dataset.Identifier, err)
		}

		log.Info().
			Str("dataset", dataset.Identifier).
			Str("file", filename).
			Msg("Fetched static dataset")
	}

	return nil
}

func fileNameForDataSet(dataset DataSet) string {
	switch dataset.Format {
	case DataSetFormatBusStops:
		return "bus_stops.json"
	case DataSetFormatDictionary:
		return "dictionary.json"
	case DataSetFormatBusLines:
		return "bus_lines.json"
	}

	return strings.ReplaceAll(dataset.Identifier, "/", "-") + ".json"
}

func fetchDataSet(dataset DataSet, apiKey string, filename string) error {
	source, err := url.Parse(dataset.Source)
	if err != nil {
		return err
	}

	query := source.Query()
	query.Set("apikey", apiKey)
	source.RawQuery = query.Encode()

	client := http.Client{Timeout: fetchTimeout}
	response, err := client.Get(source.String())
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", response.StatusCode)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, response.Body)
	return err
}
