package referencedata

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
	"gopkg.in/yaml.v3"
)

type DataSetFormat string

const (
	DataSetFormatBusStops      DataSetFormat = "ztm-bus-stops"
	DataSetFormatDictionary    DataSetFormat = "ztm-dictionary"
	DataSetFormatBusLines      DataSetFormat = "ztm-bus-lines"
	DataSetFormatBusStopsCSV   DataSetFormat = "csv-bus-stops"
	DataSetFormatLivePositions DataSetFormat = "ztm-live-positions"
)

type DataSource struct {
	Identifier string
	Provider   Provider
	Datasets   []DataSet
}

type Provider struct {
	Name    string
	Website string
}

type DataSet struct {
	Identifier    string
	DataSourceRef string `yaml:"-"`
	Format        DataSetFormat

	Source string

	// RefreshInterval is an ISO 8601 duration saying how often the source is
	// worth re-fetching.
	RefreshInterval string
}

// RefreshDuration converts the ISO 8601 refresh interval into a
// time.Duration, or zero when unset or unparseable.
func (d *DataSet) RefreshDuration() time.Duration {
	if d.RefreshInterval == "" {
		return 0
	}

	interval, err := iso8601.ParseISO8601(d.RefreshInterval)
	if err != nil {
		log.Warn().Err(err).Str("dataset", d.Identifier).Msg("Invalid refresh interval")
		return 0
	}

	base := time.Now()
	return interval.Shift(base).Sub(base)
}

const ztmAPIURL = "https://api.um.warszawa.pl/api/action/"

// defaultDataSource covers the ZTM Warsaw endpoints the collectors were
// built against. Descriptor files under data/datasources/ extend or replace
// it.
var defaultDataSource = DataSource{
	Identifier: "pl-ztm-warszawa",
	Provider: Provider{
		Name:    "Warszawski Transport Publiczny",
		Website: "https://api.um.warszawa.pl",
	},
	Datasets: []DataSet{
		{
			Identifier:      "bus-stops",
			Format:          DataSetFormatBusStops,
			Source:          ztmAPIURL + "dbtimetable_get?id=ab75c33d-3a26-4342-b36a-6e5fef0a3ac3",
			RefreshInterval: "P1D",
		},
		{
			Identifier:      "dictionary",
			Format:          DataSetFormatDictionary,
			Source:          ztmAPIURL + "public_transport_dictionary",
			RefreshInterval: "P1D",
		},
		{
			Identifier:      "bus-lines",
			Format:          DataSetFormatBusLines,
			Source:          ztmAPIURL + "public_transport_routes",
			RefreshInterval: "P1D",
		},
		{
			Identifier:      "live-positions",
			Format:          DataSetFormatLivePositions,
			Source:          ztmAPIURL + "busestrams_get?type=1&resource_id=f2e5503e927d-4ad3-9500-4ab9e55deb59",
			RefreshInterval: "PT1M",
		},
	},
}

// GetDataSet returns the first registered dataset of the given format.
func GetDataSet(format DataSetFormat) (DataSet, bool) {
	for _, dataset := range GetRegisteredDataSets() {
		if dataset.Format == format {
			return dataset, true
		}
	}

	return DataSet{}, false
}

// GetRegisteredDataSets returns every dataset from the descriptor files under
// data/datasources/, falling back to the built-in ZTM source when the
// directory is absent.
func GetRegisteredDataSets() []DataSet {
	var registered []DataSet

	err := filepath.Walk("data/datasources/",
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() || filepath.Ext(path) != ".yaml" {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading datasource file")

			sourceYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoder := yaml.NewDecoder(bytes.NewReader(sourceYaml))

			for {
				var datasource DataSource
				if decoder.Decode(&datasource) != nil {
					break
				}

				registered = append(registered, flattenDataSource(datasource)...)
			}

			return nil
		})
	if err != nil {
		return flattenDataSource(defaultDataSource)
	}

	if len(registered) == 0 {
		return flattenDataSource(defaultDataSource)
	}

	return registered
}

func flattenDataSource(datasource DataSource) []DataSet {
	var datasets []DataSet

	for _, dataset := range datasource.Datasets {
		dataset.DataSourceRef = datasource.Identifier
		datasets = append(datasets, dataset)
	}

	return datasets
}
