package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/velotrace/velotrace/pkg/referencedata"
	"github.com/velotrace/velotrace/pkg/util"
)

const fetchTimeout = 5 * time.Second
const fetchAttempts = 3

// Collector polls the live position feed once per tick, writes each capture
// as a JSON file into the run directory and optionally publishes the raw
// capture onto the positions queue for the archiver.
type Collector struct {
	OutputDirectory string
	Ticks           int
	Interval        time.Duration

	Queue rmq.Queue

	source       string
	apiKey       string
	runStartTime string
}

type feedEnvelope struct {
	Result json.RawMessage `json:"result"`
}

type feedRecordHeader struct {
	Time string `json:"Time"`
}

func New(outputDirectory string, ticks int) (*Collector, error) {
	apiKey := util.GetEnvironmentVariables()["VELOTRACE_ZTM_API_KEY"]
	if apiKey == "" {
		return nil, fmt.Errorf("VELOTRACE_ZTM_API_KEY is not set")
	}

	dataset, found := referencedata.GetDataSet(referencedata.DataSetFormatLivePositions)
	if !found {
		return nil, fmt.Errorf("no live position dataset registered")
	}

	interval := dataset.RefreshDuration()
	if interval <= 0 {
		interval = time.Minute
	}

	return &Collector{
		OutputDirectory: outputDirectory,
		Ticks:           ticks,
		Interval:        interval,

		source: dataset.Source,
		apiKey: apiKey,
	}, nil
}

// Run collects the configured number of ticks, starting immediately or at
// the given wall-clock start time.
func (c *Collector) Run(startAt *time.Time) error {
	if startAt != nil {
		waitUntil(*startAt)
	}

	now := time.Now()
	c.runStartTime = now.Format("2006-01-02 15:04:05")

	runDirectory := filepath.Join(c.OutputDirectory, now.Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(runDirectory, 0755); err != nil {
		return err
	}

	log.Info().
		Str("directory", runDirectory).
		Int("ticks", c.Ticks).
		Msg("Starting position collection")

	for tick := 0; tick < c.Ticks; tick++ {
		c.collectTick(runDirectory)

		if tick != c.Ticks-1 {
			time.Sleep(c.Interval)
		}
	}

	log.Info().Msg("Position collection finished")

	return nil
}

func (c *Collector) collectTick(runDirectory string) {
	capture, err := c.fetchPositions()
	if err != nil {
		log.Error().Err(err).Msg("Giving up on this tick")
		return
	}

	filename := filepath.Join(runDirectory, time.Now().Format("15-04-05")+".json")
	if err := os.WriteFile(filename, capture, 0644); err != nil {
		log.Error().Err(err).Str("file", filename).Msg("Failed to write capture")
		return
	}

	log.Info().Str("file", filename).Msg("Capture written")

	if c.Queue != nil {
		if err := c.Queue.PublishBytes(capture); err != nil {
			log.Error().Err(err).Msg("Failed to publish capture to queue")
		}
	}
}

// fetchPositions downloads the current fleet positions, retrying a failed
// request a couple of times before giving up on the tick.
func (c *Collector) fetchPositions() ([]byte, error) {
	operation := func() ([]byte, error) {
		return c.fetchOnce()
	}

	return backoff.RetryWithData(operation,
		backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), fetchAttempts-1))
}

func (c *Collector) fetchOnce() ([]byte, error) {
	source, err := url.Parse(c.source)
	if err != nil {
		return nil, err
	}

	query := source.Query()
	query.Set("apikey", c.apiKey)
	source.RawQuery = query.Encode()

	client := http.Client{Timeout: fetchTimeout}
	response, err := client.Get(source.String())
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	return filterCapture(body, c.runStartTime)
}

// filterCapture validates a feed response and drops records older than the
// run start. The feed reports its own connection errors as a string result,
// which counts as a failed attempt.
func filterCapture(body []byte, runStartTime string) ([]byte, error) {
	var envelope feedEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	var records []json.RawMessage
	if err := json.Unmarshal(envelope.Result, &records); err != nil {
		var apiError string
		if json.Unmarshal(envelope.Result, &apiError) == nil {
			return nil, fmt.Errorf("feed error: %s", apiError)
		}
		return nil, err
	}

	fresh := make([]json.RawMessage, 0, len(records))
	for _, record := range records {
		var header feedRecordHeader
		if err := json.Unmarshal(record, &header); err != nil {
			continue
		}

		// Naive timestamps compare correctly as strings.
		if header.Time >= runStartTime {
			fresh = append(fresh, record)
		}
	}

	return json.Marshal(map[string]any{"result": fresh})
}

func waitUntil(startAt time.Time) {
	if !time.Now().Before(startAt) {
		return
	}

	log.Info().Time("startAt", startAt).Msg("Waiting for scheduled start time")

	for time.Now().Before(startAt) {
		time.Sleep(time.Minute)
	}
}
