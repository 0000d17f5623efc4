package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/wavefx/config"
	"github.com/pthm-cable/wavefx/wave"
)

// PointRecord is one cached wave offset in points.csv.
type PointRecord struct {
	Anchor string  `csv:"anchor"`
	Class  string  `csv:"class"`
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	Z      float64 `csv:"z"`
}

// PointRecords flattens a cloud, edge points first.
func PointRecords(anchor string, c *wave.Cloud) []PointRecord {
	records := make([]PointRecord, 0, c.Len())
	for _, class := range []wave.Class{wave.ClassEdge, wave.ClassInterior} {
		for _, p := range c.Points(class) {
			records = append(records, PointRecord{
				Anchor: anchor,
				Class:  class.String(),
				X:      p.X,
				Y:      p.Y,
				Z:      p.Z,
			})
		}
	}
	return records
}

// csvFile appends records to a CSV file, writing the header once.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func createCSV(dir, name string) (*csvFile, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvFile{f: f}, nil
}

func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		c.headerWritten = true
		return gocsv.Marshal(records, c.f)
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// OutputManager writes run output as CSV files.
type OutputManager struct {
	dir    string
	ticks  *csvFile
	perf   *csvFile
	points *csvFile
}

// NewOutputManager creates the output directory and files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.ticks, err = createCSV(dir, "ticks.csv"); err != nil {
		return nil, err
	}
	if om.perf, err = createCSV(dir, "perf.csv"); err != nil {
		om.Close()
		return nil, err
	}
	if om.points, err = createCSV(dir, "points.csv"); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteWindow writes a window stats record to ticks.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.ticks.write([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing ticks: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WritePoints appends the cached offsets of a wave to points.csv.
func (om *OutputManager) WritePoints(anchor string, c *wave.Cloud) error {
	if om == nil || c.Len() == 0 {
		return nil
	}
	if err := om.points.write(PointRecords(anchor, c)); err != nil {
		return fmt.Errorf("writing points: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{om.ticks, om.perf, om.points} {
		if c == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
