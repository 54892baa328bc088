package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/meadow/sample"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir        string
	flowFile   *os.File
	pointsFile *os.File

	// Track if headers have been written
	flowHeaderWritten   bool
	pointsHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	flowPath := filepath.Join(dir, "flow.csv")
	f, err := os.Create(flowPath)
	if err != nil {
		return nil, fmt.Errorf("creating flow.csv: %w", err)
	}
	om.flowFile = f

	pointsPath := filepath.Join(dir, "points.csv")
	f, err = os.Create(pointsPath)
	if err != nil {
		om.flowFile.Close()
		return nil, fmt.Errorf("creating points.csv: %w", err)
	}
	om.pointsFile = f

	return om, nil
}

// WriteFlowSamples appends flow grid samples to flow.csv.
func (om *OutputManager) WriteFlowSamples(samples []sample.FlowSample) error {
	if om == nil || len(samples) == 0 {
		return nil
	}

	if !om.flowHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(samples, om.flowFile); err != nil {
			return fmt.Errorf("writing flow samples: %w", err)
		}
		om.flowHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(samples, om.flowFile); err != nil {
			return fmt.Errorf("writing flow samples: %w", err)
		}
	}

	return nil
}

// WritePoints appends generated points to points.csv.
func (om *OutputManager) WritePoints(points []sample.PointSample) error {
	if om == nil || len(points) == 0 {
		return nil
	}

	if !om.pointsHeaderWritten {
		if err := gocsv.Marshal(points, om.pointsFile); err != nil {
			return fmt.Errorf("writing points: %w", err)
		}
		om.pointsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(points, om.pointsFile); err != nil {
			return fmt.Errorf("writing points: %w", err)
		}
	}

	return nil
}

// WriteSummaries saves aggregate statistics as summary.csv.
func (om *OutputManager) WriteSummaries(summaries []Summary) error {
	if om == nil || len(summaries) == 0 {
		return nil
	}

	path := filepath.Join(om.dir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(summaries, f); err != nil {
		return fmt.Errorf("writing summaries: %w", err)
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

	if om.flowFile != nil {
		if err := om.flowFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.pointsFile != nil {
		if err := om.pointsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
