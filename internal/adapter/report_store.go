package adapter

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "recase.dev/pkg/recase/internal/model"
)

const reportFilePrefix = "recase-report-"

// ReportStore persists run reports as timestamped YAML files under a reports
// directory.
type ReportStore interface {
	// Save writes the report and returns the path it was written to.
	Save(dir m.Path, report m.RunReport) (m.Path, error)

	// LoadLatest reads the most recent report in dir.
	LoadLatest(dir m.Path) (m.RunReport, error)
}

// LocalReportStore implements ReportStore on the local filesystem.
type LocalReportStore struct {
	fs SourceFS
}

// NewLocalReportStore constructs a LocalReportStore.
func NewLocalReportStore(fs SourceFS) *LocalReportStore {
	return &LocalReportStore{fs: fs}
}

// Save encodes the report as YAML into a file named after the run's start
// time. The timestamp layout sorts lexically, which LoadLatest relies on.
func (s *LocalReportStore) Save(dir m.Path, report m.RunReport) (m.Path, error) {
	if err := s.fs.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create reports directory %s: %w", dir, err)
	}

	encoded, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	name := reportFilePrefix + report.StartedAt.Format("20060102-150405") + ".yaml"
	path := s.fs.JoinPath(string(dir), name)

	if err := s.fs.WriteFile(path, encoded, 0o640); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}

	return path, nil
}

// LoadLatest decodes the lexically last report file in dir.
func (s *LocalReportStore) LoadLatest(dir m.Path) (m.RunReport, error) {
	names, err := s.fs.ReadDirNames(dir)
	if err != nil {
		return m.RunReport{}, fmt.Errorf("read reports directory %s: %w", dir, err)
	}

	var reports []string

	for _, name := range names {
		if strings.HasPrefix(name, reportFilePrefix) && strings.HasSuffix(name, ".yaml") {
			reports = append(reports, name)
		}
	}

	if len(reports) == 0 {
		return m.RunReport{}, fmt.Errorf("no reports found in %s: %w", dir, os.ErrNotExist)
	}

	sort.Strings(reports)

	path := s.fs.JoinPath(string(dir), reports[len(reports)-1])

	content, err := s.fs.ReadFile(path)
	if err != nil {
		return m.RunReport{}, fmt.Errorf("read report %s: %w", path, err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(content, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return report, nil
}
