package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/benjaminschreck/moralreport/pkg/logging"
	"github.com/benjaminschreck/moralreport/pkg/metrics"
)

// Artifact is a result written to a temporary file for delivery
type Artifact struct {
	Path        string
	Filename    string
	ContentType string
	Size        int64

	logger  *logging.Logger
	metrics *metrics.Manager
	once    sync.Once
}

// Spool writes res to a fresh temporary file. The caller must Release the
// artifact once delivery has finished or failed.
func (s *Service) Spool(res *Result) (*Artifact, error) {
	if res == nil {
		return nil, errors.New("spool: nil result")
	}
	f, err := os.CreateTemp(s.spoolDir, "moralreport-*.docx")
	if err != nil {
		return nil, fmt.Errorf("spool: %w", err)
	}
	a := &Artifact{
		Path:        f.Name(),
		Filename:    res.Filename,
		ContentType: res.ContentType,
		Size:        int64(len(res.Data)),
		logger:      s.logger,
		metrics:     s.metrics,
	}

	_, werr := f.Write(res.Data)
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		a.Release()
		return nil, fmt.Errorf("spool: %w", werr)
	}
	return a, nil
}

// Open opens the spooled file for reading
func (a *Artifact) Open() (*os.File, error) {
	return os.Open(a.Path)
}

// Release removes the temporary file. It is safe to call more than once.
// Removal failures are logged and counted, never returned.
func (a *Artifact) Release() {
	a.once.Do(func() {
		err := os.Remove(a.Path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return
		}
		a.logger.WithError(err).WithField("path", a.Path).Warn("failed to remove temporary document")
		if a.metrics != nil {
			a.metrics.RecordCleanupFailure()
		}
	})
}
