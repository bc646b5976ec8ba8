package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const stampLayout = "2006-01-02-15-04-05"

// Files names the three per-run log files.
type Files struct {
	Info    string
	Warning string
	Error   string
}

// NewRunLogger builds the logger for one transfer run. Every entry goes to
// the info file; warnings and errors are duplicated into their own files so
// a run's problems can be reviewed without scanning the full log. The
// warning and error files are created lazily, so a clean run leaves only
// the info log behind.
func NewRunLogger(dir string, start time.Time) (*logrus.Logger, Files, error) {
	stamp := start.Format(stampLayout)
	files := Files{
		Info:    filepath.Join(dir, "photo-transfer-"+stamp+".log"),
		Warning: filepath.Join(dir, "photo-transfer-"+stamp+".warning"),
		Error:   filepath.Join(dir, "photo-transfer-"+stamp+".error"),
	}

	info, err := os.OpenFile(files.Info, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, Files{}, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(info)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logger.AddHook(&fileHook{
		path:      files.Warning,
		levels:    []logrus.Level{logrus.WarnLevel},
		formatter: logger.Formatter,
	})
	logger.AddHook(&fileHook{
		path:      files.Error,
		levels:    []logrus.Level{logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel},
		formatter: logger.Formatter,
	})

	return logger, files, nil
}

// fileHook appends entries of selected levels to its own file, opening the
// file on first entry.
type fileHook struct {
	path      string
	levels    []logrus.Level
	formatter logrus.Formatter
	w         io.Writer
}

func (h *fileHook) Levels() []logrus.Level {
	return h.levels
}

func (h *fileHook) Fire(entry *logrus.Entry) error {
	if h.w == nil {
		f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		h.w = f
	}

	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.w.Write(line)
	return err
}
