package insight

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/insightbot/reddit-insight/pkg/logger"
	"github.com/insightbot/reddit-insight/pkg/types"
)

// Observer receives every failure the pipelines swallow. The pipelines keep
// their default-and-continue contract either way; the observer is how a
// caller distinguishes degraded output from clean output.
type Observer interface {
	Warn(w types.Warning)
}

// LogObserver writes warnings to the shared logrus logger.
type LogObserver struct {
	Log *logrus.Logger
}

// NewLogObserver returns an observer over the process logger.
func NewLogObserver() *LogObserver {
	return &LogObserver{Log: logger.Log}
}

// Warn implements Observer.
func (o *LogObserver) Warn(w types.Warning) {
	log := o.Log
	if log == nil {
		log = logger.Log
	}
	log.WithFields(logrus.Fields{
		"stage": w.Stage,
		"forum": w.Forum,
		"post":  w.PostTitle,
		"error": w.Err,
	}).Warn(w.Detail)
}

// JSONLObserver appends each warning as one JSON line, for offline analysis
// of how often agents fall back to defaults.
type JSONLObserver struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
}

// NewJSONLObserver creates a JSONL observer at the given path.
func NewJSONLObserver(path string) (*JSONLObserver, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &JSONLObserver{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

// Warn implements Observer.
func (o *JSONLObserver) Warn(w types.Warning) {
	if o == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	data, err := json.Marshal(w)
	if err != nil {
		logger.Log.Warnf("marshal warning: %v", err)
		return
	}
	if _, err := o.writer.Write(append(data, '\n')); err != nil {
		logger.Log.Warnf("write warning: %v", err)
		return
	}
	_ = o.writer.Flush()
}

// Close flushes and closes the underlying file.
func (o *JSONLObserver) Close() error {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.writer != nil {
		_ = o.writer.Flush()
	}
	if o.file != nil {
		return o.file.Close()
	}
	return nil
}

// MultiObserver fans warnings out to several observers.
type MultiObserver []Observer

// Warn implements Observer.
func (m MultiObserver) Warn(w types.Warning) {
	for _, o := range m {
		if o != nil {
			o.Warn(w)
		}
	}
}

func warning(stage types.Stage, forum, postTitle, detail string, err error) types.Warning {
	w := types.Warning{
		Timestamp: time.Now(),
		Stage:     stage,
		Forum:     forum,
		PostTitle: postTitle,
		Detail:    detail,
	}
	if err != nil {
		w.Err = err.Error()
	}
	return w
}
