package insight

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/insightbot/reddit-insight/pkg/types"
)

func TestJSONLObserver_WritesOneLinePerWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warnings.jsonl")
	observer, err := NewJSONLObserver(path)
	if err != nil {
		t.Fatalf("NewJSONLObserver: %v", err)
	}

	observer.Warn(warning(types.StageSentiment, "golang", "Some post", "sentiment agent failed", errors.New("timeout")))
	observer.Warn(warning(types.StageFetch, "programming", "", "listing top posts failed", nil))
	if err := observer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	var lines []types.Warning
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var w types.Warning
		if err := json.Unmarshal(scanner.Bytes(), &w); err != nil {
			t.Fatalf("line not valid JSON: %v", err)
		}
		lines = append(lines, w)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 warning lines, got %d", len(lines))
	}
	if lines[0].Stage != types.StageSentiment || lines[0].Err != "timeout" {
		t.Errorf("unexpected first warning: %+v", lines[0])
	}
	if lines[1].Stage != types.StageFetch || lines[1].Err != "" {
		t.Errorf("unexpected second warning: %+v", lines[1])
	}
}

func TestMultiObserver_FansOut(t *testing.T) {
	a := &recordingObserver{}
	b := &recordingObserver{}
	multi := MultiObserver{a, nil, b}

	multi.Warn(warning(types.StageHelper, "", "", "helper agent failed", nil))

	if len(a.warnings) != 1 || len(b.warnings) != 1 {
		t.Errorf("expected both observers notified, got %d and %d", len(a.warnings), len(b.warnings))
	}
}
