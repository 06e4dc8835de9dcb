package ml

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/damiloju/startup-analyst/internal/common"
	"github.com/damiloju/startup-analyst/internal/features"
)

// Save writes the current artifact to path, via a temp file and rename so
// a crash mid-write never leaves a truncated model behind.
func (p *Predictor) Save(path string) error {
	p.mu.RLock()
	art := p.art
	p.mu.RUnlock()
	if art == nil {
		return common.NewAppError("MODEL_NOT_TRAINED", "nothing to save", common.ErrNotTrained)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return common.NewAppError("MODEL_IO", "creating model directory", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".model-*.gob")
	if err != nil {
		return common.NewAppError("MODEL_IO", "creating temp model file", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(art); err != nil {
		tmp.Close()
		return common.NewAppError("MODEL_IO", "encoding model", err)
	}
	if err := tmp.Close(); err != nil {
		return common.NewAppError("MODEL_IO", "closing temp model file", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return common.NewAppError("MODEL_IO", "replacing model file", err)
	}
	p.logger.Info("ml.save.ok", "path", path)
	return nil
}

// Load replaces the current artifact with one from disk. An artifact whose
// column list does not match the live feature schema is rejected: scores
// from mismatched columns would be silently garbage.
func (p *Predictor) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return common.NewAppError("MODEL_IO", "opening model file", err)
	}
	defer f.Close()

	var art Artifact
	if err := gob.NewDecoder(f).Decode(&art); err != nil {
		return common.NewAppError("MODEL_IO", "decoding model", err)
	}
	if err := checkColumns(art.Columns); err != nil {
		return err
	}

	p.mu.Lock()
	p.art = &art
	p.mu.Unlock()
	p.logger.Info("ml.load.ok", "path", path, "version", art.Version)
	return nil
}

func checkColumns(cols []string) error {
	want := features.Columns()
	if len(cols) != len(want) {
		return common.NewAppError("MODEL_SCHEMA",
			fmt.Sprintf("model has %d features, schema has %d", len(cols), len(want)),
			common.ErrInvalidInput)
	}
	for i, c := range cols {
		if c != want[i] {
			return common.NewAppError("MODEL_SCHEMA",
				fmt.Sprintf("feature %d is %q, schema expects %q", i, c, want[i]),
				common.ErrInvalidInput)
		}
	}
	return nil
}
