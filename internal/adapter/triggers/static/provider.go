// Package statictriggers loads the trigger catalog from a JSON file on disk,
// falling back to the built-in catalog when no path is configured.
package statictriggers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"npcmind/internal/domain/emotion"
)

var ErrInvalidCatalogPath = errors.New("invalid trigger catalog filepath")

type Provider struct {
	// Path points at the catalog JSON file. Empty means built-in defaults.
	Path string
}

// triggerFile is the on-disk shape: conditions keep the wire operator names
// and deltas are keyed by dimension name.
type triggerFile struct {
	Triggers []struct {
		Event            string                    `json:"event"`
		Conditions       map[string]conditionJSON  `json:"conditions,omitempty"`
		Deltas           map[emotion.Dimension]int `json:"deltas"`
		ReputationImpact int                       `json:"reputation_impact"`
		Description      string                    `json:"description,omitempty"`
	} `json:"triggers"`
}

type conditionJSON struct {
	Op    string `json:"op,omitempty"`
	Value any    `json:"value"`
}

func (p Provider) Catalog(_ context.Context) ([]emotion.Trigger, error) {
	if p.Path == "" {
		return emotion.DefaultCatalog(), nil
	}
	path, err := securePath(p.Path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trigger catalog: %w", err)
	}

	var file triggerFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse trigger catalog: %w", err)
	}

	out := make([]emotion.Trigger, 0, len(file.Triggers))
	for i, t := range file.Triggers {
		if t.Event == "" {
			return nil, fmt.Errorf("trigger %d: missing event", i)
		}
		if len(t.Deltas) == 0 {
			return nil, fmt.Errorf("trigger %d (%s): no deltas", i, t.Event)
		}
		conditions := make(map[string]emotion.Condition, len(t.Conditions))
		for key, c := range t.Conditions {
			op, err := parseOp(c.Op)
			if err != nil {
				return nil, fmt.Errorf("trigger %d (%s): condition %q: %w", i, t.Event, key, err)
			}
			conditions[key] = emotion.Condition{Op: op, Value: c.Value}
		}
		out = append(out, emotion.Trigger{
			Event:            t.Event,
			Conditions:       conditions,
			Deltas:           t.Deltas,
			ReputationImpact: t.ReputationImpact,
			Description:      t.Description,
		})
	}
	return out, nil
}

func parseOp(s string) (emotion.Op, error) {
	switch s {
	case "", string(emotion.OpEquals):
		return emotion.OpEquals, nil
	case string(emotion.OpGreaterThan):
		return emotion.OpGreaterThan, nil
	case string(emotion.OpLessThan):
		return emotion.OpLessThan, nil
	default:
		return "", fmt.Errorf("unknown operator %q", s)
	}
}

func securePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrInvalidCatalogPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}
