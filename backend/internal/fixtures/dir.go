// Package fixtures reads seed records from JSON files on disk.
package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/meetiosdev/topics-api/shared/domain"
	"github.com/meetiosdev/topics-api/shared/logger"
)

// Dir loads every *.json file of a directory in lexical order.
// Each file is a bare array of topic records or a {"records": [...]} page.
type Dir struct {
	path string
}

func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Load merges all files into one set. An empty directory yields an empty, non-nil set.
func (d *Dir) Load(ctx context.Context) (domain.FixtureSet, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures dir %s: %w", d.path, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	set := make(domain.FixtureSet, 0)
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := readFile(filepath.Join(d.path, name))
		if err != nil {
			return nil, err
		}
		topics, posts := records.Counts()
		logger.Log.Debug("loaded fixture file", "file", name, "topics", topics, "posts", posts)
		set = append(set, records...)
	}

	if len(files) == 0 {
		logger.Log.Warn("no fixture files found", "dir", d.path)
	}
	return set, nil
}

func readFile(path string) (domain.FixtureSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture file: %w", err)
	}
	var records domain.FixtureSet
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse fixture file %s: %w", filepath.Base(path), err)
	}
	return records, nil
}
