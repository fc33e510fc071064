package file

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// collection stores one JSON document per record under a named
// directory. It is the shared storage primitive for every file-based
// repository.
type collection[T any] struct {
	dir  string
	name string
}

func newCollection[T any](root, name string) collection[T] {
	return collection[T]{
		dir:  filepath.Join(root, name),
		name: name,
	}
}

// load reads one record. A missing file returns (nil, nil); the
// repository decides which not-found sentinel applies.
func (c collection[T]) load(id string) (*T, error) {
	filePath := filepath.Clean(path.Join(c.dir, id+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read %s %s: %w", c.name, id, err)
	}

	var record T

	err = json.Unmarshal(body, &record)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s %s: %w", c.name, id, err)
	}

	return &record, nil
}

// loadAll reads every record in the collection.
func (c collection[T]) loadAll() ([]*T, error) {
	root := os.DirFS(c.dir)

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files: %w", c.name, err)
	}

	records := make([]*T, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		id := file[:len(file)-5] // strip .json

		record, err := c.load(id)
		if err != nil {
			return nil, err
		}

		if record != nil {
			records = append(records, record)
		}
	}

	return records, nil
}

// store writes one record, creating the collection directory on first
// use.
func (c collection[T]) store(id string, record *T) error {
	err := os.MkdirAll(c.dir, 0750)
	if err != nil {
		return fmt.Errorf("failed to create %s directory: %w", c.name, err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s %s: %w", c.name, id, err)
	}

	return os.WriteFile(path.Join(c.dir, id+".json"), data, 0600)
}

// remove deletes one record. Removing a missing record is a no-op.
func (c collection[T]) remove(id string) error {
	err := os.Remove(path.Join(c.dir, id+".json"))
	if err != nil && os.IsNotExist(err) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", c.name, id, err)
	}

	return nil
}

// exists reports whether a record file is present.
func (c collection[T]) exists(id string) bool {
	_, err := os.Stat(path.Join(c.dir, id+".json"))

	return err == nil
}
