package storage

import (
	"bytes"
	"errors"
	"os"

	json "github.com/goccy/go-json"
)

var errEmptyDocument = errors.New("document is empty")

// WriteFileAtomic replaces path with data via a synced temp file and rename,
// so readers see either the old or the new content, never a partial write.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

// MarshalDocument renders v the way every collection file is stored:
// two-space indented with a trailing newline.
func MarshalDocument(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func decodeArray(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errEmptyDocument
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, errors.New("document is null")
	}
	return items, nil
}

// checkObject reports whether data is a well-formed JSON object. Field types
// are not checked here.
func checkObject(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errEmptyDocument
	}
	if data[0] != '{' {
		return errors.New("document is not an object")
	}
	if !json.Valid(data) {
		return errors.New("document is not valid JSON")
	}
	return nil
}
