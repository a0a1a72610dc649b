package filestorage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/yigit/uniconnect-fixtures/internal/pkg/logger"
)

const documentExt = ".json"

// LocalStorage reads fixture documents from, and writes exports to, a local directory.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
// The directory is created when create is true; otherwise it must already exist.
func NewLocalStorage(basePath string, create bool) (*LocalStorage, error) {
	if create {
		if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
			return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
		}
	} else if info, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("storage directory %s: %w", basePath, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("storage path %s is not a directory", basePath)
	}

	return &LocalStorage{basePath: basePath}, nil
}

// DocumentName strips directories and the .json extension from a file path
func DocumentName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), documentExt)
}

// ReadDocuments loads every *.json file in the directory, ordered by file name.
// "events.json" therefore sorts before "events_v2.json".
func (ls *LocalStorage) ReadDocuments(ctx context.Context) ([]Document, error) {
	matches, err := filepath.Glob(filepath.Join(ls.basePath, "*"+documentExt))
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	sort.Strings(matches)

	docs := make([]Document, 0, len(matches))
	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := ReadDocument(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	logger.Debug().Str("path", ls.basePath).Int("documents", len(docs)).Msg("Documents read")
	return docs, nil
}

// ReadDocument loads a single file as a Document
func ReadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Document{Name: DocumentName(path), Data: data}, nil
}

// SaveFile writes data through a uniquely named temp file and renames it into
// place, so readers never see a partial export
func (ls *LocalStorage) SaveFile(filename string, data []byte) (string, error) {
	dstPath := ls.GetFullPath(filename)
	if dstPath == "" {
		return "", fmt.Errorf("invalid file name: %q", filename)
	}
	name := filepath.Base(dstPath)
	tmpPath := filepath.Join(ls.basePath, "."+uuid.New().String()+".tmp")

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", tmpPath).Msg("Failed to write temp file")
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, dstPath); err != nil {
		_ = os.Remove(tmpPath)
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to move export into place")
		return "", fmt.Errorf("failed to save %s: %w", name, err)
	}

	logger.Info().Str("path", dstPath).Int("bytes", len(data)).Msg("File saved successfully")
	return dstPath, nil
}

// GetFullPath returns the path a file name is stored at, or "" for names that
// do not denote a file. Directory parts of filename are dropped.
func (ls *LocalStorage) GetFullPath(filename string) string {
	name := filepath.Base(filename)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	return filepath.Join(ls.basePath, name)
}
