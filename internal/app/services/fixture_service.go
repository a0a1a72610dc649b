package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
	"github.com/yigit/uniconnect-fixtures/internal/app/models/dto"
	"github.com/yigit/uniconnect-fixtures/internal/app/repositories"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/apperrors"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/filestorage"
)

// legacyEventsDocument is the historical name of the events file
const legacyEventsDocument = "events_v2"

// documentKinds maps external document names to the collection they fill
var documentKinds = map[string]models.Kind{
	"users":              models.KindUser,
	"events":             models.KindEvent,
	legacyEventsDocument: models.KindEvent,
	"societies":          models.KindSociety,
	"locations":          models.KindLocation,
	"privacy_settings":   models.KindPrivacy,
	"friend_requests":    models.KindFriendRequest,
}

// snapshotOrder is the order snapshot members are applied in; the legacy events
// document follows the canonical one so it wins when both are present
var snapshotOrder = []string{
	"users", "events", legacyEventsDocument, "societies", "locations", "privacy_settings", "friend_requests",
}

// ExportOptions controls export file naming and layout
type ExportOptions struct {
	SnapshotFilename string
	EventsComment    string
	Indent           string
}

// FixtureService translates between fixture documents and the store
type FixtureService interface {
	Import(docs []filestorage.Document) (*dto.ImportResult, error)
	ImportFrom(ctx context.Context, src filestorage.DocumentSource) (*dto.ImportResult, error)
	ImportSnapshot(data []byte) (*dto.ImportResult, error)
	ExportSnapshot() *dto.ExportFile
	ExportKind(kind models.Kind) (*dto.ExportFile, error)
	Marshal(file *dto.ExportFile) ([]byte, error)
}

type fixtureServiceImpl struct {
	store  *repositories.EntityStore
	opts   ExportOptions
	logger zerolog.Logger
}

// NewFixtureService creates a new import/export adapter
func NewFixtureService(store *repositories.EntityStore, opts ExportOptions, logger zerolog.Logger) FixtureService {
	if opts.SnapshotFilename == "" {
		opts.SnapshotFilename = "uniconnect-demo-data.json"
	}
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	return &fixtureServiceImpl{
		store:  store,
		opts:   opts,
		logger: logger,
	}
}

// Import decodes every document before touching the store. A document that
// fails to decode aborts the batch and is named in the returned error.
// Decoded collections are then applied together; later documents for the
// same collection win, and collections not mentioned are left alone.
func (s *fixtureServiceImpl) Import(docs []filestorage.Document) (*dto.ImportResult, error) {
	sets := map[models.Kind][]models.Entity{}
	result := &dto.ImportResult{Collections: map[string]int{}}

	for _, doc := range docs {
		kind, ok := documentKinds[doc.Name]
		if !ok {
			s.logger.Warn().Str("document", doc.Name).Msg("Skipping unrecognised document")
			result.Skipped = append(result.Skipped, doc.Name)
			continue
		}

		entities, err := decodeCollection(kind, doc.Data)
		if err != nil {
			s.logger.Error().Err(err).Str("document", doc.Name).Msg("Failed to decode document")
			return nil, apperrors.NewIngestionError(doc.Name, err)
		}
		if doc.Name == legacyEventsDocument {
			s.logger.Debug().Msg("Loaded events from legacy document name")
		}
		sets[kind] = entities
	}

	if err := s.store.Replace(sets); err != nil {
		return nil, err
	}

	for kind, entities := range sets {
		result.Collections[kind.Collection()] = len(entities)
	}
	s.logger.Info().Interface("collections", result.Collections).Strs("skipped", result.Skipped).Msg("Fixture documents imported")
	return result, nil
}

// ImportFrom reads every document src offers and imports them as one batch
func (s *fixtureServiceImpl) ImportFrom(ctx context.Context, src filestorage.DocumentSource) (*dto.ImportResult, error) {
	docs, err := src.ReadDocuments(ctx)
	if err != nil {
		return nil, err
	}
	return s.Import(docs)
}

// ImportSnapshot loads a combined export file, treating each member as a document
func (s *fixtureServiceImpl) ImportSnapshot(data []byte) (*dto.ImportResult, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, apperrors.NewIngestionError(s.opts.SnapshotFilename, err)
	}

	docs := make([]filestorage.Document, 0, len(members))
	for _, name := range snapshotOrder {
		if raw, ok := members[name]; ok {
			docs = append(docs, filestorage.Document{Name: name, Data: raw})
			delete(members, name)
		}
	}
	rest := make([]string, 0, len(members))
	for name := range members {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	for _, name := range rest {
		docs = append(docs, filestorage.Document{Name: name, Data: members[name]})
	}

	return s.Import(docs)
}

// decodeCollection accepts a bare array, or for events also an object with an "events" member
func decodeCollection(kind models.Kind, data []byte) ([]models.Entity, error) {
	data = bytes.TrimSpace(data)
	if kind == models.KindEvent && len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Events *json.RawMessage `json:"events"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, err
		}
		if wrapped.Events == nil {
			return nil, fmt.Errorf(`object has no "events" member`)
		}
		data = *wrapped.Events
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	out := make([]models.Entity, 0, len(items))
	for i, raw := range items {
		e, err := models.NewEntity(kind)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, e); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// ExportSnapshot returns all six collections under their canonical names
func (s *fixtureServiceImpl) ExportSnapshot() *dto.ExportFile {
	snapshot := dto.Snapshot{
		Users:           nonNil(s.store.Users()),
		Events:          nonNil(s.store.Events()),
		Societies:       nonNil(s.store.Societies()),
		Locations:       nonNil(s.store.Locations()),
		PrivacySettings: nonNil(s.store.PrivacySettings()),
		FriendRequests:  nonNil(s.store.FriendRequests()),
	}
	return &dto.ExportFile{Filename: s.opts.SnapshotFilename, Content: snapshot}
}

// ExportKind returns one collection. Events are wrapped with a provenance
// comment; every other kind is a bare array.
func (s *fixtureServiceImpl) ExportKind(kind models.Kind) (*dto.ExportFile, error) {
	if !kind.Valid() {
		return nil, apperrors.NewUnknownKindError(string(kind))
	}
	filename := kind.Collection() + ".json"

	if kind == models.KindEvent {
		return &dto.ExportFile{
			Filename: filename,
			Content: dto.EventsDocument{
				Comment: s.opts.EventsComment,
				Events:  nonNil(s.store.Events()),
			},
		}, nil
	}
	entities := s.store.All(kind)
	if entities == nil {
		entities = []models.Entity{}
	}
	return &dto.ExportFile{Filename: filename, Content: entities}, nil
}

// Marshal serializes an export file as indented JSON
func (s *fixtureServiceImpl) Marshal(file *dto.ExportFile) ([]byte, error) {
	data, err := json.MarshalIndent(file.Content, "", s.opts.Indent)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", file.Filename, err)
	}
	return data, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// IsCollectionDocument reports whether name is a document name Import understands
func IsCollectionDocument(name string) bool {
	_, ok := documentKinds[name]
	return ok
}
