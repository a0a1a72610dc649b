package repositories

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
	"github.com/yigit/uniconnect-fixtures/internal/app/relations"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/apperrors"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/idgen"
)

// EntityStore holds every fixture collection in memory, in insertion order.
// It is not safe for concurrent use.
type EntityStore struct {
	logger zerolog.Logger
	ids    *idgen.Allocator

	users           bucket[*models.User]
	events          bucket[*models.Event]
	societies       bucket[*models.Society]
	locations       bucket[*models.Location]
	privacySettings bucket[*models.PrivacySetting]
	friendRequests  bucket[*models.FriendRequest]

	buckets map[models.Kind]collection
}

// NewEntityStore creates an empty store
func NewEntityStore(logger zerolog.Logger) *EntityStore {
	s := &EntityStore{
		logger: logger.With().Str("component", "entity_store").Logger(),
		ids:    idgen.NewAllocator(),
	}
	s.buckets = map[models.Kind]collection{
		models.KindUser:          &s.users,
		models.KindEvent:         &s.events,
		models.KindSociety:       &s.societies,
		models.KindLocation:      &s.locations,
		models.KindPrivacy:       &s.privacySettings,
		models.KindFriendRequest: &s.friendRequests,
	}
	return s
}

func (s *EntityStore) bucket(kind models.Kind) (collection, error) {
	b, ok := s.buckets[kind]
	if !ok {
		return nil, apperrors.NewUnknownKindError(string(kind))
	}
	return b, nil
}

// Add assigns a fresh id to entity and appends it to its collection.
// Any id already set on entity is overwritten.
func (s *EntityStore) Add(entity models.Entity) (models.Entity, error) {
	if isNil(entity) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidEntity, "cannot add a nil entity")
	}
	kind := entity.Kind()
	b, err := s.bucket(kind)
	if err != nil {
		return nil, err
	}

	id := s.ids.Next(kind.Prefix())
	entity.SetID(id)
	if err := b.push(entity); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("kind", string(kind)).Str("id", id).Msg("Entity added")
	return entity, nil
}

// AddUser adds a user and returns it with its new id
func (s *EntityStore) AddUser(u *models.User) (*models.User, error) {
	return addTyped(s, u)
}

// AddEvent adds an event and returns it with its new id
func (s *EntityStore) AddEvent(e *models.Event) (*models.Event, error) {
	return addTyped(s, e)
}

// AddSociety adds a society and returns it with its new id
func (s *EntityStore) AddSociety(soc *models.Society) (*models.Society, error) {
	return addTyped(s, soc)
}

// AddLocation adds a location and returns it with its new id
func (s *EntityStore) AddLocation(l *models.Location) (*models.Location, error) {
	return addTyped(s, l)
}

// AddPrivacySetting adds privacy settings and returns them with their new id
func (s *EntityStore) AddPrivacySetting(p *models.PrivacySetting) (*models.PrivacySetting, error) {
	return addTyped(s, p)
}

// AddFriendRequest adds a friend request and returns it with its new id
func (s *EntityStore) AddFriendRequest(r *models.FriendRequest) (*models.FriendRequest, error) {
	return addTyped(s, r)
}

func addTyped[T models.Entity](s *EntityStore, e T) (T, error) {
	var zero T
	if _, err := s.Add(e); err != nil {
		return zero, err
	}
	return e, nil
}

// PeekID returns the id the next Add of kind will assign
func (s *EntityStore) PeekID(kind models.Kind) string {
	return s.ids.Peek(kind.Prefix())
}

// Get looks an entity up by id
func (s *EntityStore) Get(kind models.Kind, id string) (models.Entity, bool) {
	b, err := s.bucket(kind)
	if err != nil {
		return nil, false
	}
	if i := b.index(id); i >= 0 {
		return b.at(i), true
	}
	return nil, false
}

// Exists reports whether an entity of kind with id is stored
func (s *EntityStore) Exists(kind models.Kind, id string) bool {
	_, ok := s.Get(kind, id)
	return ok
}

// User returns the user with id
func (s *EntityStore) User(id string) (*models.User, bool) {
	return getTyped(s.users.items, id)
}

// Event returns the event with id
func (s *EntityStore) Event(id string) (*models.Event, bool) {
	return getTyped(s.events.items, id)
}

// Society returns the society with id
func (s *EntityStore) Society(id string) (*models.Society, bool) {
	return getTyped(s.societies.items, id)
}

// Location returns the location with id
func (s *EntityStore) Location(id string) (*models.Location, bool) {
	return getTyped(s.locations.items, id)
}

// PrivacyFor returns the first privacy settings record owned by userID
func (s *EntityStore) PrivacyFor(userID string) (*models.PrivacySetting, bool) {
	for _, p := range s.privacySettings.items {
		if p.UserID == userID {
			return p, true
		}
	}
	return nil, false
}

func getTyped[T models.Entity](items []T, id string) (T, bool) {
	for _, item := range items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// All returns the entities of kind in insertion order. The entities are the
// stored values, so changes made through them are visible to the store.
func (s *EntityStore) All(kind models.Kind) []models.Entity {
	b, err := s.bucket(kind)
	if err != nil {
		return nil
	}
	out := make([]models.Entity, b.len())
	for i := range out {
		out[i] = b.at(i)
	}
	return out
}

// Users returns the live user collection
func (s *EntityStore) Users() []*models.User { return s.users.items }

// Events returns the live event collection
func (s *EntityStore) Events() []*models.Event { return s.events.items }

// Societies returns the live society collection
func (s *EntityStore) Societies() []*models.Society { return s.societies.items }

// Locations returns the live location collection
func (s *EntityStore) Locations() []*models.Location { return s.locations.items }

// PrivacySettings returns the live privacy settings collection
func (s *EntityStore) PrivacySettings() []*models.PrivacySetting { return s.privacySettings.items }

// FriendRequests returns the live friend request collection
func (s *EntityStore) FriendRequests() []*models.FriendRequest { return s.friendRequests.items }

// DisplayName returns a human label for the referenced entity, or "<id> (not found)"
func (s *EntityStore) DisplayName(kind models.Kind, id string) string {
	e, ok := s.Get(kind, id)
	if !ok {
		return fmt.Sprintf("%s (not found)", id)
	}
	switch v := e.(type) {
	case *models.Location:
		return v.DisplayLabel()
	case *models.PrivacySetting, *models.FriendRequest:
		return e.GetID()
	default:
		return e.Label()
	}
}

// Delete removes an entity and rewrites or removes whatever referenced it,
// following the OnDelete policy of each relation pointing at its kind
func (s *EntityStore) Delete(kind models.Kind, id string) error {
	b, err := s.bucket(kind)
	if err != nil {
		return err
	}
	i := b.index(id)
	if i < 0 {
		return apperrors.NewResourceNotFoundError(string(kind), id)
	}

	target := b.removeAt(i)
	s.logger.Debug().Str("kind", string(kind)).Str("id", id).Msg("Entity deleted")
	s.cascade(target)
	return nil
}

func (s *EntityStore) cascade(target models.Entity) {
	for _, rel := range relations.To(target.Kind()) {
		owners := s.buckets[rel.From]

		if rel.OnDelete == relations.DeleteOwner {
			removed := owners.removeWhere(func(e models.Entity) bool {
				return rel.References(e, target.GetID())
			})
			for _, e := range removed {
				s.logger.Debug().
					Str("kind", string(e.Kind())).
					Str("id", e.GetID()).
					Str("via", rel.Field).
					Msg("Cascade delete")
				s.cascade(e)
			}
			continue
		}

		changed := 0
		for i := 0; i < owners.len(); i++ {
			if rel.Detach(owners.at(i), target) {
				changed++
			}
		}
		if changed > 0 {
			s.logger.Debug().
				Str("target", target.GetID()).
				Str("field", string(rel.From)+"."+rel.Field).
				Int("changed", changed).
				Msg("Cascade detach")
		}
	}
}

// Replace swaps whole collections in one step. Every supplied collection is
// checked before any is applied, so on error the store is unchanged.
// Kinds absent from sets keep their current contents.
func (s *EntityStore) Replace(sets map[models.Kind][]models.Entity) error {
	for kind := range sets {
		if !kind.Valid() {
			return apperrors.NewUnknownKindError(string(kind))
		}
	}

	commits := make([]func(), 0, len(sets))
	for _, kind := range models.Kinds {
		items, ok := sets[kind]
		if !ok {
			continue
		}
		commit, err := s.buckets[kind].stage(items)
		if err != nil {
			return fmt.Errorf("replace %s: %w", kind.Collection(), err)
		}
		commits = append(commits, commit)
	}

	for _, commit := range commits {
		commit()
	}
	for _, kind := range models.Kinds {
		if _, ok := sets[kind]; ok {
			s.ids.Seed(kind.Prefix(), s.buckets[kind].ids())
			s.logger.Debug().Str("kind", string(kind)).Int("count", len(sets[kind])).Msg("Collection replaced")
		}
	}
	return nil
}

// Counts returns the number of stored entities per kind
func (s *EntityStore) Counts() map[models.Kind]int {
	out := make(map[models.Kind]int, len(s.buckets))
	for kind, b := range s.buckets {
		out[kind] = b.len()
	}
	return out
}

// IDs returns the ids of kind in insertion order
func (s *EntityStore) IDs(kind models.Kind) []string {
	b, err := s.bucket(kind)
	if err != nil {
		return nil
	}
	return b.ids()
}

func isNil(e models.Entity) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
