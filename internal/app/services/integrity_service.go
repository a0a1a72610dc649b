package services

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
	"github.com/yigit/uniconnect-fixtures/internal/app/relations"
	"github.com/yigit/uniconnect-fixtures/internal/app/repositories"
)

// IntegrityService scans the store for dangling references and one-sided friendships
type IntegrityService interface {
	CheckIntegrity() []string
}

type integrityServiceImpl struct {
	store  *repositories.EntityStore
	logger zerolog.Logger
}

// NewIntegrityService creates a new integrity service instance
func NewIntegrityService(store *repositories.EntityStore, logger zerolog.Logger) IntegrityService {
	return &integrityServiceImpl{
		store:  store,
		logger: logger,
	}
}

// CheckIntegrity walks every relation in table order and returns one line per
// unresolved id. A one-sided friendship yields a single asymmetric issue.
// The store is not modified.
func (s *integrityServiceImpl) CheckIntegrity() []string {
	issues := []string{}
	for _, kind := range relations.ScanOrder() {
		rels := relations.From(kind)
		for _, owner := range s.store.All(kind) {
			for _, rel := range rels {
				issues = append(issues, s.checkRelation(owner, rel)...)
			}
		}
	}

	s.logger.Debug().Int("issues", len(issues)).Msg("Integrity check finished")
	return issues
}

func (s *integrityServiceImpl) checkRelation(owner models.Entity, rel relations.Relation) []string {
	var issues []string
	asymmetric := oneSided(owner, rel)
	for _, id := range rel.Refs(owner) {
		target, ok := s.store.Get(rel.To, id)
		if !ok {
			issues = append(issues, fmt.Sprintf(`%s "%s" has invalid %s: %s`, owner.Kind().Title(), subjectName(owner), rel.Noun, id))
			continue
		}
		if msg, ok := asymmetric(target); ok {
			issues = append(issues, msg)
		}
	}
	return issues
}

// oneSided returns a check that reports a symmetric reference the target does
// not return, once per target even when the owner lists it more than once
func oneSided(owner models.Entity, rel relations.Relation) func(target models.Entity) (string, bool) {
	seen := map[string]struct{}{}
	return func(target models.Entity) (string, bool) {
		if !rel.Symmetric || rel.References(target, owner.GetID()) {
			return "", false
		}
		if _, dup := seen[target.GetID()]; dup {
			return "", false
		}
		seen[target.GetID()] = struct{}{}
		return asymmetricMessage(owner, target), true
	}
}

func asymmetricMessage(owner, target models.Entity) string {
	return fmt.Sprintf(`Asymmetric friendship: "%s" lists "%s" as friend but not vice versa`, owner.Label(), target.Label())
}

// subjectName is the label integrity messages use; records without a name of their own use their id
func subjectName(e models.Entity) string {
	switch e.Kind() {
	case models.KindPrivacy, models.KindFriendRequest:
		return e.GetID()
	default:
		return e.Label()
	}
}
