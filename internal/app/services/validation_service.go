package services

import (
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
	"github.com/yigit/uniconnect-fixtures/internal/app/models/dto"
	"github.com/yigit/uniconnect-fixtures/internal/app/relations"
	"github.com/yigit/uniconnect-fixtures/internal/app/repositories"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/validation"
)

// ValidationService runs the per-kind rule tables and the relationship pass
type ValidationService interface {
	ValidateAll() *dto.ValidationReport
}

type validationServiceImpl struct {
	store  *repositories.EntityStore
	campus validation.Bounds
	logger zerolog.Logger
}

// NewValidationService creates a validator; campus bounds drive the location sub-range warning
func NewValidationService(store *repositories.EntityStore, campus validation.Bounds, logger zerolog.Logger) ValidationService {
	return &validationServiceImpl{
		store:  store,
		campus: campus,
		logger: logger,
	}
}

// validationRun holds lookups computed once per ValidateAll call
type validationRun struct {
	store        *repositories.EntityStore
	campus       validation.Bounds
	emails       map[string]int
	societyNames map[string]int
	locationKeys map[string]int
	ids          map[models.Kind]map[string]int
}

func (s *validationServiceImpl) newRun() *validationRun {
	run := &validationRun{
		store:        s.store,
		campus:       s.campus,
		emails:       map[string]int{},
		societyNames: map[string]int{},
		locationKeys: map[string]int{},
		ids:          map[models.Kind]map[string]int{},
	}
	for _, u := range s.store.Users() {
		if u.Email != "" {
			run.emails[u.Email]++
		}
	}
	for _, soc := range s.store.Societies() {
		if soc.Name != "" {
			run.societyNames[soc.Name]++
		}
	}
	for _, l := range s.store.Locations() {
		run.locationKeys[l.Key()]++
	}
	for _, kind := range models.Kinds {
		counts := map[string]int{}
		for _, id := range s.store.IDs(kind) {
			counts[id]++
		}
		run.ids[kind] = counts
	}
	return run
}

// ValidateAll checks every entity and every cross-entity relationship.
// It never fails; an empty store yields a valid report.
func (s *validationServiceImpl) ValidateAll() *dto.ValidationReport {
	kinds := make([]string, len(ruleTable))
	for i, r := range ruleTable {
		kinds[i] = string(r.kind)
	}
	report := dto.NewValidationReport(kinds)
	run := s.newRun()

	for _, rules := range ruleTable {
		var stats dto.KindStats
		for _, e := range s.store.All(rules.kind) {
			f := rules.apply(run, e)
			stats.Total++
			switch {
			case len(f.errors) > 0:
				stats.WithErrors++
			case len(f.warnings) > 0:
				stats.WithWarnings++
			default:
				stats.Valid++
			}
			report.Errors = append(report.Errors, f.errors...)
			report.Warnings = append(report.Warnings, f.warnings...)
		}
		report.Statistics[string(rules.kind)] = stats
	}

	rel := s.relationshipPass()
	report.Errors = append(report.Errors, rel.errors...)
	report.Warnings = append(report.Warnings, rel.warnings...)
	report.Valid = len(report.Errors) == 0

	s.logger.Debug().
		Bool("valid", report.Valid).
		Int("errors", len(report.Errors)).
		Int("warnings", len(report.Warnings)).
		Msg("Validation finished")
	return report
}

// relationshipPass re-resolves references from users, events and societies,
// then checks privacy coverage. It does not depend on the per-kind results.
func (s *validationServiceImpl) relationshipPass() findings {
	var f findings

	for _, kind := range []models.Kind{models.KindUser, models.KindEvent, models.KindSociety} {
		rels := relations.From(kind)
		for _, owner := range s.store.All(kind) {
			for _, rel := range rels {
				asymmetric := oneSided(owner, rel)
				for _, id := range rel.Refs(owner) {
					target, ok := s.store.Get(rel.To, id)
					if !ok {
						f.errors = append(f.errors, referenceMessage(rel, owner.Label(), id))
						continue
					}
					if msg, ok := asymmetric(target); ok {
						f.errors = append(f.errors, msg)
					}
				}
			}
		}
	}

	s.checkPrivacyCoverage(&f)
	return f
}

func (s *validationServiceImpl) checkPrivacyCoverage(f *findings) {
	perUser := map[string]int{}
	for _, p := range s.store.PrivacySettings() {
		perUser[p.UserID]++
	}

	for _, u := range s.store.Users() {
		switch n := perUser[u.ID]; {
		case n == 0:
			f.warnf(`User "%s": No privacy settings found`, u.Label())
		case n > 1:
			f.warnf(`User "%s": %d privacy settings found, expected one`, u.Label(), n)
		}
	}

	for _, p := range s.store.PrivacySettings() {
		if !s.store.Exists(models.KindUser, p.UserID) {
			f.errorf(`Privacy settings for "%s": User not found`, p.UserID)
		}
	}
}
