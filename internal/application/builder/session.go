package builder

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/khoahotran/portfolio-builder/internal/application/autosave"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

// Session is one user's editing session: the canonical model, the wizard
// position and the autosave controller that persists the model.
//
// Lock order is s.mu then the controller's own lock. SaveNow and Close are
// called without s.mu held because the controller snapshots through it.
type Session struct {
	identity portfolio.Identity

	mu     sync.RWMutex
	model  *portfolio.Portfolio
	wizard Wizard
	closed bool

	autosave *autosave.Controller
}

func NewSession(id portfolio.Identity, model *portfolio.Portfolio, store portfolio.DocumentStore, opts autosave.Options, log logger.Logger) *Session {
	s := &Session{
		identity: id,
		model:    model,
		wizard:   NewWizard(),
	}
	s.autosave = autosave.NewController(store, id.UID, s.Snapshot, opts, log)
	return s
}

func (s *Session) Identity() portfolio.Identity {
	return s.identity
}

// Snapshot returns a deep copy of the current model.
func (s *Session) Snapshot() *portfolio.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model.Clone()
}

// mutate applies fn and schedules a save when it reports a change. A closed
// session rejects every mutation, since nothing would persist it.
func (s *Session) mutate(fn func(p *portfolio.Portfolio) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	changed, err := fn(s.model)
	if err != nil {
		return err
	}
	if changed {
		s.autosave.MarkDirty()
	}
	return nil
}

func (s *Session) SetField(path portfolio.FieldPath, value string) error {
	return s.mutate(func(p *portfolio.Portfolio) (bool, error) {
		return true, p.SetField(path, value)
	})
}

func (s *Session) SetFields(updates []portfolio.FieldUpdate) error {
	return s.mutate(func(p *portfolio.Portfolio) (bool, error) {
		return true, p.SetFields(updates)
	})
}

func (s *Session) SelectTemplate(id string) error {
	return s.mutate(func(p *portfolio.Portfolio) (bool, error) {
		return true, p.SelectTemplate(id)
	})
}

func (s *Session) ApplyPreset(name string) error {
	return s.mutate(func(p *portfolio.Portfolio) (bool, error) {
		return true, p.ApplyPreset(name)
	})
}

func (s *Session) ReplaceSection(sec portfolio.Section, data json.RawMessage) error {
	return s.mutate(func(p *portfolio.Portfolio) (bool, error) {
		return true, p.ReplaceSection(sec, data)
	})
}

func (s *Session) AddProject(d portfolio.ProjectDraft) (portfolio.Project, error) {
	var out portfolio.Project
	err := s.mutate(func(p *portfolio.Portfolio) (bool, error) {
		var err error
		out, err = p.AddProject(d)
		return true, err
	})
	return out, err
}

func (s *Session) AddExperience(d portfolio.ExperienceDraft) (portfolio.Experience, error) {
	var out portfolio.Experience
	err := s.mutate(func(p *portfolio.Portfolio) (bool, error) {
		var err error
		out, err = p.AddExperience(d)
		return true, err
	})
	return out, err
}

func (s *Session) AddEducation(d portfolio.EducationDraft) (portfolio.Education, error) {
	var out portfolio.Education
	err := s.mutate(func(p *portfolio.Portfolio) (bool, error) {
		var err error
		out, err = p.AddEducation(d)
		return true, err
	})
	return out, err
}

func (s *Session) RemoveItem(c portfolio.Collection, id portfolio.ID) bool {
	var removed bool
	_ = s.mutate(func(p *portfolio.Portfolio) (bool, error) {
		removed = p.RemoveItem(c, id)
		return removed, nil
	})
	return removed
}

func (s *Session) SetProjectImage(id portfolio.ID, url string) bool {
	var found bool
	_ = s.mutate(func(p *portfolio.Portfolio) (bool, error) {
		found = p.SetProjectImage(id, url)
		return found, nil
	})
	return found
}

func (s *Session) AddSkill(name string) bool {
	var added bool
	_ = s.mutate(func(p *portfolio.Portfolio) (bool, error) {
		added = p.AddSkill(name)
		return added, nil
	})
	return added
}

func (s *Session) RemoveSkill(name string) bool {
	var removed bool
	_ = s.mutate(func(p *portfolio.Portfolio) (bool, error) {
		removed = p.RemoveSkill(name)
		return removed, nil
	})
	return removed
}

func (s *Session) Progress() portfolio.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return portfolio.SectionProgress(s.model)
}

// WizardState is what the builder UI needs to draw its step indicators.
type WizardState struct {
	Step             Step               `json:"step"`
	Steps            []Step             `json:"steps"`
	Section          ContentSection     `json:"section"`
	Sections         []ContentSection   `json:"sections"`
	SectionActive    bool               `json:"sectionActive"`
	TemplateRequired bool               `json:"templateRequired"`
	Progress         portfolio.Progress `json:"progress"`
	Percent          int                `json:"percent"`
}

func (s *Session) WizardState() WizardState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pr := portfolio.SectionProgress(s.model)
	return WizardState{
		Step:             s.wizard.Step(),
		Steps:            Steps(),
		Section:          s.wizard.Section(),
		Sections:         ContentSections(),
		SectionActive:    s.wizard.SectionActive(),
		TemplateRequired: TemplateRequired(s.wizard.Step(), s.model.Template != nil),
		Progress:         pr,
		Percent:          pr.Percent(),
	}
}

func (s *Session) moveWizard(fn func(w *Wizard) error) (WizardState, error) {
	s.mu.Lock()
	err := fn(&s.wizard)
	s.mu.Unlock()
	return s.WizardState(), err
}

func (s *Session) Next() WizardState {
	st, _ := s.moveWizard(func(w *Wizard) error { w.Next(); return nil })
	return st
}

func (s *Session) Prev() WizardState {
	st, _ := s.moveWizard(func(w *Wizard) error { w.Prev(); return nil })
	return st
}

func (s *Session) GoTo(step Step) (WizardState, error) {
	return s.moveWizard(func(w *Wizard) error { return w.GoTo(step) })
}

func (s *Session) SelectSection(sec ContentSection) (WizardState, error) {
	return s.moveWizard(func(w *Wizard) error { return w.Select(sec) })
}

// SaveNow writes immediately, e.g. before the client opens the preview page
// that reads the stored document.
func (s *Session) SaveNow(ctx context.Context) error {
	return s.autosave.SaveNow(ctx)
}

func (s *Session) SaveState() autosave.State {
	return s.autosave.State()
}

func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.autosave.Close(ctx)
}
