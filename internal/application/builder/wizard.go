package builder

import "slices"

type Step string

const (
	StepTemplate  Step = "template"
	StepContent   Step = "content"
	StepCustomize Step = "customize"
	StepPublish   Step = "publish"
)

var steps = []Step{StepTemplate, StepContent, StepCustomize, StepPublish}

type ContentSection string

const (
	SectionPersonal   ContentSection = "personal"
	SectionProjects   ContentSection = "projects"
	SectionSkills     ContentSection = "skills"
	SectionExperience ContentSection = "experience"
	SectionEducation  ContentSection = "education"
)

var contentSections = []ContentSection{SectionPersonal, SectionProjects, SectionSkills, SectionExperience, SectionEducation}

func Steps() []Step {
	return slices.Clone(steps)
}

func ContentSections() []ContentSection {
	return slices.Clone(contentSections)
}

// Wizard is the outer step machine plus the inner content navigator. Moves
// are never gated on completeness; users may look ahead at export options
// before finishing content.
type Wizard struct {
	step    Step
	section ContentSection
}

func NewWizard() Wizard {
	return Wizard{step: StepTemplate, section: SectionPersonal}
}

func (w Wizard) Step() Step {
	return w.step
}

func (w Wizard) Section() ContentSection {
	return w.section
}

// SectionActive reports whether the navigator matters for the current step.
func (w Wizard) SectionActive() bool {
	return w.step == StepContent
}

func (w Wizard) index() int {
	return slices.Index(steps, w.step)
}

// Next advances one step; it is a no-op on the last step.
func (w *Wizard) Next() bool {
	i := w.index()
	if i >= len(steps)-1 {
		return false
	}
	w.step = steps[i+1]
	return true
}

// Prev retreats one step; it is a no-op on the first step.
func (w *Wizard) Prev() bool {
	i := w.index()
	if i <= 0 {
		return false
	}
	w.step = steps[i-1]
	return true
}

func (w *Wizard) GoTo(s Step) error {
	if !slices.Contains(steps, s) {
		return invalidMove("step", string(s))
	}
	w.step = s
	return nil
}

func (w *Wizard) Select(s ContentSection) error {
	if !slices.Contains(contentSections, s) {
		return invalidMove("section", string(s))
	}
	w.section = s
	return nil
}

// TemplateRequired is informational: the step normally expects a template.
func TemplateRequired(s Step, hasTemplate bool) bool {
	return s != StepTemplate && !hasTemplate
}
