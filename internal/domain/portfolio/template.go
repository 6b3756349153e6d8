package portfolio

import "slices"

// TemplateRef is the descriptor stored with the portfolio once chosen.
type TemplateRef struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Colors      []string `json:"colors"`
	Features    []string `json:"features"`
}

func (t TemplateRef) clone() TemplateRef {
	t.Colors = slices.Clone(t.Colors)
	t.Features = slices.Clone(t.Features)
	return t
}

var catalog = []TemplateRef{
	{
		ID: "modern-developer", Name: "Modern Developer", Category: "Developer",
		Description: "Clean and modern design perfect for developers",
		Colors:      []string{"#0050ff", "#00d4aa", "#ff6b6b"},
		Features:    []string{"Dark/Light Mode", "Code Syntax Highlighting", "Project Gallery"},
	},
	{
		ID: "creative-artist", Name: "Creative Artist", Category: "Creative",
		Description: "Artistic layout for creative professionals",
		Colors:      []string{"#ff6b6b", "#4ecdc4", "#45b7d1"},
		Features:    []string{"Image Gallery", "Video Showcase", "Color Customization"},
	},
	{
		ID: "business-professional", Name: "Business Professional", Category: "Business",
		Description: "Professional design for business consultants",
		Colors:      []string{"#2c3e50", "#3498db", "#e74c3c"},
		Features:    []string{"Timeline View", "Contact Forms", "Testimonials"},
	},
	{
		ID: "photographer-portfolio", Name: "Photographer", Category: "Photography",
		Description: "Image-focused layout for photographers",
		Colors:      []string{"#34495e", "#f39c12", "#e67e22"},
		Features:    []string{"Full Screen Gallery", "Lightbox", "Client Proofing"},
	},
	{
		ID: "designer-showcase", Name: "Designer Portfolio", Category: "Design",
		Description: "Elegant design showcase for designers",
		Colors:      []string{"#9b59b6", "#e74c3c", "#f1c40f"},
		Features:    []string{"Case Studies", "Process Documentation", "Interactive Elements"},
	},
	{
		ID: "minimal-clean", Name: "Minimal Portfolio", Category: "Minimal",
		Description: "Clean minimal design for any profession",
		Colors:      []string{"#2c3e50", "#95a5a6", "#ecf0f1"},
		Features:    []string{"Typography Focus", "White Space", "Fast Loading"},
	},
	{
		ID: "freelancer-hub", Name: "Freelancer Hub", Category: "Freelancer",
		Description: "Perfect for freelancers and consultants",
		Colors:      []string{"#16a085", "#27ae60", "#2980b9"},
		Features:    []string{"Service Pricing", "Booking System", "Client Portal"},
	},
	{
		ID: "startup-founder", Name: "Startup Founder", Category: "Startup",
		Description: "Dynamic layout for entrepreneurs",
		Colors:      []string{"#e74c3c", "#f39c12", "#d35400"},
		Features:    []string{"Pitch Deck", "Team Showcase", "Investor Relations"},
	},
}

// Templates returns the catalog, optionally narrowed to one category.
// An empty category or "All" returns everything.
func Templates(category string) []TemplateRef {
	out := make([]TemplateRef, 0, len(catalog))
	for _, t := range catalog {
		if category == "" || category == "All" || t.Category == category {
			out = append(out, t.clone())
		}
	}
	return out
}

func FindTemplate(id string) (TemplateRef, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t.clone(), true
		}
	}
	return TemplateRef{}, false
}

func (p *Portfolio) SelectTemplate(id string) error {
	t, ok := FindTemplate(id)
	if !ok {
		return invalid("template", "unknown template "+id)
	}
	p.Template = &t
	return nil
}

type Preset struct {
	Name     string   `json:"name"`
	Settings Settings `json:"settings"`
}

var presets = []Preset{
	{Name: "Default", Settings: DefaultSettings()},
	{Name: "Green", Settings: Settings{"#10b981", "#059669", "#34d399", "#1f2937", "#f9fafb"}},
	{Name: "Orange", Settings: Settings{"#f59e0b", "#d97706", "#fbbf24", "#1f2937", "#fffbeb"}},
	{Name: "Purple", Settings: Settings{"#8b5cf6", "#7c3aed", "#a78bfa", "#1f2937", "#faf5ff"}},
}

func Presets() []Preset {
	return slices.Clone(presets)
}

func (p *Portfolio) ApplyPreset(name string) error {
	for _, pr := range presets {
		if pr.Name == name {
			p.Settings = pr.Settings
			return nil
		}
	}
	return invalid("preset", "unknown preset "+name)
}
