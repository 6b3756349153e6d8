package portfolio

import "regexp"

// FieldPath enumerates every scalar a client may set directly.
type FieldPath string

const (
	FieldName      FieldPath = "personalInfo.name"
	FieldTitle     FieldPath = "personalInfo.title"
	FieldBio       FieldPath = "personalInfo.bio"
	FieldEmail     FieldPath = "personalInfo.email"
	FieldPhone     FieldPath = "personalInfo.phone"
	FieldLocation  FieldPath = "personalInfo.location"
	FieldWebsite   FieldPath = "personalInfo.website"
	FieldAvatarURL FieldPath = "personalInfo.avatarUrl"

	FieldPrimaryColor    FieldPath = "settings.primaryColor"
	FieldSecondaryColor  FieldPath = "settings.secondaryColor"
	FieldAccentColor     FieldPath = "settings.accentColor"
	FieldTextColor       FieldPath = "settings.textColor"
	FieldBackgroundColor FieldPath = "settings.backgroundColor"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// FieldPaths lists the legal paths in display order.
func FieldPaths() []FieldPath {
	return []FieldPath{
		FieldName, FieldTitle, FieldBio, FieldEmail, FieldPhone, FieldLocation, FieldWebsite, FieldAvatarURL,
		FieldPrimaryColor, FieldSecondaryColor, FieldAccentColor, FieldTextColor, FieldBackgroundColor,
	}
}

func (f FieldPath) target(p *Portfolio) (dst *string, isColor bool) {
	switch f {
	case FieldName:
		return &p.PersonalInfo.Name, false
	case FieldTitle:
		return &p.PersonalInfo.Title, false
	case FieldBio:
		return &p.PersonalInfo.Bio, false
	case FieldEmail:
		return &p.PersonalInfo.Email, false
	case FieldPhone:
		return &p.PersonalInfo.Phone, false
	case FieldLocation:
		return &p.PersonalInfo.Location, false
	case FieldWebsite:
		return &p.PersonalInfo.Website, false
	case FieldAvatarURL:
		return &p.PersonalInfo.AvatarURL, false
	case FieldPrimaryColor:
		return &p.Settings.PrimaryColor, true
	case FieldSecondaryColor:
		return &p.Settings.SecondaryColor, true
	case FieldAccentColor:
		return &p.Settings.AccentColor, true
	case FieldTextColor:
		return &p.Settings.TextColor, true
	case FieldBackgroundColor:
		return &p.Settings.BackgroundColor, true
	}
	return nil, false
}

// SetField assigns one scalar. Content is not checked, only shape: settings
// must hold hex colours.
func (p *Portfolio) SetField(path FieldPath, value string) error {
	dst, isColor := path.target(p)
	if dst == nil {
		return invalid(string(path), "unknown field")
	}
	if isColor && !hexColor.MatchString(value) {
		return invalid(string(path), "expected a hex colour")
	}
	*dst = value
	return nil
}

type FieldUpdate struct {
	Path  FieldPath
	Value string
}

// SetFields applies a batch all or nothing: the first bad update leaves the
// model untouched.
func (p *Portfolio) SetFields(updates []FieldUpdate) error {
	next := p.Clone()
	for _, u := range updates {
		if err := next.SetField(u.Path, u.Value); err != nil {
			return err
		}
	}
	*p = *next
	return nil
}

// validate checks the shape of every colour that is set.
func (s Settings) validate() error {
	colors := []struct {
		path  FieldPath
		value string
	}{
		{FieldPrimaryColor, s.PrimaryColor},
		{FieldSecondaryColor, s.SecondaryColor},
		{FieldAccentColor, s.AccentColor},
		{FieldTextColor, s.TextColor},
		{FieldBackgroundColor, s.BackgroundColor},
	}
	for _, c := range colors {
		if c.value != "" && !hexColor.MatchString(c.value) {
			return invalid(string(c.path), "expected a hex colour")
		}
	}
	return nil
}

// Field reads back a scalar; ok is false for unknown paths.
func (p *Portfolio) Field(path FieldPath) (string, bool) {
	dst, _ := path.target(p)
	if dst == nil {
		return "", false
	}
	return *dst, true
}
