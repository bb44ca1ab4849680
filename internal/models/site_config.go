package models

const (
	BackgroundGradient = "gradient"
	BackgroundColor    = "color"
	BackgroundImage    = "image"

	DefaultGradient = "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"
)

type Profile struct {
	Name  string `json:"name"`
	Bio   string `json:"bio"`
	Image string `json:"image"`
}

type Background struct {
	Type          string `json:"type" validate:"in:gradient,color,image"`
	Value         string `json:"value"`
	Image         string `json:"image"`
	Position      string `json:"position"`
	FallbackColor string `json:"fallbackColor,omitempty"`
}

type LinkEntry struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	Visible  *bool  `json:"visible,omitempty"`
}

func (l LinkEntry) IsVisible() bool {
	return l.Visible == nil || *l.Visible
}

// SiteConfig is the admin-editable site content, persisted in the links document.
type SiteConfig struct {
	SiteTitle  string            `json:"siteTitle"`
	PageTitles map[string]string `json:"pageTitles"`
	Profile    Profile           `json:"profile"`
	Background Background        `json:"background"`
	Links      []LinkEntry       `json:"links"`
}

func (c *SiteConfig) Reset() {
	*c = SiteConfig{
		PageTitles: map[string]string{},
		Links:      []LinkEntry{},
	}
}

func (c *SiteConfig) Seed() {
	c.Background = Background{
		Type:     BackgroundGradient,
		Value:    DefaultGradient,
		Position: "cover",
	}
}

// DeriveStats is a no-op, the site config carries no aggregate.
func (c *SiteConfig) DeriveStats() {}

func (c *SiteConfig) Count() int {
	return len(c.Links)
}

// VisibleOnly returns a copy with hidden links removed.
func (c *SiteConfig) VisibleOnly() *SiteConfig {
	out := *c
	out.Links = make([]LinkEntry, 0, len(c.Links))
	for _, link := range c.Links {
		if link.IsVisible() {
			out.Links = append(out.Links, link)
		}
	}
	return &out
}
