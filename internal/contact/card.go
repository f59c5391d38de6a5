package contact

// MainCardID is the reserved ID of the self card.
const MainCardID = "main"

// Card is one entry in the profile variant's list: the self card or a
// social link. Only ID and Name are required.
type Card struct {
	ID        string `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	Subtitle  string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Avatar    string `yaml:"avatar,omitempty" json:"avatar,omitempty"`
	Color     string `yaml:"color,omitempty" json:"color,omitempty"`
	Platform  string `yaml:"platform,omitempty" json:"platform,omitempty"`
	URL       string `yaml:"url,omitempty" json:"url,omitempty"`
	IsPrimary bool   `yaml:"is_primary,omitempty" json:"isPrimary,omitempty"`
}

// Primary reports whether c is the self card.
func (c Card) Primary() bool {
	return c.IsPrimary || c.ID == MainCardID
}

// Initial returns the avatar text: Avatar if set, otherwise the first
// letter of the name.
func (c Card) Initial() string {
	if c.Avatar != "" {
		return c.Avatar
	}
	return initial(c.Name)
}

// Social is a link on the profile card.
type Social struct {
	Platform string `yaml:"platform" json:"platform"`
	Handle   string `yaml:"handle,omitempty" json:"handle,omitempty"`
	URL      string `yaml:"url,omitempty" json:"url,omitempty"`
}

// Profile is the widget owner's personal card.
type Profile struct {
	FullName string   `yaml:"full_name" json:"fullName"`
	Title    string   `yaml:"title,omitempty" json:"title,omitempty"`
	Bio      string   `yaml:"bio,omitempty" json:"bio,omitempty"`
	Roles    []string `yaml:"roles,omitempty" json:"roles,omitempty"`
	Socials  []Social `yaml:"socials,omitempty" json:"socials,omitempty"`
}

// PrimaryIndex returns the index of the first self card, or -1.
func PrimaryIndex(cards []Card) int {
	for i, c := range cards {
		if c.Primary() {
			return i
		}
	}
	return -1
}
