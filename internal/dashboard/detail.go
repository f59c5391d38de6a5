package dashboard

import (
	"strings"

	"github.com/smileynet/contacts/internal/contact"
)

// viewDetail renders the read-only detail pane for the viewer and profile
// variants.
func (m Model) viewDetail() string {
	if m.variant == VariantProfile {
		return m.viewCard()
	}
	c, ok := m.book.Selected()
	if !ok {
		return mutedText.Render("Select a contact")
	}
	return renderContact(c)
}

// renderContact lays out a contact: badge and name, company, then the
// labelled email and phone.
func renderContact(c contact.Contact) string {
	var b strings.Builder
	b.WriteString(AvatarBadge(c.Initial(), "") + " " + headingText.Render(c.Name))
	if c.Company != "" {
		b.WriteString("\n" + mutedText.Render(c.Company))
	}
	b.WriteString("\n\n")
	writeField(&b, "EMAIL", linkText.Render(c.Email))
	b.WriteString("\n")
	writeField(&b, "PHONE", c.Phone)
	return b.String()
}

// viewCard renders the selected profile card.
func (m Model) viewCard() string {
	card, ok := m.selectedProfileCard()
	if !ok {
		return mutedText.Render("Select a card")
	}
	if card.Primary() {
		return m.renderProfile(card)
	}

	var b strings.Builder
	b.WriteString(AvatarBadge(card.Initial(), card.Color) + " " + headingText.Render(card.Name))
	if card.Subtitle != "" {
		b.WriteString("\n" + mutedText.Render(card.Subtitle))
	}
	if card.Platform != "" || card.URL != "" {
		b.WriteString("\n")
	}
	if card.Platform != "" {
		b.WriteString("\n")
		writeField(&b, "PLATFORM", card.Platform)
	}
	if card.URL != "" {
		b.WriteString("\n")
		writeField(&b, "URL", linkText.Render(card.URL))
	}
	return b.String()
}

// renderProfile renders the self card from the configured profile.
func (m Model) renderProfile(card contact.Card) string {
	p := m.profile
	name := p.FullName
	if name == "" {
		name = card.Name
	}

	var b strings.Builder
	b.WriteString(AvatarBadge(card.Initial(), card.Color) + " " + headingText.Render(name))
	if p.Title != "" {
		b.WriteString("\n" + mutedText.Render(p.Title))
	}
	if p.Bio != "" {
		b.WriteString("\n\n" + p.Bio)
	}
	if len(p.Roles) > 0 {
		b.WriteString("\n\n" + labelText.Render("ROLES"))
		for _, r := range p.Roles {
			b.WriteString("\n  • " + r)
		}
	}
	if len(p.Socials) > 0 {
		b.WriteString("\n\n" + labelText.Render("SOCIALS"))
		for _, s := range p.Socials {
			line := "\n  " + s.Platform
			if s.Handle != "" {
				line += "  " + s.Handle
			}
			if s.URL != "" {
				line += "  " + linkText.Render(s.URL)
			}
			b.WriteString(line)
		}
	}
	return b.String()
}

// selectedProfileCard returns the selected card, if any.
func (m Model) selectedProfileCard() (contact.Card, bool) {
	if m.selectedCard == "" {
		return contact.Card{}, false
	}
	for _, c := range m.cards {
		if c.ID == m.selectedCard {
			return c, true
		}
	}
	return contact.Card{}, false
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(labelText.Render(label))
	b.WriteString("\n")
	b.WriteString(value)
}
