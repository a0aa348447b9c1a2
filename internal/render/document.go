// internal/render/document.go
//
// Content-document model.
//
// Context
// -------
// A Document is the structured, section-organized content a tenant
// publishes: free text, image URLs, and short lists, grouped under the
// nine section names the renderer knows about.  The generation pipeline
// writes it, the directory returns it inside a site record, and this
// package turns it into HTML.  Free-text fields are untrusted and are
// escaped at interpolation time, never here.
//
// Structural validation uses go-playground/validator tags, the same way
// internal/config validates its tree.  A missing required field aborts
// the render with ErrInvalidDocument before any output is produced, so a
// half-broken document can never reach the cache.
//
// Notes
// -----
//   - Image fields may hold remote URLs or data: URIs; the renderer does
//     not distinguish the two.
//   - Gallery is the one optional section: a nil Gallery, or one whose
//     image slots are all empty, renders nothing.
//   - Oxford commas, two spaces after periods.

package render

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidDocument wraps every structural-validation failure so callers
// can map it to a render error without inspecting validator internals.
var ErrInvalidDocument = errors.New("render: invalid content document")

//
// Section payloads
//

// Headline is the two-line hero title.  Line two carries the brand color.
type Headline struct {
	Line1 string `json:"line1" validate:"required"`
	Line2 string `json:"line2" validate:"required"`
}

// Stat is one entry in the optional hero statistics bar.
type Stat struct {
	Label string `json:"label" validate:"required"`
	Value string `json:"value" validate:"required"`
}

type Hero struct {
	Badge    string   `json:"badge" validate:"required"`
	Headline Headline `json:"headline" validate:"required"`
	Subtext  string   `json:"subtext" validate:"required"`
	CTAText  string   `json:"ctaText" validate:"required"`
	NavCTA   string   `json:"navCta" validate:"required"`
	Image    string   `json:"heroImage" validate:"required"`
	Stats    []Stat   `json:"stats,omitempty" validate:"omitempty,dive"`
}

// ServiceCard names one offered service; Icon is a symbolic name resolved
// through the inline SVG table in icons.go.
type ServiceCard struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon"`
}

type Services struct {
	Cards []ServiceCard `json:"cards" validate:"required,min=1,dive"`
}

type ValueProposition struct {
	Title      string   `json:"title" validate:"required"`
	Subtitle   string   `json:"subtitle" validate:"required"`
	Content    string   `json:"content" validate:"required"`
	CTAText    string   `json:"ctaText" validate:"required"`
	Image      string   `json:"image" validate:"required"`
	Highlights []string `json:"highlights" validate:"required,min=1"`
}

type Benefits struct {
	Title string   `json:"title" validate:"required"`
	Items []string `json:"items" validate:"required,min=1"`
}

type ProcessStep struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon"`
}

type Process struct {
	Title string        `json:"title" validate:"required"`
	Steps []ProcessStep `json:"steps" validate:"required,min=1,dive"`
}

type WhoWeHelp struct {
	Title   string   `json:"title" validate:"required"`
	Image   string   `json:"image" validate:"required"`
	Bullets []string `json:"bullets" validate:"required,min=1"`
}

// Gallery holds up to three image slots.  A nil slot is an intentionally
// empty frame; the section is suppressed when every slot is nil.
type Gallery struct {
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Images   []*string `json:"images"`
}

// HasImages reports whether at least one gallery slot is populated.
func (g *Gallery) HasImages() bool {
	if g == nil {
		return false
	}
	for _, img := range g.Images {
		if img != nil && *img != "" {
			return true
		}
	}
	return false
}

type FAQ struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type Footer struct {
	Headline string `json:"headline" validate:"required"`
	CTAText  string `json:"ctaText" validate:"required"`
}

type Contact struct {
	Phone       string `json:"phone" validate:"required"`
	Location    string `json:"location" validate:"required"`
	CompanyName string `json:"companyName" validate:"required"`
}

//
// Document aggregate
//

// Document is the full content document for one published site.
type Document struct {
	// BannerText is present in every published document, but no section
	// renders it; it is accepted here so decoding stays faithful to the
	// full document shape.
	BannerText string           `json:"bannerText"`
	Hero       Hero             `json:"hero" validate:"required"`
	Services   Services         `json:"services" validate:"required"`
	ValueProp  ValueProposition `json:"valueProposition" validate:"required"`
	Benefits   Benefits         `json:"benefits" validate:"required"`
	Process    Process          `json:"process" validate:"required"`
	WhoWeHelp  WhoWeHelp        `json:"whoWeHelp" validate:"required"`
	Gallery    *Gallery         `json:"gallery,omitempty"`
	FAQs       []FAQ            `json:"faqs" validate:"required,min=1,dive"`
	Footer     Footer           `json:"footer" validate:"required"`
	Contact    Contact          `json:"contact" validate:"required"`
}

var docValidator = validator.New()

// Validate checks every structurally-required field and returns a
// descriptive error naming the first offending field.
func (d *Document) Validate() error {
	if err := docValidator.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: field %s failed %q",
				ErrInvalidDocument, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}
