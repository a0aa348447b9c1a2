// internal/render/sections.go
//
// Per-section HTML renderers and section dispatch.
//
// Context
// -------
// Rendering selects sub-renderers through a closed table keyed by
// section id: the nine known kinds, nothing pluggable.  A tenant may
// override the default order with a SectionLayout; entries are filtered
// to visible=true and sorted ascending by order, and ids the table does
// not know are dropped silently.  The nav bar is not part of the layout;
// it always renders first.
//
// Each renderer is a pure function over the validated Document, the
// brand color, and strings.Builder.  Markup is Tailwind utility classes;
// "blue" scale classes resolve to the injected brand palette (site.go),
// with inline background-color overrides on call-to-action elements so
// the brand color is exact there regardless of palette rounding.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.

package render

import (
	"fmt"
	"sort"
	"strings"
)

// LayoutEntry is one tenant override of section visibility and order.
type LayoutEntry struct {
	ID      string `json:"id"`
	Visible bool   `json:"visible"`
	Order   int    `json:"order"`
}

// DefaultSectionOrder is the render sequence used when a tenant supplies
// no layout.
var DefaultSectionOrder = []string{
	"hero",
	"services",
	"valueProposition",
	"benefits",
	"process",
	"whoWeHelp",
	"gallery",
	"faqs",
	"footer",
}

type sectionFunc func(b *strings.Builder, d *Document, brand string)

// sectionRenderers is the closed dispatch table.  Unknown ids are a
// no-op, not an extension point.
var sectionRenderers = map[string]sectionFunc{
	"hero":             renderHero,
	"services":         renderServices,
	"valueProposition": renderValueProposition,
	"benefits":         renderBenefits,
	"process":          renderProcess,
	"whoWeHelp":        renderWhoWeHelp,
	"gallery":          renderGallery,
	"faqs":             renderFAQs,
	"footer":           renderFooterSection,
}

// orderedSections resolves the effective render sequence for a layout.
func orderedSections(layout []LayoutEntry) []string {
	if len(layout) == 0 {
		return DefaultSectionOrder
	}
	visible := make([]LayoutEntry, 0, len(layout))
	for _, e := range layout {
		if e.Visible {
			visible = append(visible, e)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool { return visible[i].Order < visible[j].Order })

	ids := make([]string, len(visible))
	for i, e := range visible {
		ids[i] = e.ID
	}
	return ids
}

// renderSections appends every resolved section in order.
func renderSections(b *strings.Builder, d *Document, brand string, layout []LayoutEntry) {
	for _, id := range orderedSections(layout) {
		if fn, ok := sectionRenderers[id]; ok {
			fn(b, d, brand)
		}
	}
}

//
// Nav (always first, outside the layout)
//

func renderNav(b *strings.Builder, d *Document, brand string) {
	fmt.Fprintf(b, `
    <nav class="sticky top-0 left-0 right-0 z-[100] bg-white/90 backdrop-blur-xl border-b border-slate-100 py-4 px-6 md:px-12 flex justify-between items-center">
      <div class="flex-1">
        <div class="font-black text-xl md:text-2xl tracking-tighter text-slate-900">%s</div>
      </div>
      <div class="flex items-center gap-6">
        <div class="hidden md:flex flex-col items-end">
          <span class="text-[10px] font-bold text-slate-400 uppercase tracking-widest leading-none mb-1">Expert Support</span>
          <span class="text-sm font-bold text-slate-900">%s</span>
        </div>
        <a href="tel:%s" class="bg-blue-600 text-white px-6 py-3 rounded-full font-bold text-xs md:text-sm transition-all hover:bg-blue-700 hover:shadow-lg hover:shadow-blue-500/25 active:scale-95 uppercase tracking-tight" style="background-color: %s">
          %s
        </a>
      </div>
    </nav>`,
		esc(d.Contact.CompanyName),
		esc(formatPhone(d.Contact.Phone)),
		esc(d.Contact.Phone), brand,
		esc(d.Hero.NavCTA))
}

//
// Hero
//

func renderHero(b *strings.Builder, d *Document, brand string) {
	var stats strings.Builder
	for _, st := range d.Hero.Stats {
		fmt.Fprintf(&stats, `
    <div class="flex flex-col items-center md:items-start text-center md:text-left">
      <div class="text-white text-3xl md:text-4xl font-black mb-1">%s</div>
      <div class="text-blue-200 text-[10px] md:text-xs font-bold uppercase tracking-widest opacity-70">%s</div>
    </div>`, esc(st.Value), esc(st.Label))
	}

	statsBar := ""
	if len(d.Hero.Stats) > 0 {
		statsBar = fmt.Sprintf(`
      <div class="relative z-10 bg-white/10 backdrop-blur-xl border-y border-white/10 py-4">
        <div class="max-w-7xl mx-auto px-6 grid grid-cols-2 md:grid-cols-4 gap-8">
          %s
        </div>
      </div>`, stats.String())
	}

	fmt.Fprintf(b, `
    <section class="relative min-h-[90vh] flex flex-col justify-center overflow-hidden">
      <div class="absolute inset-0 z-0">
        <div class="w-full h-full">
          <img src="%s" alt="Hero" class="w-full h-full object-cover" />
        </div>
        <div class="absolute inset-0 bg-gradient-to-r from-slate-950/90 via-slate-950/60 to-transparent"></div>
      </div>

      <div class="relative z-10 max-w-7xl mx-auto px-6 w-full py-10">
        <div class="max-w-3xl">
          <div class="inline-flex items-center gap-2 mb-8 px-4 py-1.5 rounded-full bg-blue-500/20 backdrop-blur-md border border-blue-400/30 text-blue-100 text-[10px] md:text-xs font-bold tracking-[0.15em] uppercase">
            %s
            <div>%s</div>
          </div>
          <h1 class="text-white text-5xl md:text-8xl font-black tracking-tighter leading-[0.85] flex flex-col items-center">
            <span class="block">%s</span>
            <span class="block text-blue-600" style="color: %s">%s</span>
          </h1>
          <div class="text-slate-300 text-lg md:text-2xl font-medium leading-relaxed mb-12 max-w-2xl">%s</div>

          <a href="tel:%s" class="inline-flex items-center gap-3 px-10 py-5 bg-white text-slate-950 font-black rounded-2xl shadow-2xl transition-all hover:scale-[1.03] active:scale-[0.98] uppercase tracking-tight text-lg">
            <span>%s</span>
            %s
          </a>
        </div>
      </div>
      %s
    </section>`,
		esc(d.Hero.Image),
		iconSparkles, esc(d.Hero.Badge),
		esc(d.Hero.Headline.Line1),
		brand, esc(d.Hero.Headline.Line2),
		esc(d.Hero.Subtext),
		esc(d.Contact.Phone),
		esc(d.Hero.CTAText), iconArrowRight,
		statsBar)
}

//
// Services
//

func renderServices(b *strings.Builder, d *Document, brand string) {
	var cards strings.Builder
	for _, svc := range d.Services.Cards {
		fmt.Fprintf(&cards, `
    <div class="group bg-white p-10 rounded-[2.5rem] shadow-sm border border-slate-100 hover:border-blue-200 hover:shadow-xl hover:-translate-y-1 transition-all duration-500 h-full flex flex-col">
      <div class="w-16 h-16 rounded-2xl flex items-center justify-center mb-8 transition-transform group-hover:rotate-12 group-hover:scale-110" style="background-color: %s10; color: %s">
        %s
      </div>
      <h3 class="text-2xl font-bold mb-4 tracking-tight text-slate-900">%s</h3>
      <div class="text-slate-500 text-base font-medium leading-relaxed flex-grow">%s</div>
      <div class="mt-8 flex items-center gap-2 text-sm font-bold text-blue-600 group-hover:gap-3 transition-all cursor-pointer">
        Learn more %s
      </div>
    </div>`,
			brand, brand,
			renderNamedIcon(svc.Icon, 32, "w-8 h-8"),
			esc(svc.Title), esc(svc.Description),
			iconArrowRightSm)
	}

	fmt.Fprintf(b, `
    <section class="py-12 md:py-18 px-6 md:px-12 bg-slate-50">
      <div class="max-w-7xl mx-auto">
        <div class="text-center mb-12">
          <div class="text-blue-600 font-black text-xs uppercase tracking-[0.2em] mb-4">What We Do</div>
          <h2 class="text-4xl md:text-6xl font-black tracking-tight text-slate-900 mb-6">Expert Solutions</h2>
          <div class="w-24 h-1.5 bg-blue-600 mx-auto rounded-full"></div>
        </div>
        <div class="grid grid-cols-1 sm:grid-cols-2 lg:grid-cols-4 gap-8">
          %s
        </div>
      </div>
    </section>`, cards.String())
}

//
// Value proposition
//

func renderValueProposition(b *strings.Builder, d *Document, brand string) {
	var highlights strings.Builder
	for _, h := range d.ValueProp.Highlights {
		fmt.Fprintf(&highlights, `
    <div class="flex gap-4 items-start">
      <div class="w-6 h-6 rounded-full bg-blue-600 flex items-center justify-center text-white shrink-0 mt-1">
        %s
      </div>
      <div class="text-slate-900 font-bold text-base leading-tight">%s</div>
    </div>`, iconCheck, esc(h))
	}

	fmt.Fprintf(b, `
    <section class="py-12 md:py-20 px-6 md:px-12 bg-white overflow-hidden">
      <div class="max-w-7xl mx-auto flex flex-col lg:flex-row items-center gap-20">
        <div class="lg:w-1/2 relative">
          <div class="absolute -top-10 -left-10 w-40 h-40 bg-blue-100 rounded-full blur-3xl opacity-50"></div>
          <div class="absolute -bottom-10 -right-10 w-40 h-40 bg-blue-200 rounded-full blur-3xl opacity-50"></div>
          <div class="rounded-[3rem] shadow-2xl w-full aspect-[4/5] object-cover relative z-10 overflow-hidden">
            <img src="%s" alt="Action" class="w-full h-full object-cover" />
          </div>
        </div>
        <div class="lg:w-1/2 space-y-12 relative z-10">
          <div>
            <div class="text-blue-600 font-bold text-xs uppercase tracking-[0.2em] mb-4">%s</div>
            <h2 class="text-4xl md:text-6xl font-black tracking-tight text-slate-900 leading-[1.1] mb-8">%s</h2>
            <div class="text-slate-600 text-lg md:text-xl font-medium leading-relaxed">%s</div>
          </div>

          <div class="grid grid-cols-1 sm:grid-cols-2 gap-8">
            %s
          </div>

          <div class="p-8 bg-slate-50 rounded-3xl border-l-4 border-blue-600 italic text-slate-700 font-medium text-lg leading-relaxed mb-8">
            &ldquo;We focus on providing consistent service and clear communication throughout every project.&rdquo;
          </div>

          <a href="tel:%s" class="inline-flex items-center gap-3 px-8 py-4 bg-blue-600 text-white font-bold rounded-2xl shadow-xl transition-all hover:bg-blue-700 active:scale-95 uppercase tracking-tight text-base" style="background-color: %s">
            <span>%s</span>
            %s
          </a>
        </div>
      </div>
    </section>`,
		esc(d.ValueProp.Image),
		esc(d.ValueProp.Subtitle), esc(d.ValueProp.Title), esc(d.ValueProp.Content),
		highlights.String(),
		esc(d.Contact.Phone), brand,
		esc(d.ValueProp.CTAText), iconArrowRight)
}

//
// Benefits
//

func renderBenefits(b *strings.Builder, d *Document, _ string) {
	var items strings.Builder
	for _, item := range d.Benefits.Items {
		fmt.Fprintf(&items, `
    <div class="flex items-center gap-6 p-6 rounded-2xl bg-slate-50 border border-transparent hover:border-blue-100 transition-colors">
      <div class="w-10 h-10 rounded-full bg-blue-600 flex items-center justify-center text-white shrink-0">
        %s
      </div>
      <div class="text-lg md:text-xl font-bold text-slate-900">%s</div>
    </div>`, iconCheck, esc(item))
	}

	fmt.Fprintf(b, `
    <section class="py-12 md:py-20 px-6 md:px-12 bg-white">
      <div class="max-w-5xl mx-auto">
        <div class="text-center mb-10">
          <div class="text-4xl md:text-6xl font-black tracking-tight text-slate-900">%s</div>
        </div>
        <div class="grid grid-cols-1 md:grid-cols-2 gap-x-20 gap-y-10">
          %s
        </div>
      </div>
    </section>`, esc(d.Benefits.Title), items.String())
}

//
// Process
//

func renderProcess(b *strings.Builder, d *Document, brand string) {
	var steps strings.Builder
	for i, step := range d.Process.Steps {
		connector := ""
		if i < len(d.Process.Steps)-1 {
			connector = `<div class="hidden md:block absolute top-10 -right-6 w-12 h-px bg-slate-800 z-0"></div>`
		}
		fmt.Fprintf(&steps, `
    <div class="relative group">
      %s
      <div class="w-20 h-20 rounded-3xl bg-blue-600 flex items-center justify-center text-white text-3xl font-black mb-10 transition-transform group-hover:scale-110 shadow-2xl shadow-blue-500/20" style="background-color: %s">
        %d
      </div>
      <h3 class="text-2xl font-bold mb-4 tracking-tight">%s</h3>
      <div class="text-slate-400 text-lg font-medium leading-relaxed">%s</div>
    </div>`, connector, brand, i+1, esc(step.Title), esc(step.Description))
	}

	fmt.Fprintf(b, `
    <section class="py-12 md:py-20 px-6 md:px-12 bg-slate-950 text-white relative overflow-hidden">
      <div class="absolute top-0 right-0 w-1/3 h-full bg-blue-600/10 skew-x-12 translate-x-1/2"></div>
      <div class="max-w-7xl mx-auto relative z-10">
        <div class="flex flex-col md:flex-row md:items-end justify-between mb-12 gap-8">
          <div class="max-w-2xl">
            <div class="text-blue-400 font-bold text-xs uppercase tracking-[0.2em] mb-4">Our Method</div>
            <h2 class="text-4xl md:text-6xl font-black tracking-tight">%s</h2>
          </div>
          <div class="text-slate-400 font-bold max-w-sm md:text-right border-l md:border-l-0 md:border-r border-blue-500/30 pl-8 md:pl-0 md:pr-8 uppercase tracking-widest text-xs leading-relaxed">
            Transparent &amp; Professional Workflow From Start To Finish
          </div>
        </div>
        <div class="grid grid-cols-1 md:grid-cols-3 gap-12">
          %s
        </div>
      </div>
    </section>`, esc(d.Process.Title), steps.String())
}

//
// Who we help
//

func renderWhoWeHelp(b *strings.Builder, d *Document, brand string) {
	var bullets strings.Builder
	for _, bullet := range d.WhoWeHelp.Bullets {
		fmt.Fprintf(&bullets, `
    <div class="flex items-start gap-3 md:gap-4 group">
      <div class="mt-1.5 w-2 h-2 rounded-full bg-blue-600 shrink-0" style="background-color: %s"></div>
      <div class="text-lg md:text-xl text-gray-600 font-medium leading-relaxed group-hover:text-gray-900 transition-colors">%s</div>
    </div>`, brand, esc(bullet))
	}

	fmt.Fprintf(b, `
    <section class="py-12 md:py-16 bg-white overflow-hidden" id="who-we-help">
      <div class="max-w-7xl mx-auto px-6">
        <div class="flex flex-col md:flex-row items-center gap-8 md:gap-16">
          <div class="w-full md:w-1/2 order-2 md:order-1">
            <div class="rounded-3xl shadow-2xl w-full h-[300px] md:h-[500px] object-cover overflow-hidden">
              <img src="%s" alt="%s" class="w-full h-full object-cover" />
            </div>
          </div>
          <div class="w-full md:w-1/2 order-1 md:order-2">
            <div class="text-3xl md:text-5xl font-black tracking-tighter mb-6 md:mb-8 text-gray-900 leading-tight">%s</div>
            <div class="space-y-4 md:space-y-6">
              %s
            </div>
          </div>
        </div>
      </div>
    </section>`,
		esc(d.WhoWeHelp.Image), esc(d.WhoWeHelp.Title),
		esc(d.WhoWeHelp.Title), bullets.String())
}

//
// Gallery (suppressed when every slot is empty)
//

func renderGallery(b *strings.Builder, d *Document, _ string) {
	if !d.Gallery.HasImages() {
		return
	}

	var slots strings.Builder
	for i := 0; i < 3; i++ {
		var src string
		if i < len(d.Gallery.Images) && d.Gallery.Images[i] != nil {
			src = *d.Gallery.Images[i]
		}
		if src == "" {
			slots.WriteString(`<div class="aspect-[4/3] rounded-3xl overflow-hidden"></div>`)
			continue
		}
		fmt.Fprintf(&slots, `
      <div class="aspect-[4/3] rounded-3xl overflow-hidden">
        <img src="%s" alt="Gallery" class="w-full h-full object-cover rounded-3xl" loading="lazy" />
      </div>`, esc(src))
	}

	title := d.Gallery.Title
	if title == "" {
		title = "Gallery"
	}
	subtitle := d.Gallery.Subtitle
	if subtitle == "" {
		subtitle = "See our latest projects"
	}

	fmt.Fprintf(b, `
    <section class="py-12 md:py-20 px-6 md:px-12 bg-slate-50">
      <div class="max-w-7xl mx-auto">
        <div class="text-center mb-12">
          <div class="text-blue-600 font-black text-xs uppercase tracking-[0.2em] mb-4">Our Work</div>
          <h2 class="text-4xl md:text-6xl font-black tracking-tight text-slate-900 mb-4">%s</h2>
          <div class="text-slate-500 text-lg font-medium">%s</div>
          <div class="w-24 h-1.5 bg-blue-600 mx-auto rounded-full mt-6"></div>
        </div>
        <div class="grid grid-cols-1 md:grid-cols-3 gap-6">
          %s
        </div>
      </div>
    </section>`, esc(title), esc(subtitle), slots.String())
}

//
// FAQs
//

func renderFAQs(b *strings.Builder, d *Document, _ string) {
	var faqs strings.Builder
	for _, faq := range d.FAQs {
		fmt.Fprintf(&faqs, `
    <div class="bg-white rounded-[2rem] p-8 md:p-10 shadow-sm border border-slate-100 group hover:border-blue-100 transition-all">
      <div class="flex gap-6">
        <div class="w-12 h-12 rounded-2xl bg-blue-50 flex items-center justify-center text-blue-600 shrink-0">
          %s
        </div>
        <div class="space-y-4">
          <h4 class="text-xl md:text-2xl font-black tracking-tight text-slate-900">%s</h4>
          <div class="text-slate-500 text-lg font-medium leading-relaxed">%s</div>
        </div>
      </div>
    </div>`, iconHelpCircle, esc(faq.Question), esc(faq.Answer))
	}

	fmt.Fprintf(b, `
    <section class="py-12 md:py-20 px-6 md:px-12 bg-slate-50">
      <div class="max-w-4xl mx-auto">
        <div class="text-center mb-12">
          <div class="text-blue-600 font-bold text-xs uppercase tracking-[0.2em] mb-4">FAQ</div>
          <h2 class="text-4xl md:text-5xl font-black tracking-tight text-slate-900 mb-6">Common Questions</h2>
          <div class="w-20 h-1.5 bg-blue-600 mx-auto rounded-full"></div>
        </div>
        <div class="space-y-6">
          %s
        </div>
      </div>
    </section>`, faqs.String())
}

//
// Footer
//

func renderFooterSection(b *strings.Builder, d *Document, brand string) {
	fmt.Fprintf(b, `
    <section class="bg-slate-900 py-16 px-6 text-center text-white">
      <div class="max-w-3xl mx-auto space-y-10">
        <h2 class="text-4xl md:text-7xl font-black tracking-tighter leading-none mb-4">%s</h2>
        <p class="text-slate-400 text-xl font-medium mb-6">Contact us today for a free, no-obligation estimate in %s.</p>
        <a href="tel:%s" class="inline-flex items-center gap-4 px-12 py-7 bg-blue-600 text-white font-black rounded-[2rem] shadow-2xl transition-all hover:scale-105 active:scale-95 uppercase tracking-tighter text-xl" style="background-color: %s">
          <span>%s</span>
          %s
        </a>
        <div class="pt-10 border-t border-slate-800 flex flex-col justify-between items-center gap-8 opacity-50 text-center">
          <div class="space-y-4">
            <p class="text-[10px] md:text-xs font-bold uppercase tracking-[0.2em]">Services and availability may vary. Contact us to confirm details.</p>
            <div class="flex flex-col md:flex-row items-center gap-4 text-[10px] font-bold uppercase tracking-widest text-slate-500">
              <span>&copy; %d %s</span>
              <span class="hidden md:inline">&bull;</span>
              <span>Privacy Policy</span>
              <span class="hidden md:inline">&bull;</span>
              <span>Terms of Service</span>
            </div>
          </div>
        </div>
      </div>
    </section>`,
		esc(d.Footer.Headline),
		esc(d.Contact.Location),
		esc(d.Contact.Phone), brand,
		esc(d.Footer.CTAText), iconArrowRight,
		copyrightYear(), esc(d.Contact.CompanyName))
}
