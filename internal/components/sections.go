package components

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/prajwalgurnule/Screenify/internal/content"
)

// Anchor targets on the landing page
const (
	FeaturesAnchor     = "features"
	TestimonialsAnchor = "testimonials"
)

const starPath = "M9.049 2.927c.3-.921 1.603-.921 1.902 0l1.07 3.292a1 1 0 00.95.69h3.462c.969 0 1.371 1.24.588 1.81l-2.8 2.034a1 1 0 00-.364 1.118l1.07 3.292c.3.921-.755 1.688-1.54 1.118l-2.8-2.034a1 1 0 00-1.175 0l-2.8 2.034c-.784.57-1.838-.197-1.539-1.118l1.07-3.292a1 1 0 00-.364-1.118L2.98 8.72c-.783-.57-.38-1.81.588-1.81h3.461a1 1 0 00.951-.69l1.07-3.292z"

func Stats(stats []content.Stat) g.Node {
	return Section(
		Class("container mx-auto px-6 py-12"),
		ID("stats"),
		Div(
			Class("grid grid-cols-2 md:grid-cols-4 gap-6"),
			g.Group(g.Map(stats, func(s content.Stat) g.Node {
				return Div(
					Class("card text-center rounded-2xl bg-white/70 dark:bg-gray-900/70 border border-emerald-100 dark:border-emerald-900 p-6"),
					g.Attr("data-card", "stat"),
					P(Class("text-3xl md:text-4xl font-bold text-gradient"), g.Text(s.Value)),
					P(Class("mt-2 text-sm text-gray-600 dark:text-gray-400"), g.Text(s.Label)),
				)
			})),
		),
	)
}

func Features(features []content.Feature) g.Node {
	return Section(
		Class("container mx-auto px-6 py-16 md:py-24"),
		ID(FeaturesAnchor),

		Div(
			Class("text-center max-w-2xl mx-auto"),
			Pill("", "✨ Powerful Features"),
			SectionHeading("Everything You Need for", "Technical Hiring", ""),
			P(Class("text-gray-600 dark:text-gray-400"), g.Text("Designed by engineers for seamless technical interviews")),
		),

		Div(
			Class("mt-12 grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-6"),
			g.Group(g.Map(features, func(f content.Feature) g.Node {
				return Div(
					Class("card group rounded-2xl border border-gray-200 dark:border-gray-800 bg-white/80 dark:bg-gray-900/80 p-6 transition-all duration-300 hover:-translate-y-1 hover:shadow-xl"),
					g.Attr("data-card", "feature"),
					IconBadge(f.Icon, f.Color+" "+f.HoverColor),
					H3(Class("mt-4 font-semibold text-xl"), g.Text(f.Title)),
					P(Class("mt-2 text-sm text-gray-600 dark:text-gray-400 leading-relaxed"), g.Text(f.Description)),
				)
			})),
		),
	)
}

func Demo(highlights []content.DemoHighlight) g.Node {
	return Section(
		Class("container mx-auto px-6 py-16 md:py-24"),
		ID("demo"),

		Div(
			Class("grid lg:grid-cols-2 gap-12 items-center"),

			Div(
				Pill("", "🎥 Interactive Demo"),
				SectionHeading("Experience", "Screenify", " in Action"),
				P(
					Class("text-gray-600 dark:text-gray-400"),
					g.Text("See how Screenify transforms technical interviews with our interactive demo. Experience the seamless collaboration, crystal-clear video, and powerful coding tools."),
				),
				Ul(
					Class("mt-8 space-y-6"),
					g.Group(g.Map(highlights, func(h content.DemoHighlight) g.Node {
						return Li(
							Class("flex items-start gap-4"),
							g.Attr("data-card", "highlight"),
							IconBadge(h.Icon, "bg-emerald-100 dark:bg-emerald-900/50"),
							Div(
								H3(Class("font-semibold"), g.Text(h.Title)),
								P(Class("text-sm text-gray-600 dark:text-gray-400"), g.Text(h.Description)),
							),
						)
					})),
				),
				Div(
					Class("mt-8"),
					SignInButton("Try Live Demo", "btn btn-primary"),
				),
			),

			Div(
				Class("rounded-2xl border border-emerald-200 dark:border-emerald-900 bg-white/80 dark:bg-gray-900/80 shadow-2xl overflow-hidden"),
				g.Attr("aria-hidden", "true"),
				Div(
					Class("flex items-center gap-4 px-4 py-3 border-b border-gray-200 dark:border-gray-800"),
					WindowDots(),
					Span(Class("text-sm font-medium"), g.Text("Screenify Demo")),
				),
				Div(
					Class("p-10 text-center"),
					Icon("lucide--play-circle size-16 text-emerald-500", ""),
					H3(Class("mt-4 text-2xl font-bold"), g.Text("Interactive Demo")),
					P(Class("mt-2 text-gray-600 dark:text-gray-400"), g.Text("Experience Screenify's powerful interview tools in action")),
					Div(
						Class("mt-6 flex justify-center gap-3"),
						Span(Class("btn btn-primary btn-sm"), g.Text("Join as Interviewer")),
						Span(Class("btn btn-outline btn-sm"), g.Text("Join as Candidate")),
					),
				),
			),
		),
	)
}

func Testimonials(testimonials []content.Testimonial) g.Node {
	return Section(
		Class("container mx-auto px-6 py-16 md:py-24"),
		ID(TestimonialsAnchor),

		Div(
			Class("text-center max-w-2xl mx-auto"),
			Pill("", "❤️ Loved by Teams"),
			SectionHeading("Trusted by", "Leading Companies", ""),
			P(Class("text-gray-600 dark:text-gray-400"), g.Text("Join thousands of teams who conduct better interviews with Screenify")),
		),

		Div(
			Class("mt-12 grid grid-cols-1 md:grid-cols-3 gap-6"),
			g.Group(g.Map(testimonials, func(t content.Testimonial) g.Node {
				return Div(
					Class("card rounded-2xl border border-gray-200 dark:border-gray-800 bg-white/80 dark:bg-gray-900/80 p-6"),
					g.Attr("data-card", "testimonial"),
					Stars(t.Stars()),
					P(Class("mt-4 text-gray-700 dark:text-gray-300 italic"), g.Text("\""+t.Content+"\"")),
					Div(
						Class("mt-6 flex items-center gap-3"),
						Span(Class("text-3xl"), g.Attr("aria-hidden", "true"), g.Text(t.Avatar)),
						Div(
							P(Class("font-semibold"), g.Text(t.Name)),
							P(Class("text-sm text-gray-500"), g.Text(t.Role)),
						),
					),
				)
			})),
		),
	)
}

// Stars renders content.MaxRating stars with the first filled ones
// highlighted.
func Stars(filled int) g.Node {
	stars := make([]g.Node, 0, content.MaxRating)
	for i := range content.MaxRating {
		state, color := "empty", "text-gray-300 dark:text-gray-600"
		if i < filled {
			state, color = "filled", "text-yellow-400"
		}
		stars = append(stars, g.El("svg",
			Class("w-5 h-5 "+color),
			g.Attr("data-star", state),
			g.Attr("fill", "currentColor"),
			g.Attr("viewBox", "0 0 20 20"),
			g.El("path", g.Attr("d", starPath)),
		))
	}
	return Div(
		Class("flex gap-1"),
		g.Attr("role", "img"),
		g.Attr("aria-label", ratingLabel(filled)),
		g.Group(stars),
	)
}

func ratingLabel(filled int) string {
	return fmt.Sprintf("%d out of %d stars", filled, content.MaxRating)
}

func CTA() g.Node {
	return Section(
		Class("container mx-auto px-6 py-16 md:py-24"),
		ID("cta"),
		Div(
			Class("relative rounded-3xl overflow-hidden bg-gradient-to-r from-emerald-500 to-teal-600 px-6 py-16 text-center text-white"),
			Div(Class("absolute -bottom-24 left-16 w-72 h-64 bg-lime-300/40 blur-[120px]")),
			Div(Class("absolute -bottom-24 right-16 w-72 h-64 bg-teal-300/40 blur-[120px]")),
			Div(
				Class("relative"),
				H2(Class("text-3xl md:text-4xl font-bold"), g.Text("Ready to Transform Your Interview Process?")),
				P(Class("mt-4 max-w-2xl mx-auto text-white/90"), g.Text("Join thousands of teams who conduct better interviews with Screenify")),
				Div(
					Class("mt-8 flex flex-wrap justify-center gap-4"),
					SignInButton("Get Started - It's Free", "btn bg-white text-emerald-700 border-0"),
					SeeFeaturesButton(),
				),
			),
		),
	)
}

func PageFooter() g.Node {
	return Footer(
		Class("container mx-auto px-6 py-10 flex flex-col md:flex-row items-center justify-between gap-4 text-sm text-gray-500"),
		Logo(),
		P(g.Text("© 2026 Screenify. All rights reserved.")),
	)
}
