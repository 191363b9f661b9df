package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/prajwalgurnule/Screenify/internal/content"
	"github.com/prajwalgurnule/Screenify/internal/signin"
)

func Topbar() g.Node {
	return Header(
		Class("sticky top-0 z-50 backdrop-blur bg-white/60 dark:bg-gray-950/60 border-b border-emerald-100/60 dark:border-emerald-900/40"),
		Nav(
			Class("container mx-auto px-6 py-3 flex items-center justify-between"),
			Logo(),
			Div(
				Class("flex items-center gap-6 text-sm"),
				A(Href("#"+FeaturesAnchor), Class("max-sm:hidden hover:text-emerald-600"), g.Text("Features")),
				A(Href("#"+TestimonialsAnchor), Class("max-sm:hidden hover:text-emerald-600"), g.Text("Testimonials")),
				SignInButton("Sign In", "btn btn-primary btn-sm"),
			),
		),
	)
}

// LandingPage composes the marketing page: hero, stats, features, demo,
// testimonials, then the call to action.
func LandingPage(config PageConfig, tables *content.Tables, particles []Particle) g.Node {
	return Layout(
		config,
		Background(particles),
		Topbar(),
		Main(
			Hero(),
			Stats(tables.Stats),
			Features(tables.Features),
			Demo(tables.DemoHighlights),
			Testimonials(tables.Testimonials),
			CTA(),
		),
		PageFooter(),
	)
}

// LoadingPage is the placeholder shown while the session cannot be decided
// yet. It reloads itself every config.Refresh seconds.
func LoadingPage(config PageConfig) g.Node {
	return Layout(
		config,
		Main(
			Class("min-h-screen flex flex-col items-center justify-center gap-4"),
			g.Attr("data-state", "loading"),
			g.Attr("aria-busy", "true"),
			Div(Class("loader size-12 rounded-full border-4 border-emerald-200 border-t-emerald-500")),
			P(Class("text-sm text-gray-500"), g.Text("Loading...")),
		),
	)
}

// HomePage greets a signed-in visitor.
func HomePage(config PageConfig, name string) g.Node {
	return Layout(
		config,
		Header(
			Class("container mx-auto px-6 py-3"),
			Logo(),
		),
		Main(
			Class("container mx-auto px-6 py-24 text-center"),
			g.Attr("data-state", "signed-in"),
			H1(Class("text-4xl font-bold"), g.Text("Welcome back"), g.If(name != "", g.Text(", "+name))),
			P(Class("mt-4 text-gray-600 dark:text-gray-400"), g.Text("Your interviews will show up here.")),
			Form(
				Method("post"),
				Action(signin.SignOutPath),
				Class("mt-8"),
				Button(
					Type("submit"),
					Class("btn btn-outline"),
					g.Attr("data-action", "sign-out"),
					Icon("lucide--log-out size-4", ""),
					g.Text("Sign out"),
				),
			),
		),
	)
}
