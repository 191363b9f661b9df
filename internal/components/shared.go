package components

import (
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/prajwalgurnule/Screenify/internal/signin"
)

func Logo() g.Node {
	return A(
		Href("#top"),
		Class("flex items-center gap-2"),
		Icon("lucide--code size-6 text-emerald-500", ""),
		Span(Class("font-bold text-xl"), g.Text("Screenify")),
	)
}

// iconName converts "lucide--video size-6" to the iconify name "lucide:video".
// Names already in "set:name" form pass through.
func iconName(iconClass string) string {
	parts := strings.Fields(iconClass)
	if len(parts) == 0 {
		return ""
	}
	return strings.Replace(parts[0], "--", ":", 1)
}

func extraClasses(iconClass string) string {
	parts := strings.Fields(iconClass)
	if len(parts) > 1 {
		return strings.Join(parts[1:], " ")
	}
	return ""
}

func Icon(iconClass, ariaLabel string) g.Node {
	classes := "iconify inline-block"
	if extra := extraClasses(iconClass); extra != "" {
		classes = fmt.Sprintf("iconify inline-block %s", extra)
	}

	if ariaLabel != "" {
		return Span(
			Class(classes),
			g.Attr("data-icon", iconName(iconClass)),
			g.Attr("role", "img"),
			g.Attr("aria-label", ariaLabel),
		)
	}

	return Span(
		Class(classes),
		g.Attr("data-icon", iconName(iconClass)),
		g.Attr("aria-hidden", "true"),
	)
}

// IconBadge is the rounded tile behind a feature icon. colors carries the
// tile's background and hover classes.
func IconBadge(icon, colors string) g.Node {
	return Span(
		Class(fmt.Sprintf("inline-flex items-center justify-center shrink-0 select-none size-12 rounded-xl transition-colors %s", colors)),
		Span(
			Class("iconify size-6 text-emerald-600 dark:text-emerald-300"),
			g.Attr("data-icon", iconName(icon)),
		),
	)
}

// Pill is the small rounded label above each section heading.
func Pill(icon, text string) g.Node {
	return Div(
		Class("inline-flex items-center gap-2 px-4 py-2 rounded-full bg-emerald-100 dark:bg-emerald-900/30 text-emerald-700 dark:text-emerald-300 text-sm font-medium mb-4"),
		g.If(icon != "", Icon(icon+" size-4", "")),
		g.Text(text),
	)
}

// SectionHeading renders a heading whose highlighted tail uses the brand
// gradient, e.g. "Everything You Need for" + "Technical Hiring".
func SectionHeading(lead, highlight, trail string) g.Node {
	return H2(
		Class("text-3xl md:text-4xl font-bold text-gray-900 dark:text-white mb-4"),
		g.Text(lead+" "),
		Span(Class("text-gradient"), g.Text(highlight)),
		g.If(trail != "", g.Text(trail)),
	)
}

// SignInButton posts to the sign-in prompt. Every click is one prompt.
func SignInButton(label, classes string) g.Node {
	return Form(
		Method("post"),
		Action(signin.SignInPath),
		Class("inline-block"),
		Button(
			Type("submit"),
			Class(classes),
			g.Attr("data-action", "sign-in"),
			Icon("lucide--zap size-5", ""),
			g.Text(label),
		),
	)
}

// SeeFeaturesButton scrolls to the features section. A missing anchor is a
// browser no-op.
func SeeFeaturesButton() g.Node {
	return A(
		Href("#"+FeaturesAnchor),
		Class("btn btn-outline"),
		g.Attr("data-action", "see-features"),
		g.Text("See Features"),
	)
}

// WindowDots are the three traffic-light dots of a mock window header.
func WindowDots() g.Node {
	return Div(
		Class("flex gap-2"),
		Div(Class("w-3 h-3 rounded-full bg-red-400")),
		Div(Class("w-3 h-3 rounded-full bg-yellow-400")),
		Div(Class("w-3 h-3 rounded-full bg-green-400")),
	)
}
