package components

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

var heroCode = []struct {
	Indent int
	Text   string
	Muted  bool
}{
	{0, "def twoSum(nums, target):", false},
	{1, "# Candidate is coding...", true},
	{1, "hash_map = {}", false},
	{1, "for i, num in enumerate(nums):", false},
	{2, "complement = target - num", false},
	{2, "if complement in hash_map:", false},
	{3, "return [hash_map[complement], i]", false},
	{2, "hash_map[num] = i", false},
}

var callControls = []struct {
	Icon  string
	Label string
}{
	{"lucide--mic", "Microphone"},
	{"lucide--video", "Camera"},
	{"lucide--phone-off", "Leave call"},
	{"lucide--screen-share", "Share screen"},
	{"lucide--code", "Code editor"},
}

func Hero() g.Node {
	return Section(
		Class("relative container mx-auto px-6 pt-20 md:pt-28 pb-16"),
		ID("hero"),

		Div(
			Class("text-center max-w-3xl mx-auto"),
			Div(
				Class("flex justify-center"),
				Pill("lucide--sparkles", "New: Interview Scheduling"),
			),

			H1(
				Class("flex items-center justify-center gap-3 text-5xl md:text-7xl font-extrabold tracking-tight"),
				Icon("lucide--code size-12 text-emerald-500", ""),
				Span(Class("text-gradient"), g.Text("Screenify")),
			),

			P(
				Class("mt-6 text-lg md:text-xl text-gray-600 dark:text-gray-300"),
				g.Text("The next-generation platform for technical interviews and collaborative hiring"),
			),

			Div(
				Class("mt-8 flex flex-wrap justify-center gap-4"),
				SignInButton("Get Started - It's Free", "btn btn-primary shadow-xl"),
				SeeFeaturesButton(),
			),
		),

		CallMock(),
	)
}

// CallMock is the static picture of an interview in progress.
func CallMock() g.Node {
	return Div(
		Class("mt-16 max-w-5xl mx-auto rounded-2xl border border-emerald-200 dark:border-emerald-900 bg-white/80 dark:bg-gray-900/80 shadow-2xl overflow-hidden"),
		g.Attr("aria-hidden", "true"),

		Div(
			Class("flex items-center justify-between px-4 py-3 border-b border-gray-200 dark:border-gray-800"),
			WindowDots(),
			Span(Class("text-xs text-gray-500"), g.Text("meet.screenify.app/interview-session")),
			Span(
				Class("flex items-center gap-1 text-xs text-gray-500"),
				Icon("lucide--users size-4", ""),
				g.Text("2"),
			),
		),

		Div(
			Class("grid md:grid-cols-3 gap-4 p-4"),
			Div(
				Class("grid grid-cols-2 md:grid-cols-1 gap-4"),
				participantTile("Interviewer", "from-emerald-400 to-teal-500"),
				participantTile("Candidate", "from-green-400 to-lime-500"),
			),
			Div(
				Class("md:col-span-2 rounded-xl bg-gray-950 text-gray-100 font-mono text-sm overflow-hidden"),
				Div(
					Class("flex items-center justify-between px-4 py-2 bg-gray-900 text-xs text-gray-400"),
					Span(g.Text("solution.py • Candidate's Screen")),
					Span(g.Text("Python 3.9")),
				),
				Div(
					Class("p-4 space-y-1"),
					g.Group(g.Map(heroCode, func(line struct {
						Indent int
						Text   string
						Muted  bool
					}) g.Node {
						return Div(
							Class("whitespace-pre"),
							Style(fmt.Sprintf("padding-left:%drem", line.Indent)),
							g.If(line.Muted, Span(Class("text-gray-500"), g.Text(line.Text))),
							g.If(!line.Muted, g.Text(line.Text)),
						)
					})),
				),
			),
		),

		Div(
			Class("flex justify-center gap-3 px-4 py-3 border-t border-gray-200 dark:border-gray-800"),
			g.Group(g.Map(callControls, func(c struct {
				Icon  string
				Label string
			}) g.Node {
				return Span(
					Class("inline-flex items-center justify-center size-10 rounded-full bg-gray-100 dark:bg-gray-800"),
					Icon(c.Icon+" size-5", c.Label),
				)
			})),
		),
	)
}

func participantTile(name, gradient string) g.Node {
	return Div(
		Class("relative aspect-video rounded-xl bg-gradient-to-br "+gradient+" flex items-center justify-center"),
		Icon("lucide--user size-10 text-white/80", ""),
		Span(
			Class("absolute bottom-2 left-2 px-2 py-0.5 rounded bg-black/40 text-white text-xs"),
			g.Text(name),
		),
	)
}
