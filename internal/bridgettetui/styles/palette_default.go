package styles

// DefaultTheme is the baseline dark palette for the Bridgette TUI.
var DefaultTheme = Theme{
	Name:        "default",
	BorderStyle: "rounded",
	Base: BaseColors{
		Background: "234",
		Foreground: "252",
		Muted:      "245",
		Accent:     "75",
		Border:     "240",
	},
	Message: MessageColors{
		Own:     "81",
		Other:   "147",
		Pending: "245",
	},
	Category: CategoryColors{
		Custody:    "75",
		Medical:    "203",
		School:     "220",
		Activities: "41",
		Financial:  "179",
		General:    "252",
		Urgent:     "196",
	},
	Tone: ToneColors{
		MatterOfFact: "252",
		Friendly:     "114",
		NeutralLegal: "146",
	},
	Status: StatusColors{
		Read:      "41",
		Delivered: "220",
		Sent:      "245",
		Offline:   "203",
	},
	Chrome: ChromeColors{
		Header:       "111",
		Footer:       "110",
		Breadcrumb:   "109",
		SelectedItem: "75",
		Scrollbar:    "246",
	},
	Borders: BorderColors{
		ActivePane:   "75",
		InactivePane: "240",
		Divider:      "238",
	},
}
