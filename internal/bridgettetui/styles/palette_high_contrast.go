package styles

// HighContrastTheme favors legibility on low-quality terminals.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Base: BaseColors{
		Background: "16",
		Foreground: "231",
		Muted:      "250",
		Accent:     "51",
		Border:     "231",
	},
	Message: MessageColors{
		Own:     "87",
		Other:   "225",
		Pending: "250",
	},
	Category: CategoryColors{
		Custody:    "51",
		Medical:    "196",
		School:     "226",
		Activities: "46",
		Financial:  "214",
		General:    "231",
		Urgent:     "196",
	},
	Tone: ToneColors{
		MatterOfFact: "231",
		Friendly:     "46",
		NeutralLegal: "195",
	},
	Status: StatusColors{
		Read:      "46",
		Delivered: "226",
		Sent:      "250",
		Offline:   "196",
	},
	Chrome: ChromeColors{
		Header:       "117",
		Footer:       "159",
		Breadcrumb:   "195",
		SelectedItem: "51",
		Scrollbar:    "252",
	},
	Borders: BorderColors{
		ActivePane:   "231",
		InactivePane: "250",
		Divider:      "248",
	},
}
