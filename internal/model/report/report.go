package report

// Section is one heading and its paragraphs inside a report.
type Section struct {
	Heading    string   `json:"heading"`
	Paragraphs []string `json:"paragraphs"`
}

// Report is a static educational page.
type Report struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	Sections []Section `json:"sections,omitempty"`
}

// Library exposes the static reports.
type Library struct {
	items []Report
}

// NewLibrary returns a Library over the supplied reports.
func NewLibrary(items []Report) *Library {
	return &Library{items: append([]Report(nil), items...)}
}

// List returns report headers without their sections.
func (l *Library) List() []Report {
	out := make([]Report, len(l.items))
	for i, r := range l.items {
		out[i] = Report{Slug: r.Slug, Title: r.Title, Summary: r.Summary}
	}
	return out
}

// FindBySlug looks up a full report.
func (l *Library) FindBySlug(slug string) (Report, bool) {
	for _, r := range l.items {
		if r.Slug == slug {
			return r, true
		}
	}
	return Report{}, false
}

// Seed provides the reports published on the site.
func Seed() []Report {
	return []Report{
		{
			Slug:    "reit-taxation",
			Title:   "How REIT Distributions Are Taxed",
			Summary: "A walkthrough of how interest, dividend and capital repayment components of REIT payouts are taxed in the hands of unitholders.",
			Sections: []Section{
				{
					Heading: "Components of a distribution",
					Paragraphs: []string{
						"A REIT distribution is usually a mix of interest income, dividend income and repayment of SPV debt.",
						"Each component follows its own tax treatment, so the split published by the REIT every quarter matters.",
					},
				},
				{
					Heading: "Interest and dividends",
					Paragraphs: []string{
						"Interest received from SPVs is passed through and taxed at the unitholder's slab rate, with TDS deducted by the REIT.",
						"Dividends are exempt when the underlying SPV has not opted for the concessional corporate tax regime.",
					},
				},
				{
					Heading: "Capital gains on units",
					Paragraphs: []string{
						"Listed units held for more than twelve months qualify for long-term capital gains treatment.",
					},
				},
			},
		},
		{
			Slug:    "valuation",
			Title:   "Valuing Income-Producing Real Estate",
			Summary: "Income capitalisation, discounted cash flow and NAV based approaches, and when each one is appropriate.",
			Sections: []Section{
				{
					Heading: "Direct capitalisation",
					Paragraphs: []string{
						"Value equals stabilised net operating income divided by a market cap rate.",
					},
				},
				{
					Heading: "Discounted cash flow",
					Paragraphs: []string{
						"Project cash flows over a holding period, add a terminal value and discount at a rate reflecting risk.",
					},
				},
				{
					Heading: "Net asset value",
					Paragraphs: []string{
						"For REITs, NAV per unit compares the market value of the portfolio less debt with the traded unit price.",
					},
				},
			},
		},
		{
			Slug:    "job-profiles",
			Title:   "Careers in Real Estate Investment",
			Summary: "What analysts, asset managers and property sales specialists do day to day.",
			Sections: []Section{
				{
					Heading:    "Investment analyst",
					Paragraphs: []string{"Builds underwriting models, runs DCF and IRR scenarios and prepares investment memos."},
				},
				{
					Heading:    "Asset manager",
					Paragraphs: []string{"Owns the business plan of each asset: leasing, capex, occupancy and NOI growth."},
				},
				{
					Heading:    "Sales specialist",
					Paragraphs: []string{"Guides buyers through site visits, documentation and home-loan paperwork."},
				},
			},
		},
	}
}
