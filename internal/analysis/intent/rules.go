package intent

import "github.com/propnest/realty/backend/internal/model/chat"

// knownCities is scanned in order; longer names that contain shorter ones come first.
var knownCities = []string{
	"navi mumbai", "mumbai", "pune", "bangalore", "bengaluru", "delhi", "gurgaon",
	"noida", "hyderabad", "chennai", "kolkata", "ahmedabad", "thane",
}

var citySuggestions = []string{"Mumbai", "Pune", "Bangalore", "Delhi", "Hyderabad"}

var bedroomSuggestions = []string{"1 BHK", "2 BHK", "3 BHK", "4 BHK", "5+ BHK"}

var greetingSuggestions = []string{"Search Properties", "Our Services", "Contact Us"}

// defaultRules is the assistant's rule table in priority order.
// A more specific rule must be declared before any rule whose keywords it overlaps.
func defaultRules() []Rule {
	return []Rule{
		{
			Name:     "location",
			Keywords: append([]string{"location", "locality", "city", "area", "near"}, knownCities...),
			resolve:  resolveLocation,
		},
		{
			Name:     "bedrooms",
			Keywords: []string{"bhk", "bedroom"},
			Response: Response{
				Text:        "How many bedrooms are you looking for? Pick one and I'll narrow things down.",
				Suggestions: bedroomSuggestions,
			},
		},
		{
			Name:     "flat-search",
			Keywords: []string{"flat", "apartment"},
			Response: Response{
				Text:        "Great choice! We list ready-to-move and under-construction flats across major cities. Which city do you prefer?",
				Suggestions: citySuggestions,
				Navigation:  navigate(chat.ViewSearch, map[string]string{"type": "apartment"}),
			},
		},
		{
			Name:     "villa-search",
			Keywords: []string{"villa", "bungalow", "independent house", "row house"},
			Response: Response{
				Text:        "We have premium villas and independent houses in gated communities. Which city should I look in?",
				Suggestions: citySuggestions,
				Navigation:  navigate(chat.ViewSearch, map[string]string{"type": "villa"}),
			},
		},
		{
			Name:     "plot-search",
			Keywords: []string{"plot", "land"},
			Response: Response{
				Text:       "Our plotted developments come with clear titles and approved layouts. Let me show you the available plots.",
				Navigation: navigate(chat.ViewSearch, map[string]string{"type": "plot"}),
			},
		},
		{
			Name:     "commercial-search",
			Keywords: []string{"commercial", "office", "shop", "retail space", "warehouse"},
			Response: Response{
				Text:       "Looking for commercial space? We have offices, retail units and warehouses on lease and for sale.",
				Navigation: navigate(chat.ViewSearch, map[string]string{"type": "commercial"}),
			},
		},
		{
			Name:     "budget",
			Keywords: []string{"budget", "price", "cost", "lakh", "crore", "afford"},
			Response: Response{
				Text:        "Prices depend on city, size and amenities. What budget range are you considering?",
				Suggestions: []string{"Under 50 Lakh", "50 Lakh - 1 Crore", "Above 1 Crore"},
			},
		},
		{
			Name:     "home-loan",
			Keywords: []string{"home loan", "mortgage", "emi", "ltv", "loan to value"},
			Response: Response{
				Text:       "We work with leading banks for home loans. Our LTV calculator shows how much you can borrow against a property.",
				Navigation: navigate(chat.ViewCalculators, map[string]string{"tool": "ltv"}),
			},
		},
		{
			Name:     "reit-tax",
			Keywords: []string{"tax"},
			Response: Response{
				Text:       "REIT distributions are taxed differently depending on whether they are interest, dividend or repayment of debt. Our REIT taxation report explains it step by step.",
				Navigation: navigate(chat.ViewReitTaxation, nil),
			},
		},
		{
			Name:     "calculators",
			Keywords: []string{"calculator", "calculate", "nav", "irr", "cap rate", "dcf", "affo", "ebitda", "payout", "occupancy"},
			Response: Response{
				Text:        "Our calculators cover NAV, IRR, Cap Rate, LTV, DCF, AFFO, EBITDAre, Payout Ratio and Occupancy Rate.",
				Suggestions: []string{"Valuation Methods", "REIT Taxation"},
				Navigation:  navigate(chat.ViewCalculators, nil),
			},
		},
		{
			Name:     "valuation",
			Keywords: []string{"valuation", "value", "worth"},
			Response: Response{
				Text:       "Property and REIT valuation usually combines income, comparable-sales and cost approaches. Read our valuation report for details.",
				Navigation: navigate(chat.ViewValuation, nil),
			},
		},
		{
			Name:     "reit-invest",
			Keywords: []string{"reit", "invest", "dividend", "return", "yield"},
			Response: Response{
				Text:        "REITs let you invest in income-producing real estate without buying a whole property. What would you like to know?",
				Suggestions: []string{"REIT Taxation", "Valuation Methods", "Calculators"},
			},
		},
		{
			Name:     "careers",
			Keywords: []string{"job", "career", "hiring", "vacancy", "work with you"},
			Response: Response{
				Text:       "We are always looking for analysts, asset managers and sales specialists. Take a look at our job profiles.",
				Navigation: navigate(chat.ViewJobProfiles, nil),
			},
		},
		{
			Name:     "services",
			Keywords: []string{"service", "what do you do", "offer"},
			Response: Response{
				Text:        "We help you buy, sell, rent and invest: property search, site visits, legal checks, home loans and REIT advisory.",
				Suggestions: []string{"Search Properties", "REIT Investing", "Contact Us"},
				Navigation:  navigate(chat.ViewServices, nil),
			},
		},
		{
			Name:     "contact",
			Keywords: []string{"contact", "call", "phone", "email", "reach", "talk to", "agent"},
			Response: Response{
				Text:       "You can reach our team through the contact form and an advisor will get back to you within one business day.",
				Navigation: navigate(chat.ViewContact, nil),
			},
		},
		{
			Name:     "search",
			Keywords: []string{"search", "looking for", "find", "property", "properties", "buy", "rent"},
			Response: Response{
				Text:        "Sure! What kind of property are you looking for?",
				Suggestions: []string{"Flats", "Villas", "Plots", "Commercial"},
			},
		},
		{
			Name:     "thanks",
			Keywords: []string{"thank", "thanks"},
			Response: Response{
				Text:        "You're welcome! Is there anything else I can help you with?",
				Suggestions: greetingSuggestions,
			},
		},
		{
			Name:     "goodbye",
			Keywords: []string{"bye", "see you"},
			Response: Response{
				Text: "Goodbye! Feel free to come back whenever you need help with property.",
			},
		},
		{
			Name:     "greeting",
			Keywords: []string{"hello", "hi", "hey", "namaste", "good morning", "good evening"},
			Response: Response{
				Text:        "Hello! Welcome to PropNest. I can help you find a property, explain our services or connect you with our team.",
				Suggestions: greetingSuggestions,
			},
		},
	}
}

// defaultFallback answers anything no rule recognises.
func defaultFallback() Response {
	return Response{
		Text:        "I'm not sure I understood that. I can help you search properties, learn about REITs or get in touch with our team.",
		Suggestions: []string{"Search Properties", "REIT Investing", "Contact Us"},
	}
}

// SeedMessage is the assistant's opening line for every new conversation.
func SeedMessage() Response {
	return Response{
		Text: "Hi! I'm the PropNest assistant. Ask me about properties, REITs or our services.",
	}
}

// QuickActions is the palette shown before the first user message.
func QuickActions() []chat.QuickAction {
	return []chat.QuickAction{
		{Label: "Browse properties", Utterance: "I want to search properties"},
		{Label: "Flats in Mumbai", Utterance: "Show me flats in Mumbai"},
		{Label: "REIT investing", Utterance: "Tell me about REIT investing"},
		{Label: "Talk to an advisor", Utterance: "I want to contact an advisor"},
	}
}

func navigate(view chat.View, params map[string]string) *chat.Navigation {
	nav := chat.NewNavigation(view, params)
	return &nav
}
