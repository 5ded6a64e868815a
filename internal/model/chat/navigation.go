package chat

import (
	"net/url"
	"sort"
)

// View is a destination on the public site that the assistant may send the user to.
type View string

const (
	ViewHome         View = "home"
	ViewSearch       View = "search"
	ViewServices     View = "services"
	ViewContact      View = "contact"
	ViewCalculators  View = "calculators"
	ViewReitTaxation View = "reit-taxation"
	ViewValuation    View = "valuation"
	ViewJobProfiles  View = "job-profiles"
)

var viewPaths = map[View]string{
	ViewHome:         "/",
	ViewSearch:       "/search",
	ViewServices:     "/services",
	ViewContact:      "/contact",
	ViewCalculators:  "/calculators",
	ViewReitTaxation: "/reports/reit-taxation",
	ViewValuation:    "/reports/valuation",
	ViewJobProfiles:  "/reports/job-profiles",
}

// Known reports whether v is one of the statically declared destinations.
func (v View) Known() bool {
	_, ok := viewPaths[v]
	return ok
}

// Navigation asks the client to move to another view, optionally with query parameters.
type Navigation struct {
	View   View              `json:"view"`
	Params map[string]string `json:"params,omitempty"`
	Path   string            `json:"path"`
}

// NewNavigation builds a navigation action and precomputes its client path.
func NewNavigation(view View, params map[string]string) Navigation {
	nav := Navigation{View: view, Params: params}
	nav.Path = nav.BuildPath()
	return nav
}

// BuildPath renders the destination as a site-relative URL.
func (n Navigation) BuildPath() string {
	base, ok := viewPaths[n.View]
	if !ok {
		return ""
	}
	if len(n.Params) == 0 {
		return base
	}

	keys := make([]string, 0, len(n.Params))
	for k := range n.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	q := url.Values{}
	for _, k := range keys {
		q.Set(k, n.Params[k])
	}
	return base + "?" + q.Encode()
}

// Clone returns a deep copy of n.
func (n Navigation) Clone() Navigation {
	out := n
	if n.Params != nil {
		out.Params = make(map[string]string, len(n.Params))
		for k, v := range n.Params {
			out.Params[k] = v
		}
	}
	return out
}
