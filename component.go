package spartandoc

// MaxExamples caps the number of code examples extracted from a single
// documentation page to bound output size.
const MaxExamples = 10

// InputProp describes one row of a component's Inputs table.
type InputProp struct {
	Name        string `json:"prop"`
	Type        string `json:"type"`
	Default     string `json:"default"`
	Description string `json:"description"`
}

// OutputProp describes one row of a component's Outputs table.
type OutputProp struct {
	Name        string `json:"prop"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ComponentAPI is the structured API surface of a single component
// primitive as documented on its page: the selector used to invoke it plus
// its inputs and outputs in source-document order.
type ComponentAPI struct {
	Name     string       `json:"name"`
	Selector string       `json:"selector,omitempty"`
	Inputs   []InputProp  `json:"inputs"`
	Outputs  []OutputProp `json:"outputs"`
}

// Example is a code example extracted from a documentation page.
type Example struct {
	Title    string `json:"title"`
	Code     string `json:"code"`
	Language string `json:"language"`
}

// APIInfo holds everything extracted from one documentation page.
//
// BrainAPI and HelmAPI are independently optional: a page without a
// "Brain API" or "Helm API" section yields an empty slice for that tier,
// never an error. Callers must treat empty slices as "not documented",
// not as a failure.
type APIInfo struct {
	BrainAPI []ComponentAPI `json:"brainAPI"`
	HelmAPI  []ComponentAPI `json:"helmAPI"`
	Examples []Example      `json:"examples"`
}

// Empty reports whether no API data was found on the page.
func (a *APIInfo) Empty() bool {
	return len(a.BrainAPI) == 0 && len(a.HelmAPI) == 0
}

// APIExtractor extracts structured API data from documentation HTML.
type APIExtractor interface {
	// ExtractAPIInfo parses a documentation page. Missing sections or
	// tables degrade to empty slices; an error is returned only for
	// catastrophic parse failures, in which case the result is the
	// zero-value APIInfo.
	ExtractAPIInfo(html string) (*APIInfo, error)
}
