package mock

import "github.com/spartandoc/spartandoc"

var _ spartandoc.APIExtractor = (*APIExtractor)(nil)

// APIExtractor is a mock implementation of spartandoc.APIExtractor.
type APIExtractor struct {
	ExtractAPIInfoFn func(html string) (*spartandoc.APIInfo, error)
}

func (e *APIExtractor) ExtractAPIInfo(html string) (*spartandoc.APIInfo, error) {
	return e.ExtractAPIInfoFn(html)
}

var _ spartandoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of spartandoc.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*spartandoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*spartandoc.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ spartandoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of spartandoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
