package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spartandoc/spartandoc"
)

const componentsResourceURI = "spartandoc://components"

// registerResources registers all MCP resources.
func (s *Server) registerResources(server *mcp.Server) {
	server.AddResource(&mcp.Resource{
		URI:         componentsResourceURI,
		Name:        "components",
		Description: "The known spartan-ng component and documentation topic sets, with their page URLs.",
		MIMEType:    "application/json",
	}, s.readComponentsResource)
}

// readComponentsResource serves the component registry as JSON.
func (s *Server) readComponentsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	type entry struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}

	var payload struct {
		Components []entry `json:"components"`
		Topics     []entry `json:"topics"`
	}
	for _, name := range spartandoc.Components() {
		payload.Components = append(payload.Components, entry{Name: name, URL: spartandoc.ComponentURL(s.BaseURL, name)})
	}
	for _, topic := range spartandoc.DocTopics() {
		payload.Topics = append(payload.Topics, entry{Name: topic, URL: spartandoc.DocURL(s.BaseURL, topic)})
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      componentsResourceURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
