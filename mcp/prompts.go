package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spartandoc/spartandoc"
)

// registerPrompts registers all MCP prompts.
func (s *Server) registerPrompts(server *mcp.Server) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "component_usage",
		Description: "Guide for using a spartan-ng component: asks for the component's API and examples, then explains idiomatic usage of the Brain and Helm tiers.",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "component",
				Description: "Component name, e.g. button or alert-dialog",
				Required:    true,
			},
		},
	}, s.componentUsagePrompt)
}

func (s *Server) componentUsagePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	component := spartandoc.NormalizeKey(req.Params.Arguments["component"])
	if component == "" {
		return nil, spartandoc.Errorf(spartandoc.EINVALID, "component argument required")
	}

	text := fmt.Sprintf(`Explain how to use the spartan-ng %q component in an Angular application.

Use the get_component_api tool to retrieve its API, then cover:
1. The Brain (Brn*) primitives: selectors, inputs and outputs, and what behavior they provide without styling.
2. The Helm (Hlm*) directives that style those primitives.
3. A minimal working template combining both tiers, based on the examples from get_component_examples.
4. Common inputs worth configuring and their defaults.

If the API data comes back empty, say the component's API is not documented rather than guessing.`, component)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Usage guide for the %s component", component),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}, nil
}
