package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for gradebook resources.
	uriScheme = "gradebook://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "calculators",
		Name:        "calculators",
		Description: "All grade calculators with their current grade",
		MIMEType:    "application/json",
	}, s.handleCalculatorsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "calculators/{id}",
		Name:        "calculator",
		Description: "One calculator with its assignments and computed grades",
		MIMEType:    "application/json",
	}, s.handleCalculatorResource)

	if s.ports.GPA != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "scale",
			Name:        "grade-scale",
			Description: "The grade scale used for letters and GPA points",
			MIMEType:    "application/json",
		}, s.handleScaleResource)
	}
}

// handleCalculatorsResource returns every calculator in list order.
func (s *Server) handleCalculatorsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	_, output, err := s.handleListCalculators(ctx, nil, ListCalculatorsInput{})
	if err != nil {
		return nil, fmt.Errorf("listing calculators: %w", err)
	}
	return jsonResource(req.Params.URI, output.Calculators)
}

// handleCalculatorResource returns a single calculator.
func (s *Server) handleCalculatorResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractCalculatorID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	calc, err := s.ports.Calculator.Get(ctx, id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	output, err := s.calculatorOutput(ctx, calc)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, output)
}

// handleScaleResource returns the active grade scale.
func (s *Server) handleScaleResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	scale, err := s.ports.GPA.Scale(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading scale: %w", err)
	}
	return jsonResource(req.Params.URI, scale.Sorted())
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCalculatorID extracts the ID from a URI like gradebook://calculators/{id}.
func extractCalculatorID(uri string) (int, bool) {
	const prefix = uriScheme + "calculators/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
