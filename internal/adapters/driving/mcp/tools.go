package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
)

// ParseInput is the input schema for the parse_syllabus tool.
type ParseInput struct {
	Text string `json:"text" jsonschema:"the syllabus text to read"`
}

// ParseOutput is the output schema for the parse_syllabus tool.
type ParseOutput struct {
	Name        string             `json:"name"`
	Assignments []AssignmentOutput `json:"assignments"`
	TotalWeight float64            `json:"total_weight"`
}

// ImportInput is the input schema for the import_syllabus tool.
type ImportInput struct {
	Text   string `json:"text" jsonschema:"the syllabus text to read"`
	Name   string `json:"name,omitempty" jsonschema:"calculator name, overriding the one found in the text"`
	DryRun bool   `json:"dry_run,omitempty" jsonschema:"parse only, without creating a calculator"`
}

// ImportOutput is the output schema for the import_syllabus tool.
type ImportOutput struct {
	Parsed     ParseOutput       `json:"parsed"`
	Calculator *CalculatorOutput `json:"calculator,omitempty"`
}

// ListCalculatorsInput is the input schema for the list_calculators tool.
type ListCalculatorsInput struct{}

// ListCalculatorsOutput is the output schema for the list_calculators tool.
type ListCalculatorsOutput struct {
	Calculators []CalculatorSummaryOutput `json:"calculators"`
	Count       int                       `json:"count"`
}

// CalculatorSummaryOutput is one row of list_calculators.
type CalculatorSummaryOutput struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Current     float64 `json:"current"`
	Letter      string  `json:"letter"`
	Assignments int     `json:"assignments"`
}

// GetCalculatorInput is the input schema for the get_calculator tool.
type GetCalculatorInput struct {
	ID int `json:"id" jsonschema:"the calculator number"`
}

// CalculatorOutput is a calculator with its computed grades.
type CalculatorOutput struct {
	ID              int                `json:"id"`
	Name            string             `json:"name"`
	DesiredGrade    string             `json:"desired_grade,omitempty"`
	Assignments     []AssignmentOutput `json:"assignments"`
	Current         float64            `json:"current"`
	Letter          string             `json:"letter"`
	Points          string             `json:"points"`
	CompletedWeight float64            `json:"completed_weight"`
	RemainingWeight float64            `json:"remaining_weight"`
	Required        *float64           `json:"required,omitempty"`
}

// AssignmentOutput is one assignment row.
type AssignmentOutput struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Weight  string `json:"weight"`
	Grade   string `json:"grade,omitempty"`
	DueDate string `json:"due_date,omitempty"`
}

// GPAInput is the input schema for the overall_gpa tool.
type GPAInput struct{}

// GPAOutput is the output schema for the overall_gpa tool.
type GPAOutput struct {
	GPA      string          `json:"gpa"`
	Counted  int             `json:"counted"`
	Subjects []SubjectOutput `json:"subjects"`
}

// SubjectOutput is one subject of overall_gpa.
type SubjectOutput struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Current float64 `json:"current"`
	Letter  string  `json:"letter"`
	Points  string  `json:"points"`
	Counted bool    `json:"counted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_syllabus",
		Description: "Read graded assignments, weights and due dates from syllabus text without saving anything",
	}, s.handleParse)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "import_syllabus",
		Description: "Create a grade calculator from syllabus text",
	}, s.handleImport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_calculators",
		Description: "List all grade calculators with their current grade",
	}, s.handleListCalculators)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_calculator",
		Description: "Show one calculator's assignments, current grade and the grade needed on remaining work",
	}, s.handleGetCalculator)

	if s.ports.GPA != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "overall_gpa",
			Description: "Compute the overall GPA across all calculators",
		}, s.handleGPA)
	}
}

func (s *Server) handleParse(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ParseInput,
) (*mcp.CallToolResult, ParseOutput, error) {
	return nil, toParseOutput(s.ports.Syllabus.Parse(input.Text)), nil
}

func (s *Server) handleImport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImportInput,
) (*mcp.CallToolResult, ImportOutput, error) {
	res, err := s.ports.Syllabus.ImportText(ctx, input.Text, driving.ImportOptions{
		Name:   input.Name,
		DryRun: input.DryRun,
	})
	if err != nil {
		return nil, ImportOutput{}, err
	}

	output := ImportOutput{Parsed: toParseOutput(res.Parsed)}
	if res.Calculator != nil {
		calc, err := s.calculatorOutput(ctx, res.Calculator)
		if err != nil {
			return nil, ImportOutput{}, err
		}
		output.Calculator = calc
	}
	return nil, output, nil
}

func (s *Server) handleListCalculators(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListCalculatorsInput,
) (*mcp.CallToolResult, ListCalculatorsOutput, error) {
	calcs, err := s.ports.Calculator.List(ctx)
	if err != nil {
		return nil, ListCalculatorsOutput{}, err
	}

	output := ListCalculatorsOutput{
		Calculators: make([]CalculatorSummaryOutput, len(calcs)),
		Count:       len(calcs),
	}
	for i, c := range calcs {
		sum, err := s.ports.Calculator.Summary(ctx, c.ID)
		if err != nil {
			return nil, ListCalculatorsOutput{}, err
		}
		output.Calculators[i] = CalculatorSummaryOutput{
			ID:          c.ID,
			Name:        c.Name,
			Current:     sum.Current,
			Letter:      sum.Letter.Letter,
			Assignments: len(c.Assignments),
		}
	}
	return nil, output, nil
}

func (s *Server) handleGetCalculator(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetCalculatorInput,
) (*mcp.CallToolResult, CalculatorOutput, error) {
	calc, err := s.ports.Calculator.Get(ctx, input.ID)
	if err != nil {
		return nil, CalculatorOutput{}, fmt.Errorf("calculator %d: %w", input.ID, err)
	}
	output, err := s.calculatorOutput(ctx, calc)
	if err != nil {
		return nil, CalculatorOutput{}, err
	}
	return nil, *output, nil
}

func (s *Server) handleGPA(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GPAInput,
) (*mcp.CallToolResult, GPAOutput, error) {
	report, err := s.ports.GPA.Overall(ctx)
	if err != nil {
		return nil, GPAOutput{}, err
	}

	output := GPAOutput{
		GPA:      domain.FormatGPA(report.GPA),
		Counted:  report.Counted,
		Subjects: make([]SubjectOutput, len(report.Subjects)),
	}
	for i, sub := range report.Subjects {
		output.Subjects[i] = SubjectOutput{
			ID:      sub.CalculatorID,
			Name:    sub.Name,
			Current: sub.Current,
			Letter:  sub.Info.Letter,
			Points:  sub.Info.PointsString(),
			Counted: sub.Counted,
		}
	}
	return nil, output, nil
}

func (s *Server) calculatorOutput(ctx context.Context, calc *domain.Calculator) (*CalculatorOutput, error) {
	sum, err := s.ports.Calculator.Summary(ctx, calc.ID)
	if err != nil {
		return nil, fmt.Errorf("summarising calculator %d: %w", calc.ID, err)
	}

	output := &CalculatorOutput{
		ID:              calc.ID,
		Name:            calc.Name,
		DesiredGrade:    calc.DesiredGrade,
		Assignments:     make([]AssignmentOutput, len(calc.Assignments)),
		Current:         sum.Current,
		Letter:          sum.Letter.Letter,
		Points:          sum.Letter.PointsString(),
		CompletedWeight: sum.CompletedWeight,
		RemainingWeight: sum.RemainingWeight,
		Required:        sum.Required,
	}
	for i, a := range calc.Assignments {
		output.Assignments[i] = AssignmentOutput{
			ID:      a.ID,
			Name:    a.Name,
			Weight:  a.Weight,
			Grade:   a.Grade,
			DueDate: a.DueDate,
		}
	}
	return output, nil
}

func toParseOutput(p domain.ParseResult) ParseOutput {
	output := ParseOutput{
		Name:        p.Name,
		Assignments: make([]AssignmentOutput, len(p.Assignments)),
	}
	for i, a := range p.Assignments {
		output.Assignments[i] = AssignmentOutput{
			Name:    a.Name,
			Weight:  a.Weight,
			DueDate: a.DueDate,
		}
		output.TotalWeight += domain.ParseWeight(a.Weight)
	}
	return output
}
