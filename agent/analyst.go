package agent

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alimnaqvi/etf-analyzer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator wires the experts as tools of the conversation lead.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You facilitate the conversation and solve the user's request about
			their ETF portfolio.

			Learn from the Tools what each expert can answer. They are at your
			service and keep context of your previous questions.

			The user asks about their own funds, returns and exposure. Check
			the report tables through the Analyst before answering figures.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher is an expert with search grounding for questions about
// funds, markets and news.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `An expert on financial products and markets. Ask the
		Researcher whenever you need recent or grounding information about a
		fund, a company or an index.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert on funds, ETFs, companies and markets. You
			leverage Google Search to ground your assertions and relate the
			latest news to the user's request.
			`}}},
		},
	}
}

// NewAnalyst is an expert that reads the generated report tables from
// reportDir.
func NewAnalyst(reportDir string) *Expert {
	lib := []Function{newReportReader(reportDir)}

	return &Expert{
		Name: "Analyst",
		Description: `The Analyst has access to the user's generated analytics
		report: price history, yearly returns, investment summaries and
		exposure breakdowns. Ask the Analyst for any figure about the user's
		own portfolio.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an analyst in charge of the user's portfolio report. Use
			the ReadTable tool to load the CSV tables you need, then answer
			with exact figures. Missing values appear literally as NaN.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements Function from a declaration and a callback.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// reportTables are the tables the report reader exposes to the model.
var reportTables = []string{
	analyzer.PriceHistoryFile,
	analyzer.FundReturnsFile,
	analyzer.PortfolioReturnsFile,
	analyzer.FundSummaryFile,
	analyzer.PortfolioSummaryFile,
	analyzer.ExposureCountryFile,
	analyzer.ExposureSectorFile,
	analyzer.ExposureCompanyFile,
}

func newReportReader(reportDir string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "ReadTable",
			Description: fmt.Sprintf(`ReadTable returns one report table as raw
			CSV, header row included. Available tables: %v. Not every table
			exists in every report.`, reportTables),
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"table": {
						Type:        genai.TypeString,
						Description: "File name of the table to read.",
					},
				},
				Required: []string{"table"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The table content in CSV format.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			fresp := &genai.FunctionResponse{
				ID:       id,
				Name:     "ReadTable",
				Response: map[string]any{},
			}
			table, ok := args["table"].(string)
			if !ok {
				fresp.Response["error"] = fmt.Sprintf("argument 'table' is not a string but %T", args["table"])
				return fresp
			}
			allowed := false
			for _, name := range reportTables {
				if name == table {
					allowed = true
					break
				}
			}
			if !allowed {
				fresp.Response["error"] = fmt.Sprintf("unknown table %q, pick one of %v", table, reportTables)
				return fresp
			}
			content, err := os.ReadFile(filepath.Join(reportDir, table))
			if err != nil {
				fresp.Response["error"] = fmt.Sprintf("cannot read table %q: %v", table, err)
				return fresp
			}
			fresp.Response["output"] = string(content)
			return fresp
		},
	}
}
