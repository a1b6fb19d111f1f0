package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rgehrsitz/finplan/internal/breakeven"
	"github.com/rgehrsitz/finplan/internal/compare"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/expense"
	"github.com/rgehrsitz/finplan/internal/metrics"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/rgehrsitz/finplan/internal/planner"
)

// profileBody overlays a request on the demo profile. Basic salary is
// tracked separately so an omitted value never exceeds the gross sent.
type profileBody struct {
	domain.TaxProfile
	Basic *decimal.Decimal `json:"basic_salary"`
}

func newProfileBody() profileBody {
	return profileBody{TaxProfile: domain.SampleTaxProfile()}
}

func (b profileBody) profile() domain.TaxProfile {
	p := b.TaxProfile
	if b.Basic != nil {
		p.BasicSalary = *b.Basic
	} else {
		p.BasicSalary = decimal.Min(p.BasicSalary, p.GrossSalary)
	}
	return p
}

type taxRequest struct {
	profileBody
	// Advice requests narrative advice; nil means "when an advisor is configured"
	Advice *bool `json:"advice"`
}

type compareRequest struct {
	Profile    *domain.TaxProfile `json:"profile"`
	Templates  []string           `json:"templates"`
	Transforms []string           `json:"transforms"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleTax(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := taxRequest{profileBody: newProfileBody()}
		if !decodeBody(w, r, &req) {
			return
		}
		profile := req.profile()
		if !validateProfile(w, deps, &profile) {
			return
		}

		wantAdvice := deps.Evaluator.Advisor != nil
		if req.Advice != nil {
			wantAdvice = wantAdvice && *req.Advice
		}

		var decision *domain.TaxDecision
		if wantAdvice {
			decision = deps.Evaluator.Evaluate(r.Context(), profile)
		} else {
			d := deps.Evaluator.Compute(profile)
			decision = &d
		}
		metrics.ObserveDecision(decision)

		writeJSON(w, http.StatusOK, output.NewTaxResponse(decision, deps.Evaluator.Rules.Currency))
	}
}

func handleBreakEven(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := newProfileBody()
		if !decodeBody(w, r, &body) {
			return
		}
		profile := body.profile()
		if !validateProfile(w, deps, &profile) {
			return
		}

		result, err := breakeven.NewDefaultSolver(deps.Evaluator).Solve(r.Context(), profile)
		if err != nil {
			deps.Logger.Warn("break-even failed",
				zap.String("request_id", RequestIDFromContext(r.Context())),
				zap.Error(err))
			httpError(w, http.StatusInternalServerError, "api_error", "break-even search failed: %v", err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func handleCompare(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req compareRequest
		if !decodeBody(w, r, &req) {
			return
		}

		profile := domain.SampleTaxProfile()
		if req.Profile != nil {
			profile = *req.Profile
		}
		if !validateProfile(w, deps, &profile) {
			return
		}

		templates := req.Templates
		if len(templates) == 0 && len(req.Transforms) == 0 {
			templates = []string{"max_80c", "max_all", "raise_10pct"}
		}

		set, err := compare.NewCompareEngine(deps.Evaluator).Compare(r.Context(), profile, compare.CompareOptions{
			Templates:      templates,
			TransformSpecs: req.Transforms,
		})
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}

		writeJSON(w, http.StatusOK, set)
	}
}

func handleSIP(w http.ResponseWriter, r *http.Request) {
	in := domain.SIPInput{
		MonthlyAmount: decimal.NewFromInt(10000),
		Years:         10,
		AnnualRate:    decimal.NewFromInt(12),
	}
	if !decodeBody(w, r, &in) {
		return
	}
	respond(w, func() (any, error) { return planner.ProjectSIP(in) })
}

func handleLoan(w http.ResponseWriter, r *http.Request) {
	in := domain.LoanInput{
		Principal:  decimal.NewFromInt(500000),
		Years:      5,
		AnnualRate: decimal.NewFromInt(10),
	}
	if !decodeBody(w, r, &in) {
		return
	}
	respond(w, func() (any, error) { return planner.CalculateEMI(in) })
}

func handleBudget(w http.ResponseWriter, r *http.Request) {
	in := domain.BudgetInput{
		Income:        decimal.NewFromInt(50000),
		Rent:          decimal.NewFromInt(15000),
		Food:          decimal.NewFromInt(8000),
		Transport:     decimal.NewFromInt(5000),
		Entertainment: decimal.NewFromInt(3000),
		Other:         decimal.NewFromInt(2000),
	}
	if !decodeBody(w, r, &in) {
		return
	}
	respond(w, func() (any, error) { return planner.AnalyzeBudget(in) })
}

func handleGoal(w http.ResponseWriter, r *http.Request) {
	in := domain.GoalInput{
		GoalAmount:    decimal.NewFromInt(1000000),
		Years:         5,
		MonthlyIncome: decimal.NewFromInt(50000),
		AnnualReturn:  decimal.NewFromInt(12),
	}
	if !decodeBody(w, r, &in) {
		return
	}
	respond(w, func() (any, error) { return planner.PlanGoal(in) })
}

type portfolioRequest struct {
	Holdings []domain.Holding `json:"holdings"`
	// Prices quote symbols when the server has no price source of its own
	Prices map[string]decimal.Decimal `json:"prices"`
}

func demoHoldings() []domain.Holding {
	return []domain.Holding{
		{Symbol: "AAPL", Quantity: decimal.NewFromInt(10), BuyPrice: decimal.NewFromInt(150)},
		{Symbol: "TSLA", Quantity: decimal.NewFromInt(5), BuyPrice: decimal.NewFromInt(600)},
		{Symbol: "INFY.NS", Quantity: decimal.NewFromInt(20), BuyPrice: decimal.NewFromInt(1300)},
	}
}

func handlePortfolio(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := portfolioRequest{Holdings: demoHoldings()}
		if !decodeBody(w, r, &req) {
			return
		}

		prices := deps.Prices
		if prices == nil {
			static := make(planner.StaticPrices, len(req.Prices))
			for symbol, p := range req.Prices {
				static[strings.ToUpper(strings.TrimSpace(symbol))] = p
			}
			prices = static
		}

		respond(w, func() (any, error) { return planner.ValuePortfolio(r.Context(), req.Holdings, prices) })
	}
}

type expenseResponse struct {
	expense.Summary
	Transactions []expense.Transaction `json:"transactions"`
	Report       string                `json:"report"`
}

// handleExpenses categorises a CSV statement sent either as the raw body or
// as the "file" field of a multipart form.
func handleExpenses(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		currency := deps.Evaluator.Rules.Currency

		var body io.Reader = r.Body
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			file, _, err := r.FormFile("file")
			if err != nil {
				statementError(w, err)
				return
			}
			defer file.Close()
			body = file
		}

		stmt, err := expense.ParseCSV(body, currency, nil)
		if err != nil {
			statementError(w, err)
			return
		}

		summary := expense.Summarize(stmt, currency)
		writeJSON(w, http.StatusOK, expenseResponse{
			Summary:      summary,
			Transactions: stmt.Transactions,
			Report:       expense.Report(summary),
		})
	}
}

func statementError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		httpError(w, http.StatusRequestEntityTooLarge, "invalid_request_error", "request body exceeds %d bytes", tooLarge.Limit)
		return
	}
	httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid statement: %v", err)
}

// respond writes the calculator result, mapping validation errors to 400
func respond(w http.ResponseWriter, calc func() (any, error)) {
	result, err := calc()
	if err != nil {
		if domain.IsValidationError(err) {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}
		httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// decodeBody decodes a JSON body into v, which carries the defaults. An
// empty body keeps them all.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		httpError(w, http.StatusRequestEntityTooLarge, "invalid_request_error", "request body exceeds %d bytes", tooLarge.Limit)
		return false
	}
	httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
	return false
}

func validateProfile(w http.ResponseWriter, deps Deps, p *domain.TaxProfile) bool {
	if err := deps.Parser.ValidateProfile(p); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"message": fmt.Sprintf(format, args...),
			"type":    errType,
		},
	})
}
