package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"fjacquet/debtsolver/internal/journal"
	"fjacquet/debtsolver/internal/ledger"
	"fjacquet/debtsolver/internal/logging"
	"fjacquet/debtsolver/internal/models"
	"fjacquet/debtsolver/internal/solver"
	"fjacquet/debtsolver/internal/solvererror"
)

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	solver          *solver.Solver
	logger          logging.Logger
	currency        models.Currency
	maxBodyBytes    int64
	maxGroupSize    int
	maxCombinations int
}

// transactionRequest is one recorded debt. Debtor and Creditor are shorthands
// for single-element Debtors and Creditors.
type transactionRequest struct {
	Debtor    string   `json:"debtor,omitempty"`
	Creditor  string   `json:"creditor,omitempty"`
	Debtors   []string `json:"debtors,omitempty"`
	Creditors []string `json:"creditors,omitempty"`
	Amount    string   `json:"amount"`
}

type settleRequest struct {
	Currency        string               `json:"currency,omitempty"`
	MaxGroupSize    *int                 `json:"max_group_size,omitempty"`
	MaxCombinations *int                 `json:"max_combinations,omitempty"`
	Transactions    []transactionRequest `json:"transactions"`
}

type balanceResponse struct {
	Party  string `json:"party"`
	Amount string `json:"amount"`
}

type settleResponse struct {
	RunID    string               `json:"run_id"`
	Currency string               `json:"currency"`
	Payments []journal.PaymentRow `json:"payments"`
	Balances []balanceResponse    `json:"balances"`
}

type balancesResponse struct {
	Currency string            `json:"currency"`
	Balances []balanceResponse `json:"balances"`
}

// --- helpers ---

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.WithError(err).Warn("Failed to encode response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps a settlement error to an HTTP status. An unbalanced ledger
// is well-formed input that cannot be settled; everything else is bad input.
func statusFor(err error) int {
	var unbalanced *solvererror.UnbalancedLedgerError
	if errors.As(err, &unbalanced) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request) (*settleRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req settleRequest
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return &req, nil
}

// toJournal converts the request into a journal, using the configured
// currency when the request does not name one.
func (req *settleRequest) toJournal(fallback models.Currency) (*journal.Journal, error) {
	currency := fallback
	if strings.TrimSpace(req.Currency) != "" {
		parsed, err := models.ParseCurrency(req.Currency)
		if err != nil {
			return nil, err
		}
		currency = parsed
	}

	j := &journal.Journal{Currency: currency}
	for i, tx := range req.Transactions {
		debtors := tx.Debtors
		if tx.Debtor != "" {
			debtors = append([]string{tx.Debtor}, debtors...)
		}
		creditors := tx.Creditors
		if tx.Creditor != "" {
			creditors = append([]string{tx.Creditor}, creditors...)
		}
		if len(debtors) == 0 || len(creditors) == 0 {
			return nil, fmt.Errorf("transaction %d: debtors and creditors are required", i+1)
		}

		entry, err := journal.NewEntry(debtors, creditors, tx.Amount, "", currency)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		j.Entries = append(j.Entries, entry)
	}
	return j, nil
}

// searchOptions layers the request overrides on the solver defaults and
// keeps the group search within the server ceilings. An explicit group size
// above the ceiling is rejected; an unbounded or oversized default is
// clamped, and so is any combination budget.
func (h *Handlers) searchOptions(req *settleRequest) (solver.Options, error) {
	options := h.solver.Options()
	if req.MaxGroupSize != nil {
		if *req.MaxGroupSize < 0 || *req.MaxGroupSize > h.maxGroupSize {
			return options, fmt.Errorf("max_group_size must be between 0 and %d, got: %d", h.maxGroupSize, *req.MaxGroupSize)
		}
		options.MaxGroupSize = *req.MaxGroupSize
	}
	if req.MaxCombinations != nil {
		if *req.MaxCombinations < 0 {
			return options, fmt.Errorf("max_combinations must be 0 or greater, got: %d", *req.MaxCombinations)
		}
		options.MaxCombinations = *req.MaxCombinations
	}

	if options.MaxGroupSize == 0 || options.MaxGroupSize > h.maxGroupSize {
		options.MaxGroupSize = h.maxGroupSize
	}
	if options.MaxCombinations == 0 || options.MaxCombinations > h.maxCombinations {
		options.MaxCombinations = h.maxCombinations
	}
	return options, nil
}

func toBalanceResponses(entries []ledger.Entry) []balanceResponse {
	out := make([]balanceResponse, 0, len(entries))
	for _, e := range entries {
		places := e.Balance.Currency.Exponent()
		out = append(out, balanceResponse{
			Party:  string(e.Party),
			Amount: e.Balance.Amount.StringFixed(places),
		})
	}
	return out
}

// --- Health ---

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Settle ---

func (h *Handlers) Settle(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(w, r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	j, err := req.toJournal(h.currency)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	options, err := h.searchOptions(req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.solver.SettleWith(j, options)
	if err != nil {
		h.writeError(w, statusFor(err), err.Error())
		return
	}

	payments := make([]journal.PaymentRow, 0, len(result.Payments))
	for _, p := range result.Payments {
		payments = append(payments, journal.NewPaymentRow(p))
	}

	h.writeJSON(w, http.StatusOK, settleResponse{
		RunID:    result.RunID,
		Currency: result.Currency.String(),
		Payments: payments,
		Balances: toBalanceResponses(result.Balances),
	})
}

// --- Balances ---

func (h *Handlers) Balances(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(w, r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	j, err := req.toJournal(h.currency)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	balances, err := h.solver.Balances(j)
	if err != nil {
		h.writeError(w, statusFor(err), err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, balancesResponse{
		Currency: j.Currency.String(),
		Balances: toBalanceResponses(balances),
	})
}
