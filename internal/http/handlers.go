package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"finora/internal/contracts"
	"finora/internal/core"
	"finora/internal/log"
	"finora/internal/storage"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.storage != nil {
		if err := s.storage.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleAccounts returns the user's linked bank accounts.
func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	token, ok := s.requireToken(w, r, userID)
	if !ok {
		return
	}

	accounts, err := s.accounts.Accounts(r.Context(), token)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Account fetch failed",
			log.FieldUserID, userID, log.FieldError, err)
		writeError(w, http.StatusBadGateway, "bank data source unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"accounts": accounts})
}

// handleTransactions returns the normalized transaction window. When
// the live source fails the SQLite cache from the last worker sync is
// served instead.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	token, ok := s.requireToken(w, r, userID)
	if !ok {
		return
	}

	txns, cached, err := s.transactionWindow(r, userID, token)
	if err != nil {
		writeError(w, http.StatusBadGateway, "bank data source unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": txns,
		"cached":       cached,
	})
}

// handleContracts runs recurring-payment detection over the transaction
// window. Results are cached per user for a few minutes.
func (s *Server) handleContracts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	key := contractsCacheKey(userID)
	if list, found := s.contractsCache.Get(key); found {
		writeJSON(w, http.StatusOK, map[string]any{"contracts": list})
		return
	}

	token, ok := s.requireToken(w, r, userID)
	if !ok {
		return
	}

	txns, _, err := s.transactionWindow(r, userID, token)
	if err != nil {
		writeError(w, http.StatusBadGateway, "bank data source unavailable")
		return
	}

	list := contracts.DetectNormalized(txns)
	s.contractsCache.Set(key, list)

	log.FromContext(r.Context()).InfoContext(r.Context(), "Detected recurring contracts",
		log.FieldUserID, userID,
		"transactions", len(txns),
		"contracts", len(list))
	writeJSON(w, http.StatusOK, map[string]any{"contracts": list})
}

// handleSaveToken links a bank data source by storing the user's
// aggregator access token.
func (s *Server) handleSaveToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, http.MethodPut)
		return
	}
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token := strings.TrimSpace(body.Token)
	if token == "" {
		writeError(w, http.StatusBadRequest, "token must not be empty")
		return
	}

	if err := s.storage.SaveAccessToken(r.Context(), userID, token); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Token save failed",
			log.FieldUserID, userID, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not save token")
		return
	}

	// A new token means a new data source; stale detection results go.
	s.contractsCache.Delete(contractsCacheKey(userID))
	w.WriteHeader(http.StatusNoContent)
}

// handleSync queues a background refresh of the user's transaction cache.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	if s.publisher == nil {
		writeError(w, http.StatusServiceUnavailable, "background sync not configured")
		return
	}

	if err := s.publisher.PublishAccountSync(r.Context(), userID); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Sync publish failed",
			log.FieldUserID, userID, log.FieldError, err)
		writeError(w, http.StatusServiceUnavailable, "could not queue sync")
		return
	}

	s.contractsCache.Delete(contractsCacheKey(userID))
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "queued"})
}

// requireToken resolves the user's aggregator token, writing a 400 when
// no bank account is linked yet.
func (s *Server) requireToken(w http.ResponseWriter, r *http.Request, userID int64) (string, bool) {
	token, err := s.storage.AccessToken(r.Context(), userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Token lookup failed",
			log.FieldUserID, userID, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not read linked account")
		return "", false
	}
	if token == "" {
		writeError(w, http.StatusBadRequest, "no bank account linked")
		return "", false
	}
	return token, true
}

// transactionWindow fetches the live window and normalizes it, falling
// back to the SQLite cache when the source is unreachable. The bool
// reports whether cached data was served.
func (s *Server) transactionWindow(r *http.Request, userID int64, token string) ([]core.Transaction, bool, error) {
	ctx := r.Context()
	raw, err := s.txns.Recent(ctx, token, time.Now(), s.windowDays)
	if err == nil {
		return contracts.Normalize(raw), false, nil
	}
	log.FromContext(ctx).WarnContext(ctx, "Live source failed, trying cache",
		log.FieldUserID, userID, log.FieldError, err)

	since := core.Date{Time: time.Now().UTC().AddDate(0, 0, -s.windowDays)}
	cached, cacheErr := s.storage.RecentTransactions(ctx, userID, since)
	if cacheErr != nil || len(cached) == 0 {
		return nil, false, err
	}
	return cached, true, nil
}

func contractsCacheKey(userID int64) string {
	return "contracts:" + strconv.FormatInt(userID, 10)
}
