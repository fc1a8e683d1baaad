package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"bankroll/auth"
	"bankroll/domain/entities"
	"bankroll/domain/interfaces"
	"bankroll/domain/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type sessionRequest struct {
	BuyIn      float64    `json:"buy_in"`
	CashOut    float64    `json:"cash_out"`
	Duration   float64    `json:"duration"`
	GameType   string     `json:"game_type"`
	Location   string     `json:"location"`
	Blinds     string     `json:"blinds"`
	Notes      string     `json:"notes"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
}

func (req sessionRequest) toDraft() entities.SessionDraft {
	draft := entities.SessionDraft{
		BuyIn:    req.BuyIn,
		CashOut:  req.CashOut,
		Duration: req.Duration,
		GameType: req.GameType,
		Location: req.Location,
		Blinds:   req.Blinds,
		Notes:    req.Notes,
	}
	if req.OccurredAt != nil {
		draft.OccurredAt = *req.OccurredAt
	}
	return draft
}

type sessionResponse struct {
	ID         uuid.UUID `json:"id"`
	BuyIn      float64   `json:"buy_in"`
	CashOut    float64   `json:"cash_out"`
	Duration   float64   `json:"duration"`
	GameType   string    `json:"game_type"`
	Location   string    `json:"location"`
	Blinds     string    `json:"blinds"`
	Notes      string    `json:"notes"`
	ProfitLoss float64   `json:"profit_loss"`
	ROIPercent float64   `json:"roi_percent"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toSessionResponse(s *entities.Session) sessionResponse {
	return sessionResponse{
		ID:         s.ID,
		BuyIn:      s.BuyIn,
		CashOut:    s.CashOut,
		Duration:   s.Duration,
		GameType:   s.GameType,
		Location:   s.Location,
		Blinds:     s.Blinds,
		Notes:      s.Notes,
		ProfitLoss: s.ProfitLoss(),
		ROIPercent: s.ROIPercent(),
		OccurredAt: s.OccurredAt,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

type statsResponse struct {
	InitialBankroll    float64 `json:"initial_bankroll"`
	TotalBankroll      float64 `json:"total_bankroll"`
	CumulativeProfit   float64 `json:"cumulative_profit"`
	HoursPlayed        float64 `json:"hours_played"`
	ProfitPerHour      float64 `json:"profit_per_hour"`
	ROIPercent         float64 `json:"roi_percent"`
	WinningSessionsPct float64 `json:"winning_sessions_pct"`
}

func toStatsResponse(s *entities.BankrollStats) statsResponse {
	return statsResponse{
		InitialBankroll:    s.InitialBankroll,
		TotalBankroll:      s.TotalBankroll,
		CumulativeProfit:   s.CumulativeProfit,
		HoursPlayed:        s.HoursPlayed,
		ProfitPerHour:      s.ProfitPerHour,
		ROIPercent:         s.ROIPercent,
		WinningSessionsPct: s.WinningSessionsPct,
	}
}

type sessionWithStatsResponse struct {
	Session sessionResponse `json:"session"`
	Stats   statsResponse   `json:"stats"`
}

type initialBankrollRequest struct {
	InitialBankroll float64 `json:"initial_bankroll"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// withLedger runs fn against a ledger service bound to one transaction for
// the authenticated user. The response fn produces is written only after a
// successful commit.
func (s *Server) withLedger(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, svc interfaces.LedgerService) (int, any, error)) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, entities.ErrNotAuthenticated)
		return
	}

	uow := s.uowFactory.CreateForUser(userID)
	if err := uow.Begin(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	defer func() {
		if err := uow.Rollback(); err != nil {
			log.WithError(err).Error("rollback failed")
		}
	}()

	svc := services.NewLedgerService(uow.SessionRepository(), uow.StatsRepository())
	status, body, err := fn(r.Context(), svc)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := uow.Commit(); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, status, body)
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	s.withLedger(w, r, func(ctx context.Context, svc interfaces.LedgerService) (int, any, error) {
		stats, err := svc.RecomputeStats(ctx)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, toStatsResponse(stats), nil
	})
}

func (s *Server) handleSetInitialBankroll(w http.ResponseWriter, r *http.Request) {
	var req initialBankrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, entities.NewValidationError("body", "malformed JSON"))
		return
	}

	s.withLedger(w, r, func(ctx context.Context, svc interfaces.LedgerService) (int, any, error) {
		stats, err := svc.SetInitialBankroll(ctx, req.InitialBankroll)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, toStatsResponse(stats), nil
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ascending := r.URL.Query().Get("order") == "asc"

	s.withLedger(w, r, func(ctx context.Context, svc interfaces.LedgerService) (int, any, error) {
		sessions, err := svc.ListSessions(ctx, ascending)
		if err != nil {
			return 0, nil, err
		}
		out := make([]sessionResponse, 0, len(sessions))
		for _, session := range sessions {
			out = append(out, toSessionResponse(session))
		}
		return http.StatusOK, out, nil
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, entities.NewValidationError("body", "malformed JSON"))
		return
	}

	s.withLedger(w, r, func(ctx context.Context, svc interfaces.LedgerService) (int, any, error) {
		session, stats, err := svc.AddSession(ctx, req.toDraft())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, sessionWithStatsResponse{
			Session: toSessionResponse(session),
			Stats:   toStatsResponse(stats),
		}, nil
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.withLedger(w, r, func(ctx context.Context, svc interfaces.LedgerService) (int, any, error) {
		session, err := svc.GetSession(ctx, id)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, toSessionResponse(session), nil
	})
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, entities.NewValidationError("body", "malformed JSON"))
		return
	}

	s.withLedger(w, r, func(ctx context.Context, svc interfaces.LedgerService) (int, any, error) {
		session, stats, err := svc.UpdateSession(ctx, id, req.toDraft())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, sessionWithStatsResponse{
			Session: toSessionResponse(session),
			Stats:   toStatsResponse(stats),
		}, nil
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s.withLedger(w, r, func(ctx context.Context, svc interfaces.LedgerService) (int, any, error) {
		stats, err := svc.DeleteSession(ctx, id)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, map[string]statsResponse{"stats": toStatsResponse(stats)}, nil
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.withLedger(w, r, func(ctx context.Context, svc interfaces.LedgerService) (int, any, error) {
		points, err := svc.History(ctx)
		if err != nil {
			return 0, nil, err
		}
		if points == nil {
			points = []entities.BankrollPoint{}
		}
		return http.StatusOK, points, nil
	})
}

func sessionID(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, entities.NewValidationError("id", "must be a valid UUID")
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

// writeError maps domain errors onto HTTP statuses. Unrecognized errors are
// logged and reported as a generic 500 so internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	var ve *entities.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error()})
	case errors.Is(err, entities.ErrNotAuthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
	case errors.Is(err, entities.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		log.WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
