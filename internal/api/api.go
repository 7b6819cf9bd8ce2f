// Package api exposes the conduction services over HTTP for the chamber's
// operator consoles (clerk desk, presiding officer panel).
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/example/plenario/internal/ctxutil"
	"github.com/example/plenario/internal/ports/primary"
)

// ActorHeader names the operator performing a request; it is recorded in the
// sitting's audit trail.
const ActorHeader = "X-Plenario-Actor"

// Services bundles the primary ports served by the API.
type Services struct {
	Sittings   primary.SittingService
	Agenda     primary.AgendaService
	Attendance primary.AttendanceService
	Voting     primary.VotingService
	Matters    primary.MatterService
	Opinions   primary.OpinionService
	Roster     primary.RosterService
}

type API struct {
	router         *mux.Router
	svc            Services
	logger         *slog.Logger
	allowedOrigins []string
}

// New builds the API. An empty allowedOrigins list allows any origin without
// credentials.
func New(svc Services, logger *slog.Logger, allowedOrigins []string) *API {
	api := &API{
		router:         mux.NewRouter(),
		svc:            svc,
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}

	api.setupRoutes()
	return api
}

func (a *API) setupRoutes() {
	r := a.router.PathPrefix("/api").Subrouter()
	r.Use(actorMiddleware)

	// Sittings
	r.HandleFunc("/sittings", a.handleListSittings).Methods("GET")
	r.HandleFunc("/sittings", a.handleScheduleSitting).Methods("POST")
	r.HandleFunc("/sittings/{id}", a.handleGetSitting).Methods("GET")
	r.HandleFunc("/sittings/{id}", a.handleDeleteSitting).Methods("DELETE")
	r.HandleFunc("/sittings/{id}/start", a.handleTransition(a.svc.Sittings.StartSitting)).Methods("POST")
	r.HandleFunc("/sittings/{id}/suspend", a.handleTransition(a.svc.Sittings.SuspendSitting)).Methods("POST")
	r.HandleFunc("/sittings/{id}/resume", a.handleTransition(a.svc.Sittings.ResumeSitting)).Methods("POST")
	r.HandleFunc("/sittings/{id}/close", a.handleCloseSitting).Methods("POST")
	r.HandleFunc("/sittings/{id}/cancel", a.handleReasonedTransition(a.svc.Sittings.CancelSitting)).Methods("POST")
	r.HandleFunc("/sittings/{id}/postpone", a.handleReasonedTransition(a.svc.Sittings.PostponeSitting)).Methods("POST")
	r.HandleFunc("/sittings/{id}/minutes", a.handleGetMinutes).Methods("GET")
	r.HandleFunc("/sittings/{id}/log", a.handleSittingLog).Methods("GET")

	// Agenda
	r.HandleFunc("/sittings/{id}/agenda", a.handleGetAgenda).Methods("GET")
	r.HandleFunc("/sittings/{id}/agenda", a.handleAddItem).Methods("POST")
	r.HandleFunc("/sittings/{id}/agenda/publish", a.handleTransition(a.svc.Agenda.Publish)).Methods("POST")
	r.HandleFunc("/sittings/{id}/agenda/unpublish", a.handleTransition(a.svc.Agenda.Unpublish)).Methods("POST")
	r.HandleFunc("/sittings/{id}/agenda/{section}", a.handleReorder).Methods("PUT")
	r.HandleFunc("/sittings/{id}/eligible-matters", a.handleEligibleMatters).Methods("GET")

	// Attendance
	r.HandleFunc("/sittings/{id}/attendance", a.handleGetAttendance).Methods("GET")
	r.HandleFunc("/sittings/{id}/attendance/{legislator}", a.handleRecordAttendance).Methods("PUT")
	r.HandleFunc("/sittings/{id}/quorum", a.handleQuorum).Methods("GET")

	// Items and voting
	r.HandleFunc("/items/{id}", a.handleGetItem).Methods("GET")
	r.HandleFunc("/items/{id}", a.handleTransition(a.svc.Agenda.RemoveItem)).Methods("DELETE")
	r.HandleFunc("/items/{id}/section", a.handleChangeSection).Methods("PUT")
	r.HandleFunc("/items/{id}/read", a.handleTransition(a.svc.Agenda.MarkRead)).Methods("POST")
	r.HandleFunc("/items/{id}/postpone", a.handleTransition(a.svc.Agenda.PostponeItem)).Methods("POST")
	r.HandleFunc("/items/{id}/withdraw", a.handleTransition(a.svc.Agenda.WithdrawItem)).Methods("POST")
	r.HandleFunc("/items/{id}/eligibility", a.handleEligibility).Methods("GET")
	r.HandleFunc("/items/{id}/voting", a.handleTransition(a.svc.Voting.OpenVoting)).Methods("POST")
	r.HandleFunc("/items/{id}/voting/close", a.handleCloseVoting).Methods("POST")
	r.HandleFunc("/items/{id}/votes", a.handleListVotes).Methods("GET")
	r.HandleFunc("/items/{id}/votes/{legislator}", a.handleCastVote).Methods("PUT")
	r.HandleFunc("/items/{id}/result", a.handlePartialResult).Methods("GET")

	// Registry
	r.HandleFunc("/matters", a.handleListMatters).Methods("GET")
	r.HandleFunc("/matters", a.handleFileMatter).Methods("POST")
	r.HandleFunc("/matters/{id}", a.handleGetMatter).Methods("GET")
	r.HandleFunc("/matters/{id}/status", a.handleSetMatterStatus).Methods("PUT")
	r.HandleFunc("/matters/{id}/opinions", a.handleListOpinions).Methods("GET")
	r.HandleFunc("/matters/{id}/opinions", a.handleRequestOpinion).Methods("POST")
	r.HandleFunc("/opinions/{id}/issue", a.handleTransition(a.svc.Opinions.IssueOpinion)).Methods("POST")
	r.HandleFunc("/opinions/{id}/waive", a.handleTransition(a.svc.Opinions.WaiveOpinion)).Methods("POST")
	r.HandleFunc("/periods", a.handleListPeriods).Methods("GET")
	r.HandleFunc("/periods", a.handleCreatePeriod).Methods("POST")
	r.HandleFunc("/periods/{id}/roster", a.handleRoster).Methods("GET")
	r.HandleFunc("/periods/{id}/members/{legislator}", a.handleSetMembership).Methods("PUT")
	r.HandleFunc("/legislators", a.handleListLegislators).Methods("GET")
	r.HandleFunc("/legislators", a.handleRegisterLegislator).Methods("POST")
}

// actorMiddleware carries the operator named in ActorHeader into the request context.
func actorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actor := r.Header.Get(ActorHeader); actor != "" {
			r = r.WithContext(ctxutil.WithActorID(r.Context(), actor))
		}
		next.ServeHTTP(w, r)
	})
}

// Handler returns the router wrapped in the CORS policy.
func (a *API) Handler() http.Handler {
	opts := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", ActorHeader},
	}
	if len(a.allowedOrigins) > 0 {
		opts.AllowedOrigins = a.allowedOrigins
		opts.AllowCredentials = true
	}
	return cors.New(opts).Handler(a.router)
}

// Start serves on bind until ctx is cancelled, then shuts down gracefully.
func (a *API) Start(ctx context.Context, bind string) error {
	srv := &http.Server{
		Addr:              bind,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("API server listening", "addr", bind)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
