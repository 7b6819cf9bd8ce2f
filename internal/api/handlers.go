package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/example/plenario/internal/core/fault"
	"github.com/example/plenario/internal/ports/primary"
)

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fault.New(fault.Validation, "invalid %s %q", name, v)
	}
	return n, nil
}

// handleTransition serves the many operations that take only the path id.
func (a *API) handleTransition(op func(ctx context.Context, id string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := op(r.Context(), mux.Vars(r)["id"]); err != nil {
			a.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type reasonBody struct {
	Reason string `json:"reason"`
}

func (a *API) handleReasonedTransition(op func(ctx context.Context, id, reason string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body reasonBody
		if err := decode(r, &body); err != nil {
			a.fail(w, r, err)
			return
		}
		if err := op(r.Context(), mux.Vars(r)["id"], body.Reason); err != nil {
			a.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Sittings

func (a *API) handleListSittings(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	sittings, err := a.svc.Sittings.ListSittings(r.Context(), primary.SittingFilters{
		PeriodID: r.URL.Query().Get("period"),
		Status:   r.URL.Query().Get("status"),
		Limit:    limit,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sittings)
}

func (a *API) handleScheduleSitting(w http.ResponseWriter, r *http.Request) {
	var req primary.ScheduleSittingRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	resp, err := a.svc.Sittings.ScheduleSitting(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp.Sitting)
}

func (a *API) handleGetSitting(w http.ResponseWriter, r *http.Request) {
	sitting, err := a.svc.Sittings.GetSitting(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sitting)
}

func (a *API) handleDeleteSitting(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.Sittings.DeleteSitting(r.Context(), mux.Vars(r)["id"]); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleCloseSitting(w http.ResponseWriter, r *http.Request) {
	resp, err := a.svc.Sittings.CloseSitting(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleGetMinutes(w http.ResponseWriter, r *http.Request) {
	minutes, err := a.svc.Sittings.GetMinutes(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(minutes.Body))
		return
	}
	writeJSON(w, http.StatusOK, minutes)
}

func (a *API) handleSittingLog(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	events, err := a.svc.Sittings.SittingLog(r.Context(), mux.Vars(r)["id"], limit)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// Agenda

func (a *API) handleGetAgenda(w http.ResponseWriter, r *http.Request) {
	agenda, err := a.svc.Agenda.GetAgenda(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agenda)
}

type addItemBody struct {
	MatterID string `json:"matter_id"`
	Section  string `json:"section"`
}

func (a *API) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var body addItemBody
	if err := decode(r, &body); err != nil {
		a.fail(w, r, err)
		return
	}
	item, err := a.svc.Agenda.AddItem(r.Context(), primary.AddItemRequest{
		SittingID: mux.Vars(r)["id"],
		MatterID:  body.MatterID,
		Section:   body.Section,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

type reorderBody struct {
	ItemIDs []string `json:"item_ids"`
}

func (a *API) handleReorder(w http.ResponseWriter, r *http.Request) {
	var body reorderBody
	if err := decode(r, &body); err != nil {
		a.fail(w, r, err)
		return
	}
	vars := mux.Vars(r)
	err := a.svc.Agenda.Reorder(r.Context(), primary.ReorderRequest{
		SittingID: vars["id"],
		Section:   vars["section"],
		ItemIDs:   body.ItemIDs,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleEligibleMatters(w http.ResponseWriter, r *http.Request) {
	matters, err := a.svc.Agenda.ListEligibleMatters(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matters)
}

func (a *API) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := a.svc.Agenda.GetItem(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type sectionBody struct {
	Section string `json:"section"`
}

func (a *API) handleChangeSection(w http.ResponseWriter, r *http.Request) {
	var body sectionBody
	if err := decode(r, &body); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.svc.Agenda.ChangeSection(r.Context(), mux.Vars(r)["id"], body.Section); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Attendance

func (a *API) handleGetAttendance(w http.ResponseWriter, r *http.Request) {
	entries, err := a.svc.Attendance.GetAttendance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type attendanceBody struct {
	Status        string `json:"status"`
	Justification string `json:"justification"`
}

func (a *API) handleRecordAttendance(w http.ResponseWriter, r *http.Request) {
	var body attendanceBody
	if err := decode(r, &body); err != nil {
		a.fail(w, r, err)
		return
	}
	vars := mux.Vars(r)
	err := a.svc.Attendance.RecordAttendance(r.Context(), primary.RecordAttendanceRequest{
		SittingID:     vars["id"],
		LegislatorID:  vars["legislator"],
		Status:        body.Status,
		Justification: body.Justification,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleQuorum(w http.ResponseWriter, r *http.Request) {
	q, err := a.svc.Attendance.QuorumStatus(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Voting

func (a *API) handleEligibility(w http.ResponseWriter, r *http.Request) {
	e, err := a.svc.Voting.CheckEligibility(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

type voteBody struct {
	Choice string `json:"choice"`
}

func (a *API) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var body voteBody
	if err := decode(r, &body); err != nil {
		a.fail(w, r, err)
		return
	}
	vars := mux.Vars(r)
	err := a.svc.Voting.CastVote(r.Context(), primary.CastVoteRequest{
		ItemID:       vars["id"],
		LegislatorID: vars["legislator"],
		Choice:       body.Choice,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handlePartialResult(w http.ResponseWriter, r *http.Request) {
	result, err := a.svc.Voting.PartialResult(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleCloseVoting(w http.ResponseWriter, r *http.Request) {
	result, err := a.svc.Voting.CloseVoting(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleListVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := a.svc.Voting.ListVotes(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}
