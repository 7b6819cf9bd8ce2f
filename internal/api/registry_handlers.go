package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/example/plenario/internal/ports/primary"
)

func (a *API) handleListMatters(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	matters, err := a.svc.Matters.ListMatters(r.Context(), primary.MatterFilters{
		Kind:   r.URL.Query().Get("kind"),
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matters)
}

func (a *API) handleFileMatter(w http.ResponseWriter, r *http.Request) {
	var req primary.FileMatterRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	matter, err := a.svc.Matters.FileMatter(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, matter)
}

func (a *API) handleGetMatter(w http.ResponseWriter, r *http.Request) {
	matter, err := a.svc.Matters.GetMatter(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matter)
}

type statusBody struct {
	Status string `json:"status"`
}

func (a *API) handleSetMatterStatus(w http.ResponseWriter, r *http.Request) {
	var body statusBody
	if err := decode(r, &body); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.svc.Matters.SetMatterStatus(r.Context(), mux.Vars(r)["id"], body.Status); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleListOpinions(w http.ResponseWriter, r *http.Request) {
	opinions, err := a.svc.Opinions.ListOpinions(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opinions)
}

type opinionBody struct {
	Committee string `json:"committee"`
}

func (a *API) handleRequestOpinion(w http.ResponseWriter, r *http.Request) {
	var body opinionBody
	if err := decode(r, &body); err != nil {
		a.fail(w, r, err)
		return
	}
	op, err := a.svc.Opinions.RequestOpinion(r.Context(), mux.Vars(r)["id"], body.Committee)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, op)
}

func (a *API) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := a.svc.Roster.ListPeriods(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, periods)
}

func (a *API) handleCreatePeriod(w http.ResponseWriter, r *http.Request) {
	var req primary.CreatePeriodRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	period, err := a.svc.Roster.CreatePeriod(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, period)
}

func (a *API) handleRoster(w http.ResponseWriter, r *http.Request) {
	members, err := a.svc.Roster.Roster(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

type membershipBody struct {
	Active bool `json:"active"`
}

func (a *API) handleSetMembership(w http.ResponseWriter, r *http.Request) {
	var body membershipBody
	if err := decode(r, &body); err != nil {
		a.fail(w, r, err)
		return
	}
	vars := mux.Vars(r)
	if err := a.svc.Roster.SetMembership(r.Context(), vars["id"], vars["legislator"], body.Active); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleListLegislators(w http.ResponseWriter, r *http.Request) {
	legislators, err := a.svc.Roster.ListLegislators(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, legislators)
}

type legislatorBody struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

func (a *API) handleRegisterLegislator(w http.ResponseWriter, r *http.Request) {
	var body legislatorBody
	if err := decode(r, &body); err != nil {
		a.fail(w, r, err)
		return
	}
	legislator, err := a.svc.Roster.RegisterLegislator(r.Context(), body.Name, body.Party)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, legislator)
}
