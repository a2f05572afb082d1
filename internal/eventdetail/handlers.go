package eventdetail

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"venuebooking/internal/api"
)

type Handlers struct {
	Service *Service
}

type Request struct {
	EventType        *string          `json:"eventType" validate:"omitempty,max=100"`
	Purpose          *string          `json:"purpose" validate:"omitempty,max=4000"`
	EquipmentNeeded  *string          `json:"equipmentNeeded" validate:"omitempty,max=4000"`
	SpecialRequests  *string          `json:"specialRequests" validate:"omitempty,max=4000"`
	SetupTime        *time.Time       `json:"setupTime"`
	TeardownTime     *time.Time       `json:"teardownTime"`
	Budget           *decimal.Decimal `json:"budget"`
	OrganizerName    *string          `json:"organizerName" validate:"omitempty,max=200"`
	OrganizerContact *string          `json:"organizerContact" validate:"omitempty,max=200"`
	EventSchedule    *string          `json:"eventSchedule" validate:"omitempty,max=4000"`
}

func (req Request) input() Input {
	return Input{
		EventType:        req.EventType,
		Purpose:          req.Purpose,
		EquipmentNeeded:  req.EquipmentNeeded,
		SpecialRequests:  req.SpecialRequests,
		SetupTime:        req.SetupTime,
		TeardownTime:     req.TeardownTime,
		Budget:           req.Budget,
		OrganizerName:    req.OrganizerName,
		OrganizerContact: req.OrganizerContact,
		EventSchedule:    req.EventSchedule,
	}
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	bookingID, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	d, err := h.Service.Get(r.Context(), bookingID, a)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, d)
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	bookingID, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	var req Request
	if !api.DecodeJSON(w, r, &req, false) {
		return
	}
	d, err := h.Service.Create(r.Context(), bookingID, a, req.input())
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, d)
}

func (h Handlers) Update(w http.ResponseWriter, r *http.Request) {
	a, ok := api.RequireActor(w, r)
	if !ok {
		return
	}
	bookingID, ok := api.URLParamID(w, r, "id")
	if !ok {
		return
	}

	var req Request
	if !api.DecodeJSON(w, r, &req, false) {
		return
	}
	d, err := h.Service.Update(r.Context(), bookingID, a, req.input())
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, d)
}
