package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/service"
)

type RequestHandler struct {
	borrow service.BorrowService
}

func NewRequestHandler(borrow service.BorrowService) *RequestHandler {
	return &RequestHandler{borrow: borrow}
}

type submitRequestBody struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
	Purpose  string `json:"purpose"`
	DueDate  string `json:"dueDate"`
}

func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body submitRequestBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	req, err := h.borrow.SubmitRequest(r.Context(), sessionFrom(r.Context()), service.SubmitRequestInput{
		ItemID:   body.ItemID,
		Quantity: body.Quantity,
		Purpose:  body.Purpose,
		DueDate:  body.DueDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.RequestStatus(r.URL.Query().Get("status"))
	requests, err := h.borrow.ListRequests(r.Context(), sessionFrom(r.Context()), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.borrow.GetRequest(r.Context(), sessionFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

type transitionBody struct {
	Action domain.RequestAction `json:"action"`
}

// Transition applies approve, reject or return. Invalid transitions come
// back as 409, stock shortfalls as 422.
func (h *RequestHandler) Transition(w http.ResponseWriter, r *http.Request) {
	var body transitionBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	req, err := h.borrow.Transition(r.Context(), sessionFrom(r.Context()), mux.Vars(r)["id"], body.Action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
