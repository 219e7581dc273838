package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/application"
	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/domain"
	zapAdapter "github.com/mateusmacedo/go-bus-reservation/pkg/infrastructure/zaplogger/adapter"
)

const requestTimeout = 10 * time.Second

type ReservationHTTPHandler struct {
	buses  application.Buses
	ledger *application.OccupancyLedger
}

func NewReservationHTTPHandler(buses application.Buses, ledger *application.OccupancyLedger) *ReservationHTTPHandler {
	return &ReservationHTTPHandler{
		buses:  buses,
		ledger: ledger,
	}
}

func (h *ReservationHTTPHandler) HandleRegisterVehicle(w http.ResponseWriter, r *http.Request) {
	var data application.RegisterVehicleData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		handleError(w, &domain.OpError{Op: "http.register", Err: domain.ErrInvalidInput})
		return
	}

	var summary domain.Summary
	data.Result = &summary

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.buses.RegisterVehicle.Dispatch(ctx, application.NewRegisterVehicleCommand(data)); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "Vehicle registered", "data": summary})
}

func (h *ReservationHTTPHandler) HandleListVehicles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summaries, err := h.buses.ListVehicles.Dispatch(ctx, application.NewListVehiclesQuery())
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *ReservationHTTPHandler) HandleSearchVehicles(w http.ResponseWriter, r *http.Request) {
	origin := r.URL.Query().Get("from")
	destination := r.URL.Query().Get("to")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summaries, err := h.buses.ListVehicles.Dispatch(ctx, application.NewSearchVehiclesByRouteQuery(origin, destination))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *ReservationHTTPHandler) HandleDescribeVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "vehicleID")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	detail, err := h.buses.FindVehicle.Dispatch(ctx, application.NewFindVehicleQuery(application.FindVehicleData{VehicleID: vehicleID}))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *ReservationHTTPHandler) HandleReserveSeat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PassengerName string `json:"passengerName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handleError(w, &domain.OpError{Op: "http.reserve", Err: domain.ErrInvalidInput})
		return
	}

	var receipt domain.Reservation
	data := application.ReserveSeatData{
		VehicleID:     chi.URLParam(r, "vehicleID"),
		SeatNumber:    chi.URLParam(r, "seat"),
		PassengerName: body.PassengerName,
		Result:        &receipt,
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.buses.ReserveSeat.Dispatch(ctx, application.NewReserveSeatCommand(data)); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "Seat reserved", "data": receipt})
}

func (h *ReservationHTTPHandler) HandleReleaseSeat(w http.ResponseWriter, r *http.Request) {
	var released domain.Reservation
	data := application.ReleaseSeatData{
		VehicleID:  chi.URLParam(r, "vehicleID"),
		SeatNumber: chi.URLParam(r, "seat"),
		Confirm:    r.URL.Query().Get("confirm"),
		Result:     &released,
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.buses.ReleaseSeat.Dispatch(ctx, application.NewReleaseSeatCommand(data)); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Reservation cancelled", "data": released})
}

func (h *ReservationHTTPHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.ledger.Snapshot())
}

func (h *ReservationHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Use(middleware.RequestID, propagateRequestID, middleware.Recoverer)

	router.Route("/vehicles", func(r chi.Router) {
		r.Post("/", h.HandleRegisterVehicle)
		r.Get("/", h.HandleListVehicles)
		r.Get("/search", h.HandleSearchVehicles)
		r.Get("/{vehicleID}", h.HandleDescribeVehicle)
		r.Post("/{vehicleID}/seats/{seat}/reservation", h.HandleReserveSeat)
		r.Delete("/{vehicleID}/seats/{seat}/reservation", h.HandleReleaseSeat)
	})
	router.Get("/stats", h.HandleStats)
}

// propagateRequestID copia o ID gerado pelo chi para a chave lida pelo logger.
func propagateRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(zapAdapter.WithRequestID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Occupant string `json:"occupant,omitempty"`
}

func handleError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	resp := errorResponse{Error: string(kind), Message: err.Error()}
	if occupant, ok := domain.OccupantOf(err); ok {
		resp.Occupant = occupant
	}
	if kind == domain.KindUnknown && errors.Is(err, context.DeadlineExceeded) {
		resp.Error = "timeout"
	}
	writeJSON(w, statusFor(err), resp)
}

func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindCancelled, domain.KindInvalidInput, domain.KindInvalidSeat:
		return http.StatusBadRequest
	case domain.KindNotFound, domain.KindNoVehicles, domain.KindNoMatches:
		return http.StatusNotFound
	case domain.KindAlreadyReserved, domain.KindAlreadyEmpty, domain.KindDuplicate:
		return http.StatusConflict
	case domain.KindAborted:
		return http.StatusPreconditionFailed
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
