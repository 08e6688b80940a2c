package booking

import (
	"context"
	"log"
	"net/http"
	"time"

	"staysphere/mq"
	"staysphere/store"
	"staysphere/utils"

	"github.com/julienschmidt/httprouter"
)

const storeTimeout = 5 * time.Second

// GET /my-bookings?email=
// Returns whole room documents that hold at least one booking for email.
func GetMyBookings(s store.RoomStore) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		email := r.URL.Query().Get("email")
		if email == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Email query parameter is required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()

		rooms, err := s.FindRoomsByBookingEmail(ctx, email)
		if err != nil {
			log.Printf("[booking] find bookings for %s: %v", email, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, rooms)
	}
}

// DELETE /my-bookings/:id/booking?email=
// Removes every booking on the room made with email.
func DeleteMyBooking(s store.RoomStore, pub mq.Publisher) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id := ps.ByName("id")
		email := r.URL.Query().Get("email")
		if email == "" {
			utils.RespondWithStatus(w, http.StatusBadRequest, false, "Email is required.")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()

		modified, err := s.PullBookings(ctx, id, email)
		switch {
		case err != nil:
			log.Printf("Error deleting room booking: %v", err)
			utils.RespondWithStatus(w, http.StatusInternalServerError, false, "Internal server error")
		case !modified:
			utils.RespondWithStatus(w, http.StatusNotFound, false, "No matching booking found.")
		default:
			mq.Emit(pub, mq.BookingDeleted, id)
			utils.RespondWithStatus(w, http.StatusOK, true, "Booking deleted for user in this room.")
		}
	}
}

// PATCH /my-bookings/:id/update-date with {email, newBookingDate}
func UpdateBookingDate(s store.RoomStore, pub mq.Publisher) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id := ps.ByName("id")

		body, err := utils.DecodeObject(w, r)
		if err != nil {
			utils.RespondWithStatus(w, utils.BodyErrorStatus(err), false, "Missing email or date.")
			return
		}
		email, date := body["email"], body["newBookingDate"]
		if !utils.Truthy(email) || !utils.Truthy(date) {
			utils.RespondWithStatus(w, http.StatusBadRequest, false, "Missing email or date.")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()

		modified, err := s.SetBookingDate(ctx, id, email, date)
		switch {
		case err != nil:
			log.Printf("Error updating booking date: %v", err)
			utils.RespondWithStatus(w, http.StatusInternalServerError, false, "Server error")
		case !modified:
			utils.RespondWithStatus(w, http.StatusNotFound, false, "Booking not found.")
		default:
			mq.Emit(pub, mq.BookingDateUpdated, id)
			utils.RespondWithStatus(w, http.StatusOK, true, "Booking date updated successfully.")
		}
	}
}
