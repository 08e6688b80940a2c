package rooms

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"staysphere/models"
	"staysphere/mq"
	"staysphere/store"
	"staysphere/utils"

	"github.com/julienschmidt/httprouter"
)

const storeTimeout = 5 * time.Second

// Index answers GET / with a plain text greeting.
func Index(greeting string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, greeting)
	}
}

// Health pings the store.
func Health(s store.RoomStore) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.Ping(ctx); err != nil {
			utils.RespondWithJSON(w, http.StatusServiceUnavailable, utils.M{"ok": false, "error": err.Error()})
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
	}
}

// GET /rooms
func GetRooms(s store.RoomStore) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()

		rooms, err := s.ListRooms(ctx)
		if err != nil {
			log.Printf("[rooms] list rooms: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch rooms")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, rooms)
	}
}

// GET /rooms/:id
// An unknown but well-formed id is not an error: the body is null.
func GetRoom(s store.RoomStore) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()

		room, err := s.GetRoom(ctx, ps.ByName("id"))
		if errors.Is(err, store.ErrInvalidID) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid room id")
			return
		}
		if err != nil {
			log.Printf("[rooms] get room %s: %v", ps.ByName("id"), err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch room")
			return
		}
		if room == nil {
			utils.RespondWithJSON(w, http.StatusOK, nil)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, room)
	}
}

// PATCH /rooms/:id appends the request body to the room's bookingDetails as is.
func AddBooking(s store.RoomStore, pub mq.Publisher) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id := ps.ByName("id")

		body, err := utils.DecodeObject(w, r)
		if err != nil {
			utils.RespondWithStatus(w, utils.BodyErrorStatus(err), false, "Invalid booking payload.")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()

		modified, err := s.PushBooking(ctx, id, models.Booking(body))
		switch {
		case err != nil:
			log.Printf("Error booking room: %v", err)
			utils.RespondWithStatus(w, http.StatusInternalServerError, false, "Internal server error.")
		case !modified:
			utils.RespondWithStatus(w, http.StatusNotFound, false, "Room not found.")
		default:
			mq.Emit(pub, mq.BookingAdded, id)
			utils.RespondWithStatus(w, http.StatusOK, true, "Room booked successfully.")
		}
	}
}
