package reviews

import (
	"context"
	"log"
	"net/http"
	"time"

	"staysphere/store"
	"staysphere/utils"

	"github.com/julienschmidt/httprouter"
)

// LatestLimit is how many reviews /latest-reviews returns at most.
const LatestLimit = 10

// GET /latest-reviews
// Every booking of every room is flattened into one review, newest
// commentDate first. Bookings that never got a review are still listed.
func LatestReviews(s store.RoomStore) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		latest, err := s.LatestReviews(ctx, LatestLimit)
		if err != nil {
			log.Printf("Failed to get latest reviews: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, latest)
	}
}
