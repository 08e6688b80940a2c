package routes

import (
	"staysphere/booking"
	"staysphere/live"
	"staysphere/middleware"
	"staysphere/mq"
	"staysphere/ratelim"
	"staysphere/reviews"
	"staysphere/rooms"
	"staysphere/store"
	"staysphere/utils"

	"github.com/julienschmidt/httprouter"
)

// Deps is everything the routes need, built once in main.
type Deps struct {
	Store       store.RoomStore
	Publisher   mq.Publisher
	Hub         *live.Hub
	RateLimiter *ratelim.RateLimiter
	Greeting    string
}

// Per-route 500 bodies, used when a handler panics.
var (
	errorBody   = utils.M{"error": "Internal Server Error"}
	statusBody  = utils.M{"success": false, "message": "Internal server error"}
	bookingBody = utils.M{"success": false, "message": "Internal server error."}
	messageBody = utils.M{"success": false, "message": "Server error"}
)

func AddRoomRoutes(router *httprouter.Router, d Deps) {
	rl := d.RateLimiter
	router.GET("/", rooms.Index(d.Greeting))
	router.GET("/health", rooms.Health(d.Store))
	router.GET("/rooms", middleware.Recover(errorBody, rooms.GetRooms(d.Store)))
	router.GET("/rooms/:id", middleware.Recover(errorBody, rooms.GetRoom(d.Store)))
	router.PATCH("/rooms/:id", rl.Limit(middleware.Recover(bookingBody, rooms.AddBooking(d.Store, d.Publisher))))
}

func AddBookingRoutes(router *httprouter.Router, d Deps) {
	rl := d.RateLimiter
	router.GET("/my-bookings", middleware.Recover(errorBody, booking.GetMyBookings(d.Store)))
	router.DELETE("/my-bookings/:id/booking", rl.Limit(middleware.Recover(statusBody, booking.DeleteMyBooking(d.Store, d.Publisher))))
	router.PATCH("/my-bookings/:id/update-date", rl.Limit(middleware.Recover(messageBody, booking.UpdateBookingDate(d.Store, d.Publisher))))
	router.GET("/my-bookings/:id/receipt", rl.Limit(middleware.Recover(errorBody, booking.Receipt(d.Store))))
}

func AddReviewRoutes(router *httprouter.Router, d Deps) {
	router.GET("/latest-reviews", middleware.Recover(errorBody, reviews.LatestReviews(d.Store)))
}

func AddLiveRoutes(router *httprouter.Router, d Deps) {
	if d.Hub == nil {
		return
	}
	router.GET("/ws/rooms/:id", live.RoomUpdates(d.Hub))
}

// New builds the router with every route registered.
func New(d Deps) *httprouter.Router {
	router := httprouter.New()
	AddRoomRoutes(router, d)
	AddBookingRoutes(router, d)
	AddReviewRoutes(router, d)
	AddLiveRoutes(router, d)
	return router
}
