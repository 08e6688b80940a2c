package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"staysphere/models"
	"staysphere/store"
)

var errDown = errors.New("connection refused")

// brokenStore fails every call; GetRoom panics to exercise Recover.
type brokenStore struct{ store.RoomStore }

func (brokenStore) ListRooms(context.Context) ([]models.Room, error) { return nil, errDown }
func (brokenStore) GetRoom(context.Context, string) (models.Room, error) {
	panic("driver exploded")
}
func (brokenStore) FindRoomsByBookingEmail(context.Context, any) ([]models.Room, error) {
	return nil, errDown
}
func (brokenStore) PullBookings(context.Context, string, any) (bool, error) { return false, errDown }
func (brokenStore) SetBookingDate(context.Context, string, any, any) (bool, error) {
	return false, errDown
}
func (brokenStore) PushBooking(context.Context, string, models.Booking) (bool, error) {
	return false, errDown
}
func (brokenStore) LatestReviews(context.Context, int) ([]models.Review, error) { return nil, errDown }
func (brokenStore) Ping(context.Context) error                                  { return errDown }

func TestStoreFailuresMapTo500(t *testing.T) {
	srv := httptest.NewServer(New(Deps{Store: brokenStore{}}))
	defer srv.Close()

	cases := []struct {
		method, path, body string
		code               int
		contains           string
	}{
		{http.MethodGet, "/rooms", "", http.StatusInternalServerError, "Failed to fetch rooms"},
		{http.MethodGet, "/rooms/" + roomID, "", http.StatusInternalServerError, "Internal Server Error"},
		{http.MethodGet, "/my-bookings?email=a@x.com", "", http.StatusInternalServerError, "Failed to fetch bookings"},
		{http.MethodDelete, "/my-bookings/" + roomID + "/booking?email=a@x.com", "", http.StatusInternalServerError, "Internal server error"},
		{http.MethodPatch, "/my-bookings/" + roomID + "/update-date", `{"email":"a@x.com","newBookingDate":"2024-02-01"}`, http.StatusInternalServerError, "Server error"},
		{http.MethodGet, "/latest-reviews", "", http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
		{http.MethodPatch, "/rooms/" + roomID, `{"email":"a@x.com"}`, http.StatusInternalServerError, "Internal server error."},
		{http.MethodGet, "/health", "", http.StatusServiceUnavailable, `"ok":false`},
	}

	for _, c := range cases {
		req, _ := http.NewRequest(c.method, srv.URL+c.path, strings.NewReader(c.body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatal(err)
		}

		if resp.StatusCode != c.code || !strings.Contains(string(body), c.contains) {
			t.Errorf("%s %s: got %d %s, want %d containing %q", c.method, c.path, resp.StatusCode, body, c.code, c.contains)
		}
	}
}

// panicStore panics on every mutation.
type panicStore struct{ brokenStore }

func (panicStore) PullBookings(context.Context, string, any) (bool, error) { panic("pull") }
func (panicStore) SetBookingDate(context.Context, string, any, any) (bool, error) {
	panic("set")
}
func (panicStore) PushBooking(context.Context, string, models.Booking) (bool, error) {
	panic("push")
}

func TestPanicBodiesMatchEachRoute(t *testing.T) {
	srv := httptest.NewServer(New(Deps{Store: panicStore{}}))
	defer srv.Close()

	cases := []struct {
		method, path, body string
		message            string
	}{
		{http.MethodPatch, "/rooms/" + roomID, `{"email":"a@x.com"}`, "Internal server error."},
		{http.MethodDelete, "/my-bookings/" + roomID + "/booking?email=a@x.com", "", "Internal server error"},
		{http.MethodPatch, "/my-bookings/" + roomID + "/update-date", `{"email":"a@x.com","newBookingDate":"2024-02-01"}`, "Server error"},
	}

	for _, c := range cases {
		req, _ := http.NewRequest(c.method, srv.URL+c.path, strings.NewReader(c.body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		var got map[string]any
		err = json.NewDecoder(resp.Body).Decode(&got)
		resp.Body.Close()
		if err != nil {
			t.Fatal(err)
		}

		want := map[string]any{"success": false, "message": c.message}
		if resp.StatusCode != http.StatusInternalServerError || !reflect.DeepEqual(got, want) {
			t.Errorf("%s %s: got %d %v, want 500 %v", c.method, c.path, resp.StatusCode, got, want)
		}
	}
}
