package booking

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"staysphere/models"
	"staysphere/store"
	"staysphere/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// GET /my-bookings/:id/receipt?email=
// Renders the guest's bookings on one room as a PDF with a QR code.
func Receipt(s store.RoomStore) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id := ps.ByName("id")
		email := r.URL.Query().Get("email")
		if email == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Email query parameter is required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()

		room, err := s.GetRoom(ctx, id)
		if errors.Is(err, store.ErrInvalidID) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid room id")
			return
		}
		if err != nil {
			log.Printf("[booking] receipt for room %s: %v", id, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch room")
			return
		}
		if room == nil {
			utils.RespondWithError(w, http.StatusNotFound, "Room not found")
			return
		}

		var mine []models.Booking
		for _, b := range room.Bookings() {
			if e, ok := b.Email().(string); ok && e == email {
				mine = append(mine, b)
			}
		}
		if len(mine) == 0 {
			utils.RespondWithError(w, http.StatusNotFound, "No matching booking found")
			return
		}

		pdfBytes, err := renderReceipt(room, email, mine)
		if err != nil {
			log.Printf("[booking] render receipt: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate receipt")
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+id+".pdf")
		w.WriteHeader(http.StatusOK)
		w.Write(pdfBytes)
	}
}

func renderReceipt(room models.Room, email string, bookings []models.Booking) ([]byte, error) {
	qrPNG, err := qrcode.Encode(room.ID().Hex()+"|"+email, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Room: %s", text(room.Name())))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Room ID: %s", room.ID().Hex()))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Guest: %s", email))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(60, 8, "Booking date")
	pdf.Cell(60, 8, "Name")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	for _, b := range bookings {
		pdf.Cell(60, 8, text(b.BookingDate()))
		pdf.Cell(60, 8, text(b["name"]))
		pdf.Ln(8)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func text(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}
