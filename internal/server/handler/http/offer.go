package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/jdavril/brocante/internal/middleware"
	"github.com/jdavril/brocante/internal/models"
	"github.com/jdavril/brocante/internal/service"
)

// maxUploadSize bounds the in-memory portion of a multipart parse.
const maxUploadSize = 10 << 20

// OfferService defines the listing operations required by the HTTP handlers.
type OfferService interface {
	// Publish uploads the picture and persists a new offer for the owner.
	Publish(ctx context.Context, owner models.Identity, in service.PublishInput, picture *service.ImageFile) (*models.Offer, error)
	// Search returns one page of offer summaries matching the filter.
	Search(ctx context.Context, filter models.OfferFilter) ([]models.OfferSummary, error)
	// Update applies a partial update and returns a confirmation message.
	Update(ctx context.Context, offerID string, identity models.Identity, in service.UpdateInput, picture *service.ImageFile) (string, error)
}

// OfferHandler handles HTTP requests for publishing, searching and
// updating offers.
type OfferHandler struct {
	OfferService OfferService
}

// Publish handles POST /offer/publish. The body is multipart/form-data:
// title, description, price, brand, size, condition, color, city fields
// plus a "picture" file part. Requires a previously authenticated identity.
func (h *OfferHandler) Publish(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	in := service.PublishInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       price,
		Details: models.ProductDetails{
			Brand:     r.FormValue("brand"),
			Size:      r.FormValue("size"),
			Condition: r.FormValue("condition"),
			Color:     r.FormValue("color"),
			City:      r.FormValue("city"),
		},
	}

	picture, err := formImage(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid picture")
		return
	}
	defer closeImage(picture)

	offer, err := h.OfferService.Publish(r.Context(), *identity, in, picture)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, offer)
}

// List handles GET /offers. Query parameters: title (substring match),
// priceMin, priceMax (inclusive bounds) and page (1-indexed, 4 results
// per page). Malformed numeric parameters are treated as absent.
func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.OfferFilter{Title: q.Get("title"), Page: 1}
	if v, err := strconv.ParseFloat(q.Get("priceMin"), 64); err == nil {
		filter.PriceMin = &v
	}
	if v, err := strconv.ParseFloat(q.Get("priceMax"), 64); err == nil {
		filter.PriceMax = &v
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = p
	}

	offers, err := h.OfferService.Search(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, offers)
}

// Update handles POST /offer/update. The body is multipart/form-data:
// the offer id plus any subset of the publish fields and an optional
// replacement "picture". Empty fields are left untouched.
func (h *OfferHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	id := r.FormValue("id")
	if id == "" {
		writeMessage(w, http.StatusBadRequest, "offer id is required")
		return
	}

	var in service.UpdateInput
	if v := r.FormValue("title"); v != "" {
		in.Title = &v
	}
	if v := r.FormValue("description"); v != "" {
		in.Description = &v
	}
	if v := r.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "price must be a number")
			return
		}
		in.Price = &price
	}
	if v := r.FormValue("brand"); v != "" {
		in.Brand = &v
	}
	if v := r.FormValue("size"); v != "" {
		in.Size = &v
	}
	if v := r.FormValue("condition"); v != "" {
		in.Condition = &v
	}
	if v := r.FormValue("color"); v != "" {
		in.Color = &v
	}
	if v := r.FormValue("city"); v != "" {
		in.City = &v
	}

	picture, err := formImage(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid picture")
		return
	}
	defer closeImage(picture)

	message, err := h.OfferService.Update(r.Context(), id, *identity, in, picture)
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, message)
}

// formImage reads the optional "picture" file part. A missing part is
// not an error; it returns nil so the service decides whether the
// picture is required.
func formImage(r *http.Request) (*service.ImageFile, error) {
	file, header, err := r.FormFile("picture")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &service.ImageFile{
		Name:        header.Filename,
		ContentType: contentType,
		Body:        file,
	}, nil
}

func closeImage(picture *service.ImageFile) {
	if picture == nil {
		return
	}
	if closer, ok := picture.Body.(io.Closer); ok {
		_ = closer.Close()
	}
}
