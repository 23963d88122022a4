package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-bank-cards/internal/utils"
	"github.com/MKhiriev/go-bank-cards/models"
)

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return ErrInvalidBody
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w %s: %w", ErrInvalidPathParameter, name, err)
	}
	return id, nil
}

// callerID returns the id the auth middleware put into the context.
func callerID(r *http.Request) uuid.UUID {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	return userID
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w %s: %w", ErrInvalidQueryParameter, name, err)
	}
	return v, nil
}

func parsePage(r *http.Request) (models.Page, error) {
	page, err := queryInt(r, "page")
	if err != nil {
		return models.Page{}, err
	}
	size, err := queryInt(r, "size")
	if err != nil {
		return models.Page{}, err
	}
	return models.Page{Page: page, Size: size}, nil
}

// parseCardFilter reads the card list query. ownerId and statusUpdateRequest
// are read only when admin is set.
func parseCardFilter(r *http.Request, admin bool) (models.CardFilter, error) {
	query := r.URL.Query()

	page, err := parsePage(r)
	if err != nil {
		return models.CardFilter{}, err
	}

	filter := models.CardFilter{
		SortBy:        query.Get("sortBy"),
		SortDirection: strings.ToUpper(query.Get("sortDirection")),
		Page:          page,
		Fields:        splitFields(query["fields"]),
	}

	if status := query.Get("status"); status != "" {
		s := models.CardStatus(strings.ToUpper(status))
		filter.Status = &s
	}

	if !admin {
		return filter, nil
	}

	if owner := query.Get("ownerId"); owner != "" {
		ownerID, err := uuid.Parse(owner)
		if err != nil {
			return models.CardFilter{}, fmt.Errorf("%w ownerId: %w", ErrInvalidQueryParameter, err)
		}
		filter.OwnerID = &ownerID
	}
	if requested := query.Get("statusUpdateRequest"); requested != "" {
		s := models.CardStatus(strings.ToUpper(requested))
		filter.RequestedStatus = &s
	}

	return filter, nil
}

// splitFields accepts both ?fields=a,b and ?fields=a&fields=b.
func splitFields(values []string) []string {
	var fields []string
	for _, v := range values {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	}
	return fields
}
