package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ghar-ko-sathi/internal/pkg/errs"
	"ghar-ko-sathi/internal/usecase/queries"
	"ghar-ko-sathi/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var ErrNotFound = errs.New("booking not found")

// HTTPFetcher reads bookings from the REST hydration endpoints.
type HTTPFetcher struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPFetcher(baseURL, token string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPFetcher{baseURL: strings.TrimRight(baseURL, "/"), token: token, client: client}
}

func (f *HTTPFetcher) FetchBooking(ctx context.Context, id uuid.UUID) (*readmodel.BookingRM, error) {
	var rm readmodel.BookingRM
	if err := f.get(ctx, "/api/bookings/"+id.String(), &rm); err != nil {
		return nil, err
	}
	return &rm, nil
}

// ListMine pages through the caller's bookings, as customer or provider.
func (f *HTTPFetcher) ListMine(ctx context.Context, asProvider bool, userID uuid.UUID, cursor string, limit int) (*queries.BookingListResult, error) {
	owner := "user"
	if asProvider {
		owner = "provider"
	}
	q := url.Values{}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	path := "/api/bookings/" + owner + "/" + userID.String()
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var res queries.BookingListResult
	if err := f.get(ctx, path, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (f *HTTPFetcher) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+f.token)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return errs.Mark(errs.Wrapf(err, "GET %s", path), ErrTransportUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		var body struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return errs.Newf("GET %s: %d %s", path, resp.StatusCode, body.Error.Message)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
