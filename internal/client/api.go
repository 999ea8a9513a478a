// Package client implements the terminal client's API transport and its
// state store. The store mirrors the server's user collection and is the
// only state the UI reads.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"userbase/internal/apperrors"
	"userbase/internal/models"
	"userbase/internal/services"
)

// API is an HTTP client for the user endpoints under baseURL.
type API struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPI creates an API client. baseURL is the server origin, e.g.
// "http://localhost:3000".
func NewAPI(baseURL string) *API {
	return &API{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// errorEnvelope is the failure shape returned by every endpoint.
type errorEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

// FetchUsers retrieves the full user list.
func (a *API) FetchUsers(ctx context.Context) ([]models.User, error) {
	resp, err := a.do(ctx, http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var body struct {
		Users []models.User `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode users response: %w", err)
	}
	return body.Users, nil
}

// CreateUser creates a user and returns the stored record with its
// assigned id and timestamps.
func (a *API) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	resp, err := a.do(ctx, http.MethodPost, "/api/users", user)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}
	return decodeUser(resp)
}

// UpdateUser applies a partial field set to the user with the given id.
func (a *API) UpdateUser(ctx context.Context, id string, input services.UpdateUserInput) (*models.User, error) {
	resp, err := a.do(ctx, http.MethodPut, "/api/users/"+id, input)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	return decodeUser(resp)
}

// DeleteUser removes the user with the given id.
func (a *API) DeleteUser(ctx context.Context, id string) error {
	resp, err := a.do(ctx, http.MethodDelete, "/api/users/"+id, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}

// do issues a JSON request against the API.
func (a *API) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func decodeUser(resp *http.Response) (*models.User, error) {
	var body struct {
		User models.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode user response: %w", err)
	}
	return &body.User, nil
}

// decodeError turns a non-success response into the matching domain error
// so the UI can distinguish conflicts and validation failures.
func decodeError(resp *http.Response) error {
	var env errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusConflict:
		return apperrors.ErrEmailExists
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusBadRequest:
		if len(env.Errors) > 0 {
			return &apperrors.ValidationError{Fields: env.Errors}
		}
	}
	if env.Message != "" {
		return fmt.Errorf("%s", env.Message)
	}
	return fmt.Errorf("server returned status %d", resp.StatusCode)
}
