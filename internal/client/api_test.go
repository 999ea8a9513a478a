package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"userbase/internal/apperrors"
	"userbase/internal/client"
	"userbase/internal/models"
	"userbase/internal/services"
)

func TestAPI_FetchUsers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/users", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"users": []models.User{{ID: "1", Name: "alice", Email: "alice@x.com", Password: "secret"}},
		})
	}))
	defer server.Close()

	api := client.NewAPI(server.URL)
	users, err := api.FetchUsers(context.Background())

	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Name)
}

func TestAPI_CreateUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var user models.User
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&user))
		user.ID = "gen-1"

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"user": user})
	}))
	defer server.Close()

	api := client.NewAPI(server.URL)
	created, err := api.CreateUser(context.Background(), models.User{Name: "alice", Email: "alice@x.com", Password: "secret"})

	assert.NoError(t, err)
	assert.Equal(t, "gen-1", created.ID)
	assert.Equal(t, "alice", created.Name)
}

func TestAPI_CreateUser_Conflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Email already exists",
		})
	}))
	defer server.Close()

	api := client.NewAPI(server.URL)
	_, err := api.CreateUser(context.Background(), models.User{Name: "alice", Email: "alice@x.com", Password: "secret"})

	assert.ErrorIs(t, err, apperrors.ErrEmailExists)
}

func TestAPI_CreateUser_ValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Validation failed",
			"errors":  map[string]string{"Name": "Name must be at least 3 characters long"},
		})
	}))
	defer server.Close()

	api := client.NewAPI(server.URL)
	_, err := api.CreateUser(context.Background(), models.User{Name: "ab", Email: "a@x.com", Password: "secret"})

	var ve *apperrors.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "Name")
}

func TestAPI_UpdateUser_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "User not found",
		})
	}))
	defer server.Close()

	api := client.NewAPI(server.URL)
	name := "ghost"
	_, err := api.UpdateUser(context.Background(), "missing", services.UpdateUserInput{Name: &name})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAPI_DeleteUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/users/1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "id": "1"})
	}))
	defer server.Close()

	api := client.NewAPI(server.URL)
	assert.NoError(t, api.DeleteUser(context.Background(), "1"))
}
