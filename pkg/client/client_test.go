package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNew_BaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("").BaseURL())
	assert.Equal(t, "http://api.test/api/v1", New("http://api.test/api/v1/").BaseURL())
}

func TestListPets_QueryAndPagination(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/pets", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Empty(t, r.Header.Get("Authorization"))
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{"success":true,"data":[{"id":"p1","name":"Bruno","pet_type":"dog"}],
			"pagination":{"page":2,"limit":1,"total":3,"total_pages":3}}`)
	}))
	defer srv.Close()

	vaccinated := false
	c := New(srv.URL + "/api/v1")
	page, err := c.ListPets(context.Background(), PetFilters{
		PetType:      "dog",
		City:         "   ",
		Search:       " bru ",
		IsVaccinated: &vaccinated,
		Page:         2,
		Limit:        0,
	})
	require.NoError(t, err)

	assert.Equal(t, "is_vaccinated=false&page=2&pet_type=dog&search=bru", gotQuery)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Bruno", page.Items[0].Name)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.Page)
}

func TestListPets_EmptyQueryOmitted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		writeJSON(w, http.StatusOK, `{"success":true,"data":[]}`)
	}))
	defer srv.Close()

	page, err := New(srv.URL).ListMissingPets(context.Background(), PetFilters{})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"success":false,"error":{"code":"NOT_FOUND","message":"Pet with id x not found"}}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetPet(context.Background(), "x")
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "NOT_FOUND", httpErr.Code)
	assert.Equal(t, "Pet with id x not found", httpErr.Message)
	assert.Equal(t, `HTTP 404: {"success":false,"error":{"code":"NOT_FOUND","message":"Pet with id x not found"}}`, err.Error())
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.False(t, IsStatus(err, http.StatusBadRequest))
}

func TestHTTPError_PlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetContactInfo(context.Background())
	assert.EqualError(t, err, "HTTP 502: upstream exploded")
}

func TestCreatePet_ValidatesBeforeSending(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreatePet(context.Background(), PetInput{Name: "Bruno"})
	assert.ErrorContains(t, err, "invalid request")
	assert.False(t, called)
}

func TestCreatePet_SendsTokenAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in PetInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Bruno", in.Name)
		writeJSON(w, http.StatusCreated, `{"success":true,"data":{"id":"p9","name":"Bruno","status":"available"}}`)
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok-1"))
	pet, err := c.CreatePet(context.Background(), PetInput{
		Name: "Bruno", Province: "bagmati", District: "Kathmandu", City: "Kathmandu",
	})
	require.NoError(t, err)
	assert.Equal(t, "p9", pet.ID)

	c.SetToken("")
	assert.Empty(t, c.Token())
}

func TestHealth_UnwrappedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"status":"ok","service":"service-adoption","uptime":"3s"}`)
	}))
	defer srv.Close()

	h, err := New(srv.URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "service-adoption", h.Service)
}

func TestSendContactMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contact/message", r.URL.Path)
		writeJSON(w, http.StatusCreated, `{"success":true,"data":{"message":"Your message has been sent successfully! We will get back to you soon.","data":{"id":"m1","name":"Hari","subject":"general","status":"new"}}}`)
	}))
	defer srv.Close()

	res, err := New(srv.URL).SendContactMessage(context.Background(), ContactMessageInput{
		Name: "Hari", Email: "hari@example.com", Message: "Namaste",
	})
	require.NoError(t, err)
	assert.Contains(t, res.Message, "sent successfully")
	assert.Equal(t, "m1", res.Data.ID)
}

func TestUnexpectedContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, "<html></html>")
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetShelter(context.Background(), "s1")
	assert.ErrorContains(t, err, "unexpected content type")
}

func TestContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"data":{}}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(srv.URL).GetPet(ctx, "p1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListShelters(t *testing.T) {
	tests := []struct {
		name      string
		params    ShelterParams
		wantQuery string
	}{
		{"no filters", ShelterParams{}, ""},
		{"verified in city", ShelterParams{City: " Pokhara ", Verified: true}, "city=Pokhara&verified=true"},
		{"search with paging", ShelterParams{Search: "rescue", Page: 2, Limit: 5}, "limit=5&page=2&search=rescue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/v1/shelters", r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				writeJSON(w, http.StatusOK, `{"success":true,"data":[
					{"id":"s1","name":"Pokhara Rescue","shelter_type":"animal_shelter","city":"Pokhara",
					 "country":"Nepal","location":"Pokhara, Nepal","verification_status":"verified","is_verified":true}],
					"pagination":{"page":1,"limit":20,"total":1,"total_pages":1}}`)
			}))
			defer srv.Close()

			page, err := New(srv.URL+"/api/v1").ListShelters(context.Background(), tt.params)
			require.NoError(t, err)
			require.Len(t, page.Items, 1)
			assert.Equal(t, "Pokhara Rescue", page.Items[0].Name)
			assert.Equal(t, "Pokhara, Nepal", page.Items[0].Location)
			assert.True(t, page.Items[0].IsVerified)
			assert.Equal(t, int64(1), page.Pagination.Total)
		})
	}
}

func TestRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/refresh", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["refresh_token"] != "refresh-1" {
			writeJSON(w, http.StatusUnauthorized, `{"success":false,"error":{"code":"UNAUTHORIZED","message":"invalid refresh token"}}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"user":{"id":"u1","email":"a@example.com"},
			"access_token":"access-2","refresh_token":"refresh-2"}}`)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api/v1")
	got, err := c.Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "access-2", got.AccessToken)
	assert.Equal(t, "refresh-2", got.RefreshToken)

	_, err = c.Refresh(context.Background(), "stale")
	assert.True(t, IsStatus(err, http.StatusUnauthorized))

	_, err = c.Refresh(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request")
}
