package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fionn/xjdp"
)

const testMarkersIndex = `{
	"type": "FeatureCollection",
	"features": [
		{"type":"Feature","properties":{"ID":1,"type":"camp"},"geometry":{"type":"Point","coordinates":[76.2,39.1]}},
		{"type":"Feature","properties":{"ID":2,"type":"camp"},"geometry":{"type":"Point","coordinates":[87.6,43.8]}},
		{"type":"Feature","properties":{"ID":9,"type":"cultural"},"geometry":{"type":"Point","coordinates":[75.9,39.4]}}
	]
}`

const testCampOne = `{"ID":1,"originalID":11,"title":"Facility One","coords":[39.1,76.2],"prefecture":"Kashgar","county":"Shule","type":"camp","gallery":[{"url":"https://xjdp.aspi.org.au/images/1.jpg"}],"text":"One."}`

const testCampTwo = `{"ID":2,"originalID":12,"title":"Facility Two","coords":[43.8,87.6],"prefecture":"Urumqi","county":"Midong","type":"camp","gallery":[],"text":"Two."}`

const testCulturalNine = `{"ID":9,"originalID":"KS-9","title":"Id Kah Mosque","coords":[39.4,75.9],"prefecture":"Kashgar","county":"Kashgar City","type":"cultural","gallery":null,"text":null}`

// testUpstream serves the stub catalog fixtures.
func testUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/map/markers.geo.json":
			w.Write([]byte(testMarkersIndex))
		case "/map/camp/1.json":
			w.Write([]byte(testCampOne))
		case "/map/camp/2.json":
			w.Write([]byte(testCampTwo))
		case "/map/cultural/9.json":
			w.Write([]byte(testCulturalNine))
		case "/timeline.json":
			w.Write([]byte(`[{"year":2017,"title":"Campaign begins"}]`))
		case "/global.json":
			w.Write([]byte(`{"camps":380}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// testCatalog builds a catalog backed by the stub upstream.
func testCatalog(t *testing.T) *xjdp.Catalog {
	t.Helper()
	srv := testUpstream(t)
	client := xjdp.NewClient(xjdp.WithBaseURL(srv.URL + "/"))
	return xjdp.NewCatalog(xjdp.WithCatalogClient(client))
}

func get(t *testing.T, mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestBuildMux_Health(t *testing.T) {
	mux := buildMux(testCatalog(t))

	rr := get(t, mux, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, xjdp.Version, body["version"])
}

func TestBuildMux_Markers(t *testing.T) {
	mux := buildMux(testCatalog(t))

	// Default category is camp.
	rr := get(t, mux, "/markers")
	require.Equal(t, http.StatusOK, rr.Code)
	var markers []xjdp.Marker
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &markers))
	require.Len(t, markers, 2)
	assert.Equal(t, 1, markers[0].Properties.ID)

	rr = get(t, mux, "/markers?category=cultural")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &markers))
	require.Len(t, markers, 1)
	assert.Equal(t, 9, markers[0].Properties.ID)
}

func TestBuildMux_Markers_UnknownCategory(t *testing.T) {
	mux := buildMux(testCatalog(t))

	rr := get(t, mux, "/markers?category=prison")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBuildMux_Features(t *testing.T) {
	mux := buildMux(testCatalog(t))

	rr := get(t, mux, "/features?category=camp")
	require.Equal(t, http.StatusOK, rr.Code)

	var features []struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &features))
	require.Len(t, features, 2)
	assert.Equal(t, "Facility One", features[0].Title)
	assert.Equal(t, "Facility Two", features[1].Title)
}

func TestBuildMux_FeatureByID(t *testing.T) {
	mux := buildMux(testCatalog(t))

	rr := get(t, mux, "/features/9")
	require.Equal(t, http.StatusOK, rr.Code)

	var f struct {
		ID       int    `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &f))
	assert.Equal(t, 9, f.ID)
	assert.Equal(t, "Id Kah Mosque", f.Title)
	assert.Equal(t, "cultural", f.Category)
}

func TestBuildMux_FeatureByID_NotFound(t *testing.T) {
	mux := buildMux(testCatalog(t))

	rr := get(t, mux, "/features/777")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBuildMux_FeatureByID_BadID(t *testing.T) {
	mux := buildMux(testCatalog(t))

	rr := get(t, mux, "/features/abc")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBuildMux_Timeline(t *testing.T) {
	mux := buildMux(testCatalog(t))

	rr := get(t, mux, "/timeline")
	require.Equal(t, http.StatusOK, rr.Code)

	var events []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "Campaign begins", events[0]["title"])
}

func TestBuildMux_Global(t *testing.T) {
	mux := buildMux(testCatalog(t))

	rr := get(t, mux, "/global")
	require.Equal(t, http.StatusOK, rr.Code)

	var stats map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.EqualValues(t, 380, stats["camps"])
}

func TestBuildMux_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	client := xjdp.NewClient(xjdp.WithBaseURL(srv.URL + "/"))
	mux := buildMux(xjdp.NewCatalog(xjdp.WithCatalogClient(client)))

	rr := get(t, mux, "/markers")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestWithRequestLog(t *testing.T) {
	handler := withRequestLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}
