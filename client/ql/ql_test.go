package ql

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fiware-community/figo/core"
	"github.com/fiware-community/figo/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, core.FiwareHeader{Service: "test"})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestGetEntitySeries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/entities/Room1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("attrs") != "temperature" || q.Get("lastN") != "2" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{
			"entityId": "Room1",
			"index": ["2026-08-24T10:00:00.000+00:00", "2026-08-24T11:00:00.000+00:00"],
			"attributes": [{"attrName": "temperature", "values": [21.5, 22.0]}]
		}`))
	})

	series, err := client.GetEntitySeries(context.Background(), "Room1", models.SeriesQuery{
		Attrs: []string{"temperature"},
		LastN: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if series.EntityID != "Room1" {
		t.Errorf("entity id = %s", series.EntityID)
	}
	if len(series.Index) != 2 || len(series.Attributes) != 1 {
		t.Fatalf("series = %+v", series)
	}
	if series.Attributes[0].AttrName != "temperature" || len(series.Attributes[0].Values) != 2 {
		t.Errorf("attributes = %+v", series.Attributes)
	}
}

func TestSeriesQueryDates(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("fromDate"); got != "2026-08-01T00:00:00Z" {
			t.Errorf("fromDate = %s", got)
		}
		w.Write([]byte(`{"entityId":"Room1","index":[],"attributes":[]}`))
	})

	if _, err := client.GetEntitySeries(context.Background(), "Room1", models.SeriesQuery{FromDate: from}); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteEntityHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/v2/entities/Room1" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteEntityHistory(context.Background(), "Room1"); err != nil {
		t.Fatal(err)
	}
}
