package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saraban/internal/model"
)

func TestClient_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/docs/orders", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":2,"subject":"b","filePath":"/uploads/1-b.pdf"},{"id":1,"subject":"a"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	recs, err := c.List(context.Background(), "orders")

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, int64(2), recs[0].ID)
	assert.Equal(t, "b", recs[0].Attributes["subject"])
	require.NotNil(t, recs[0].FilePath)
	assert.Equal(t, "/uploads/1-b.pdf", *recs[0].FilePath)
	assert.Nil(t, recs[1].FilePath)
	// id and filePath never leak into the attribute bag
	assert.NotContains(t, recs[0].Attributes, "id")
	assert.NotContains(t, recs[0].Attributes, "filePath")
}

func TestClient_List_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"request_id":"r1","error":{"code":"NOT_FOUND","message":"unknown category"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.List(context.Background(), "payroll")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
	assert.Contains(t, err.Error(), "NOT_FOUND")
}

func TestClient_Create_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		var attrs map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("data")), &attrs))
		assert.Equal(t, "order", attrs["subject"])

		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "scan.pdf", fh.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":10,"subject":"order","filePath":"/uploads/1-scan.pdf"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	rec, err := c.Create(context.Background(), "orders",
		model.Attributes{"subject": "order"},
		&Upload{Name: "scan.pdf", Reader: strings.NewReader("pdf bytes")})

	require.NoError(t, err)
	assert.Equal(t, int64(10), rec.ID)
	require.NotNil(t, rec.FilePath)
}

func TestClient_Delete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/docs/orders/5", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Deleted"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	assert.NoError(t, c.Delete(context.Background(), "orders", 5))
}

func TestPoller_SuspendResume(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := NewPoller(New(srv.URL), "orders", 10*time.Millisecond)

	updates := make(chan []model.Record, 64)
	p.OnUpdate = func(recs []model.Record) { updates <- recs }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	// First fetch is immediate.
	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatal("no initial update")
	}

	p.Suspend()
	assert.True(t, p.Suspended())
	quiet := hits.Load()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, quiet, hits.Load(), "suspended poller must not fetch")

	p.Resume()
	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatal("no update after resume")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestPoller_SingleInFlight(t *testing.T) {
	var active, maxActive atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := active.Add(1)
		if n > maxActive.Load() {
			maxActive.Store(n)
		}
		time.Sleep(50 * time.Millisecond) // slower than the tick
		active.Add(-1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := NewPoller(New(srv.URL), "orders", 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	p.Run(ctx)

	assert.LessOrEqual(t, maxActive.Load(), int32(1), "ticks must not stack requests")
}

func TestNewPoller_ClampsInterval(t *testing.T) {
	c := New("http://localhost:5000")

	assert.Equal(t, time.Second, NewPoller(c, "orders", 0).interval)
	assert.Equal(t, time.Second, NewPoller(c, "orders", -time.Minute).interval)
	assert.Equal(t, 10*time.Millisecond, NewPoller(c, "orders", 10*time.Millisecond).interval)
}

func TestPoller_ErrorKeepsPolling(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewPoller(New(srv.URL), "orders", 10*time.Millisecond)

	errs := make(chan error, 64)
	p.OnError = func(err error) { errs <- err }

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	p.Run(ctx)

	assert.GreaterOrEqual(t, hits.Load(), int32(2), "errors must not stop the loop")
	assert.NotEmpty(t, errs)
}
