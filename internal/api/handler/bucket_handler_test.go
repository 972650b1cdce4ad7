package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/admin-api/internal/core/domain"
)

type stubObjectStore struct {
	mu       sync.Mutex
	buckets  map[string]bool
	createFn func(ctx context.Context, name string) error
}

func (s *stubObjectStore) CreateBucket(ctx context.Context, name string) error {
	if s.createFn != nil {
		return s.createFn(ctx, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buckets == nil {
		s.buckets = make(map[string]bool)
	}
	if s.buckets[name] {
		return domain.ErrBucketExists
	}
	s.buckets[name] = true
	return nil
}

func (s *stubObjectStore) Upload(ctx context.Context, bucket, path string, content []byte) error {
	return nil
}

func bucketRequest(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/v1/buckets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", "admin")
	return c, rec
}

func TestBucketHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	handler := NewBucketHandler(&stubObjectStore{})

	c, rec := bucketRequest(e, `{"name":"user_documents"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestBucketHandler_Create_Duplicate(t *testing.T) {
	e := newTestEcho()
	handler := NewBucketHandler(&stubObjectStore{})

	c, _ := bucketRequest(e, `{"name":"user_documents"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("first create error: %v", err)
	}

	c, rec := bucketRequest(e, `{"name":"user_documents"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("second create error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestBucketHandler_Create_MissingName(t *testing.T) {
	e := newTestEcho()
	handler := NewBucketHandler(&stubObjectStore{})

	c, rec := bucketRequest(e, `{}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBucketHandler_Create_BusyRejectsSecondSubmit(t *testing.T) {
	e := newTestEcho()

	release := make(chan struct{})
	started := make(chan struct{})
	store := &stubObjectStore{
		createFn: func(ctx context.Context, name string) error {
			close(started)
			<-release
			return nil
		},
	}
	handler := NewBucketHandler(store)

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		c, rec := bucketRequest(e, `{"name":"slow_bucket"}`)
		if err := handler.Create(c); err != nil {
			t.Errorf("first create error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Errorf("expected 201 for first create, got %d", rec.Code)
		}
	}()

	<-started
	c, rec := bucketRequest(e, `{"name":"another_bucket"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("second create error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 while busy, got %d", rec.Code)
	}

	close(release)
	<-firstDone
}
