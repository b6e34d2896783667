package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/maccabipedia/clubstats/internal/usecase"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantReason string
	}{
		{fmt.Errorf("%w: bad venue", usecase.ErrInvalidInput), http.StatusBadRequest, "invalidInput"},
		{fmt.Errorf("%w: no such player", usecase.ErrNotFound), http.StatusNotFound, "notFound"},
		{fmt.Errorf("%w: cargo down", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "dependencyUnavailable"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "internalError"},
	}
	for _, tc := range cases {
		mapped := mapError(tc.err)
		if mapped.HTTPStatus != tc.wantStatus || mapped.Reason != tc.wantReason {
			t.Fatalf("mapError(%v) = %+v, want %d/%s", tc.err, mapped, tc.wantStatus, tc.wantReason)
		}
	}
}

func TestWriteErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: venue must be home or away", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}

	var envelope struct {
		APIVersion string     `json:"apiVersion"`
		Error      *errorBody `json:"error"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.APIVersion != apiVersion {
		t.Fatalf("apiVersion = %q", envelope.APIVersion)
	}
	if envelope.Error == nil {
		t.Fatalf("error body missing")
	}
	if envelope.Error.Status != "INVALID_ARGUMENT" || envelope.Error.Domain != errorDomain {
		t.Fatalf("error body = %+v", envelope.Error)
	}
	if envelope.Error.Code != http.StatusBadRequest {
		t.Fatalf("error code = %d", envelope.Error.Code)
	}
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var envelope struct {
		APIVersion string            `json:"apiVersion"`
		Data       map[string]string `json:"data"`
		Error      *errorBody        `json:"error"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Data["status"] != "ok" || envelope.Error != nil {
		t.Fatalf("envelope = %+v", envelope)
	}
}
