package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-exam-admin/models"
)

func TestWriteJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"key": "value"}

	n, err := WriteJSON(w, data, http.StatusOK)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if n == 0 {
		t.Error("expected non-zero bytes written")
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got '%s'", ct)
	}

	expected, _ := json.Marshal(data)
	if w.Body.String() != string(expected) {
		t.Errorf("expected body %s, got %s", expected, w.Body.String())
	}
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	if err == nil {
		t.Fatal("expected error for non-serializable data, got nil")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestWriteSuccess_Envelope(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteSuccess(w, http.StatusCreated, models.Subject{ID: 7, Name: "Math"}, "created")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	var env models.Envelope[models.Subject]
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || env.Status != http.StatusCreated || env.Data.ID != 7 || env.Message != "created" {
		t.Errorf("unexpected envelope: %+v", env)
	}
	if env.ErrorData != nil {
		t.Error("expected no errorData on success")
	}
}

func TestWritePage_NilItemsBecomeEmptyArray(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WritePage[models.Subject](w, nil, models.Pageable{Total: 0, PerPages: 10})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw["data"]) != "[]" {
		t.Errorf("expected data [], got %s", raw["data"])
	}
	if _, ok := raw["pageableResponse"]; !ok {
		t.Error("expected pageableResponse")
	}
}

func TestWriteFailure_Envelope(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteFailure(w, http.StatusConflict, "SUBJECT_EXISTS", "subject already exists", map[string]string{"name": "Math"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if w.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, w.Code)
	}

	var env models.Envelope[any]
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success {
		t.Error("expected success=false")
	}
	if env.ErrorData == nil || env.ErrorData.ErrorCode != "SUBJECT_EXISTS" {
		t.Errorf("unexpected errorData: %+v", env.ErrorData)
	}
}
