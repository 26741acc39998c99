package strapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestListUsersFiltersByRole(t *testing.T) {
	var gotPath string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 7, "firstName": "Ada"}]`))
	})
	defer server.Close()

	records, err := client.ListUsers(context.Background(), RoleDoctor)
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].ID() != 7 {
		t.Errorf("Expected id 7, got %d", records[0].ID())
	}
	if !strings.Contains(gotPath, "filters[role][id]=3") {
		t.Errorf("Expected role filter in path, got %s", gotPath)
	}
	if !strings.Contains(gotPath, "populate=*") {
		t.Errorf("Expected populate in path, got %s", gotPath)
	}
}

func TestLoginUnwrapsUserEnvelope(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["identifier"] != "admin@marketdoctors.com" {
			t.Errorf("Unexpected identifier: %v", body["identifier"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jwt": "ignored", "user": {"id": 3, "email": "admin@marketdoctors.com"}}`))
	})
	defer server.Close()

	rec, err := client.Login(context.Background(), "admin@marketdoctors.com", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.ID() != 3 {
		t.Errorf("Expected user id 3, got %d", rec.ID())
	}
}

func TestLoginMissingUserIsMalformed(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jwt": "only"}`))
	})
	defer server.Close()

	_, err := client.Login(context.Background(), "admin@marketdoctors.com", "secret")
	if err == nil {
		t.Fatal("Expected error for response without user object")
	}
}

func TestAPIErrorCarriesUpstreamMessage(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"flat message", http.StatusBadRequest, `{"message": "Invalid identifier or password"}`, "Invalid identifier or password"},
		{"nested error", http.StatusNotFound, `{"error": {"message": "Not Found"}}`, "Not Found"},
		{"unparseable body", http.StatusInternalServerError, `<html>oops</html>`, "unexpected upstream error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})
			defer server.Close()

			_, err := client.do(context.Background(), http.MethodGet, "/api/users", nil)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected APIError, got %v", err)
			}
			if apiErr.StatusCode != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, apiErr.StatusCode)
			}
			if apiErr.Message != tc.expected {
				t.Errorf("Expected message %q, got %q", tc.expected, apiErr.Message)
			}
		})
	}
}

func TestSaveRecipientCodeWritesSnakeCaseField(t *testing.T) {
	var gotBody map[string]interface{}
	var gotPath string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id": 12}`))
	})
	defer server.Close()

	if err := client.SaveRecipientCode(context.Background(), 12, "RCP_abc"); err != nil {
		t.Fatalf("SaveRecipientCode returned error: %v", err)
	}
	if gotPath != "/api/users/12" {
		t.Errorf("Expected path /api/users/12, got %s", gotPath)
	}
	if gotBody["recipient_code"] != "RCP_abc" {
		t.Errorf("Expected recipient_code RCP_abc, got %v", gotBody["recipient_code"])
	}
}

func TestUploadFileReturnsForwardedURL(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/file-forward" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("Expected multipart file field: %v", err)
		}
		defer file.Close()
		if header.Filename != "license.pdf" {
			t.Errorf("Expected filename license.pdf, got %s", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "pdf bytes" {
			t.Errorf("Unexpected file content %q", content)
		}
		w.Write([]byte(`{"fileUrl": "https://cdn.example.com/uploads/license.pdf"}`))
	})
	defer server.Close()

	url, err := client.UploadFile(context.Background(), "license.pdf", strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("UploadFile returned error: %v", err)
	}
	if url != "https://cdn.example.com/uploads/license.pdf" {
		t.Errorf("Unexpected fileUrl %s", url)
	}
}

func TestUploadFileMissingURLIsError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	_, err := client.UploadFile(context.Background(), "license.pdf", strings.NewReader("x"))
	if err == nil {
		t.Fatal("Expected error when fileUrl is missing")
	}
}

func TestCreateCaseWrapsDataEnvelope(t *testing.T) {
	var gotBody map[string]interface{}
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data": {"id": 1}}`))
	})
	defer server.Close()

	err := client.CreateCase(context.Background(), map[string]interface{}{"symptoms": "fever"})
	if err != nil {
		t.Fatalf("CreateCase returned error: %v", err)
	}
	data, ok := gotBody["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected data envelope, got %v", gotBody)
	}
	if data["symptoms"] != "fever" {
		t.Errorf("Expected symptoms in envelope, got %v", data)
	}
}
