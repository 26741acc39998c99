package paystack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateRecipient(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transferrecipient" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk_test" {
			t.Errorf("Expected secret key auth header, got %q", auth)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"message":"Recipient created","data":{"recipient_code":"RCP_1"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test")
	code, err := client.CreateRecipient(context.Background(), "Ngozi Eze", "0123456789", "058")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if code != "RCP_1" {
		t.Errorf("Expected RCP_1, got %q", code)
	}
	if gotBody["type"] != "nuban" || gotBody["currency"] != "NGN" {
		t.Errorf("Unexpected request body: %v", gotBody)
	}
}

func TestCreateRecipientGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":false,"message":"Invalid bank code"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test")
	_, err := client.CreateRecipient(context.Background(), "Ngozi Eze", "0123456789", "xxx")
	if err == nil {
		t.Fatal("Expected error but got none")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("Expected APIError, got %T", err)
	}
	if apiErr.Message != "Invalid bank code" {
		t.Errorf("Expected upstream message to be preserved, got %q", apiErr.Message)
	}
}

func TestTransferSendsMinorUnits(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transfer" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"message":"Transfer queued"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test")
	err := client.Transfer(context.Background(), "RCP_1", 25050, "Payment to Ngozi Eze")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotBody["source"] != "balance" {
		t.Errorf("Expected source balance, got %v", gotBody["source"])
	}
	if gotBody["amount"] != float64(25050) {
		t.Errorf("Expected amount 25050, got %v", gotBody["amount"])
	}
	if gotBody["recipient"] != "RCP_1" {
		t.Errorf("Expected recipient RCP_1, got %v", gotBody["recipient"])
	}
}
