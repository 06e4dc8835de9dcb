package agents

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("auth header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"market_sentiment":"positive","notes":["crowded space"]}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "sk-test"}, nil)
	got, err := c.Analyze(context.Background(), AnalysisRequest{CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got["market_sentiment"] != "positive" {
		t.Errorf("sentiment = %v", got["market_sentiment"])
	}
}

func TestClientRejectsNonObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["not","an","object"]`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL}, nil)
	if _, err := c.Analyze(context.Background(), AnalysisRequest{CompanyName: "Acme"}); err == nil {
		t.Fatal("expected error for non-object reply")
	}
}

func TestClientNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL}, nil)
	if _, err := c.Analyze(context.Background(), AnalysisRequest{CompanyName: "Acme"}); err == nil {
		t.Fatal("expected error for 502")
	}
}

func TestNewClientDisabled(t *testing.T) {
	if c := NewClient(ClientConfig{}, nil); c != nil {
		t.Fatal("empty base URL should disable the client")
	}
}
