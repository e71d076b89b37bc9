package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func chatServer(t *testing.T, status int, body string, capture func(r *http.Request, payload map[string]any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			var payload map[string]any
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Errorf("decode request payload: %v", err)
			}
			capture(r, payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func chatCompletion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(b)
}

func TestChatSendsChatCompletionsRequest(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]any
	srv := chatServer(t, http.StatusOK, chatCompletion("hello from the felt"), func(r *http.Request, payload map[string]any) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotPayload = payload
	})

	client := NewClient(Config{
		Endpoint:   srv.URL + "/",
		APIKey:     "sk-test",
		Deployment: "gpt-4o",
		Timeout:    5 * time.Second,
	})
	text, err := client.chat(context.Background(), "you are a dealer", "say hi", 50, 0.8)
	if err != nil {
		t.Fatalf("chat returned error: %v", err)
	}
	if text != "hello from the felt" {
		t.Fatalf("unexpected reply: %q", text)
	}
	if gotPath != "/chat/completions" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotPayload["model"] != "gpt-4o" {
		t.Fatalf("unexpected model: %v", gotPayload["model"])
	}
	if gotPayload["max_tokens"] != float64(50) {
		t.Fatalf("unexpected max_tokens: %v", gotPayload["max_tokens"])
	}
	if gotPayload["temperature"] != 0.8 {
		t.Fatalf("unexpected temperature: %v", gotPayload["temperature"])
	}
	msgs, ok := gotPayload["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("expected system+user messages, got %v", gotPayload["messages"])
	}
	first, _ := msgs[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "you are a dealer" {
		t.Fatalf("unexpected system message: %v", first)
	}
	second, _ := msgs[1].(map[string]any)
	if second["role"] != "user" || second["content"] != "say hi" {
		t.Fatalf("unexpected user message: %v", second)
	}
}

func TestChatOmitsAuthHeaderWithoutKey(t *testing.T) {
	var gotAuth string
	present := false
	srv := chatServer(t, http.StatusOK, chatCompletion("ok"), func(r *http.Request, _ map[string]any) {
		gotAuth = r.Header.Get("Authorization")
		_, present = r.Header["Authorization"]
	})

	client := NewClient(Config{Endpoint: srv.URL, Deployment: "gpt-4o-mini", Timeout: 5 * time.Second})
	if _, err := client.chat(context.Background(), "s", "u", 10, 0.5); err != nil {
		t.Fatalf("chat returned error: %v", err)
	}
	if present || gotAuth != "" {
		t.Fatalf("expected no auth header, got %q", gotAuth)
	}
}

func TestChatErrorStatus(t *testing.T) {
	srv := chatServer(t, http.StatusInternalServerError, `{"error":"boom"}`, nil)

	client := NewClient(Config{Endpoint: srv.URL, Deployment: "gpt-4o-mini", Timeout: 5 * time.Second})
	_, err := client.chat(context.Background(), "s", "u", 10, 0.5)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "provider http 500") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChatNoChoices(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `{"choices":[]}`, nil)

	client := NewClient(Config{Endpoint: srv.URL, Deployment: "gpt-4o-mini", Timeout: 5 * time.Second})
	if _, err := client.chat(context.Background(), "s", "u", 10, 0.5); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestChatMalformedBody(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "not json", nil)

	client := NewClient(Config{Endpoint: srv.URL, Deployment: "gpt-4o-mini", Timeout: 5 * time.Second})
	if _, err := client.chat(context.Background(), "s", "u", 10, 0.5); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestChatHonorsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(chatCompletion("too late")))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{Endpoint: srv.URL, Deployment: "gpt-4o-mini", Timeout: 30 * time.Millisecond})
	start := time.Now()
	_, err := client.chat(context.Background(), "s", "u", 10, 0.5)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Fatalf("timeout took too long: %v", elapsed)
	}
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no lang", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"chatter around", `Sure! {"a":1} hope that helps`, `{"a":1}`},
		{"no object", "no json here", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSONObject(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseJSONMap(t *testing.T) {
	m, err := parseJSONMap("```json\n{\"bet_amount\": 25, \"rationale\": \"feeling it\"}\n```")
	if err != nil {
		t.Fatalf("parseJSONMap returned error: %v", err)
	}
	if amount, ok := intField(m, "bet_amount"); !ok || amount != 25 {
		t.Fatalf("expected bet_amount 25, got %v (ok=%v)", amount, ok)
	}
	if _, err := parseJSONMap("definitely not json"); err == nil {
		t.Fatal("expected error for non-JSON text")
	}
}

func TestFieldCoercion(t *testing.T) {
	m := map[string]any{
		"n_float":  float64(42),
		"n_string": "17",
		"f_string": "0.85",
		"f_float":  0.25,
		"s":        "hit",
		"s_other":  true,
	}
	if v, ok := intField(m, "n_float"); !ok || v != 42 {
		t.Fatalf("float64 coercion failed: %v %v", v, ok)
	}
	if v, ok := intField(m, "n_string"); !ok || v != 17 {
		t.Fatalf("string int coercion failed: %v %v", v, ok)
	}
	if _, ok := intField(m, "missing"); ok {
		t.Fatal("expected missing int key to report !ok")
	}
	if v, ok := floatField(m, "f_string"); !ok || v != 0.85 {
		t.Fatalf("string float coercion failed: %v %v", v, ok)
	}
	if v, ok := floatField(m, "f_float"); !ok || v != 0.25 {
		t.Fatalf("float passthrough failed: %v %v", v, ok)
	}
	if v := stringField(m, "s"); v != "hit" {
		t.Fatalf("string field failed: %q", v)
	}
	if v := stringField(m, "s_other"); v != "" {
		t.Fatalf("expected empty string for non-string value, got %q", v)
	}
}
