package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medicine-reminder/internal/adapters/auth/jwtauth"
	"medicine-reminder/internal/adapters/generation/openai"
	"medicine-reminder/internal/domain/schedule"
	"medicine-reminder/internal/platform/ratelimit"
	"medicine-reminder/internal/router"

	"github.com/go-chi/chi/v5"
	"github.com/swaggo/swag"
)

type medicineResp struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Time   string `json:"time"`
	Status string `json:"status"`
}

func TestHTTP_EndToEnd_ScheduleFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	userID := "user-1"

	// 1) Sin usuario => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/medicines/daily", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without user, got %d", st)
		}
	}

	// 2) Sin perfil no hay schedule
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/ai/generate", userID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 generate without profile, got %d", st)
		}
	}

	// 3) Perfil + medicinas
	upsertProfile(t, ts.URL, userID, map[string]any{
		"name":       "Rosa",
		"age":        78,
		"conditions": []string{"hypertension"},
	})
	createMedicine(t, ts.URL, userID, map[string]any{"name": "Metformin", "dosage": "500mg", "time": "12:00", "duration": "ongoing"})
	aspirinID := createMedicine(t, ts.URL, userID, map[string]any{"name": "Aspirin", "dosage": "100mg", "time": "08:00", "duration": "30 days"})

	// 4) Daily ordenado por hora
	{
		meds := daily(t, ts.URL, userID)
		if len(meds) != 2 || meds[0].Name != "Aspirin" || meds[1].Name != "Metformin" {
			t.Fatalf("unexpected daily order: %+v", meds)
		}
		if meds[0].Status != "pending" {
			t.Fatalf("expected pending status, got %q", meds[0].Status)
		}
	}

	// 5) Marcar toma; status inválido => 400
	{
		st, body := doReq(t, ts.URL, "PATCH", "/api/medicines/"+aspirinID+"/status", userID, map[string]any{"status": "taken"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update status, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, ts.URL, "PATCH", "/api/medicines/"+aspirinID+"/status", userID, map[string]any{"status": "skipped"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid status, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "PATCH", "/api/medicines/"+aspirinID+"/status", "someone-else", map[string]any{"status": "missed"})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 updating foreign medicine, got %d", st)
		}
	}

	// 6) Sin API key => schedule demo
	{
		res := generate(t, ts.URL, userID)
		if res.DoctorWarning != schedule.DemoWarning {
			t.Fatalf("expected demo warning, got %q", res.DoctorWarning)
		}
		if len(res.OptimizedSchedule) != 2 || res.OptimizedSchedule[0].Time != "08:00" {
			t.Fatalf("unexpected demo schedule: %+v", res.OptimizedSchedule)
		}
	}

	// 7) Apply mueve Aspirin a 21:00 y reordena
	{
		st, body := doReq(t, ts.URL, "POST", "/api/ai/apply", userID, map[string]any{
			"optimizedSchedule": []any{
				map[string]any{"time": "21:00", "medicines": []string{"Aspirin", "Unknown"}},
			},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 apply, got %d body=%s", st, string(body))
		}
		var meds []medicineResp
		_ = json.Unmarshal(body, &meds)
		if len(meds) != 2 || meds[0].Name != "Metformin" || meds[1].Name != "Aspirin" || meds[1].Time != "21:00" {
			t.Fatalf("unexpected apply result: %+v", meds)
		}
	}

	// 8) Apply sin array => 400 y nada cambia
	{
		st, body := doReq(t, ts.URL, "POST", "/api/ai/apply", userID, map[string]any{"optimizedSchedule": "nope"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 apply non-array, got %d", st)
		}
		if !strings.Contains(string(body), "optimizedSchedule array is required") {
			t.Fatalf("unexpected error body: %s", string(body))
		}
		meds := daily(t, ts.URL, userID)
		if meds[1].Time != "21:00" {
			t.Fatalf("apply with invalid payload mutated data: %+v", meds)
		}
	}
}

func TestHTTP_Generate_QuotaFallsBackToDemo(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`))
	}))
	defer upstream.Close()

	gen, err := openai.NewClient(openai.Config{APIKey: "sk-test", BaseURL: upstream.URL, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ts := httptest.NewServer(router.NewRouter(router.Options{Generator: gen}))
	defer ts.Close()

	upsertProfile(t, ts.URL, "u1", map[string]any{"name": "Rosa", "age": 78})

	res := generate(t, ts.URL, "u1")
	if !strings.Contains(res.DoctorWarning, schedule.QuotaNotice) {
		t.Fatalf("expected quota notice, got %q", res.DoctorWarning)
	}
	if len(res.OptimizedSchedule) != 2 {
		t.Fatalf("expected demo schedule on quota, got %+v", res.OptimizedSchedule)
	}
	if res.Raw == nil {
		t.Fatalf("expected raw diagnostic on quota path")
	}
}

func TestHTTP_Generate_LiveSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := "```json\n{\"optimizedSchedule\":[{\"time\":\"08:00\",\"medicines\":[\"Aspirin\"]}],\"precautions\":[],\"doctorWarning\":\"ok\"}\n```"
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": content}}},
		})
	}))
	defer upstream.Close()

	gen, err := openai.NewClient(openai.Config{APIKey: "sk-test", BaseURL: upstream.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ts := httptest.NewServer(router.NewRouter(router.Options{Generator: gen}))
	defer ts.Close()

	upsertProfile(t, ts.URL, "u1", map[string]any{"name": "Rosa", "age": 78})
	createMedicine(t, ts.URL, "u1", map[string]any{"name": "Aspirin", "dosage": "100mg", "time": "09:00", "duration": "7 days"})

	res := generate(t, ts.URL, "u1")
	if res.DoctorWarning != "ok" || len(res.OptimizedSchedule) != 1 || res.OptimizedSchedule[0].Medicines[0] != "Aspirin" {
		t.Fatalf("unexpected live result: %+v", res)
	}
	if res.Raw != nil {
		t.Fatalf("raw must be absent on success, got %v", res.Raw)
	}
}

func TestHTTP_AI_RateLimited(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Limiter: ratelimit.New(0.001, 1)}))
	defer ts.Close()

	upsertProfile(t, ts.URL, "u1", map[string]any{"name": "Rosa", "age": 78})

	_ = generate(t, ts.URL, "u1")

	st, _ := doReq(t, ts.URL, "POST", "/api/ai/generate", "u1", nil)
	if st != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on second generate, got %d", st)
	}

	// otro usuario tiene su propio bucket
	upsertProfile(t, ts.URL, "u2", map[string]any{"name": "Ana", "age": 80})
	_ = generate(t, ts.URL, "u2")

	// el resto del API no está limitado
	st, _ = doReq(t, ts.URL, "GET", "/api/me/profile", "u1", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 profile, got %d", st)
	}
}

func TestHTTP_JWTMode_IgnoresDebugHeader(t *testing.T) {
	v, err := jwtauth.NewVerifier("s3cret")
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: v}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "GET", "/api/medicines/daily", "u1", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with debug header in jwt mode, got %d", st)
	}

	token, err := v.Issue("u1", "", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req, _ := http.NewRequest("GET", ts.URL+"/api/medicines/daily", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d", res.StatusCode)
	}
}

func TestHTTP_Ops(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	for _, path := range []string{"/api/health", "/metrics", "/swagger/doc.json"} {
		st, body := doReq(t, ts.URL, "GET", path, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d body=%s", path, st, string(body))
		}
	}
}

func TestHTTP_Apply_LastEntryWins(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	upsertProfile(t, ts.URL, "u1", map[string]any{"name": "Rosa", "age": 78})
	createMedicine(t, ts.URL, "u1", map[string]any{"name": "Aspirin", "dosage": "100mg", "time": "08:00", "duration": "30 days"})
	createMedicine(t, ts.URL, "u1", map[string]any{"name": "Metformin", "dosage": "500mg", "time": "12:00", "duration": "ongoing"})

	st, body := doReq(t, ts.URL, "POST", "/api/ai/apply", "u1", map[string]any{
		"optimizedSchedule": []any{
			map[string]any{"time": "09:00", "medicines": []string{"Aspirin"}},
			map[string]any{"time": "22:00", "medicines": []string{"Aspirin"}},
		},
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 apply, got %d body=%s", st, string(body))
	}
	var meds []medicineResp
	_ = json.Unmarshal(body, &meds)
	if len(meds) != 2 || meds[0].Name != "Metformin" || meds[1].Name != "Aspirin" || meds[1].Time != "22:00" {
		t.Fatalf("expected last entry to win: %+v", meds)
	}
}

func TestSwaggerDoc_CoversMountedRoutes(t *testing.T) {
	routes, ok := router.NewRouter(router.Options{}).(chi.Routes)
	if !ok {
		t.Fatalf("router is not a chi.Routes")
	}

	raw, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("decode doc: %v", err)
	}

	mounted := map[string]bool{}
	err = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if !strings.HasPrefix(route, "/api/") {
			return nil
		}
		route = strings.TrimSuffix(route, "/")
		key := strings.ToLower(method) + " " + route
		mounted[key] = true
		if _, ok := doc.Paths[route][strings.ToLower(method)]; !ok {
			t.Errorf("route %s %s is not documented", method, route)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	for path, ops := range doc.Paths {
		for method := range ops {
			if !mounted[method+" "+path] {
				t.Errorf("documented %s %s is not mounted", method, path)
			}
		}
	}
}

func upsertProfile(t *testing.T, baseURL, userID string, payload map[string]any) {
	t.Helper()

	st, body := doReq(t, baseURL, "PUT", "/api/me/profile", userID, payload)
	if st != http.StatusOK {
		t.Fatalf("expected 200 upsert profile, got %d body=%s", st, string(body))
	}
}

func createMedicine(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/medicines", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create medicine, got %d body=%s", st, string(body))
	}

	var resp medicineResp
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create medicine: missing id body=%s", string(body))
	}
	return resp.ID
}

func daily(t *testing.T, baseURL, userID string) []medicineResp {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/api/medicines/daily", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 daily, got %d body=%s", st, string(body))
	}
	var out []medicineResp
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode daily: %v body=%s", err, string(body))
	}
	return out
}

func generate(t *testing.T, baseURL, userID string) schedule.Result {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/ai/generate", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 generate, got %d body=%s", st, string(body))
	}
	var resp struct {
		AIResult schedule.Result `json:"aiResult"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode generate: %v body=%s", err, string(body))
	}
	return resp.AIResult
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
