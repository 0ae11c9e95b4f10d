package controllers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	dm "wayfarer/internal/models/domain_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/media"
	mem "wayfarer/pkg/memcache"
)

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := services.NewBuiltinCatalogService()
	sessions := services.NewSessionService(
		mem.NewSessions[*services.PlannerSession](time.Hour),
		catalog,
		services.NewTemplateSuggestionGenerator(),
		nil,
		services.CheckInConfig{GeoTimeout: 50 * time.Millisecond},
		zap.NewNop(),
	)
	store, err := media.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("media store: %v", err)
	}

	cat := NewCatalogController(catalog)
	sess := NewSessionController(sessions)
	wf := NewWorkflowController(sessions)
	it := NewItineraryController(sessions)
	sg := NewSuggestionController(sessions)
	mp := NewMapController(sessions)
	ci := NewCheckInController(sessions, store, zap.NewNop())
	ch := NewChatController(sessions)

	r := gin.New()
	r.GET("/catalog", cat.ListCatalog)
	r.GET("/catalog/categories", cat.ListCategories)
	r.GET("/catalog/:id", cat.GetExperience)
	r.POST("/sessions", sess.CreateSession)
	g := r.Group("/sessions/:id")
	g.GET("", sess.GetSession)
	g.DELETE("", sess.DeleteSession)
	g.POST("/workflow/category", wf.SelectCategory)
	g.POST("/workflow/day", wf.SetDay)
	g.POST("/workflow/slot", wf.SetTimeSlot)
	g.POST("/workflow/hold", wf.Hold)
	g.POST("/workflow/confirm", wf.Confirm)
	g.POST("/workflow/reset", wf.Reset)
	g.GET("/itinerary", it.ListItinerary)
	g.POST("/itinerary", it.AddItinerary)
	g.GET("/itinerary/export.pdf", it.ExportPDF)
	g.DELETE("/itinerary/:itemId", it.RemoveItinerary)
	g.POST("/itinerary/:itemId/book", it.BookItem)
	g.GET("/suggestion", sg.GetSuggestion)
	g.POST("/suggestion/activity", sg.AddActivity)
	g.POST("/suggestion/day/:day/confirm", sg.ConfirmDay)
	g.POST("/suggestion/confirm", sg.ConfirmPlan)
	g.GET("/map", mp.GetFrame)
	g.PUT("/map/day", mp.SetDayView)
	g.POST("/map/tap", mp.TapMarker)
	g.POST("/map/click", mp.ClickMap)
	g.GET("/checkins", ci.ListCheckIns)
	g.POST("/checkins/prepare", ci.Prepare)
	g.PUT("/checkins/notes", ci.SetNotes)
	g.POST("/checkins/photos", ci.AttachPhotos)
	g.POST("/checkins/submit", ci.Submit)
	g.GET("/checkins/:code/qr", ci.QRCode)
	g.GET("/chat", ch.GetChat)
	g.POST("/chat", ch.PostMessage)

	return &testAPI{t: t, router: r}
}

func (a *testAPI) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			if err := json.NewEncoder(&buf).Encode(b); err != nil {
				a.t.Fatalf("encode body: %v", err)
			}
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			a.t.Fatalf("%s %s: decode envelope: %v", method, path, err)
		}
	}
	return w, env
}

func (a *testAPI) expect(method, path string, body interface{}, code int) envelope {
	a.t.Helper()
	w, env := a.do(method, path, body)
	if w.Code != code {
		a.t.Fatalf("%s %s: expected %d, got %d: %s", method, path, code, w.Code, w.Body.String())
	}
	return env
}

func (a *testAPI) newSession() string {
	a.t.Helper()
	env := a.expect(http.MethodPost, "/sessions", nil, http.StatusCreated)
	var snap dm.SessionSnapshot
	if err := json.Unmarshal(env.Data, &snap); err != nil || snap.ID == "" {
		a.t.Fatalf("decode session: %v", err)
	}
	return "/sessions/" + snap.ID
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v (%s)", err, env.Data)
	}
}

func TestSessionEndpoints(t *testing.T) {
	api := newTestAPI(t)
	base := api.newSession()

	env := api.expect(http.MethodGet, base, nil, http.StatusOK)
	var snap dm.SessionSnapshot
	decodeData(t, env, &snap)
	if snap.DayView != 1 || snap.Selection.Phase != dm.PhaseIdle {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	api.expect(http.MethodGet, "/sessions/nope", nil, http.StatusNotFound)
	api.expect(http.MethodDelete, base, nil, http.StatusOK)
	api.expect(http.MethodGet, base, nil, http.StatusNotFound)
}

func TestCatalogEndpoints(t *testing.T) {
	api := newTestAPI(t)

	var resp response_models.CatalogResponse
	decodeData(t, api.expect(http.MethodGet, "/catalog?category=Dining", nil, http.StatusOK), &resp)
	if resp.Category != dm.CategoryDining || len(resp.Items) != 2 {
		t.Fatalf("unexpected dining list %+v", resp)
	}

	decodeData(t, api.expect(http.MethodGet, "/catalog?category=nightlife", nil, http.StatusOK), &resp)
	if len(resp.Items) != 0 {
		t.Fatalf("unknown category should be empty, got %d", len(resp.Items))
	}

	var cats []dm.Category
	decodeData(t, api.expect(http.MethodGet, "/catalog/categories", nil, http.StatusOK), &cats)
	if len(cats) != 5 {
		t.Fatalf("expected 5 categories, got %v", cats)
	}

	api.expect(http.MethodGet, "/catalog/colosseum1", nil, http.StatusOK)
	api.expect(http.MethodGet, "/catalog/nope", nil, http.StatusNotFound)
}

func TestWorkflowEndpoints(t *testing.T) {
	api := newTestAPI(t)
	base := api.newSession()

	api.expect(http.MethodPost, base+"/workflow/day", map[string]interface{}{"day": 1}, http.StatusConflict)
	api.expect(http.MethodPost, base+"/workflow/category", map[string]string{"category": "shopping"}, http.StatusBadRequest)
	api.expect(http.MethodPost, base+"/workflow/category", map[string]string{"category": "dining"}, http.StatusOK)

	env := api.expect(http.MethodPost, base+"/workflow/confirm", nil, http.StatusConflict)
	var res services.ConfirmResult
	decodeData(t, env, &res)
	if res.Confirmed || res.State.Phase != dm.PhaseTimeSelectionPending {
		t.Fatalf("unexpected no-op confirm %+v", res)
	}

	api.expect(http.MethodPost, base+"/workflow/day", map[string]interface{}{"day": 0}, http.StatusBadRequest)
	api.expect(http.MethodPost, base+"/workflow/day", map[string]interface{}{"day": "all"}, http.StatusOK)
	api.expect(http.MethodPost, base+"/workflow/slot", map[string]string{"slot": "noon"}, http.StatusBadRequest)
	api.expect(http.MethodPost, base+"/workflow/slot", map[string]string{"slot": "evening"}, http.StatusOK)
	api.expect(http.MethodPost, base+"/workflow/hold", map[string]string{"experience_id": "nope"}, http.StatusNotFound)
	api.expect(http.MethodPost, base+"/workflow/hold", map[string]string{"experience_id": "trattoria1"}, http.StatusOK)

	decodeData(t, api.expect(http.MethodPost, base+"/workflow/confirm", nil, http.StatusOK), &res)
	if !res.Confirmed || res.Added == nil || !res.Added.ScheduledDay.IsAllDays() {
		t.Fatalf("unexpected confirm %+v", res)
	}

	var state dm.SelectionState
	decodeData(t, api.expect(http.MethodPost, base+"/workflow/reset", nil, http.StatusOK), &state)
	if state.Phase != dm.PhaseIdle {
		t.Fatalf("reset left phase %s", state.Phase)
	}
}

func TestItineraryEndpoints(t *testing.T) {
	api := newTestAPI(t)
	base := api.newSession()

	add := map[string]interface{}{"experience_id": "colosseum1", "day": 1, "slot": "morning"}
	var added response_models.AddItineraryResponse
	decodeData(t, api.expect(http.MethodPost, base+"/itinerary", add, http.StatusOK), &added)
	if !added.Added || added.Item.ScheduledTimeSlot != dm.SlotMorning {
		t.Fatalf("unexpected add %+v", added)
	}
	decodeData(t, api.expect(http.MethodPost, base+"/itinerary", add, http.StatusOK), &added)
	if added.Added {
		t.Fatal("duplicate add reported as new")
	}
	api.expect(http.MethodPost, base+"/itinerary", map[string]interface{}{"experience_id": "spa1", "slot": "dawn"}, http.StatusBadRequest)
	api.expect(http.MethodPost, base+"/itinerary", map[string]interface{}{}, http.StatusBadRequest)

	var list response_models.ItineraryResponse
	decodeData(t, api.expect(http.MethodGet, base+"/itinerary", nil, http.StatusOK), &list)
	if list.Count != 1 || list.TotalCost != 45 {
		t.Fatalf("unexpected itinerary %+v", list)
	}

	api.expect(http.MethodPost, base+"/itinerary/colosseum1/book", nil, http.StatusOK)
	api.expect(http.MethodPost, base+"/itinerary/spa1/book", nil, http.StatusNotFound)

	w, _ := api.do(http.MethodGet, base+"/itinerary/export.pdf", nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/pdf" || !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("unexpected export %d %s", w.Code, w.Header().Get("Content-Type"))
	}

	api.expect(http.MethodDelete, base+"/itinerary/spa1", nil, http.StatusOK)
	decodeData(t, api.expect(http.MethodDelete, base+"/itinerary/colosseum1", nil, http.StatusOK), &list)
	if list.Count != 0 || list.TotalCost != 0 {
		t.Fatalf("unexpected itinerary after remove %+v", list)
	}
}

func TestSuggestionEndpoints(t *testing.T) {
	api := newTestAPI(t)
	base := api.newSession()

	var plan []dm.DayRoute
	decodeData(t, api.expect(http.MethodGet, base+"/suggestion", nil, http.StatusOK), &plan)
	if len(plan) != 3 {
		t.Fatalf("expected 3 days, got %d", len(plan))
	}

	api.expect(http.MethodPost, base+"/suggestion/activity", map[string]interface{}{"day": 2, "activity_id": "nope"}, http.StatusNotFound)
	api.expect(http.MethodPost, base+"/suggestion/activity", map[string]interface{}{"day": 2, "activity_id": "vatican1"}, http.StatusOK)

	api.expect(http.MethodPost, base+"/suggestion/day/x/confirm", nil, http.StatusBadRequest)
	api.expect(http.MethodPost, base+"/suggestion/day/9/confirm", nil, http.StatusNotFound)

	var day response_models.ConfirmDayResponse
	decodeData(t, api.expect(http.MethodPost, base+"/suggestion/day/1/confirm", nil, http.StatusOK), &day)
	if day.Day != 1 || len(day.Added) != 5 {
		t.Fatalf("unexpected day confirm %+v", day)
	}

	var all response_models.ConfirmPlanResponse
	decodeData(t, api.expect(http.MethodPost, base+"/suggestion/confirm", nil, http.StatusOK), &all)
	if all.Added != 8 {
		t.Fatalf("expected 8 remaining entries, got %d", all.Added)
	}
}

func TestMapEndpoints(t *testing.T) {
	api := newTestAPI(t)
	base := api.newSession()

	api.expect(http.MethodPost, base+"/itinerary", map[string]interface{}{"experience_id": "vatican1", "day": 2, "slot": "morning"}, http.StatusOK)

	var frame dm.MapFrame
	decodeData(t, api.expect(http.MethodPut, base+"/map/day", map[string]int{"day": 2}, http.StatusOK), &frame)
	if frame.Day != 2 || len(frame.Markers) != 1 || frame.Markers[0].ID != "vatican1" {
		t.Fatalf("unexpected frame %+v", frame)
	}
	api.expect(http.MethodPut, base+"/map/day", map[string]int{"day": 0}, http.StatusBadRequest)

	decodeData(t, api.expect(http.MethodGet, base+"/map", nil, http.StatusOK), &frame)
	if frame.Day != 2 {
		t.Fatalf("day view not kept, got %d", frame.Day)
	}

	var detail dm.LocationDetail
	decodeData(t, api.expect(http.MethodPost, base+"/map/tap", map[string]string{"id": "vatican1"}, http.StatusOK), &detail)
	if !detail.InItinerary || detail.Action.PointID != "vatican1" {
		t.Fatalf("unexpected detail %+v", detail)
	}
	api.expect(http.MethodPost, base+"/map/tap", map[string]string{"id": "nope"}, http.StatusNotFound)
	api.expect(http.MethodPost, base+"/map/click", nil, http.StatusOK)
}

func photoUpload(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, data := range files {
		fw, err := mw.CreateFormFile("photos", name)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		fw.Write(data)
	}
	mw.Close()
	return &body, mw.FormDataContentType()
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func (a *testAPI) upload(path string, files map[string][]byte) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	body, contentType := photoUpload(a.t, files)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	var env envelope
	json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestCheckInEndpoints(t *testing.T) {
	api := newTestAPI(t)
	base := api.newSession()

	api.expect(http.MethodPost, base+"/checkins/submit", nil, http.StatusConflict)
	if w, _ := api.upload(base+"/checkins/photos", map[string][]byte{"a.png": tinyPNG(t)}); w.Code != http.StatusConflict {
		t.Fatalf("photos without draft: expected 409, got %d", w.Code)
	}

	var draft dm.CheckInDraft
	decodeData(t, api.expect(http.MethodPost, base+"/checkins/prepare",
		map[string]interface{}{"point_id": "pantheon1", "lat": 41.8986, "lng": 12.4769}, http.StatusOK), &draft)
	if draft.UsedFallbackLocation || draft.Position.Lat != 41.8986 {
		t.Fatalf("reported position not used: %+v", draft)
	}
	api.expect(http.MethodPost, base+"/checkins/prepare", map[string]interface{}{"point_id": "nope"}, http.StatusNotFound)

	decodeData(t, api.expect(http.MethodPost, base+"/checkins/prepare",
		map[string]interface{}{"point_id": "pantheon1", "geo_denied": true}, http.StatusOK), &draft)
	if !draft.UsedFallbackLocation || draft.Position != services.DefaultMapCenter {
		t.Fatalf("denied geolocation should fall back: %+v", draft)
	}

	api.expect(http.MethodPut, base+"/checkins/notes", map[string]string{"notes": "busy"}, http.StatusOK)

	w, env := api.upload(base+"/checkins/photos", map[string][]byte{"a.png": tinyPNG(t), "b.txt": []byte("x")})
	if w.Code != http.StatusOK {
		t.Fatalf("photos: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var photos response_models.CheckInPhotosResponse
	decodeData(t, env, &photos)
	if len(photos.Draft.Photos) != 1 || len(photos.Rejected) != 1 {
		t.Fatalf("unexpected photo result %+v", photos)
	}
	if w, _ := api.upload(base+"/checkins/photos", map[string][]byte{"b.txt": []byte("x")}); w.Code != http.StatusBadRequest {
		t.Fatalf("only invalid photos: expected 400, got %d", w.Code)
	}

	var rec dm.CheckInRecord
	decodeData(t, api.expect(http.MethodPost, base+"/checkins/submit", nil, http.StatusCreated), &rec)
	if !regexp.MustCompile(`^CHK\d+-[0-9A-F]{6}$`).MatchString(rec.Code) || rec.Notes != "busy" || len(rec.Photos) != 1 {
		t.Fatalf("unexpected record %+v", rec)
	}

	var list []dm.CheckInRecord
	decodeData(t, api.expect(http.MethodGet, base+"/checkins", nil, http.StatusOK), &list)
	if len(list) != 1 {
		t.Fatalf("expected one check-in, got %d", len(list))
	}

	w, _ = api.do(http.MethodGet, base+"/checkins/"+rec.Code+"/qr", nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("unexpected qr response %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	api.expect(http.MethodGet, base+"/checkins/CHK1-000000/qr", nil, http.StatusNotFound)
}

func TestPrepareWithoutBrowserFallsBack(t *testing.T) {
	api := newTestAPI(t)
	base := api.newSession()

	var draft dm.CheckInDraft
	decodeData(t, api.expect(http.MethodPost, base+"/checkins/prepare", map[string]string{"point_id": "colosseum1"}, http.StatusOK), &draft)
	if !draft.UsedFallbackLocation {
		t.Fatalf("expected fallback without a connected client: %+v", draft)
	}
}

func TestChatEndpoints(t *testing.T) {
	api := newTestAPI(t)
	base := api.newSession()

	var resp response_models.ChatResponse
	decodeData(t, api.expect(http.MethodPost, base+"/chat", map[string]string{"text": "somewhere to eat?"}, http.StatusOK), &resp)
	if len(resp.Messages) != 2 || resp.Messages[0].Role != dm.RoleUser {
		t.Fatalf("unexpected chat reply %+v", resp)
	}
	api.expect(http.MethodPost, base+"/chat", map[string]string{}, http.StatusBadRequest)

	decodeData(t, api.expect(http.MethodGet, base+"/chat", nil, http.StatusOK), &resp)
	if len(resp.Messages) != 3 {
		t.Fatalf("expected welcome plus two messages, got %d", len(resp.Messages))
	}

	var snap dm.SessionSnapshot
	decodeData(t, api.expect(http.MethodGet, base, nil, http.StatusOK), &snap)
	if snap.Selection.SelectedCategory != dm.CategoryDining {
		t.Fatalf("chat intent not applied: %+v", snap.Selection)
	}
}
