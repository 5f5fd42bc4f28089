package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"cafes/internal/auth"
	"cafes/internal/config"
	"cafes/internal/metrics"
	"cafes/internal/middleware"
	"cafes/internal/model"
	"cafes/internal/service"
	"cafes/internal/storage/repository"
	"cafes/web"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	_ "modernc.org/sqlite"
)

const testAPIKey = "TopSecretAPIKey"

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (n *recordingNotifier) Notify(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.messages = append(n.messages, text)
	return nil
}

type testServer struct {
	router   *gin.Engine
	notifier *recordingNotifier
	metrics  *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	sqldb, err := sql.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.NewCreateTable().Model((*model.Cafe)(nil)).Exec(context.Background())
	require.NoError(t, err)

	verifier, err := auth.NewVerifierFromKey(testAPIKey, bcrypt.MinCost)
	require.NoError(t, err)

	logger := zap.NewNop()
	notifier := &recordingNotifier{}
	m := metrics.NewMetrics(logger)
	services := service.NewServices(repository.NewCafeRepository(db, logger), verifier, notifier, logger)

	cfg := &config.Config{SecretKey: "test-secret", CSRFEnabled: true}
	mw := middleware.New(cfg, m, logger)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(mw.Global()...)
	require.NoError(t, New(services, m, logger).Register(router, mw))

	return &testServer{router: router, notifier: notifier, metrics: m}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// session открывает страницу с формой и возвращает CSRF cookie и токен
func (s *testServer) session(t *testing.T, path string) (*http.Cookie, string) {
	t.Helper()

	w := s.get(path)
	require.Equal(t, http.StatusOK, w.Code)

	doc := document(t, w)
	token := doc.Find(`input[name="csrf_token"]`).AttrOr("value", "")
	require.NotEmpty(t, token)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.CSRFCookieName {
			return cookie, token
		}
	}
	t.Fatal("csrf cookie not set")
	return nil, ""
}

func (s *testServer) post(t *testing.T, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()

	cookie, token := s.session(t, path)
	values.Set("csrf_token", token)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	return s.do(req)
}

func (s *testServer) addCafe(t *testing.T, values url.Values) {
	t.Helper()

	w := s.post(t, "/add", values)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"response":{"success":"Successfully added the new cafe."}}`, w.Body.String())
}

func (s *testServer) cafeIDs(t *testing.T) map[string]string {
	t.Helper()

	doc := document(t, s.get("/all"))
	ids := map[string]string{}
	doc.Find("tr.cafe-row").Each(func(_ int, row *goquery.Selection) {
		ids[row.Find(".cafe-name").Text()] = row.AttrOr("data-id", "")
	})
	return ids
}

func document(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return doc
}

func cafeValues(name, location string) url.Values {
	return url.Values{
		"name":         {name},
		"map_url":      {"http://x"},
		"img_url":      {"http://y"},
		"loc":          {location},
		"seats":        {"10-20"},
		"toilet":       {"1"},
		"wifi":         {"1"},
		"sockets":      {"0"},
		"calls":        {"0"},
		"coffee_price": {"£3"},
	}
}

func TestBlueBottleEndToEnd(t *testing.T) {
	s := newTestServer(t)

	s.addCafe(t, cafeValues("Monmouth", "Borough"))
	s.addCafe(t, cafeValues("Blue Bottle", "SoHo"))
	s.addCafe(t, cafeValues("Allpress", "Dalston"))

	doc := document(t, s.get("/all"))
	var names []string
	doc.Find("tr.cafe-row .cafe-name").Each(func(_ int, sel *goquery.Selection) {
		names = append(names, sel.Text())
	})
	assert.Equal(t, []string{"Allpress", "Blue Bottle", "Monmouth"}, names)

	id := s.cafeIDs(t)["Blue Bottle"]
	require.NotEmpty(t, id)

	w := s.get("/cafe/" + id)
	require.Equal(t, http.StatusOK, w.Code)
	doc = document(t, w)
	assert.Equal(t, "Blue Bottle", doc.Find("#cafe-name").Text())
	assert.Equal(t, "10-20", doc.Find("#seats").Text())
	assert.Equal(t, "Yes", doc.Find("#has-toilet").Text())
	assert.Equal(t, "No", doc.Find("#has-sockets").Text())
	assert.Equal(t, "£3", doc.Find("#coffee-price").Text())

	w = s.do(httptest.NewRequest(http.MethodPatch, "/update-price/"+id+"?new_price="+url.QueryEscape("£4"), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response":{"success":"Successfully updated the price."}}`, w.Body.String())

	doc = document(t, s.get("/cafe/"+id))
	assert.Equal(t, "£4", doc.Find("#coffee-price").Text())
	assert.Equal(t, "Blue Bottle", doc.Find("#cafe-name").Text())

	assert.Len(t, s.notifier.messages, 3)

	catalog := s.metrics.GetStats()["catalog"].(map[string]interface{})
	assert.Equal(t, int64(3), catalog["cafes_added"])
	assert.Equal(t, int64(1), catalog["price_updates"])
}

func TestRandomCafe(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/random")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":{"Not Found":"Sorry, there are no cafes in the database yet."}}`, w.Body.String())

	s.addCafe(t, cafeValues("Blue Bottle", "SoHo"))

	w = s.get("/random")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Cafe map[string]interface{} `json:"cafe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Blue Bottle", body.Cafe["name"])
	assert.Equal(t, "SoHo", body.Cafe["location"])
	assert.Equal(t, true, body.Cafe["has_wifi"])
	assert.Equal(t, false, body.Cafe["can_take_calls"])
	assert.Equal(t, "£3", body.Cafe["coffee_price"])
	assert.Contains(t, body.Cafe, "id")
}

func TestSearchCafes(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/search/Atlantis")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":{"Not Found":"Sorry, we don't have a cafe at that location."}}`, w.Body.String())

	s.addCafe(t, cafeValues("Prufrock", "Shoreditch"))
	s.addCafe(t, cafeValues("Ozone", "Shoreditch"))
	s.addCafe(t, cafeValues("Kaffeine", "Fitzrovia"))

	w = s.get("/search/Shoreditch")
	require.Equal(t, http.StatusOK, w.Code)

	doc := document(t, w)
	assert.Equal(t, "Cafes in Shoreditch", doc.Find("#heading").Text())
	assert.Equal(t, 2, doc.Find("tr.cafe-row").Length())
}

func TestShowCafeNotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/cafe/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":{"Not Found":"Sorry a cafe with that id was not found in the database."}}`, w.Body.String())

	for _, path := range []string{"/cafe/abc", "/cafe/-1", "/update-price/x", "/nope"} {
		w = s.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestUpdatePrice(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodPatch, "/update-price/42?new_price=4", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":{"Not Found":"Sorry a cafe with that id was not found in the database."}}`, w.Body.String())

	s.addCafe(t, cafeValues("Blue Bottle", "SoHo"))
	id := s.cafeIDs(t)["Blue Bottle"]

	w = s.do(httptest.NewRequest(http.MethodPatch, "/update-price/"+id+"?new_price="+strings.Repeat("9", 251), nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(httptest.NewRequest(http.MethodPatch, "/update-price/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)

	doc := document(t, s.get("/cafe/"+id))
	assert.Equal(t, "Not listed", doc.Find("#coffee-price").Text())
}

func TestReportClosed(t *testing.T) {
	s := newTestServer(t)

	s.addCafe(t, cafeValues("Blue Bottle", "SoHo"))
	id := s.cafeIDs(t)["Blue Bottle"]

	w := s.do(httptest.NewRequest(http.MethodDelete, "/report-closed/"+id+"?api-key=wrong", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":{"Forbidden":"Sorry, that's not allowed. Make sure you have the correct api_key."}}`, w.Body.String())

	assert.Equal(t, http.StatusOK, s.get("/cafe/"+id).Code, "record must survive a forbidden request")

	w = s.do(httptest.NewRequest(http.MethodDelete, "/report-closed/"+id, nil))
	assert.Equal(t, http.StatusForbidden, w.Code, "missing key")

	w = s.do(httptest.NewRequest(http.MethodDelete, "/report-closed/"+id+"?api-key="+testAPIKey, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response":{"success":"Successfully deleted the cafe from the database."}}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, s.get("/cafe/"+id).Code)

	w = s.do(httptest.NewRequest(http.MethodDelete, "/report-closed/"+id+"?api-key="+testAPIKey, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":{"Not Found":"Sorry a cafe with that id was not found in the database."}}`, w.Body.String())
}

func TestAddCafeValidation(t *testing.T) {
	s := newTestServer(t)

	values := cafeValues("Blue Bottle", "SoHo")
	values.Set("wifi", "maybe")
	values.Del("loc")
	values.Set("map_url", "not a url")

	w := s.post(t, "/add", values)
	require.Equal(t, http.StatusOK, w.Code)

	doc := document(t, w)
	assert.Equal(t, "Please choose Yes or No.", doc.Find(`[data-field="wifi"]`).Text())
	assert.Equal(t, "This field is required.", doc.Find(`[data-field="loc"]`).Text())
	assert.Equal(t, "Invalid URL.", doc.Find(`[data-field="map_url"]`).Text())
	assert.Equal(t, "Blue Bottle", doc.Find(`input[name="name"]`).AttrOr("value", ""), "entered values are kept")
	assert.NotEmpty(t, doc.Find(`input[name="csrf_token"]`).AttrOr("value", ""))

	assert.Empty(t, s.cafeIDs(t), "nothing stored on validation failure")
}

func TestAddCafeDuplicate(t *testing.T) {
	s := newTestServer(t)

	s.addCafe(t, cafeValues("Blue Bottle", "SoHo"))

	w := s.post(t, "/add", cafeValues("Blue Bottle", "Peckham"))
	require.Equal(t, http.StatusConflict, w.Code)

	doc := document(t, w)
	assert.Equal(t, "A cafe with this name already exists.", doc.Find(`[data-field="name"]`).Text())

	w = s.get("/search/Peckham")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddCafeRequiresCSRF(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader(cafeValues("Blue Bottle", "SoHo").Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := s.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, s.cafeIDs(t))
}

func TestContact(t *testing.T) {
	s := newTestServer(t)

	doc := document(t, s.get("/contact"))
	assert.Equal(t, 1, doc.Find("#contact-form").Length())

	values := url.Values{
		"reason": {"Suggestion"},
		"email":  {"someone@example.com"},
		"body":   {"More cafes in Leeds please"},
	}

	w := s.post(t, "/contact", values)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, document(t, w).Find("#sent").Length())
	require.Len(t, s.notifier.messages, 1)
	assert.Contains(t, s.notifier.messages[0], "More cafes in Leeds please")

	invalid := url.Values{"reason": {"Suggestion"}, "email": {"nope"}, "body": {""}}
	w = s.post(t, "/contact", invalid)
	require.Equal(t, http.StatusOK, w.Code)
	doc = document(t, w)
	assert.Equal(t, "Invalid email address.", doc.Find(`[data-field="email"]`).Text())
	assert.Equal(t, "This field is required.", doc.Find(`[data-field="body"]`).Text())

	s.notifier.err = errors.New("telegram is down")
	w = s.post(t, "/contact", values)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, msgContactFailed, document(t, w).Find("#form-error").Text())
}

func TestNotFoundRoute(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/does-not-exist")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"error":{"Not Found":%q}}`, msgPageNotFound), w.Body.String())
}

func TestHomeAndEmptyCatalog(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	doc := document(t, w)
	assert.Equal(t, "/all", doc.Find("#browse").AttrOr("href", ""))
	assert.Equal(t, "/add", doc.Find("#suggest").AttrOr("href", ""))

	w = s.get("/all")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, document(t, w).Find("#empty").Length())
}
