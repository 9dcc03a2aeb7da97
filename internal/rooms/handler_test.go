package rooms

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(reg *Registry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(reg, "fallback-material", zap.NewNop())
	r := gin.New()
	r.POST("/api/rooms", h.Create)
	r.GET("/api/rooms", h.List)
	r.GET("/api/rooms/:id", h.Get)
	r.GET("/instructor/:id", h.InstructorEntry)
	r.GET("/student/:id", h.StudentEntry)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestHandler_CreateRoom(t *testing.T) {
	reg := NewRegistry()
	r := newTestRouter(reg)

	w, body := doJSON(t, r, http.MethodPost, "/api/rooms",
		`{"room_id":"r1","material_id":"m1","instructor_id":"i1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "r1", data["room_id"])
	assert.Equal(t, "/instructor/r1", data["instructor_url"])
	assert.Equal(t, "/student/r1", data["student_url"])
	require.NotNil(t, reg.Get("r1"))
	assert.Equal(t, "m1", reg.Get("r1").MaterialID())
}

func TestHandler_CreateRoom_GeneratesID(t *testing.T) {
	reg := NewRegistry()
	r := newTestRouter(reg)

	w, body := doJSON(t, r, http.MethodPost, "/api/rooms", `{"material_id":"m1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	data := body["data"].(map[string]interface{})
	roomID := data["room_id"].(string)
	assert.Len(t, roomID, 8)
	assert.NotNil(t, reg.Get(roomID))
}

func TestHandler_CreateRoom_MissingMaterial(t *testing.T) {
	r := newTestRouter(NewRegistry())

	w, _ := doJSON(t, r, http.MethodPost, "/api/rooms", `{"room_id":"r1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetRoom(t *testing.T) {
	reg := NewRegistry()
	reg.Create("r1", "m1", "i1")
	r := newTestRouter(reg)

	w, body := doJSON(t, r, http.MethodGet, "/api/rooms/r1", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "r1", data["room_id"])
	assert.Equal(t, float64(1), data["current_page"])

	w, _ = doJSON(t, r, http.MethodGet, "/api/rooms/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_InstructorEntry_CreatesImplicitly(t *testing.T) {
	reg := NewRegistry()
	r := newTestRouter(reg)

	w, body := doJSON(t, r, http.MethodGet, "/instructor/demo", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "fallback-material", data["material_id"])

	room := reg.Get("demo")
	require.NotNil(t, room)
	assert.Equal(t, "fallback-material", room.MaterialID())
}

func TestHandler_DeleteRoom(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := NewRegistry()
	reg.Create("r1", "m1", "i1")

	h := NewHandler(reg, "fallback-material", zap.NewNop())
	var dropped []string
	h.OnDelete = func(roomID string) { dropped = append(dropped, roomID) }

	r := gin.New()
	r.DELETE("/api/rooms/:id", h.Delete)

	w, _ := doJSON(t, r, http.MethodDelete, "/api/rooms/r1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, reg.Get("r1"))
	assert.Equal(t, []string{"r1"}, dropped)

	// Unknown room: still a success, hook still fires.
	w, _ = doJSON(t, r, http.MethodDelete, "/api/rooms/ghost", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_StudentEntry_NeverCreates(t *testing.T) {
	reg := NewRegistry()
	r := newTestRouter(reg)

	w, _ := doJSON(t, r, http.MethodGet, "/student/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Nil(t, reg.Get("unknown"), "student entry must not create rooms")

	reg.Create("r1", "m1", "i1")
	w, body := doJSON(t, r, http.MethodGet, "/student/r1", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "m1", data["material_id"])
}
