package web

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/coursereg/internal/config"
	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/core/coretest"
	"github.com/JonMunkholm/coursereg/internal/export"
	"github.com/JonMunkholm/coursereg/internal/session"
	"github.com/JonMunkholm/coursereg/internal/web/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testEnv struct {
	srv   *Server
	svc   *core.Service
	store *coretest.Store
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	cfg := &config.Config{
		Server:   config.ServerConfig{RequestTimeout: time.Minute},
		Session:  config.SessionConfig{Secret: "0123456789abcdef0123456789abcdef", CookieName: "sid", TTL: time.Hour},
		Security: config.SecurityConfig{EnableCSP: true},
	}
	store := coretest.New()
	svc, err := core.NewService(store, core.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	srv := NewServer(svc, session.NewManager(cfg.Session), fakePinger{}, cfg)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return testEnv{srv: srv, svc: svc, store: store}
}

func (e testEnv) do(t *testing.T, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.srv.Router().ServeHTTP(rec, req)
	return rec
}

func (e testEnv) get(t *testing.T, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return e.do(t, httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (e testEnv) post(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req, cookies...)
}

// login returns a valid session cookie.
func (e testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, e.srv.sessions.Issue(rec, session.Identity{Username: "alice", DisplayName: "Alice"}))
	return rec.Result().Cookies()[0]
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// flashOf decodes the flash notice set by a redirect.
func flashOf(t *testing.T, rec *httptest.ResponseRecorder) templates.Flash {
	t.Helper()
	c := cookieNamed(rec, flashCookie)
	require.NotNil(t, c, "no flash cookie set")
	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	require.NoError(t, err)
	var flashes []templates.Flash
	require.NoError(t, json.Unmarshal(data, &flashes))
	require.Len(t, flashes, 1)
	return flashes[0]
}

func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	require.Equal(t, location, rec.Header().Get("Location"))
}

func idString(id int32) string {
	return strconv.Itoa(int(id))
}

func TestHome(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
	assert.NotContains(t, rec.Body.String(), "/exportar_")

	rec = env.get(t, "/", env.login(t))
	assert.Contains(t, rec.Body.String(), "/exportar_cursos_pdf")
}

func TestFlash_ShownOnceThenCleared(t *testing.T) {
	env := newTestEnv(t)

	setter := httptest.NewRecorder()
	setFlash(setter, flashWarning, "Heads up")
	c := cookieNamed(setter, flashCookie)
	require.NotNil(t, c)

	rec := env.get(t, "/", c)
	assert.Contains(t, rec.Body.String(), "Heads up")
	cleared := cookieNamed(rec, flashCookie)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusOK, env.get(t, "/healthz").Code)

	env.srv.db = fakePinger{err: errors.New("connection refused")}
	assert.Equal(t, http.StatusServiceUnavailable, env.get(t, "/healthz").Code)
}

func TestCreateCategory_DuplicateRerendersForm(t *testing.T) {
	env := newTestEnv(t)
	form := url.Values{"nombre": {"Programming"}, "descripcion": {"Code"}}

	rec := env.post(t, "/registrar_categoria", form)
	requireRedirect(t, rec, "/consultar_categorias")
	assert.Equal(t, flashSuccess, flashOf(t, rec).Kind)

	rec = env.post(t, "/registrar_categoria", form)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "A category with this name already exists.")
	assert.Contains(t, rec.Body.String(), `value="Programming"`)

	cats, err := env.svc.ListCategories(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}

func TestDeleteCategory_InUseKeepsRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cat, err := env.svc.CreateCategory(ctx, core.CategoryInput{Name: "Design"})
	require.NoError(t, err)
	_, err = env.svc.CreateCourse(ctx, core.CourseInput{Name: "Figma", Description: "Basics", CategoryID: idString(cat.ID)})
	require.NoError(t, err)

	rec := env.get(t, "/eliminar_categoria/"+idString(cat.ID))
	requireRedirect(t, rec, "/consultar_categorias")
	f := flashOf(t, rec)
	assert.Equal(t, flashWarning, f.Kind)
	assert.Contains(t, f.Message, "cannot be deleted")

	_, err = env.svc.GetCategory(ctx, cat.ID)
	assert.NoError(t, err)
}

func TestDeleteCategory_Unused(t *testing.T) {
	env := newTestEnv(t)
	cat, err := env.svc.CreateCategory(context.Background(), core.CategoryInput{Name: "Design"})
	require.NoError(t, err)

	rec := env.post(t, "/eliminar_categoria/"+idString(cat.ID), nil)
	requireRedirect(t, rec, "/consultar_categorias")
	assert.Equal(t, flashSuccess, flashOf(t, rec).Kind)

	_, err = env.svc.GetCategory(context.Background(), cat.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestEditForms_MissingRecord(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		path string
		list string
	}{
		{"/editar_categoria/99", "/consultar_categorias"},
		{"/editar_curso/99", "/consultar_cursos"},
		{"/editar_participante/99", "/consultar_participantes"},
		{"/editar_inscripcion/99", "/consultar_inscripciones"},
		{"/editar_curso/abc", "/consultar_cursos"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := env.get(t, tt.path)
			requireRedirect(t, rec, tt.list)
			assert.Equal(t, flashWarning, flashOf(t, rec).Kind)
		})
	}
}

func TestCreateCourse_ListsCategoriesOnError(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.CreateCategory(context.Background(), core.CategoryInput{Name: "Design"})
	require.NoError(t, err)

	rec := env.post(t, "/registrar_curso", url.Values{"nombre": {""}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Course name is required.")
	assert.Contains(t, body, "Design")
}

func TestListCourses_Search(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cat, err := env.svc.CreateCategory(ctx, core.CategoryInput{Name: "Design"})
	require.NoError(t, err)
	for _, name := range []string{"Figma", "Go"} {
		_, err := env.svc.CreateCourse(ctx, core.CourseInput{Name: name, Description: "d", CategoryID: idString(cat.ID)})
		require.NoError(t, err)
	}

	rec := env.get(t, "/consultar_cursos?buscar=fig")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Figma")
	assert.NotContains(t, rec.Body.String(), ">Go<")
}

func participantForm(name, email, phone, username, password string) url.Values {
	return url.Values{
		"nombre":    {name},
		"correo":    {email},
		"telefono":  {phone},
		"ocupacion": {"Engineer"},
		"usuario":   {username},
		"password":  {password},
	}
}

func TestParticipantForms_InvalidInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.CreateParticipant(ctx, core.ParticipantInput{
		Name: "Alice Doe", Email: "alice@example.com", Phone: "555-0100", Username: "alice", Password: "alice-pass",
	})
	require.NoError(t, err)
	bob, err := env.svc.CreateParticipant(ctx, core.ParticipantInput{
		Name: "Bob Ray", Email: "bob@example.com", Phone: "555-0101", Username: "bob", Password: "bob-pass",
	})
	require.NoError(t, err)
	editBob := "/editar_participante/" + idString(bob.ID)

	tests := []struct {
		name     string
		path     string
		form     url.Values
		wantMsgs []string
		wantEcho []string
	}{
		{
			name:     "create missing email",
			path:     "/registrar_participante",
			form:     participantForm("Carol Lee", "", "555-0102", "carol", "carol-secret"),
			wantMsgs: []string{"Email is required."},
			wantEcho: []string{`value="Carol Lee"`, `value="555-0102"`, `value="carol"`, `value="Engineer"`},
		},
		{
			name:     "create duplicate username",
			path:     "/registrar_participante",
			form:     participantForm("Carol Lee", "carol@example.com", "555-0102", "alice", "carol-secret"),
			wantMsgs: []string{"This username is already taken."},
			wantEcho: []string{`value="carol@example.com"`, `value="alice"`},
		},
		{
			name:     "edit missing phone",
			path:     editBob,
			form:     participantForm("Bob Ray", "bob@example.com", "", "bob", "carol-secret"),
			wantMsgs: []string{"Phone is required."},
			wantEcho: []string{`value="Bob Ray"`, `value="bob@example.com"`, `value="bob"`},
		},
		{
			name:     "edit duplicate username",
			path:     editBob,
			form:     participantForm("Bob Ray", "bob@example.com", "555-0101", "alice", "carol-secret"),
			wantMsgs: []string{"This username is already taken."},
			wantEcho: []string{`value="alice"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.post(t, tt.path, tt.form)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			body := rec.Body.String()
			assert.Contains(t, body, `<ul class="errors">`)
			for _, m := range tt.wantMsgs {
				assert.Contains(t, body, m)
			}
			for _, v := range tt.wantEcho {
				assert.Contains(t, body, v)
			}
			assert.NotContains(t, body, "carol-secret")
		})
	}

	t.Run("edit with unchanged username keeps password", func(t *testing.T) {
		rec := env.post(t, editBob, participantForm("Bob Ray", "bob@example.com", "555-0199", "bob", ""))
		requireRedirect(t, rec, participantsPath)
		assert.Equal(t, "Participant updated.", flashOf(t, rec).Message)

		_, err := env.svc.Authenticate(ctx, "bob", "bob-pass")
		assert.NoError(t, err)
		got, err := env.svc.GetParticipant(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "555-0199", got.Phone)
	})

	list, err := env.svc.ListParticipants(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestEnroll_SamePairTwiceWarns(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cat, err := env.svc.CreateCategory(ctx, core.CategoryInput{Name: "Design"})
	require.NoError(t, err)
	course, err := env.svc.CreateCourse(ctx, core.CourseInput{Name: "Figma", Description: "d", CategoryID: idString(cat.ID)})
	require.NoError(t, err)
	p, err := env.svc.CreateParticipant(ctx, core.ParticipantInput{Name: "Ana", Email: "ana@example.com", Phone: "555"})
	require.NoError(t, err)

	form := url.Values{"id_participante": {idString(p.ID)}, "id_curso": {idString(course.ID)}}

	rec := env.post(t, "/inscribir", form)
	requireRedirect(t, rec, "/inscribir")
	assert.Equal(t, flashSuccess, flashOf(t, rec).Kind)

	rec = env.post(t, "/inscribir", form)
	requireRedirect(t, rec, "/inscribir")
	f := flashOf(t, rec)
	assert.Equal(t, flashWarning, f.Kind)
	assert.Equal(t, msgAlreadyEnrolled, f.Message)

	assert.Equal(t, 1, env.store.EnrollmentCount())
}

func TestEnroll_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/inscribir", url.Values{})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Participant is required.")
	assert.Contains(t, rec.Body.String(), "Course is required.")
	assert.Equal(t, 0, env.store.EnrollmentCount())
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.CreateParticipant(context.Background(), core.ParticipantInput{
		Name: "Ana Lopez", Email: "ana@example.com", Phone: "555",
		Username: "ana", Password: "s3cret",
	})
	require.NoError(t, err)

	for _, form := range []url.Values{
		{"usuario": {"ana"}, "password": {"wrong"}},
		{"usuario": {"nobody"}, "password": {"s3cret"}},
	} {
		rec := env.post(t, "/login", form)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid username or password.")
		assert.Nil(t, cookieNamed(rec, "sid"))
	}

	rec := env.post(t, "/login", url.Values{"usuario": {"ana"}, "password": {"s3cret"}})
	requireRedirect(t, rec, "/")
	sid := cookieNamed(rec, "sid")
	require.NotNil(t, sid)

	id, err := env.srv.sessions.Parse(sid.Value)
	require.NoError(t, err)
	assert.Equal(t, "ana", id.Username)
	assert.Equal(t, "Ana Lopez", id.DisplayName)

	rec = env.get(t, "/logout", sid)
	requireRedirect(t, rec, "/")
	cleared := cookieNamed(rec, "sid")
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestExport_RequiresSession(t *testing.T) {
	env := newTestEnv(t)
	requireRedirect(t, env.get(t, "/exportar_participantes_excel"), "/login")
}

func TestExport_Downloads(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.CreateParticipant(context.Background(), core.ParticipantInput{Name: "Ana", Email: "ana@example.com", Phone: "555"})
	require.NoError(t, err)
	sid := env.login(t)

	tests := []struct {
		path        string
		filename    string
		contentType string
		magic       string
	}{
		{"/exportar_participantes_excel", "participantes.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "PK"},
		{"/exportar_participantes_pdf", "participantes.pdf", "application/pdf", "%PDF"},
		{"/exportar_inscripciones_pdf", "inscripciones.pdf", "application/pdf", "%PDF"},
		{"/exportar_cursos_excel", "cursos.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "PK"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := env.get(t, tt.path, sid)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, `attachment; filename="`+tt.filename+`"`, rec.Header().Get("Content-Disposition"))
			assert.True(t, strings.HasPrefix(rec.Body.String(), tt.magic))
		})
	}
}

func TestStoreFailure_MapsToErrorCode(t *testing.T) {
	env := newTestEnv(t)
	env.store.Err = errors.New("dial tcp: connection refused")

	rec := env.get(t, "/consultar_cursos")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "DB004")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "application/json")
	rec = env.do(t, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "DB004", body.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)
	defer rl.stop()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("1.1.1.1"))
	assert.True(t, rl.allow("1.1.1.1"))
	assert.False(t, rl.allow("1.1.1.1"))
	assert.True(t, rl.allow("2.2.2.2"))

	now = now.Add(2 * time.Minute)
	assert.True(t, rl.allow("1.1.1.1"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)
	defer rl.stop()
	h := rl.middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req.RemoteAddr = "10.0.0.1:5001"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestExport_BusyWhenSlotsTaken(t *testing.T) {
	env := newTestEnv(t)
	env.srv.exports = export.NewLimiter(1, 20*time.Millisecond)
	require.NoError(t, env.srv.exports.Acquire(context.Background()))
	defer env.srv.exports.Release()

	rec := env.get(t, "/exportar_cursos_pdf", env.login(t))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "EXP001")
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.srv.Shutdown(context.Background()))
	assert.ErrorIs(t, env.srv.Start(), http.ErrServerClosed)
}

func TestRespondError_LogLevel(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	tests := []struct {
		name  string
		err   error
		level string
		code  string
	}{
		{"known message", core.ErrInUse, "level=WARN", "code=DB003"},
		{"unknown error", errors.New("kaboom"), "level=ERROR", "code=ERR000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			req := httptest.NewRequest(http.MethodGet, "/consultar_cursos", nil)
			rec := httptest.NewRecorder()

			env.srv.respondError(rec, req, tt.err, http.StatusInternalServerError)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			out := buf.String()
			assert.Contains(t, out, tt.level)
			assert.Contains(t, out, tt.code)
			assert.Contains(t, out, "path=/consultar_cursos")
		})
	}
}
