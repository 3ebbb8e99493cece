package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/core/club"
	"github.com/MSTC-DAU/mstc/core/dashboard"
	"github.com/MSTC-DAU/mstc/core/event"
	"github.com/MSTC-DAU/mstc/core/roadmap"
	"github.com/MSTC-DAU/mstc/core/setting"
	"github.com/MSTC-DAU/mstc/core/user"
	"github.com/MSTC-DAU/mstc/services/email"
	"github.com/MSTC-DAU/mstc/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testLogger struct{}

func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

type testApp struct {
	app  Server
	conf *core.Config

	usrRepo user.Repository
	usrSvc  *user.Service
	evtSvc  *event.Service
	rmSvc   *roadmap.Service
}

func newTestApp() *testApp {
	conf := &core.Config{
		AppName:            "MSTC",
		Env:                "TEST",
		TestMode:           true,
		SecretKey:          "s3cr3t",
		DefaultFromEmail:   "noreply@localhost",
		JWTExpirationDelta: time.Hour,
	}
	logger := testLogger{}
	reval := core.NopRevalidator{}
	db := inmemdb.NewDB()

	usrRepo := inmemdb.NewUserRepository(db)
	usrSvc := user.NewService(usrRepo, logger, reval)
	evtSvc := event.NewService(inmemdb.NewEventRepository(db), logger, reval)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	rmSvc := roadmap.NewService(inmemdb.NewRoadmapRepository(db), evtSvc, mailSvc, logger, reval)
	clubSvc := club.NewService(inmemdb.NewClubRepository(db), logger, reval)
	settingSvc := setting.NewService(inmemdb.NewSettingRepository(db), logger, reval)
	dashSvc := dashboard.NewService(inmemdb.NewDashboardRepository(db), evtSvc, logger)

	app := NewServer(&Options{
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         logger,
		SignalShutdown: func() {},
		UserSvc:        usrSvc,
		EventSvc:       evtSvc,
		RoadmapSvc:     rmSvc,
		ClubSvc:        clubSvc,
		SettingSvc:     settingSvc,
		DashboardSvc:   dashSvc,
	})
	return &testApp{app: app, conf: conf, usrRepo: usrRepo, usrSvc: usrSvc, evtSvc: evtSvc, rmSvc: rmSvc}
}

func (ta *testApp) createUser(t *testing.T, email, name string, role user.Role) user.User {
	t.Helper()
	usr, err := ta.usrRepo.CreateUser(context.Background(), user.User{Email: email, Name: name, Role: role})
	if err != nil {
		t.Fatalf("createUser(): %v", err)
	}
	return usr
}

func (ta *testApp) getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := GenerateToken(ta.conf, GetUserClaims(ta.conf, usr))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %s; wantData %s", rec.Body.Bytes(), tt.wantData)
	}
}

func runHTTPTests(t *testing.T, app Server, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_home(t *testing.T) {
	ta := newTestApp()
	req, rec := newRequest(http.MethodGet, "/")
	ta.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "Welcome to the MSTC API!" {
		t.Errorf("failed! body = %q", rec.Body.String())
	}
}

func Test_authApi_token(t *testing.T) {
	ta := newTestApp()
	body := marchallObj(t, map[string]string{"email": "New@Student.Com", "name": "New Student"})

	t.Run("api secret required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/auth/token", body)
		ta.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "invalid api secret"}),
		}, rec)
	})

	t.Run("email required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/auth/token", marchallObj(t, map[string]string{"name": "No Email"}))
		req.Header.Set("X-Api-Secret", ta.conf.SecretKey)
		ta.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("new user is created as student", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/auth/token", body)
		req.Header.Set("X-Api-Secret", ta.conf.SecretKey)
		ta.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}

		var resp tokenResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshalling tokenResponse: %v", err)
		}
		if resp.Token == "" {
			t.Fatal("failed! empty token")
		}

		usr, err := ta.usrSvc.GetByEmail(context.Background(), "new@student.com")
		if err != nil {
			t.Fatalf("GetByEmail(): %v", err)
		}
		if usr.Role != user.RoleStudent {
			t.Errorf("failed! role = %v; want %v", usr.Role, user.RoleStudent)
		}

		// the issued token authenticates /users/me
		req, rec = newAuthRequest(http.MethodGet, "/v1/users/me", resp.Token)
		ta.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, usr)}, rec)
	})

	t.Run("existing user is reused", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/auth/token", body)
		req.Header.Set("X-Api-Secret", ta.conf.SecretKey)
		ta.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		users, err := ta.usrSvc.QueryAll(context.Background())
		if err != nil {
			t.Fatalf("QueryAll(): %v", err)
		}
		if len(users) != 1 {
			t.Errorf("failed! users = %d; want 1", len(users))
		}
	})
}

func Test_userApi(t *testing.T) {
	ta := newTestApp()
	admin := ta.createUser(t, "admin@x.com", "Admin", user.RoleConvener)
	student := ta.createUser(t, "student@x.com", "Student", user.RoleStudent)
	adminToken := ta.getToken(t, admin)
	studentToken := ta.getToken(t, student)

	runHTTPTests(t, ta.app, []httpTest{
		{
			name: "auth required", path: "/v1/users",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "admin required", path: "/v1/users", token: studentToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "me", path: "/v1/users/me", token: studentToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, student),
		},
		{
			name: "admin lists users", path: "/v1/users", token: adminToken,
			wantCode: http.StatusOK,
		},
		{
			name: "promote student", method: http.MethodPut, path: "/v1/users/" + student.ID + "/role",
			token: adminToken, body: marchallObj(t, map[string]string{"role": string(user.RoleCoreMember)}),
			wantCode: http.StatusOK,
		},
		{
			name: "invalid role refused", method: http.MethodPut, path: "/v1/users/" + student.ID + "/role",
			token: adminToken, body: marchallObj(t, map[string]string{"role": "emperor"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "last admin cannot self-demote", method: http.MethodPut, path: "/v1/users/" + admin.ID + "/role",
			token: adminToken, body: marchallObj(t, map[string]string{"role": string(user.RoleStudent)}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: user.ErrLastAdmin.Error()}),
		},
		{
			name: "self-deletion refused", method: http.MethodDelete, path: "/v1/users/" + admin.ID,
			token: adminToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: user.ErrSelfDeletion.Error()}),
		},
		{
			name: "admin deletes user", method: http.MethodDelete, path: "/v1/users/" + student.ID,
			token: adminToken, wantCode: http.StatusOK,
			wantData: marchallObj(t, actionResponse{Success: true, Message: "user deleted"}),
		},
		{
			name: "deleted user's token no longer works", path: "/v1/users/me", token: studentToken,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "user not authenticated"}),
		},
	})
}

func Test_eventApi(t *testing.T) {
	ta := newTestApp()
	ctx := context.Background()
	admin := ta.createUser(t, "admin@x.com", "Admin", user.RoleConvener)
	student := ta.createUser(t, "student@x.com", "Student", user.RoleStudent)
	adminToken := ta.getToken(t, admin)
	studentToken := ta.getToken(t, student)

	ev, err := ta.evtSvc.Create(ctx, admin, event.NewEvent{Slug: "woc", Title: "Winter of Code", Type: event.TypeMentorship})
	if err != nil {
		t.Fatalf("creating event: %v", err)
	}
	if _, err = ta.evtSvc.SetStatus(ctx, admin, ev.ID, event.StatusLive); err != nil {
		t.Fatalf("setting status: %v", err)
	}

	runHTTPTests(t, ta.app, []httpTest{
		{name: "list is public", path: "/v1/events", wantCode: http.StatusOK},
		{name: "live is public", path: "/v1/events/live", wantCode: http.StatusOK},
		{name: "retrieve by slug", path: "/v1/events/woc", wantCode: http.StatusOK},
		{
			name: "unknown slug", path: "/v1/events/nope",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: event.ErrNotFound.Error()}),
		},
		{
			name: "create requires admin", method: http.MethodPost, path: "/v1/events", token: studentToken,
			body:     marchallObj(t, map[string]string{"slug": "hack", "title": "Hack", "type": "hackathon"}),
			wantCode: http.StatusForbidden,
		},
		{
			name: "register requires auth", method: http.MethodPost, path: "/v1/events/" + ev.ID + "/register",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "register", method: http.MethodPost, path: "/v1/events/" + ev.ID + "/register",
			token: studentToken, body: marchallObj(t, map[string][]string{"domain_priorities": {"Web", "ML"}}),
			wantCode: http.StatusCreated,
		},
		{
			name: "duplicate registration", method: http.MethodPost, path: "/v1/events/" + ev.ID + "/register",
			token: studentToken, body: marchallObj(t, map[string]string{}), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: event.ErrAlreadyRegistered.Error()}),
		},
		{name: "my registration", path: "/v1/events/" + ev.ID + "/registration", token: studentToken, wantCode: http.StatusOK},
		{
			name: "registrants require admin", path: "/v1/events/" + ev.ID + "/registrants", token: studentToken,
			wantCode: http.StatusForbidden,
		},
		{name: "registrants", path: "/v1/events/" + ev.ID + "/registrants", token: adminToken, wantCode: http.StatusOK},
		{
			name: "record award requires admin", method: http.MethodPost, path: "/v1/events/" + ev.ID + "/awards",
			token: studentToken, body: marchallObj(t, map[string]interface{}{"title": "Winner", "rank": 1}),
			wantCode: http.StatusForbidden,
		},
		{
			name: "record award", method: http.MethodPost, path: "/v1/events/" + ev.ID + "/awards",
			token: adminToken, body: marchallObj(t, map[string]interface{}{"title": "Winner", "rank": 1}),
			wantCode: http.StatusCreated,
		},
		{name: "awards are public", path: "/v1/events/" + ev.ID + "/awards", wantCode: http.StatusOK},
		{
			name: "bulk assign", method: http.MethodPost, path: "/v1/events/" + ev.ID + "/assign-domains",
			token: adminToken, body: marchallObj(t, map[string]interface{}{"domain": "Web", "registration_ids": []string{"ghost"}}),
			wantCode: http.StatusOK, wantData: marchallObj(t, bulkAssignResponse{Success: true, Assigned: 0}),
		},
	})
}

func Test_eventApi_rosterPreview(t *testing.T) {
	ta := newTestApp()
	ctx := context.Background()
	admin := ta.createUser(t, "admin@x.com", "Admin", user.RoleConvener)
	alice := ta.createUser(t, "alice@example.com", "Alice", user.RoleStudent)
	adminToken := ta.getToken(t, admin)

	ev, err := ta.evtSvc.Create(ctx, admin, event.NewEvent{Slug: "woc", Title: "Winter of Code", Type: event.TypeMentorship})
	if err != nil {
		t.Fatalf("creating event: %v", err)
	}
	if _, err = ta.evtSvc.Register(ctx, alice, ev.ID, event.NewRegistration{}); err != nil {
		t.Fatalf("registering: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "roster.csv")
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err = fw.Write([]byte("email\nalice@example.com\nghost@x.com\n")); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err = mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/events/"+ev.ID+"/roster-preview", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	ta.app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	var preview event.RosterPreview
	if err := json.Unmarshal(rec.Body.Bytes(), &preview); err != nil {
		t.Fatalf("unmarshalling preview: %v", err)
	}
	if preview.Matched != 1 || preview.Unmatched != 1 {
		t.Errorf("failed! matched = %d, unmatched = %d; want 1, 1", preview.Matched, preview.Unmatched)
	}
}

func Test_roadmapApi(t *testing.T) {
	ta := newTestApp()
	ctx := context.Background()
	admin := ta.createUser(t, "admin@x.com", "Admin", user.RoleConvener)
	alice := ta.createUser(t, "alice@example.com", "Alice", user.RoleStudent)
	adminToken := ta.getToken(t, admin)
	aliceToken := ta.getToken(t, alice)

	ev, err := ta.evtSvc.Create(ctx, admin, event.NewEvent{Slug: "woc", Title: "Winter of Code", Type: event.TypeMentorship})
	if err != nil {
		t.Fatalf("creating event: %v", err)
	}
	reg, err := ta.evtSvc.Register(ctx, alice, ev.ID, event.NewRegistration{DomainPriorities: []string{"Web"}})
	if err != nil {
		t.Fatalf("registering: %v", err)
	}

	runHTTPTests(t, ta.app, []httpTest{
		{name: "roadmaps are public", path: "/v1/roadmaps", wantCode: http.StatusOK},
		{
			name: "publish requires admin", method: http.MethodPost, path: "/v1/roadmaps", token: aliceToken,
			body:     marchallObj(t, map[string]interface{}{"event_id": ev.ID, "domain": "Web"}),
			wantCode: http.StatusForbidden,
		},
		{
			name: "pending assignment view", path: "/v1/events/woc/roadmap", token: aliceToken,
			wantCode: http.StatusOK,
		},
	})

	if err := ta.evtSvc.AssignDomain(ctx, admin, reg.ID, "Web"); err != nil {
		t.Fatalf("assigning domain: %v", err)
	}
	week := roadmap.Week{ID: 1, Title: "Basics", Tasks: []roadmap.Task{{ID: "t1", Title: "Setup"}}}
	if _, err := ta.rmSvc.Create(ctx, admin, roadmap.NewRoadmap{EventID: ev.ID, Domain: "Web", Weeks: []roadmap.Week{week}}); err != nil {
		t.Fatalf("publishing roadmap: %v", err)
	}

	// submit a checkpoint then review it
	req, rec := newAuthRequest(http.MethodPost, "/v1/events/"+ev.ID+"/checkpoints", aliceToken,
		marchallObj(t, map[string]interface{}{"week_number": 1, "content": "week one done"}))
	ta.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	var cp roadmap.Checkpoint
	if err := json.Unmarshal(rec.Body.Bytes(), &cp); err != nil {
		t.Fatalf("unmarshalling checkpoint: %v", err)
	}

	runHTTPTests(t, ta.app, []httpTest{
		{
			name: "review requires admin", method: http.MethodPut, path: "/v1/checkpoints/" + cp.ID + "/review",
			token: aliceToken, body: marchallObj(t, map[string]interface{}{"feedback": "nice", "approved": true}),
			wantCode: http.StatusForbidden,
		},
		{
			name: "review", method: http.MethodPut, path: "/v1/checkpoints/" + cp.ID + "/review",
			token: adminToken, body: marchallObj(t, map[string]interface{}{"feedback": "nice", "approved": true}),
			wantCode: http.StatusOK,
		},
		{
			name: "unknown checkpoint", method: http.MethodPut, path: "/v1/checkpoints/nope/review",
			token: adminToken, body: marchallObj(t, map[string]interface{}{"feedback": "nice"}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: roadmap.ErrCheckpointNotFound.Error()}),
		},
	})

	// the published view now shows the completed week
	req, rec = newAuthRequest(http.MethodGet, "/v1/events/woc/roadmap", aliceToken)
	ta.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	var view roadmap.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("unmarshalling view: %v", err)
	}
	if view.State != roadmap.StatePublished {
		t.Errorf("failed! state = %v; want %v", view.State, roadmap.StatePublished)
	}
	if len(view.Weeks) != 1 || view.Weeks[0].Status != roadmap.StatusCompleted {
		t.Errorf("failed! weeks = %+v", view.Weeks)
	}
}

func Test_clubApi(t *testing.T) {
	ta := newTestApp()
	admin := ta.createUser(t, "admin@x.com", "Admin", user.RoleConvener)
	student := ta.createUser(t, "student@x.com", "Student", user.RoleStudent)
	adminToken := ta.getToken(t, admin)
	studentToken := ta.getToken(t, student)

	runHTTPTests(t, ta.app, []httpTest{
		{name: "mentors are public", path: "/v1/team/mentors", wantCode: http.StatusOK},
		{name: "legacy notes are public", path: "/v1/team/legacy-notes", wantCode: http.StatusOK},
		{
			name: "no header photo", path: "/v1/team/photo",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: club.ErrNoHeaderPhoto.Error()}),
		},
		{
			name: "add mentor requires admin", method: http.MethodPost, path: "/v1/team/mentors", token: studentToken,
			body:     marchallObj(t, map[string]string{"name": "Maya", "role": "Web Mentor"}),
			wantCode: http.StatusForbidden,
		},
		{
			name: "add mentor", method: http.MethodPost, path: "/v1/team/mentors", token: adminToken,
			body:     marchallObj(t, map[string]string{"name": "Maya", "role": "Web Mentor"}),
			wantCode: http.StatusCreated,
		},
		{
			name: "record legacy note", method: http.MethodPost, path: "/v1/team/legacy-notes", token: adminToken,
			body:     marchallObj(t, map[string]string{"user_id": student.ID, "content": "great year", "tenure": "2023-24"}),
			wantCode: http.StatusCreated,
		},
		{
			name: "set header photo", method: http.MethodPut, path: "/v1/team/photo", token: adminToken,
			body:     marchallObj(t, map[string]string{"url": "https://x.com/p.jpg"}),
			wantCode: http.StatusOK,
		},
		{name: "header photo now public", path: "/v1/team/photo", wantCode: http.StatusOK},
		{
			name: "remove header photo", method: http.MethodDelete, path: "/v1/team/photo", token: adminToken,
			wantCode: http.StatusOK,
		},
	})
}

func Test_settingApi(t *testing.T) {
	ta := newTestApp()
	admin := ta.createUser(t, "admin@x.com", "Admin", user.RoleConvener)
	student := ta.createUser(t, "student@x.com", "Student", user.RoleStudent)
	adminToken := ta.getToken(t, admin)
	studentToken := ta.getToken(t, student)

	runHTTPTests(t, ta.app, []httpTest{
		{
			name: "missing key degrades to empty value", path: "/v1/settings/team_photo_url",
			wantCode: http.StatusOK, wantData: marchallObj(t, setting.SystemSetting{Key: setting.KeyTeamPhotoURL}),
		},
		{
			name: "update requires admin", method: http.MethodPut, path: "/v1/settings/team_photo_url",
			token: studentToken, body: marchallObj(t, map[string]string{"value": "https://x.com/p.jpg"}),
			wantCode: http.StatusForbidden,
		},
		{
			name: "update", method: http.MethodPut, path: "/v1/settings/team_photo_url",
			token: adminToken, body: marchallObj(t, map[string]string{"value": "https://x.com/p.jpg"}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, setting.SystemSetting{Key: setting.KeyTeamPhotoURL, Value: "https://x.com/p.jpg"}),
		},
		{
			name: "public read sees the new value", path: "/v1/settings/team_photo_url",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, setting.SystemSetting{Key: setting.KeyTeamPhotoURL, Value: "https://x.com/p.jpg"}),
		},
		{name: "listing requires admin", path: "/v1/settings", token: studentToken, wantCode: http.StatusForbidden},
		{name: "listing", path: "/v1/settings", token: adminToken, wantCode: http.StatusOK},
	})
}

func Test_dashboardApi(t *testing.T) {
	ta := newTestApp()
	student := ta.createUser(t, "student@x.com", "Student", user.RoleStudent)
	studentToken := ta.getToken(t, student)

	runHTTPTests(t, ta.app, []httpTest{
		{
			name: "auth required", path: "/v1/dashboard",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{name: "overview", path: "/v1/dashboard", token: studentToken, wantCode: http.StatusOK},
	})
}
