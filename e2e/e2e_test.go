//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"dogwalk-app-go/internal/app"
	"dogwalk-app-go/internal/config"
	"dogwalk-app-go/internal/db"
	keyworddomain "dogwalk-app-go/internal/domain/keyword"
	keywordrepo "dogwalk-app-go/internal/repository/postgres/keyword"
	"dogwalk-app-go/pkg/logger"
)

const jwtSecret = "e2e-secret"

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		dsn = containerDSN
	}
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set and E2E_DOCKER!=1; skipping e2e tests")
	}

	cfg := config.Config{
		HTTPPort:       "0",
		Env:            "test",
		StorageDriver:  config.StorageDriverPostgres,
		AllowedOrigins: []string{"http://localhost:5173"},
		Keywords:       config.KeywordsConfig{CacheTTL: time.Minute},
		Matches:        config.MatchesConfig{RateLimitRPS: 100, RateLimitBurst: 100},
		DB:             config.DBConfig{URL: dsn, MaxOpenConns: 5, MaxIdleConns: 2},
		Auth:           config.AuthConfig{JWTSecret: jwtSecret, Audience: "authenticated"},
	}

	if err := db.Migrate(dsn, db.DirectionUp); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	dbConn, err := db.NewPostgres(cfg.DB, logger.Discard())
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}
	if _, err := keyworddomain.NewService(keywordrepo.NewPostgres(dbConn)).Seed(context.Background(), []keyworddomain.Keyword{
		{Name: "Calm", Category: keyworddomain.CategoryDog},
		{Name: "Forest trails", Category: keyworddomain.CategoryActivity},
		{Name: "Early bird", Category: keyworddomain.CategoryUser},
	}); err != nil {
		t.Fatalf("seed keywords: %v", err)
	}

	server := httptest.NewServer(app.NewPostgresHandler(cfg, dbConn, logger.Discard()))

	return &testEnv{server: server, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func signToken(t *testing.T, userID string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   userID,
		"aud":   "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"email": userID + "@example.com",
		"user_metadata": map[string]interface{}{
			"avatar_url": "https://example.com/" + userID + ".png",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE keywordables, keywords, user_matches, walks, group_memberships, walk_groups, dogs, user_profiles RESTART IDENTITY CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, userID string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID))
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

func decode(t *testing.T, body []byte, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(body, dst); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
}

func expectStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected %d, got %d: %s", want, resp.StatusCode, string(body))
	}
}

func expectErrorCode(t *testing.T, body []byte, want string) {
	t.Helper()
	var envelope errorEnvelope
	decode(t, body, &envelope)
	if envelope.Error.Code != want {
		t.Fatalf("expected error code %q, got %q (%s)", want, envelope.Error.Code, envelope.Error.Message)
	}
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type keywordResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type profileResponse struct {
	UserID      string            `json:"user_id"`
	Email       *string           `json:"email"`
	AvatarURL   *string           `json:"avatar_url"`
	DisplayName *string           `json:"display_name"`
	Keywords    []keywordResponse `json:"keywords"`
}

type groupResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	CreatorID   string            `json:"creator_id"`
	Keywords    []keywordResponse `json:"keywords"`
	Permissions map[string]bool   `json:"permissions"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type groupListResponse struct {
	Items []groupResponse `json:"items"`
	Total int64           `json:"total"`
}

type membershipResponse struct {
	ID      string `json:"id"`
	UserID  string `json:"user"`
	GroupID string `json:"walk_group"`
	Status  string `json:"status"`
	Role    string `json:"role"`
}

type walkResponse struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"walk_group"`
	CreatorID string    `json:"creator_id"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"starts_at"`
}

type walkListResponse struct {
	Items []walkResponse `json:"items"`
	Total int64          `json:"total"`
}

type dogResponse struct {
	ID        string            `json:"id"`
	OwnerID   string            `json:"owner_id"`
	Name      string            `json:"name"`
	BirthDate *string           `json:"birth_date"`
	Keywords  []keywordResponse `json:"keywords"`
}

type matchResponse struct {
	ID     string `json:"id"`
	Mutual bool   `json:"mutual"`
}

func TestE2EHealthAndAuth(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	resp, body := requestJSON(t, client, http.MethodGet, env.server.URL+"/api/health", "", nil)
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/users/me", "", nil)
	expectStatus(t, resp, body, http.StatusUnauthorized)
	expectErrorCode(t, body, "invalid_token")

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/users/me", "walker-1", nil)
	expectStatus(t, resp, body, http.StatusOK)
	var me profileResponse
	decode(t, body, &me)
	if me.UserID != "walker-1" {
		t.Fatalf("expected walker-1, got %q", me.UserID)
	}
	if me.Email == nil || *me.Email != "walker-1@example.com" {
		t.Fatalf("expected email from token, got %v", me.Email)
	}
	if me.AvatarURL == nil || *me.AvatarURL != "https://example.com/walker-1.png" {
		t.Fatalf("expected avatar from token, got %v", me.AvatarURL)
	}
}

func TestE2EKeywords(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	resp, body := requestJSON(t, client, http.MethodGet, env.server.URL+"/api/keywords?category=dog", "walker-1", nil)
	expectStatus(t, resp, body, http.StatusOK)
	var keywords []keywordResponse
	decode(t, body, &keywords)
	if len(keywords) != 1 || keywords[0].Name != "Calm" {
		t.Fatalf("expected only Calm, got %+v", keywords)
	}

	resp, body = requestJSON(t, client, http.MethodPatch, env.server.URL+"/api/users/me", "walker-1", map[string]interface{}{
		"display_name": "Walker One",
		"keywords":     []string{"Early bird", "Forest trails", "Early bird", "Nope"},
	})
	expectStatus(t, resp, body, http.StatusOK)
	var me profileResponse
	decode(t, body, &me)
	if len(me.Keywords) != 2 || me.Keywords[0].Name != "Early bird" || me.Keywords[1].Name != "Forest trails" {
		t.Fatalf("unexpected keywords: %+v", me.Keywords)
	}

	// syncing the same list again leaves the rows as they were
	resp, body = requestJSON(t, client, http.MethodPatch, env.server.URL+"/api/users/me", "walker-1", map[string]interface{}{
		"keywords": []string{"Early bird", "Forest trails"},
	})
	expectStatus(t, resp, body, http.StatusOK)
	var rows int64
	if err := env.db.Model(&keyworddomain.Keywordable{}).
		Where("keywordable_type = ? AND keywordable_id = ?", keyworddomain.KindUser, "walker-1").
		Count(&rows).Error; err != nil {
		t.Fatalf("count keywordables: %v", err)
	}
	if rows != 2 {
		t.Fatalf("expected 2 keywordable rows, got %d", rows)
	}

	// an absent keywords field keeps the tags
	resp, body = requestJSON(t, client, http.MethodPatch, env.server.URL+"/api/users/me", "walker-1", map[string]interface{}{
		"display_name": nil,
	})
	expectStatus(t, resp, body, http.StatusOK)
	decode(t, body, &me)
	if me.DisplayName != nil {
		t.Fatalf("expected display name cleared, got %q", *me.DisplayName)
	}
	if len(me.Keywords) != 2 {
		t.Fatalf("expected keywords kept, got %+v", me.Keywords)
	}

	resp, body = requestJSON(t, client, http.MethodPatch, env.server.URL+"/api/users/me", "walker-1", map[string]interface{}{
		"keywords": []string{},
	})
	expectStatus(t, resp, body, http.StatusOK)
	decode(t, body, &me)
	if len(me.Keywords) != 0 {
		t.Fatalf("expected keywords cleared, got %+v", me.Keywords)
	}
}

func TestE2EGroupLifecycle(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	base := env.server.URL + "/api"

	resp, body := requestJSON(t, client, http.MethodPost, base+"/groups", "creator", map[string]interface{}{
		"name":     "Riverside pack",
		"keywords": []string{"Forest trails"},
	})
	expectStatus(t, resp, body, http.StatusCreated)
	var group groupResponse
	decode(t, body, &group)
	if group.CreatorID != "creator" || len(group.Keywords) != 1 {
		t.Fatalf("unexpected group: %+v", group)
	}

	time.Sleep(10 * time.Millisecond)
	resp, body = requestJSON(t, client, http.MethodPatch, base+"/groups/"+group.ID, "creator", map[string]string{"name": "Riverside walkers"})
	expectStatus(t, resp, body, http.StatusOK)
	var renamed groupResponse
	decode(t, body, &renamed)
	if renamed.Name != "Riverside walkers" || !renamed.UpdatedAt.After(group.UpdatedAt) {
		t.Fatalf("expected renamed group with newer updated_at, got %+v (created %v)", renamed, group.UpdatedAt)
	}

	resp, body = requestJSON(t, client, http.MethodGet, base+"/groups", "alice", nil)
	expectStatus(t, resp, body, http.StatusOK)
	var groups groupListResponse
	decode(t, body, &groups)
	if groups.Total != 1 || len(groups.Items) != 1 || groups.Items[0].ID != group.ID {
		t.Fatalf("unexpected group list: %+v", groups)
	}

	resp, body = requestJSON(t, client, http.MethodGet, base+"/groups/not-a-uuid", "alice", nil)
	expectStatus(t, resp, body, http.StatusNotFound)
	expectErrorCode(t, body, "group_not_found")

	resp, body = requestJSON(t, client, http.MethodPost, base+"/group_memberships", "alice", map[string]string{"walk_group": group.ID})
	expectStatus(t, resp, body, http.StatusCreated)
	var request membershipResponse
	decode(t, body, &request)
	if request.Status != "REQUESTED" || request.Role != "MEMBER" {
		t.Fatalf("unexpected membership: %+v", request)
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/group_memberships", "alice", map[string]string{"walk_group": group.ID})
	expectStatus(t, resp, body, http.StatusConflict)
	expectErrorCode(t, body, "already_member")

	resp, body = requestJSON(t, client, http.MethodPost, base+"/walks", "alice", map[string]string{
		"walk_group": group.ID,
		"title":      "Too early",
	})
	expectStatus(t, resp, body, http.StatusForbidden)
	expectErrorCode(t, body, "access_denied")

	resp, body = requestJSON(t, client, http.MethodPatch, base+"/group_memberships/"+request.ID, "creator", map[string]string{"action": "accept"})
	expectStatus(t, resp, body, http.StatusOK)
	var accepted membershipResponse
	decode(t, body, &accepted)
	if accepted.Status != "ACTIVE" {
		t.Fatalf("expected ACTIVE, got %q", accepted.Status)
	}

	resp, body = requestJSON(t, client, http.MethodPatch, base+"/group_memberships/"+request.ID, "creator", map[string]string{"action": "promote"})
	expectStatus(t, resp, body, http.StatusOK)
	var promoted membershipResponse
	decode(t, body, &promoted)
	if promoted.Role != "ADMIN" {
		t.Fatalf("expected ADMIN, got %q", promoted.Role)
	}

	// admins invite, the invitee accepts
	resp, body = requestJSON(t, client, http.MethodPost, base+"/group_memberships", "alice", map[string]string{"walk_group": group.ID, "user": "bob"})
	expectStatus(t, resp, body, http.StatusCreated)
	var invite membershipResponse
	decode(t, body, &invite)
	if invite.Status != "INVITED" || invite.UserID != "bob" {
		t.Fatalf("unexpected invite: %+v", invite)
	}

	resp, body = requestJSON(t, client, http.MethodPatch, base+"/group_memberships/"+invite.ID, "bob", map[string]string{"action": "accept"})
	expectStatus(t, resp, body, http.StatusOK)

	startsAt := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	resp, body = requestJSON(t, client, http.MethodPost, base+"/walks", "bob", map[string]string{
		"walk_group": group.ID,
		"title":      "Sunday river walk",
		"starts_at":  startsAt.Format(time.RFC3339),
	})
	expectStatus(t, resp, body, http.StatusCreated)
	var walk walkResponse
	decode(t, body, &walk)
	if !walk.StartsAt.Equal(startsAt) || walk.CreatorID != "bob" {
		t.Fatalf("unexpected walk: %+v", walk)
	}

	resp, body = requestJSON(t, client, http.MethodGet, base+"/groups/"+group.ID+"/walks", "creator", nil)
	expectStatus(t, resp, body, http.StatusOK)
	var walks walkListResponse
	decode(t, body, &walks)
	if walks.Total != 1 || walks.Items[0].ID != walk.ID {
		t.Fatalf("unexpected walks: %+v", walks)
	}

	// admins cannot view walks
	resp, body = requestJSON(t, client, http.MethodGet, base+"/walks/"+walk.ID, "alice", nil)
	expectStatus(t, resp, body, http.StatusForbidden)

	resp, body = requestJSON(t, client, http.MethodPatch, base+"/group_memberships/"+invite.ID, "creator", map[string]string{"action": "ban"})
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = requestJSON(t, client, http.MethodGet, base+"/walks/"+walk.ID, "bob", nil)
	expectStatus(t, resp, body, http.StatusForbidden)

	resp, body = requestJSON(t, client, http.MethodPost, base+"/group_memberships", "bob", map[string]string{"walk_group": group.ID})
	expectStatus(t, resp, body, http.StatusForbidden)
	expectErrorCode(t, body, "banned")

	resp, body = requestJSON(t, client, http.MethodDelete, base+"/groups/"+group.ID, "creator", nil)
	expectStatus(t, resp, body, http.StatusNoContent)

	resp, body = requestJSON(t, client, http.MethodGet, base+"/walks/"+walk.ID, "creator", nil)
	expectStatus(t, resp, body, http.StatusNotFound)

	var remaining int64
	if err := env.db.Table("keywordables").Where("keywordable_type = ? AND keywordable_id = ?", "group", group.ID).Count(&remaining).Error; err != nil {
		t.Fatalf("count keywordables: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected group keywords removed, got %d", remaining)
	}
}

func TestE2EConcurrentAccept(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 10 * time.Second}
	base := env.server.URL + "/api"

	resp, body := requestJSON(t, client, http.MethodPost, base+"/groups", "creator", map[string]string{"name": "Race pack"})
	expectStatus(t, resp, body, http.StatusCreated)
	var group groupResponse
	decode(t, body, &group)

	resp, body = requestJSON(t, client, http.MethodPost, base+"/group_memberships", "alice", map[string]string{"walk_group": group.ID})
	expectStatus(t, resp, body, http.StatusCreated)
	var request membershipResponse
	decode(t, body, &request)

	const attempts = 5
	statuses := make(chan int, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			resp, _ := requestJSON(t, client, http.MethodPatch, base+"/group_memberships/"+request.ID, "creator", map[string]string{"action": "accept"})
			statuses <- resp.StatusCode
		}()
	}

	ok, conflicts := 0, 0
	for i := 0; i < attempts; i++ {
		switch <-statuses {
		case http.StatusOK:
			ok++
		case http.StatusConflict:
			conflicts++
		}
	}
	if ok != 1 || conflicts != attempts-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", attempts-1, ok, conflicts)
	}
}

func TestE2EDogsAndMatches(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	base := env.server.URL + "/api"

	resp, body := requestJSON(t, client, http.MethodPost, base+"/dogs", "alice", map[string]interface{}{
		"name":       "Rex",
		"birth_date": "2020-06-15",
		"keywords":   []string{"Calm"},
	})
	expectStatus(t, resp, body, http.StatusCreated)
	var dog dogResponse
	decode(t, body, &dog)
	if dog.OwnerID != "alice" || dog.BirthDate == nil || *dog.BirthDate != "2020-06-15" || len(dog.Keywords) != 1 {
		t.Fatalf("unexpected dog: %+v", dog)
	}

	resp, body = requestJSON(t, client, http.MethodDelete, base+"/dogs/"+dog.ID, "bob", nil)
	expectStatus(t, resp, body, http.StatusForbidden)

	resp, body = requestJSON(t, client, http.MethodGet, base+"/dogs", "alice", nil)
	expectStatus(t, resp, body, http.StatusOK)
	var dogs []dogResponse
	decode(t, body, &dogs)
	if len(dogs) != 1 || dogs[0].ID != dog.ID {
		t.Fatalf("unexpected dogs: %+v", dogs)
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/matches", "alice", map[string]string{"target_user": "bob", "action": "LIKE"})
	expectStatus(t, resp, body, http.StatusOK)
	var first matchResponse
	decode(t, body, &first)
	if first.Mutual {
		t.Fatalf("expected one-sided like")
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/matches", "alice", map[string]string{"target_user": "bob", "action": "PASS"})
	expectStatus(t, resp, body, http.StatusOK)
	var again matchResponse
	decode(t, body, &again)
	if again.ID != first.ID {
		t.Fatalf("expected the same match row, got %q and %q", first.ID, again.ID)
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/matches", "bob", map[string]string{"target_user": "alice", "action": "LIKE"})
	expectStatus(t, resp, body, http.StatusOK)
	var reply matchResponse
	decode(t, body, &reply)
	if reply.Mutual {
		t.Fatalf("alice passed, expected no mutual match")
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/matches", "alice", map[string]string{"target_user": "bob", "action": "LIKE"})
	expectStatus(t, resp, body, http.StatusOK)
	decode(t, body, &reply)
	if !reply.Mutual {
		t.Fatalf("expected mutual match")
	}

	resp, body = requestJSON(t, client, http.MethodGet, base+"/matches/mutual", "bob", nil)
	expectStatus(t, resp, body, http.StatusOK)
	var mutual struct {
		Users []string `json:"users"`
	}
	decode(t, body, &mutual)
	if len(mutual.Users) != 1 || mutual.Users[0] != "alice" {
		t.Fatalf("unexpected mutual list: %+v", mutual.Users)
	}

	resp, body = requestJSON(t, client, http.MethodDelete, base+"/dogs/"+dog.ID, "alice", nil)
	expectStatus(t, resp, body, http.StatusNoContent)
}
