package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jashanpj/janasampark/internal/app/middleware"
	"github.com/jashanpj/janasampark/internal/domain/models"
	"github.com/jashanpj/janasampark/internal/infrastructure/config"
	"github.com/jashanpj/janasampark/utils"
)

type apiFixture struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Survey{}))

	cfg := &config.Config{
		EnvType:       "TEST",
		ServerPort:    "0",
		JWTSecretKey:  "test-secret",
		TokenLifetime: time.Hour,
	}

	return &apiFixture{t: t, db: db, router: SetupRouter(db, cfg, nil)}
}

func (f *apiFixture) seedUser(username string, role models.Role, approved bool) *models.User {
	f.t.Helper()
	hashed, err := utils.HashPassword("secret123")
	require.NoError(f.t, err)
	user := &models.User{
		Name:       "Test " + username,
		Username:   username,
		Password:   hashed,
		Phone:      "9876543210",
		Role:       role,
		IsApproved: approved,
		WardNumber: 9,
		LocalBody:  "Kottuvally",
	}
	require.NoError(f.t, f.db.Create(user).Error)
	return user
}

// do sends a JSON request, optionally with an auth cookie.
func (f *apiFixture) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	f.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(f.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: token})
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// login authenticates and returns the session token from the cookie.
func (f *apiFixture) login(username, password string) (string, *httptest.ResponseRecorder) {
	f.t.Helper()

	w := f.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.AuthCookieName && cookie.Value != "" {
			return cookie.Value, w
		}
	}
	return "", w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegistrationApprovalLoginFlow(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.seedUser("admin", models.RoleAdmin, true)

	// Register a field worker.
	w := f.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":        "Lakshmi",
		"username":    "lakshmi",
		"password":    "secret123",
		"phone":       "98765 43210",
		"role":        "USER",
		"ward_number": 14,
		"local_body":  "Vadakkekara",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Login succeeds before approval but the session does not resolve.
	token, w := f.login("lakshmi", "secret123")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, token)

	w = f.do(http.MethodGet, "/api/surveys", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Admin approves the account.
	adminToken, w := f.login("admin", "secret123")
	require.Equal(t, http.StatusOK, w.Code)

	var pending models.User
	require.NoError(t, f.db.Where("username = ?", "lakshmi").First(&pending).Error)
	w = f.do(http.MethodPost, "/api/admin/users/"+itoa(pending.ID)+"/approve", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A fresh login now reaches protected routes.
	token, _ = f.login("lakshmi", "secret123")
	w = f.do(http.MethodGet, "/api/surveys", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Approval audit trail.
	var approved models.User
	require.NoError(t, f.db.Where("username = ?", "lakshmi").First(&approved).Error)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.ID, *approved.ApprovedBy)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":        "Sneaky",
		"username":    "sneaky",
		"password":    "secret123",
		"phone":       "9876543210",
		"role":        "ADMIN",
		"ward_number": 1,
		"local_body":  "N.Paravur",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newAPIFixture(t)
	f.seedUser("taken", models.RoleUser, false)

	w := f.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":        "Taken Again",
		"username":    "taken",
		"password":    "secret123",
		"phone":       "9876543210",
		"role":        "USER",
		"ward_number": 1,
		"local_body":  "N.Paravur",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginInvalidCredentialsAreGeneric(t *testing.T) {
	f := newAPIFixture(t)
	f.seedUser("alice", models.RoleUser, true)

	_, wWrongPassword := f.login("alice", "wrong-password")
	_, wUnknownUser := f.login("nobody", "wrong-password")

	assert.Equal(t, http.StatusUnauthorized, wWrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, wUnknownUser.Code)
	// Identical bodies: no username probing.
	assert.Equal(t, wWrongPassword.Body.String(), wUnknownUser.Body.String())
}

func TestSurveyCRUDAndOwnership(t *testing.T) {
	f := newAPIFixture(t)
	f.seedUser("alice", models.RoleUser, true)
	f.seedUser("bob", models.RoleUser, true)

	aliceToken, _ := f.login("alice", "secret123")
	bobToken, _ := f.login("bob", "secret123")

	payload := gin.H{
		"name":                  "Raghavan Nair",
		"age":                   58,
		"education":             "Secondary Education",
		"job":                   "Farmer",
		"phone":                 "9000000001",
		"political_affiliation": "LDF",
		"religion":              "Hindu",
		"caste":                 "Nair",
		"category":              "General",
		"sex":                   "MALE",
	}

	w := f.do(http.MethodPost, "/api/surveys", aliceToken, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var survey models.Survey
	require.NoError(t, f.db.First(&survey).Error)

	// The owner reads it back; the other account gets 404.
	w = f.do(http.MethodGet, "/api/surveys/"+itoa(survey.ID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = f.do(http.MethodGet, "/api/surveys/"+itoa(survey.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Only the owner can delete.
	w = f.do(http.MethodDelete, "/api/surveys/"+itoa(survey.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = f.do(http.MethodDelete, "/api/surveys/"+itoa(survey.ID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSurveyValidation(t *testing.T) {
	f := newAPIFixture(t)
	f.seedUser("alice", models.RoleUser, true)
	token, _ := f.login("alice", "secret123")

	base := gin.H{
		"name":                  "Raghavan Nair",
		"age":                   58,
		"education":             "Secondary Education",
		"job":                   "Farmer",
		"phone":                 "9000000001",
		"political_affiliation": "LDF",
		"religion":              "Hindu",
		"caste":                 "Nair",
		"category":              "General",
		"sex":                   "MALE",
	}

	override := func(key string, value interface{}) gin.H {
		payload := gin.H{}
		for k, v := range base {
			payload[k] = v
		}
		payload[key] = value
		return payload
	}

	cases := []struct {
		name    string
		payload gin.H
	}{
		{"age out of range", override("age", 150)},
		{"bad affiliation", override("political_affiliation", "BJP")},
		{"caste not in religion list", override("caste", "Latin Catholic")},
		{"bad phone", override("phone", "12345")},
		{"bad sex", override("sex", "male")},
		{"custom caste without Other", override("custom_caste", "Dheevara")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := f.do(http.MethodPost, "/api/surveys", token, tc.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	// Caste "Other" with a custom value is accepted.
	payload := override("caste", "Other")
	payload["custom_caste"] = "Dheevara"
	w := f.do(http.MethodPost, "/api/surveys", token, payload)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	f := newAPIFixture(t)
	f.seedUser("worker", models.RoleWardSecretary, true)
	token, _ := f.login("worker", "secret123")

	w := f.do(http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(http.MethodGet, "/api/admin/surveys", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminUserManagementRules(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.seedUser("admin", models.RoleAdmin, true)
	otherAdmin := f.seedUser("admin2", models.RoleAdmin, true)
	root := f.seedUser("root", models.RoleSuperAdmin, true)
	worker := f.seedUser("worker", models.RoleUser, true)

	adminToken, _ := f.login("admin", "secret123")
	rootToken, _ := f.login("root", "secret123")

	// An admin cannot delete another admin.
	w := f.do(http.MethodDelete, "/api/admin/users/"+itoa(otherAdmin.ID), adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Nobody deletes their own account.
	w = f.do(http.MethodDelete, "/api/admin/users/"+itoa(admin.ID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Role changes are super-admin only.
	w = f.do(http.MethodPut, "/api/admin/users/"+itoa(worker.ID)+"/role", adminToken, gin.H{"role": "WARD_MEMBER"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = f.do(http.MethodPut, "/api/admin/users/"+itoa(worker.ID)+"/role", rootToken, gin.H{"role": "WARD_MEMBER"})
	assert.Equal(t, http.StatusOK, w.Code)

	// A super admin cannot change their own role either.
	w = f.do(http.MethodPut, "/api/admin/users/"+itoa(root.ID)+"/role", rootToken, gin.H{"role": "ADMIN"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Creating an admin account requires super admin.
	createAdmin := gin.H{
		"name":        "New Admin",
		"username":    "newadmin",
		"password":    "secret123",
		"phone":       "9876543212",
		"role":        "ADMIN",
		"ward_number": 2,
		"local_body":  "N.Paravur",
	}
	w = f.do(http.MethodPost, "/api/admin/users", adminToken, createAdmin)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = f.do(http.MethodPost, "/api/admin/users", rootToken, createAdmin)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Admin-created accounts are approved and attributed.
	var created models.User
	require.NoError(t, f.db.Where("username = ?", "newadmin").First(&created).Error)
	assert.True(t, created.IsApproved)
	require.NotNil(t, created.ApprovedBy)
	assert.Equal(t, root.ID, *created.ApprovedBy)
}

func TestAdminSurveyListingAndStatistics(t *testing.T) {
	f := newAPIFixture(t)
	f.seedUser("admin", models.RoleAdmin, true)
	worker := f.seedUser("worker", models.RoleUser, true)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.db.Create(&models.Survey{
			Name:                 "Constituent",
			Age:                  40,
			Education:            "Diploma",
			Job:                  "Farmer",
			Phone:                "9000000002",
			PoliticalAffiliation: models.AffiliationUDF,
			Religion:             "Christian",
			Caste:                "Latin Catholic",
			Category:             "OBC",
			Sex:                  models.SexMale,
			CreatedBy:            worker.ID,
		}).Error)
	}

	adminToken, _ := f.login("admin", "secret123")

	w := f.do(http.MethodGet, "/api/admin/surveys?page=1&page_size=2", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), pagination["total_count"])
	assert.Equal(t, float64(2), pagination["total_pages"])
	assert.Equal(t, true, pagination["has_next"])

	w = f.do(http.MethodGet, "/api/admin/surveys/statistics", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	stats := body["data"].(map[string]interface{})["statistics"].(map[string]interface{})
	assert.Equal(t, float64(3), stats["total_surveys"])
}

func TestUnauthenticatedAPIRequestGets401(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(http.MethodGet, "/api/surveys", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(http.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")

	w = f.do(http.MethodGet, "/api/health/status", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "database")
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(http.MethodGet, "/api/ping", "", nil)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
