package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signup-service/internal/service"
)

type stubRegistration struct {
	registerFunc func(ctx context.Context, input service.SignUpInput) (string, error)
}

func (s *stubRegistration) Register(ctx context.Context, input service.SignUpInput) (string, error) {
	return s.registerFunc(ctx, input)
}

type stubVerification struct {
	verifyFunc func(ctx context.Context, token string) (string, error)
}

func (s *stubVerification) Verify(ctx context.Context, token string) (string, error) {
	return s.verifyFunc(ctx, token)
}

func setupRouter(reg *stubRegistration, ver *stubVerification) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(reg, ver).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSignUp_Success(t *testing.T) {
	var got service.SignUpInput
	reg := &stubRegistration{
		registerFunc: func(ctx context.Context, input service.SignUpInput) (string, error) {
			got = input
			return service.MsgRegistered, nil
		},
	}
	router := setupRouter(reg, &stubVerification{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sign-up",
		`{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","password":"secret123"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "An email has been sent to you. Please check it to verify your account", resp["message"])

	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "Doe", got.LastName)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, "secret123", got.Password)
}

func TestSignUp_ValidationErrorsOrdered(t *testing.T) {
	reg := &stubRegistration{
		registerFunc: func(ctx context.Context, input service.SignUpInput) (string, error) {
			return "", &service.ValidationError{Fields: []service.FieldError{
				{Location: "body", Param: "firstName", Msg: "firstName is required"},
				{Location: "body", Param: "lastName", Msg: "lastName is required"},
				{Location: "body", Param: "email", Msg: "Invalid Email is provided"},
				{Location: "body", Param: "password", Msg: "Password must contain at least six characters"},
			}}
		},
	}
	router := setupRouter(reg, &stubVerification{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sign-up", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Errors []service.FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 4)
	assert.Equal(t, "firstName", resp.Errors[0].Param)
	assert.Equal(t, "lastName", resp.Errors[1].Param)
	assert.Equal(t, "email", resp.Errors[2].Param)
	assert.Equal(t, "password", resp.Errors[3].Param)
}

func TestSignUp_MalformedBodyStillValidated(t *testing.T) {
	called := false
	reg := &stubRegistration{
		registerFunc: func(ctx context.Context, input service.SignUpInput) (string, error) {
			called = true
			assert.Empty(t, input.FirstName)
			return "", &service.ValidationError{Fields: []service.FieldError{
				{Location: "body", Param: "firstName", Msg: "firstName is required"},
			}}
		},
	}
	router := setupRouter(reg, &stubVerification{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sign-up", `not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, called)
}

func TestSignUp_DuplicateConditionsReturn500(t *testing.T) {
	testCases := []struct {
		name    string
		err     *service.Error
		message string
	}{
		{
			"already pending",
			service.ErrAlreadyPending,
			"You have already signed up. Please check your email to verify your account",
		},
		{
			"already confirmed",
			service.ErrAlreadyConfirmed,
			"You have already signed up and confirmed your account",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reg := &stubRegistration{
				registerFunc: func(ctx context.Context, input service.SignUpInput) (string, error) {
					return "", tc.err
				},
			}
			router := setupRouter(reg, &stubVerification{})

			rec := doJSON(t, router, http.MethodPost, "/api/v1/sign-up",
				`{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","password":"secret123"}`)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.message, resp["errorMessage"])
		})
	}
}

func TestSignUp_UntypedErrorIsGeneric(t *testing.T) {
	reg := &stubRegistration{
		registerFunc: func(ctx context.Context, input service.SignUpInput) (string, error) {
			return "", assert.AnError
		},
	}
	router := setupRouter(reg, &stubVerification{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sign-up",
		`{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","password":"secret123"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp["errorMessage"])
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestVerify_QueryToken(t *testing.T) {
	ver := &stubVerification{
		verifyFunc: func(ctx context.Context, token string) (string, error) {
			assert.Equal(t, "tok1234567890abcdef0", token)
			return service.MsgVerified, nil
		},
	}
	router := setupRouter(&stubRegistration{}, ver)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verify?token=tok1234567890abcdef0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Your account has been successfully verified", resp["message"])
}

func TestVerify_BodyToken(t *testing.T) {
	ver := &stubVerification{
		verifyFunc: func(ctx context.Context, token string) (string, error) {
			assert.Equal(t, "tok1234567890abcdef0", token)
			return service.MsgVerified, nil
		},
	}
	router := setupRouter(&stubRegistration{}, ver)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/verify", `{"token":"tok1234567890abcdef0"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestVerify_MissingToken(t *testing.T) {
	router := setupRouter(&stubRegistration{}, &stubVerification{
		verifyFunc: func(ctx context.Context, token string) (string, error) {
			t.Fatal("service must not be called without a token")
			return "", nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verify", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerify_ErrorStatuses(t *testing.T) {
	testCases := []struct {
		name   string
		err    *service.Error
		status int
	}{
		{"invalid token", service.ErrInvalidToken, http.StatusNotFound},
		{"expired token", service.ErrExpiredToken, http.StatusGone},
		{"conflict", service.ErrConflict, http.StatusConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ver := &stubVerification{
				verifyFunc: func(ctx context.Context, token string) (string, error) {
					return "", tc.err
				},
			}
			router := setupRouter(&stubRegistration{}, ver)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/verify?token=whatever", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.err.Message, resp["errorMessage"])
		})
	}
}

func TestHealth(t *testing.T) {
	router := setupRouter(&stubRegistration{}, &stubVerification{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
