package api

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookreview/config"
	apimiddleware "bookreview/internal/delivery/api/middleware"
	"bookreview/internal/delivery/api/response"
	"bookreview/internal/delivery/api/router"
	"bookreview/internal/delivery/api/router/handler"
	"bookreview/internal/domain/entity"
	domainerrors "bookreview/internal/domain/errors"
	"bookreview/internal/domain/service"
	"bookreview/internal/infra/auth"
	mockUC "bookreview/internal/mocks/usecase"
	"bookreview/internal/usecase"
)

type apiFixtures struct {
	echo      *echo.Echo
	tokens    service.TokenService
	accountUC *mockUC.MockAccountUsecase
	bookUC    *mockUC.MockBookUsecase
	reviewUC  *mockUC.MockReviewUsecase
}

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: time.Hour}}
	cfg.SecretKey.Access = secret
	cfg.HTTP.MaxRequestBodySize = "1MB"

	return cfg
}

func createTestAPI(t *testing.T) apiFixtures {
	cfg := newTestConfig("test-secret")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	fx := apiFixtures{
		tokens:    tokens,
		accountUC: mockUC.NewMockAccountUsecase(t),
		bookUC:    mockUC.NewMockBookUsecase(t),
		reviewUC:  mockUC.NewMockReviewUsecase(t),
	}
	fx.echo = NewEcho(cfg, logger, apimiddleware.NewErrorMiddleware(logger), router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(handler.AuthHandlerParams{AccountUC: fx.accountUC, Logger: logger}),
		UserHandler:    handler.NewUserHandler(handler.UserHandlerParams{AccountUC: fx.accountUC, Logger: logger}),
		BookHandler:    handler.NewBookHandler(handler.BookHandlerParams{BookUC: fx.bookUC}),
		ReviewHandler:  handler.NewReviewHandler(handler.ReviewHandlerParams{ReviewUC: fx.reviewUC}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(tokens, logger),
	})

	return fx
}

func (fx apiFixtures) bearer(t *testing.T, username string, role entity.Role) string {
	token, _, err := fx.tokens.Issue(username, role, time.Now())
	require.NoError(t, err)

	return "Bearer " + token
}

func (fx apiFixtures) do(method, path, body, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorResponse {
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestHealthCheck(t *testing.T) {
	fx := createTestAPI(t)

	rec := fx.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRegister_Created(t *testing.T) {
	fx := createTestAPI(t)
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	fx.accountUC.On("Register", mock.Anything, &usecase.RegisterInput{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  "password123",
	}).Return(&entity.AccountSummary{Firstname: "Ada", Lastname: "Lovelace", Username: "ada", CreatedAt: createdAt}, nil).Once()

	rec := fx.do(http.MethodPost, "/api/auth/register",
		`{"firstname":"Ada","lastname":"Lovelace","username":"ada","email":"ada@example.com","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"firstname":"Ada","lastname":"Lovelace","username":"ada","createdAt":"2024-05-01T12:00:00Z"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_Duplicate(t *testing.T) {
	fx := createTestAPI(t)

	fx.accountUC.On("Register", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrDuplicateEmail).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"firstname":"Ada","lastname":"Lovelace","username":"ada","email":"ada@example.com","password":"password123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, http.StatusConflict, body.StatusCode)
	assert.Equal(t, "Account with this email address already exists.", body.Message)
	assert.Equal(t, "DUPLICATE_CREDENTIALS", body.Code)
	assert.Equal(t, "req-123", body.RequestID)
	assert.False(t, body.Timestamp.IsZero())
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
}

func TestRegister_ValidationFailure(t *testing.T) {
	fx := createTestAPI(t)

	rec := fx.do(http.MethodPost, "/api/auth/register", `{"firstname":"Ada","lastname":"Lovelace","username":"ada","password":"password123"}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_FAILED", body.Code)
	assert.Contains(t, body.Details, "email")
	fx.accountUC.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	fx := createTestAPI(t)
	expiresAt := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)

	fx.accountUC.On("Login", mock.Anything, &usecase.LoginInput{Username: "ada", Password: "password123"}).
		Return(&usecase.LoginOutput{AccessToken: "jwt", TokenType: usecase.TokenTypeBearer, ExpiresAt: expiresAt}, nil).Once()
	fx.accountUC.On("Login", mock.Anything, &usecase.LoginInput{Username: "ada", Password: "nope"}).
		Return(nil, domainerrors.ErrInvalidCredentials).Once()

	rec := fx.do(http.MethodPost, "/api/auth/login", `{"username":"ada","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"accessToken":"jwt","tokenType":"Bearer","expiresAt":"2024-05-01T14:00:00Z"}`, rec.Body.String())

	rec = fx.do(http.MethodPost, "/api/auth/login", `{"username":"ada","password":"nope"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, rec).Code)
}

func TestLogin_EmptyOrUnreadableCredentialsStillReachLogin(t *testing.T) {
	fx := createTestAPI(t)

	fx.accountUC.On("Login", mock.Anything, &usecase.LoginInput{Username: "ada"}).
		Return(nil, domainerrors.ErrInvalidCredentials).Once()
	fx.accountUC.On("Login", mock.Anything, &usecase.LoginInput{}).
		Return(nil, domainerrors.ErrInvalidCredentials).Twice()

	for _, body := range []string{`{"username":"ada","password":""}`, `{}`, `{"username":`} {
		rec := fx.do(http.MethodPost, "/api/auth/login", body, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code, body)
		assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, rec).Code)
	}
}

func TestValidateToken(t *testing.T) {
	fx := createTestAPI(t)

	fx.accountUC.On("ValidateToken", mock.Anything, "good").Return(true).Once()
	fx.accountUC.On("ValidateToken", mock.Anything, "Invalid token").Return(false).Once()

	assert.Equal(t, http.StatusOK, fx.do(http.MethodPost, "/api/auth/valid", `{"accessToken":"good"}`, "").Code)
	assert.Equal(t, http.StatusUnauthorized, fx.do(http.MethodPost, "/api/auth/valid", `{"accessToken":"Invalid token"}`, "").Code)
	assert.Equal(t, http.StatusUnauthorized, fx.do(http.MethodPost, "/api/auth/valid", `{}`, "").Code)
}

func TestGrantRole_Guards(t *testing.T) {
	fx := createTestAPI(t)

	rec := fx.do(http.MethodPut, "/api/users/bob/grant/ADMIN", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", decodeError(t, rec).Code)

	rec = fx.do(http.MethodPut, "/api/users/bob/grant/ADMIN", "", fx.bearer(t, "bob", entity.RoleUser))
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeError(t, rec).Code)

	fx.accountUC.On("GrantRole", mock.Anything, "bob", "ADMIN").Return(nil).Once()
	rec = fx.do(http.MethodPut, "/api/users/bob/grant/ADMIN", "", fx.bearer(t, "root", entity.RoleAdmin))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthenticate_TamperedToken(t *testing.T) {
	fx := createTestAPI(t)

	token := strings.TrimPrefix(fx.bearer(t, "bob", entity.RoleUser), "Bearer ")
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	escalated := strings.Replace(string(payload), `"role":"USER"`, `"role":"ADMIN"`, 1)
	require.NotEqual(t, string(payload), escalated)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(escalated))

	rec := fx.do(http.MethodDelete, "/api/users/alice", "", "Bearer "+strings.Join(parts, "."))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, rec).Code)
}

func TestAuthenticate_ForeignSecret(t *testing.T) {
	fx := createTestAPI(t)

	foreign, err := auth.NewJWTService(newTestConfig("another-secret"))
	require.NoError(t, err)
	token, _, err := foreign.Issue("root", entity.RoleAdmin, time.Now())
	require.NoError(t, err)

	rec := fx.do(http.MethodDelete, "/api/users/alice", "", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_NotBearer(t *testing.T) {
	fx := createTestAPI(t)

	rec := fx.do(http.MethodPost, "/api/books", `{"title":"Dune","author":"Frank Herbert"}`, "Basic Ym9iOnB3")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, rec).Code)
}

func TestChangePassword_OwnerOnly(t *testing.T) {
	fx := createTestAPI(t)
	body := `{"oldPassword":"password123","newPassword":"newpassword1","confirmPassword":"newpassword1"}`

	rec := fx.do(http.MethodPut, "/api/users/alice/password", body, fx.bearer(t, "bob", entity.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	fx.accountUC.On("ChangePassword", mock.Anything, "bob", &usecase.ChangePasswordInput{
		OldPassword:     "password123",
		NewPassword:     "newpassword1",
		ConfirmPassword: "newpassword1",
	}).Return(nil).Once()
	rec = fx.do(http.MethodPut, "/api/users/bob/password", body, fx.bearer(t, "bob", entity.RoleUser))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestChangePassword_Mismatch(t *testing.T) {
	fx := createTestAPI(t)

	fx.accountUC.On("ChangePassword", mock.Anything, "bob", mock.Anything).Return(domainerrors.ErrOldPasswordMismatch).Once()

	rec := fx.do(http.MethodPut, "/api/users/bob/password",
		`{"oldPassword":"wrong","newPassword":"newpassword1","confirmPassword":"newpassword1"}`, fx.bearer(t, "bob", entity.RoleUser))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "PASSWORD_MISMATCH", body.Code)
	assert.Equal(t, domainerrors.MismatchOld, body.Details)
}

func TestDeleteUser_NotFound(t *testing.T) {
	fx := createTestAPI(t)

	fx.accountUC.On("DeleteAccount", mock.Anything, "ghost").
		Return(domainerrors.ErrUserNotFound.WithMessagef("User was not found for username=%s", "ghost")).Once()

	rec := fx.do(http.MethodDelete, "/api/users/ghost", "", fx.bearer(t, "root", entity.RoleAdmin))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User was not found for username=ghost", decodeError(t, rec).Message)
}

func TestBooks_Guards(t *testing.T) {
	fx := createTestAPI(t)
	book := &entity.Book{ID: 5, Title: "Dune", Author: "Frank Herbert"}

	fx.bookUC.On("CreateBook", mock.Anything, &usecase.BookInput{Title: "Dune", Author: "Frank Herbert"}).Return(book, nil).Once()
	rec := fx.do(http.MethodPost, "/api/books", `{"title":"Dune","author":"Frank Herbert"}`, fx.bearer(t, "bob", entity.RoleUser))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = fx.do(http.MethodPost, "/api/books", `{"title":"Dune","author":"Frank Herbert"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = fx.do(http.MethodPut, "/api/books/5", `{"title":"Dune","author":"Frank Herbert"}`, fx.bearer(t, "bob", entity.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = fx.do(http.MethodDelete, "/api/books/5", "", fx.bearer(t, "bob", entity.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	fx.bookUC.On("DeleteBook", mock.Anything, int64(5)).Return(nil).Once()
	rec = fx.do(http.MethodDelete, "/api/books/5", "", fx.bearer(t, "root", entity.RoleAdmin))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestBooks_ListAndGet(t *testing.T) {
	fx := createTestAPI(t)

	fx.bookUC.On("ListBooks", mock.Anything, entity.PageRequest{Page: 1, Size: 2}).Return(&entity.Page[entity.Book]{
		Content:       []entity.Book{{ID: 3, Title: "C"}},
		Page:          1,
		Size:          2,
		TotalElements: 3,
	}, nil).Once()
	fx.bookUC.On("GetBook", mock.Anything, int64(9)).
		Return(nil, domainerrors.ErrBookNotFound.WithMessagef("Book was not found for id=%d", 9)).Once()

	rec := fx.do(http.MethodGet, "/api/books?page=1&size=2", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page entity.Page[entity.Book]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(3), page.TotalElements)

	rec = fx.do(http.MethodGet, "/api/books/9", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "BOOK_NOT_FOUND", decodeError(t, rec).Code)

	rec = fx.do(http.MethodGet, "/api/books/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviews_OwnerGuard(t *testing.T) {
	fx := createTestAPI(t)
	view := &entity.ReviewView{ID: entity.ReviewID{UserID: 1, BookID: 3}, Rate: 5, Content: "Content"}

	rec := fx.do(http.MethodPost, "/api/reviews/alice/3", `{"content":"Content","rate":5}`, fx.bearer(t, "bob", entity.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	fx.reviewUC.On("CreateReview", mock.Anything, "bob", int64(3), &usecase.ReviewInput{Content: "Content", Rate: 5}).Return(view, nil).Once()
	rec = fx.do(http.MethodPost, "/api/reviews/bob/3", `{"content":"Content","rate":5}`, fx.bearer(t, "bob", entity.RoleUser))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":{"userId":1,"bookId":3}`)

	rec = fx.do(http.MethodPost, "/api/reviews/bob/3", `{"content":"Content","rate":9}`, fx.bearer(t, "bob", entity.RoleUser))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	fx.reviewUC.On("DeleteReview", mock.Anything, "bob", int64(3)).Return(nil).Once()
	rec = fx.do(http.MethodDelete, "/api/reviews/bob/3", "", fx.bearer(t, "bob", entity.RoleUser))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestReviews_PublicReads(t *testing.T) {
	fx := createTestAPI(t)
	stats := &entity.BookStatistics{BookID: 3, NumberOfRates: 2, NumberOfComments: 1, Rate: 4.5}

	fx.reviewUC.On("BookStatistics", mock.Anything, int64(3)).Return(stats, nil).Once()
	fx.reviewUC.On("ListUserReviews", mock.Anything, "ghost", entity.PageRequest{}).
		Return(nil, domainerrors.ErrUserNotFound).Once()

	rec := fx.do(http.MethodGet, "/api/reviews/book/3/stats", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":3,"numberOfRates":2,"numberOfComments":1,"rate":4.5}`, rec.Body.String())

	rec = fx.do(http.MethodGet, "/api/reviews/user/ghost", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInternalErrorsAreNotExposed(t *testing.T) {
	fx := createTestAPI(t)

	fx.accountUC.On("GetAccount", mock.Anything, "ada").Return(nil, errors.New("dial tcp 10.0.0.7:5432: connection refused")).Once()

	rec := fx.do(http.MethodGet, "/api/users/ada", "", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.Empty(t, body.Details)
	assert.NotContains(t, rec.Body.String(), "10.0.0.7")
}
