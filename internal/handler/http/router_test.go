package http_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
	httpHandler "github.com/ItsBakerX/trinkprotokolle-backend/internal/handler/http"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/middleware"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/repository/mocks"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/service"
)

// fixture wires the full handler stack (router, middleware, services) over
// repository mocks. One fixture per test.
type fixture struct {
	router        *gin.Engine
	authService   *service.AuthService
	pflegerRepo   *mocks.PflegerRepository
	protokollRepo *mocks.ProtokollRepository
	eintragRepo   *mocks.EintragRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pflegerRepo := new(mocks.PflegerRepository)
	protokollRepo := new(mocks.ProtokollRepository)
	eintragRepo := new(mocks.EintragRepository)

	authService, err := service.NewAuthService(pflegerRepo, "test-secret", time.Hour)
	require.NoError(t, err)
	protokollService := service.NewProtokollService(protokollRepo, eintragRepo, pflegerRepo)
	eintragService := service.NewEintragService(eintragRepo, protokollRepo, pflegerRepo)
	pflegerService := service.NewPflegerService(pflegerRepo, protokollService)

	loginHandler := httpHandler.NewLoginHandler(authService)
	pflegerHandler := httpHandler.NewPflegerHandler(pflegerService)
	protokollHandler := httpHandler.NewProtokollHandler(protokollService, eintragService)
	eintragHandler := httpHandler.NewEintragHandler(eintragService, protokollService)

	requireAuth := middleware.RequireAuth(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	router := gin.New()
	api := router.Group("/api")
	loginRoutes := api.Group("/login")
	{
		loginRoutes.POST("", loginHandler.Login)
		loginRoutes.GET("", loginHandler.Current)
		loginRoutes.DELETE("", loginHandler.Logout)
	}
	pflegerRoutes := api.Group("/pfleger")
	{
		pflegerRoutes.GET("/alle", optionalAuth, pflegerHandler.GetAlle)
		pflegerRoutes.POST("", requireAuth, pflegerHandler.Create)
		pflegerRoutes.PUT("/:id", requireAuth, pflegerHandler.Update)
		pflegerRoutes.DELETE("/:id", requireAuth, pflegerHandler.Delete)
	}
	protokollRoutes := api.Group("/protokoll")
	{
		protokollRoutes.GET("/alle", optionalAuth, protokollHandler.GetAlle)
		protokollRoutes.GET("/:id", optionalAuth, protokollHandler.Get)
		protokollRoutes.GET("/:id/eintraege", optionalAuth, protokollHandler.GetEintraege)
		protokollRoutes.POST("", requireAuth, protokollHandler.Create)
		protokollRoutes.PUT("/:id", requireAuth, protokollHandler.Update)
		protokollRoutes.DELETE("/:id", requireAuth, protokollHandler.Delete)
	}
	eintragRoutes := api.Group("/eintrag")
	{
		eintragRoutes.GET("/:id", optionalAuth, eintragHandler.Get)
		eintragRoutes.POST("", requireAuth, eintragHandler.Create)
		eintragRoutes.PUT("/:id", requireAuth, eintragHandler.Update)
		eintragRoutes.DELETE("/:id", requireAuth, eintragHandler.Delete)
	}

	return &fixture{
		router:        router,
		authService:   authService,
		pflegerRepo:   pflegerRepo,
		protokollRepo: protokollRepo,
		eintragRepo:   eintragRepo,
	}
}

// newPfleger builds a stored account whose password hash matches the given
// plain password.
func newPfleger(t *testing.T, id, name, password string, admin bool) *domain.Pfleger {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &domain.Pfleger{ID: id, Name: name, Password: string(hashed), Admin: admin}
}

// sessionCookie logs the Pfleger in through the AuthService and returns the
// resulting session cookie.
func (f *fixture) sessionCookie(t *testing.T, pfleger *domain.Pfleger, password string) *http.Cookie {
	t.Helper()
	f.pflegerRepo.On("FindByName", context.Background(), pfleger.Name).Return(pfleger, nil).Once()
	token, err := f.authService.Login(context.Background(), pfleger.Name, password)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.AccessTokenCookie, Value: token}
}

// do performs a request against the fixture's router. body may be nil;
// cookie may be nil for guest requests.
func (f *fixture) do(method, path string, body []byte, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}
