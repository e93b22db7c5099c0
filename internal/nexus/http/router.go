package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pixelforge/nexus/internal/nexus/obs"
	"github.com/pixelforge/nexus/internal/nexus/service"
	"github.com/pixelforge/nexus/internal/nexus/store"
	"github.com/pixelforge/nexus/pkg/httpx"
	"github.com/pixelforge/nexus/pkg/jwtx"
	"github.com/pixelforge/nexus/pkg/slogx"

	_ "github.com/pixelforge/nexus/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	AuthService     *service.AuthService
	MFAService      *service.MFAService
	ProjectService  *service.ProjectService
	DocumentService *service.DocumentService

	MaxUploadBytes int64
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		obs.Instrument,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMFA()
	r.registerProjects()
	r.registerDocuments()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			PixelForge Nexus API
//	@version		0.1.0
//	@description	Project-management backend: password plus optional TOTP login,
//	@description	role-gated project operations and per-project document storage.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Open endpoints carry strict per-IP limits; they are the brute-force
	// surface.
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/verify-login",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("PATCH /auth/update-password",
		httpx.Chain(http.HandlerFunc(h.HandleUpdatePassword),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	r.Mux.Handle("GET /mfa/generate",
		httpx.Chain(http.HandlerFunc(h.HandleGenerate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /mfa/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{
		ProjectService: r.ProjectService,
		Store:          r.store,
	}

	r.Mux.Handle("POST /projects",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(roleAdmin),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /projects",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /projects/assigned",
		httpx.Chain(http.HandlerFunc(h.HandleListAssigned),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(roleDeveloper),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PATCH /projects/{id}/complete",
		httpx.Chain(http.HandlerFunc(h.HandleComplete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(roleAdmin),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// The role gate is only the first filter; the handler still requires the
	// caller to be THIS project's lead.
	r.Mux.Handle("PATCH /projects/{projectId}/assign-developer",
		httpx.Chain(http.HandlerFunc(h.HandleAssignDeveloper),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(roleProjectLead),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerDocuments() {
	h := &DocumentsHandler{
		DocumentService: r.DocumentService,
		MaxUploadBytes:  r.MaxUploadBytes,
	}

	r.Mux.Handle("POST /documents/{projectId}",
		httpx.Chain(http.HandlerFunc(h.HandleUpload),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(roleAdmin, roleProjectLead),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /documents/{projectId}",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /documents/download/{docId}",
		httpx.Chain(http.HandlerFunc(h.HandleDownload),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.DocumentService.Blobs))
	r.Mux.Handle("GET /metrics", obs.Handler())
}
