package http

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/aussiebroadwan/passgate/internal/auth/service"
	"github.com/aussiebroadwan/passgate/internal/auth/store"
	"github.com/aussiebroadwan/passgate/pkg/httpx"
	"github.com/aussiebroadwan/passgate/pkg/slogx"

	_ "github.com/aussiebroadwan/passgate/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	sessions     *service.SessionService
	cookie       CookieConfig
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AccountService      *service.AccountService
	VerificationService *service.VerificationService
	ResetService        *service.ResetService

	// CORSOrigins enables credentialed CORS for the listed origins. Empty disables CORS.
	CORSOrigins []string

	// TrustedProxies are the peers whose X-Forwarded-For is believed when
	// keying rate limits. Empty means the TCP peer is the client.
	TrustedProxies []netip.Prefix
}

func NewRouter(
	sessions *service.SessionService,
	cookie CookieConfig,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	if cookie.MaxAge <= 0 {
		cookie.MaxAge = sessions.TTL()
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		sessions:     sessions,
		cookie:       cookie,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	if len(r.CORSOrigins) > 0 {
		r.middlewares = append(r.middlewares, httpx.CORS(r.CORSOrigins))
	}

	r.registerAccount()
	r.registerVerification()
	r.registerReset()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Passgate Account Service API
//	@version		0.1.0
//	@description	Email/password accounts with OTP email verification and OTP password reset.
//	@description
//	@description				Sessions are signed JWTs carried in an HTTP-only cookie named "token".
//	@description				Non-browser clients may send the same token as a bearer header.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/passgate
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						token
//	@description				Session token set by register or login.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) clientIP() httpx.KeyExtractor {
	return httpx.ClientIPKeyExtractor(r.TrustedProxies)
}

func (r *Router) session() httpx.Middleware {
	return httpx.SessionMiddleware(r.sessions.Verifier(), r.cookie.name())
}

func (r *Router) registerAccount() {
	h := &AccountHandler{
		AccountService: r.AccountService,
		Cookie:         r.cookie,
	}

	// Credential endpoints - strict rate limit by IP + email (brute force prevention).
	// The body cap comes first so the limiter never parses an oversized upload.
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.MaxBodyBytes(maxMultipartMemory),
			httpx.RateLimitByIPAndField(httpx.StrictLimit, r.clientIP(), "email"),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndField(httpx.StrictLimit, r.clientIP(), "email"),
		),
	)

	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.LenientLimit, r.clientIP()),
		),
	)

	// Session probes by account. is-auth only checks the token; me reads the store.
	r.Mux.Handle("GET /api/auth/is-auth",
		httpx.Chain(http.HandlerFunc(h.HandleIsAuth),
			r.session(),
			httpx.RateLimitByAccount(httpx.LenientLimit, r.clientIP()),
		),
	)
	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			r.session(),
			httpx.RateLimitByAccount(httpx.ModerateLimit, r.clientIP()),
		),
	)
}

func (r *Router) registerVerification() {
	h := &VerificationHandler{VerificationService: r.VerificationService}

	// Both sending and guessing codes are limited per account
	r.Mux.Handle("POST /api/auth/send-verify-otp",
		httpx.Chain(http.HandlerFunc(h.HandleSendOTP),
			r.session(),
			httpx.RateLimitByAccount(httpx.StrictLimit, r.clientIP()),
		),
	)
	r.Mux.Handle("POST /api/auth/verify-account",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			r.session(),
			httpx.RateLimitByAccount(httpx.StrictLimit, r.clientIP()),
		),
	)
}

func (r *Router) registerReset() {
	h := &ResetHandler{ResetService: r.ResetService}

	// Unauthenticated - strict rate limit by IP + email, and by email alone so
	// guesses against one code are capped however many addresses send them.
	r.Mux.Handle("POST /api/auth/send-reset-otp",
		httpx.Chain(http.HandlerFunc(h.HandleSendOTP),
			httpx.RateLimitByIPAndField(httpx.StrictLimit, r.clientIP(), "email"),
			httpx.RateLimitByField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /api/auth/reset-password",
		httpx.Chain(http.HandlerFunc(h.HandleReset),
			httpx.RateLimitByIPAndField(httpx.StrictLimit, r.clientIP(), "email"),
			httpx.RateLimitByField(httpx.StrictLimit, "email"),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - public rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit, r.clientIP()),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit, r.clientIP()),
		),
	)
}
