package routes

import (
	"net/http"

	"portfolio-backend/auth"
	"portfolio-backend/handlers"
)

const apiPrefix = "/api"

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, auth-token")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type Handlers struct {
	Auth        *handlers.AuthHandler
	Portfolio   *handlers.PortfolioHandler
	Certificate *handlers.CertificateHandler
	Contact     *handlers.ContactHandler
}

// SetupRoutes registers every API route on a fresh mux and returns it
// wrapped with CORS handling.
func SetupRoutes(h Handlers, tokens *auth.TokenService) http.Handler {
	mux := http.NewServeMux()
	fetchUser := handlers.FetchUser(tokens)

	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, handlers.RecoverWrapper(fn))
	}
	api := func(method, path string) string {
		return method + " " + apiPrefix + path
	}

	handle(api(http.MethodGet, "/health"), func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes
	handle(api(http.MethodPost, "/auth/signup"), h.Auth.Signup)
	handle(api(http.MethodPost, "/auth/login"), h.Auth.Login)
	handle(api(http.MethodPost, "/auth/getuser"), fetchUser(h.Auth.GetUser))
	handle(api(http.MethodPost, "/auth/getusers"), fetchUser(h.Auth.GetUsers))
	handle(api(http.MethodDelete, "/auth/deleteuser/{id}"), fetchUser(h.Auth.DeleteUser))

	// Portfolio routes
	handle(api(http.MethodPost, "/portfolios/getportfolios"), h.Portfolio.GetPortfolios)
	handle(api(http.MethodGet, "/portfolios/getportfolio/{slug}"), h.Portfolio.GetPortfolio)
	handle(api(http.MethodGet, "/portfolios/getportfoliofromid/{id}"), h.Portfolio.GetPortfolioFromID)
	handle(api(http.MethodPost, "/portfolios/addportfolio"), fetchUser(h.Portfolio.AddPortfolio))
	handle(api(http.MethodPut, "/portfolios/updateportfolio/{id}"), fetchUser(h.Portfolio.UpdatePortfolio))
	handle(api(http.MethodDelete, "/portfolios/deleteportfolio/{id}"), fetchUser(h.Portfolio.DeletePortfolio))

	// Certificate routes
	handle(api(http.MethodPost, "/certificates/getcertificates"), h.Certificate.GetCertificates)
	handle(api(http.MethodGet, "/certificates/getsomecertificates"), h.Certificate.GetSomeCertificates)
	handle(api(http.MethodGet, "/certificates/getnumcertificates"), h.Certificate.GetNumCertificates)
	handle(api(http.MethodGet, "/certificates/getfields"), h.Certificate.GetFields)
	handle(api(http.MethodGet, "/certificates/getcertificatesbyfield"), h.Certificate.GetCertificatesByField)
	handle(api(http.MethodGet, "/certificates/getcertificatebyid/{id}"), h.Certificate.GetCertificateByID)
	handle(api(http.MethodGet, "/certificates/exportpdf"), h.Certificate.ExportPDF)
	handle(api(http.MethodPost, "/certificates/addcertificate"), fetchUser(h.Certificate.AddCertificate))
	handle(api(http.MethodPut, "/certificates/updatecertificate/{id}"), fetchUser(h.Certificate.UpdateCertificate))
	handle(api(http.MethodDelete, "/certificates/deletecertificate/{id}"), fetchUser(h.Certificate.DeleteCertificate))

	// Contact routes
	handle(api(http.MethodPost, "/contacts/addcontact"), h.Contact.AddContact)
	handle(api(http.MethodPost, "/contacts/getcontacts"), fetchUser(h.Contact.GetContacts))
	handle(api(http.MethodDelete, "/contacts/deletecontact/{id}"), fetchUser(h.Contact.DeleteContact))

	return withCORS(mux)
}
