package v0

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SwaggerPath is where the Swagger UI is mounted
const SwaggerPath = "/v0/swagger/"

// SwaggerHandler serves the Swagger UI for the OpenAPI document huma generates at specURL
func SwaggerHandler(specURL string) http.HandlerFunc {
	ui := httpSwagger.Handler(
		httpSwagger.URL(specURL),
		httpSwagger.DeepLinking(true),
	)
	return func(w http.ResponseWriter, r *http.Request) {
		// When accessed without the trailing slash, redirect to the UI path
		if r.URL.Path == SwaggerPath[:len(SwaggerPath)-1] {
			http.Redirect(w, r, SwaggerPath, http.StatusFound)
			return
		}
		if r.URL.Path == SwaggerPath {
			http.Redirect(w, r, SwaggerPath+"index.html", http.StatusFound)
			return
		}
		ui.ServeHTTP(w, r)
	}
}
