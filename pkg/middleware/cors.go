package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Cross-origin policy shared by the server and edge handlers: any origin may post.
var (
	AllowMethods = []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions}
	AllowHeaders = []string{"Content-Type"}
)

// CORS allows all origins for the methods the visitor form uses
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    AllowMethods,
		AllowHeaders:    AllowHeaders,
	})
}

// SetCORSHeaders writes the same policy onto a plain net/http response
func SetCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", strings.Join(AllowMethods, ", "))
	h.Set("Access-Control-Allow-Headers", strings.Join(AllowHeaders, ", "))
}
