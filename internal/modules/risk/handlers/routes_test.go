package handlers_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoutes(t *testing.T) {
	router := chi.NewRouter()
	require.NotPanics(t, func() {
		newHandler(zerolog.Nop()).RegisterRoutes(router)
	})

	mounted := map[string]bool{}
	err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		mounted[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	for _, route := range []string{
		"POST /risk/profile",
		"POST /risk/simulate",
		"GET /risk/buckets",
		"GET /risk/questionnaire",
	} {
		assert.True(t, mounted[route], route)
	}
}
