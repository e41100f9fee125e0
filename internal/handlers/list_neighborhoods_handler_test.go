package handlers

import (
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupListingsReadRouter(t *testing.T) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	h := NewListingsHandler(nil, client, testLogger())

	router := gin.New()
	router.GET("/api/v1/listings/neighborhoods", h.ListNeighborhoods)
	router.GET("/api/v1/listings/:id", h.GetListing)
	return router, mr
}

func TestListNeighborhoodsServedFromCache(t *testing.T) {
	router, mr := setupListingsReadRouter(t)
	mr.Set("neighborhoods", `["Kilimani","South B","Westlands"]`)

	w := getPath(router, "/api/v1/listings/neighborhoods")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Kilimani")
	assert.Contains(t, w.Body.String(), "Westlands")
}

func TestGetListingServedFromCache(t *testing.T) {
	router, mr := setupListingsReadRouter(t)
	mr.Set("listing:lst-1", `{"id":"lst-1","title":"Kilimani 2BR","neighborhood":"Kilimani","monthlyRent":45000,"status":"AVAILABLE","photos":[],"amenities":[]}`)

	w := getPath(router, "/api/v1/listings/lst-1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Kilimani 2BR")
}
